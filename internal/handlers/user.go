package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/apperr"
	"synapshare/internal/identity"
	"synapshare/internal/middleware"
	"synapshare/internal/users"
)

type UserHandler struct {
	users    *users.Store
	verifier identity.Verifier
	log      *logrus.Logger
}

func NewUserHandler(store *users.Store, verifier identity.Verifier, log *logrus.Logger) *UserHandler {
	return &UserHandler{users: store, verifier: verifier, log: log}
}

// Profile returns the profile for a provider uid, with the admin flag
// derived for the requesting actor.
func (h *UserHandler) Profile(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	user, err := h.users.ByUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"uid":      user.UID,
		"username": user.Username,
		"email":    user.Email,
		"isAdmin":  actor.IsAdmin,
	})
}

// CheckUsername is a public existence check used by the signup flow.
func (h *UserHandler) CheckUsername(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		respondError(c, h.log, apperr.Validation("Username is required"))
		return
	}
	exists, err := h.users.UsernameTaken(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// SaveUsername claims the caller's display name, exactly once.
func (h *UserHandler) SaveUsername(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("Username is required"))
		return
	}
	user, err := h.users.ClaimUsername(c.Request.Context(), actor.UID, req.Username)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// RequestPasswordReset asks the identity provider to email a reset link.
// Unknown addresses 404 rather than pretending to send.
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respondError(c, h.log, apperr.Validation("Email is required"))
		return
	}
	if _, err := h.users.ByEmail(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.log, err)
		return
	}
	if _, err := h.verifier.PasswordResetLink(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent successfully"})
}
