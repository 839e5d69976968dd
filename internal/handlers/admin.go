package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/users"
)

// AdminHandler serves the user-administration operations. Content removal
// by admins lives on ContentHandler.AdminDelete. Routes using this handler
// sit behind the AdminRequired middleware.
type AdminHandler struct {
	users *users.Store
	log   *logrus.Logger
}

func NewAdminHandler(store *users.Store, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{users: store, log: log}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	uid := c.Param("uid")
	if err := h.users.Delete(c.Request.Context(), uid); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.WithField("uid", uid).Info("user deleted by admin")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
