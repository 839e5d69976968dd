package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/apperr"
	"synapshare/internal/identity"
	"synapshare/internal/users"
)

const actorKey = "actor"

// Actor is the authenticated caller as seen by handlers.
type Actor struct {
	UID      string
	Email    string
	Username string
	IsAdmin  bool
}

// DisplayName is the name that goes on authored content. Admins without a
// claimed username act as "admin".
func (a Actor) DisplayName() string {
	if a.Username != "" {
		return a.Username
	}
	if a.IsAdmin {
		return "admin"
	}
	return ""
}

// CurrentActor returns the actor set by Auth.
func CurrentActor(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return Actor{}, false
	}
	return v.(Actor), true
}

// Auth verifies the bearer credential, lazily provisions the local user
// record and puts the resulting actor on the context. The admin flag is
// resolved here, from configuration, never inside handlers.
func Auth(verifier identity.Verifier, store *users.Store, isAdmin func(email string) bool, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		verified, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Debug("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := store.Ensure(c.Request.Context(), verified.UID, verified.Email)
		if err != nil {
			log.WithError(err).Error("user provisioning failed")
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
			return
		}

		c.Set(actorKey, Actor{
			UID:      verified.UID,
			Email:    verified.Email,
			Username: user.DisplayName(),
			IsAdmin:  isAdmin(verified.Email),
		})
		c.Next()
	}
}

// NameRequired rejects actors that have not claimed a username. Applied to
// every content-mutating, vote and save route; admins pass.
func NameRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		if !actor.IsAdmin && actor.Username == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Please set a username"})
			return
		}
		c.Next()
	}
}

// AdminRequired guards the admin-prefixed operations.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
