package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/apperr"
	"synapshare/internal/content"
)

// respondError translates any error to the client-facing JSON shape. Server
// faults are logged at error level, client faults only at debug.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := apperr.Status(err)
	entry := log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	})
	if status >= 500 {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("Invalid id")
	}
	return uint(id), nil
}

// renderAll fills derived response fields on every item in place.
func renderAll[T any, P content.Item[T]](items []T) []T {
	for i := range items {
		P(&items[i]).Render()
	}
	return items
}
