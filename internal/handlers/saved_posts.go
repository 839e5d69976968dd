package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"synapshare/internal/apperr"
	"synapshare/internal/middleware"
	"synapshare/internal/models"
)

// SavedPostsHandler records bookmarks. References are weak: a saved post can
// outlive the content it points at.
type SavedPostsHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewSavedPostsHandler(database *gorm.DB, log *logrus.Logger) *SavedPostsHandler {
	return &SavedPostsHandler{db: database, log: log}
}

func (h *SavedPostsHandler) Save(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var req struct {
		PostType string `json:"postType"`
		PostID   uint   `json:"postId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == 0 {
		respondError(c, h.log, apperr.Validation("postType and postId are required"))
		return
	}
	if !models.ValidPostType(req.PostType) {
		respondError(c, h.log, apperr.Validation("Invalid post type"))
		return
	}

	saved := models.SavedPost{
		UserEmail: actor.Email,
		PostType:  req.PostType,
		PostID:    req.PostID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, h.log, apperr.Conflict("Post already saved"))
			return
		}
		respondError(c, h.log, apperr.Wrap(apperr.KindStore, "Failed to save post", err))
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *SavedPostsHandler) List(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	saved := []models.SavedPost{}
	err := h.db.WithContext(c.Request.Context()).
		Where("user_email = ?", actor.Email).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		respondError(c, h.log, apperr.Wrap(apperr.KindStore, "Failed to fetch saved posts", err))
		return
	}
	c.JSON(http.StatusOK, saved)
}
