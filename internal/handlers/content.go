package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/apperr"
	"synapshare/internal/content"
	"synapshare/internal/middleware"
	"synapshare/internal/models"
	"synapshare/internal/storage"
)

// ContentHandler serves one content collection. It is instantiated three
// times, once per type; the route shape is identical for all of them.
type ContentHandler[T any, P content.Item[T]] struct {
	store *content.Store[T, P]
	files *storage.FileStore
	log   *logrus.Logger
}

func NewContentHandler[T any, P content.Item[T]](store *content.Store[T, P], files *storage.FileStore, log *logrus.Logger) *ContentHandler[T, P] {
	return &ContentHandler[T, P]{store: store, files: files, log: log}
}

func formFromRequest(c *gin.Context) models.ContentForm {
	return models.ContentForm{
		Title:       c.PostForm("title"),
		Subject:     c.PostForm("subject"),
		Body:        c.PostForm("content"),
		Description: c.PostForm("description"),
		CodeSnippet: c.PostForm("codeSnippet"),
	}
}

func (h *ContentHandler[T, P]) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, renderAll[T, P](items))
}

func (h *ContentHandler[T, P]) Create(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	item := P(new(T))
	item.Apply(formFromRequest(c))
	item.Meta().Author = actor.DisplayName()

	if header, err := c.FormFile("file"); err == nil {
		fileURL, err := h.files.Save(header)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		item.Meta().FileURL = fileURL
	}

	if err := h.store.Create(c.Request.Context(), item); err != nil {
		// Don't strand the upload next to a row that never landed.
		if item.Meta().FileURL != "" {
			if rmErr := h.files.Remove(item.Meta().FileURL); rmErr != nil {
				h.log.WithError(rmErr).Warn("orphaned upload not removed")
			}
		}
		respondError(c, h.log, err)
		return
	}

	item.Render()
	c.JSON(http.StatusCreated, item)
}

// requireOwner enforces the ownership rule for update/delete: exact author
// match, no admin bypass on these paths.
func (h *ContentHandler[T, P]) requireOwner(c *gin.Context, item P) bool {
	actor, _ := middleware.CurrentActor(c)
	if item.Meta().Author != actor.DisplayName() {
		respondError(c, h.log, apperr.Forbidden("Not authorized"))
		return false
	}
	return true
}

func (h *ContentHandler[T, P]) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	item, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !h.requireOwner(c, item) {
		return
	}

	item.Apply(formFromRequest(c))

	var oldFile string
	uploaded := false
	if header, err := c.FormFile("file"); err == nil {
		fileURL, err := h.files.Save(header)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		oldFile = item.Meta().FileURL
		item.Meta().FileURL = fileURL
		uploaded = true
	}

	// Row first, old file last: until the row points at the replacement, the
	// old file stays; a failed update drops the upload that never landed.
	if err := h.store.Update(c.Request.Context(), item); err != nil {
		if uploaded {
			if rmErr := h.files.Remove(item.Meta().FileURL); rmErr != nil {
				h.log.WithError(rmErr).Warn("orphaned upload not removed")
			}
		}
		respondError(c, h.log, err)
		return
	}
	if oldFile != "" {
		if rmErr := h.files.Remove(oldFile); rmErr != nil {
			h.log.WithError(rmErr).Warn("replaced upload not removed")
		}
	}
	item.Render()
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[T, P]) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	item, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !h.requireOwner(c, item) {
		return
	}
	h.deleteItem(c, id)
}

// AdminDelete is the admin-prefixed path: same removal, no ownership check.
// The route group already enforced the admin flag.
func (h *ContentHandler[T, P]) AdminDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.deleteItem(c, id)
}

func (h *ContentHandler[T, P]) deleteItem(c *gin.Context, id uint) {
	// Row first, file second: a failure in between orphans a file on disk,
	// never a live record pointing at a missing file.
	item, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if fileURL := item.Meta().FileURL; fileURL != "" {
		if err := h.files.Remove(fileURL); err != nil {
			h.log.WithError(err).Warn("deleted item's upload not removed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": h.store.Label() + " deleted"})
}

func (h *ContentHandler[T, P]) Upvote(c *gin.Context)   { h.vote(c, models.VoteUp) }
func (h *ContentHandler[T, P]) Downvote(c *gin.Context) { h.vote(c, models.VoteDown) }

func (h *ContentHandler[T, P]) vote(c *gin.Context, kind string) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	actor, _ := middleware.CurrentActor(c)
	item, err := h.store.ApplyVote(c.Request.Context(), id, actor.DisplayName(), kind)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	item.Render()
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[T, P]) AddComment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.Validation("Comment content is required"))
		return
	}
	actor, _ := middleware.CurrentActor(c)
	item, err := h.store.AddComment(c.Request.Context(), id, actor.DisplayName(), req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	item.Render()
	c.JSON(http.StatusCreated, item)
}
