package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/content"
	"synapshare/internal/models"
)

// SearchHandler fans one text query out across the three collections and
// returns three parallel result lists.
type SearchHandler struct {
	notes       *content.Store[models.Note, *models.Note]
	discussions *content.Store[models.Discussion, *models.Discussion]
	nodes       *content.Store[models.Node, *models.Node]
	log         *logrus.Logger
}

func NewSearchHandler(
	notes *content.Store[models.Note, *models.Note],
	discussions *content.Store[models.Discussion, *models.Discussion],
	nodes *content.Store[models.Node, *models.Node],
	log *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{notes: notes, discussions: discussions, nodes: nodes, log: log}
}

func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")

	notes, err := h.notes.Search(ctx, query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	discussions, err := h.discussions.Search(ctx, query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	nodes, err := h.nodes.Search(ctx, query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes":       renderAll[models.Note, *models.Note](notes),
		"discussions": renderAll[models.Discussion, *models.Discussion](discussions),
		"nodes":       renderAll[models.Node, *models.Node](nodes),
	})
}
