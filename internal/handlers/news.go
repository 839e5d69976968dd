package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"synapshare/internal/services"
)

type NewsHandler struct {
	news *services.NewsService
	log  *logrus.Logger
}

func NewNewsHandler(news *services.NewsService, log *logrus.Logger) *NewsHandler {
	return &NewsHandler{news: news, log: log}
}

func (h *NewsHandler) Headlines(c *gin.Context) {
	articles, err := h.news.TopHeadlines(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}
