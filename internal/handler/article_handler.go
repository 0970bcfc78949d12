package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

type ArticleStore interface {
	Load() ([]model.Article, error)
}

type ArticleHandler struct {
	store ArticleStore
}

func NewArticleHandler(store ArticleStore) *ArticleHandler {
	return &ArticleHandler{store: store}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	articles, err := h.store.Load()
	if err != nil {
		slog.Error("error loading articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	res := ArticlesResponse{
		Articles: make([]ArticleResponse, 0, len(articles)),
		Total:    len(articles),
	}
	for _, a := range articles {
		res.Articles = append(res.Articles, toArticleResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	billID := c.Param("bill_id")

	articles, err := h.store.Load()
	if err != nil {
		slog.Error("error loading articles", "error", err, "bill_id", billID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	for _, a := range articles {
		if strings.EqualFold(a.BillID, billID) {
			c.JSON(http.StatusOK, toArticleResponse(a))
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	if _, err := h.store.Load(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"storage": "unreadable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"storage": "readable",
	})
}

func toArticleResponse(a model.Article) ArticleResponse {
	committees := a.BillCommitteeIDs
	if committees == nil {
		committees = []string{}
	}
	return ArticleResponse{
		BillID:            a.BillID,
		BillTitle:         a.BillTitle,
		SponsorBioguideID: a.SponsorBioguideID,
		BillCommitteeIDs:  committees,
		ArticleContent:    a.ArticleContent,
	}
}
