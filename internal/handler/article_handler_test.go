package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

type fakeArticleStore struct {
	articles []model.Article
	err      error
}

func (f *fakeArticleStore) Load() ([]model.Article, error) {
	return f.articles, f.err
}

func newTestRouter(store ArticleStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(store)
	r.GET("/articles", h.GetArticles)
	r.GET("/articles/:bill_id", h.GetArticle)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetArticles_StoreError(t *testing.T) {
	store := &fakeArticleStore{err: errors.New("storage down")}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetArticles_Empty(t *testing.T) {
	store := &fakeArticleStore{}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, len(res.Articles))
}

func TestGetArticles_WithResults(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{
			{
				BillID:            "HR.1",
				BillTitle:         "Example Act",
				SponsorBioguideID: "A000375",
				BillCommitteeIDs:  []string{"HSBU00"},
				ArticleContent:    "## HR.1\n\nLead.",
			},
			{
				BillID:         "S.24",
				BillTitle:      "Other Act",
				ArticleContent: "## S.24\n\nLead.",
			},
		},
	}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "HR.1", res.Articles[0].BillID)
	assert.Equal(t, "Example Act", res.Articles[0].BillTitle)
	assert.Equal(t, []string{"HSBU00"}, res.Articles[0].BillCommitteeIDs)
	assert.Equal(t, 0, len(res.Articles[1].BillCommitteeIDs))
}

func TestGetArticle_Found(t *testing.T) {
	store := &fakeArticleStore{
		articles: []model.Article{{BillID: "HR.1", ArticleContent: "## HR.1"}},
	}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles/hr.1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "HR.1", res.BillID)
}

func TestGetArticle_NotFound(t *testing.T) {
	store := &fakeArticleStore{}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles/HR.9999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeArticleStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetHealth_Unreadable(t *testing.T) {
	r := newTestRouter(&fakeArticleStore{err: errors.New("storage down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
