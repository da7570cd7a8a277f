package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/service"
)

// CategoryHandler serves the seeded category lookup list.
type CategoryHandler struct {
	articles *service.ArticleService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(articles *service.ArticleService) *CategoryHandler {
	return &CategoryHandler{articles: articles}
}

// list returns all categories in name order.
func (h *CategoryHandler) list(w http.ResponseWriter, r *http.Request) *apperr.Error {
	categories, err := h.articles.Categories(r.Context())
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
	return nil
}
