package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/service"
)

// ArticleHandler holds the dependencies for the article handlers.
type ArticleHandler struct {
	articles *service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// list returns all articles with their tags. Listings are public.
func (h *ArticleHandler) list(w http.ResponseWriter, r *http.Request) *apperr.Error {
	articles, err := h.articles.List(r.Context())
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"articles": articles})
	return nil
}

// get returns one article with tags, rendered description, and comments.
func (h *ArticleHandler) get(w http.ResponseWriter, r *http.Request) *apperr.Error {
	id, e := pathID(r, "articleID")
	if e != nil {
		return e
	}
	article, err := h.articles.Get(r.Context(), id)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"article": article})
	return nil
}

type articleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Tags        string `json:"tags"`
	CategoryID  *int64 `json:"category_id"`
}

func (req articleRequest) toInput() service.ArticleInput {
	return service.ArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Tags:        req.Tags,
		CategoryID:  req.CategoryID,
	}
}

// create adds an article owned by the caller.
func (h *ArticleHandler) create(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	var req articleRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	article, err := h.articles.Create(r.Context(), req.toInput(), user.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"article": article})
	return nil
}

// update applies changes to an article.
func (h *ArticleHandler) update(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	id, e := pathID(r, "articleID")
	if e != nil {
		return e
	}
	var req articleRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	article, err := h.articles.Update(r.Context(), id, req.toInput(), user.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"article": article})
	return nil
}

// delete removes an article and all of its comments.
func (h *ArticleHandler) delete(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	id, e := pathID(r, "articleID")
	if e != nil {
		return e
	}
	if err := h.articles.Delete(r.Context(), id, user.ID); err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Article deleted."})
	return nil
}
