package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/service"
)

// FeedHandler serves the aggregated external content feed.
type FeedHandler struct {
	feeds *service.FeedService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feeds *service.FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// list returns the ranked feed for the requested sort mode.
func (h *FeedHandler) list(w http.ResponseWriter, r *http.Request) *apperr.Error {
	posts, err := h.feeds.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
	return nil
}
