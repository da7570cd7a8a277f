package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/data"
	"go-coach-app/internal/service"
)

// CommentHandler holds the dependencies for the comment handlers.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id"`
}

// create posts a comment on an article, optionally as a reply.
func (h *CommentHandler) create(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	articleID, e := pathID(r, "articleID")
	if e != nil {
		return e
	}
	var req commentRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	actor := &data.User{ID: user.ID, Username: user.Username}
	comment, err := h.comments.Add(r.Context(), articleID, req.Description, req.ParentID, actor)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"comment": comment})
	return nil
}

// delete removes a comment together with its reply subtree.
func (h *CommentHandler) delete(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	articleID, e := pathID(r, "articleID")
	if e != nil {
		return e
	}
	commentID, e := pathID(r, "commentID")
	if e != nil {
		return e
	}
	if err := h.comments.Delete(r.Context(), articleID, commentID, user.ID); err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted."})
	return nil
}
