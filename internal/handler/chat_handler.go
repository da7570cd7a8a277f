package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/service"
)

// ChatHandler holds the dependencies for the assistant chat handlers.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// list returns the caller's conversation history.
func (h *ChatHandler) list(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	messages, err := h.chat.List(r.Context(), user.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
	return nil
}

type chatRequest struct {
	Content string `json:"content"`
}

// send appends a user turn and the assistant's reply.
func (h *ChatHandler) send(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	var req chatRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	messages, err := h.chat.Send(r.Context(), user.ID, req.Content)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"messages": messages})
	return nil
}

// clear deletes the caller's conversation history.
func (h *ChatHandler) clear(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	if err := h.chat.Clear(r.Context(), user.ID); err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared."})
	return nil
}
