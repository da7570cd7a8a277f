package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/service"
)

// TodoHandler holds the dependencies for the todo handlers.
type TodoHandler struct {
	todos *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// list returns all todos. Listings are public.
func (h *TodoHandler) list(w http.ResponseWriter, r *http.Request) *apperr.Error {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"todos": todos})
	return nil
}

type todoRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// create adds a todo owned by the caller.
func (h *TodoHandler) create(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	var req todoRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	todo, err := h.todos.Create(r.Context(), req.Title, req.Author, user.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"todo": todo})
	return nil
}

// toggle flips a todo's done flag.
func (h *TodoHandler) toggle(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	id, e := pathID(r, "todoID")
	if e != nil {
		return e
	}
	todo, err := h.todos.Toggle(r.Context(), id, user.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"todo": todo})
	return nil
}

// delete removes a todo.
func (h *TodoHandler) delete(w http.ResponseWriter, r *http.Request) *apperr.Error {
	user, e := requireUser(r)
	if e != nil {
		return e
	}
	id, e := pathID(r, "todoID")
	if e != nil {
		return e
	}
	if err := h.todos.Delete(r.Context(), id, user.ID); err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted."})
	return nil
}
