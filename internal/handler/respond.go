package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// respondWithJSON writes a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) *apperr.Error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body.", err)
	}
	return nil
}

// requireUser returns the authenticated user or an authentication error.
// Ownership decisions happen later, in the services; this only answers
// "is there a session at all".
func requireUser(r *http.Request) (*middleware.UserInfo, *apperr.Error) {
	user := middleware.GetUserInfo(r.Context())
	if user == nil {
		return nil, apperr.New(apperr.Authentication, "Authentication required.")
	}
	return user, nil
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, *apperr.Error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.Validation, "Invalid id provided.")
	}
	return id, nil
}

// asAppError converts a service error into a handler return value.
func asAppError(err error) *apperr.Error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e
	}
	return apperr.Wrap(apperr.Internal, "Internal server error.", err)
}
