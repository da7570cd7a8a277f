package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/logger"
)

// AppHandler is a custom handler function type that returns an application
// error instead of writing failures itself.
type AppHandler func(http.ResponseWriter, *http.Request) *apperr.Error

// Error is a middleware that converts handler errors into JSON error
// responses using the apperr status mapping. Panics become 500s; a failed
// request is never fatal to the process.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					writeError(w, http.StatusInternalServerError, "Internal server error.")
				}
			}()

			err := next(w, r)
			if err != nil {
				status := apperr.Status(err.Kind)
				if status >= http.StatusInternalServerError {
					log.Error(err, "request failed")
				}
				writeError(w, status, err.Message)
			}
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
