package middleware

import (
	"context"
	"net/http"

	"go-coach-app/internal/data"
	"go-coach-app/internal/logger"

	"github.com/alexedwards/scs/v2"
)

// SessionUserKey is the session key holding the authenticated user's id.
const SessionUserKey = "user_id"

// UserLoader resolves a session's user id to the current account record.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*data.User, error)
}

// Authenticator creates a middleware that resolves the session to a user and
// attaches it to the request context. Requests without a valid session pass
// through unauthenticated; rejecting them is the handlers' decision.
func Authenticator(sm *scs.SessionManager, users UserLoader, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sm.Get(r.Context(), SessionUserKey).(int64)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				log.Error(err, "failed to load session user")
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				// Stale session for a user that no longer exists.
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := SetUserInfo(r.Context(), &UserInfo{ID: user.ID, Username: user.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
