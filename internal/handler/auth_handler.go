package handler

import (
	"net/http"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/middleware"
	"go-coach-app/internal/service"

	"github.com/alexedwards/scs/v2"
)

// AuthHandler holds the dependencies for account and session handlers.
type AuthHandler struct {
	users    *service.UserService
	sessions *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, sessions *scs.SessionManager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// signup registers a new account and logs it in.
func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) *apperr.Error {
	var req credentialsRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	user, err := h.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		return asAppError(err)
	}
	if err := h.establishSession(r, user.ID); err != nil {
		return err
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
	return nil
}

// login verifies credentials and establishes a session.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) *apperr.Error {
	var req credentialsRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		return asAppError(err)
	}
	if err := h.establishSession(r, user.ID); err != nil {
		return err
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	return nil
}

// logout destroys the caller's session.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) *apperr.Error {
	if _, e := requireUser(r); e != nil {
		return e
	}
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to log out.", err)
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
	return nil
}

// me reports the current session's user, or null when anonymous.
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) *apperr.Error {
	info := middleware.GetUserInfo(r.Context())
	if info == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return nil
	}
	user, err := h.users.GetByID(r.Context(), info.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	return nil
}

// getProfile returns the caller's profile.
func (h *AuthHandler) getProfile(w http.ResponseWriter, r *http.Request) *apperr.Error {
	info, e := requireUser(r)
	if e != nil {
		return e
	}
	user, err := h.users.GetByID(r.Context(), info.ID)
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	return nil
}

type profileRequest struct {
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// updateProfile applies profile changes for the caller.
func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) *apperr.Error {
	info, e := requireUser(r)
	if e != nil {
		return e
	}
	var req profileRequest
	if e := decodeJSON(r, &req); e != nil {
		return e
	}
	user, err := h.users.UpdateProfile(r.Context(), info.ID, service.ProfileUpdate{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return asAppError(err)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	return nil
}

// establishSession rotates the session token and binds it to the user.
// Token rotation on privilege change prevents session fixation.
func (h *AuthHandler) establishSession(r *http.Request, userID int64) *apperr.Error {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to establish session.", err)
	}
	h.sessions.Put(r.Context(), middleware.SessionUserKey, userID)
	return nil
}
