package service

import (
	"context"
	"regexp"
	"strings"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/auth"
	"go-coach-app/internal/data"
	"go-coach-app/internal/logger"
)

// UserRepository defines the interface for database operations on users.
type UserRepository interface {
	Create(ctx context.Context, user *data.User) error
	GetByID(ctx context.Context, id int64) (*data.User, error)
	GetByUsername(ctx context.Context, username string) (*data.User, error)
	Update(ctx context.Context, user *data.User) error
}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// UserService provides business logic for accounts and profiles.
type UserService struct {
	repo UserRepository
	log  logger.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, log logger.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Signup registers a new account with a hashed password.
func (s *UserService) Signup(ctx context.Context, username, password string) (*data.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Username and password are required.")
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "Username already taken.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &data.User{Username: username, PasswordHash: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.With(map[string]interface{}{"username": username}).Info("user signed up")
	return user, nil
}

// Authenticate verifies credentials and returns the matching account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*data.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		// One message for both cases; do not reveal which part failed.
		return nil, apperr.New(apperr.Authentication, "Invalid username or password.")
	}
	return user, nil
}

// GetByID returns the account with the given id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*data.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "User not found.")
	}
	return user, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username string
	FullName *string
	Email    *string
}

// UpdateProfile applies profile changes, re-checking username uniqueness when
// the username changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*data.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(upd.Username)
	if !usernameRe.MatchString(username) {
		return nil, apperr.New(apperr.Validation, "Username must be 3-32 characters of letters, digits, '.', '-' or '_'.")
	}
	if username != user.Username {
		other, err := s.repo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != userID {
			return nil, apperr.New(apperr.Conflict, "Username already taken.")
		}
	}

	email := upd.Email
	if email != nil {
		trimmed := strings.TrimSpace(*email)
		if trimmed == "" {
			email = nil
		} else {
			if !emailRe.MatchString(trimmed) {
				return nil, apperr.New(apperr.Validation, "Email address is not valid.")
			}
			email = &trimmed
		}
	}

	fullName := upd.FullName
	if fullName != nil {
		trimmed := strings.TrimSpace(*fullName)
		if trimmed == "" {
			fullName = nil
		} else {
			fullName = &trimmed
		}
	}

	user.Username = username
	user.FullName = fullName
	user.Email = email
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
