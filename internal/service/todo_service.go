package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/auth"
	"go-coach-app/internal/data"
	"go-coach-app/internal/logger"
)

// TodoRepository defines the interface for database operations on todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *data.Todo) error
	GetByID(ctx context.Context, id int64) (*data.Todo, error)
	GetAll(ctx context.Context) ([]data.Todo, error)
	Update(ctx context.Context, todo *data.Todo) error
	Delete(ctx context.Context, id int64) error
}

// TodoService provides business logic for the todo list.
type TodoService struct {
	repo TodoRepository
	log  logger.Logger
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo TodoRepository, log logger.Logger) *TodoService {
	return &TodoService{repo: repo, log: log}
}

// List returns all todos in id order. Listings are public.
func (s *TodoService) List(ctx context.Context) ([]data.Todo, error) {
	return s.repo.GetAll(ctx)
}

// Create adds a todo owned by the acting user.
func (s *TodoService) Create(ctx context.Context, title, author string, actorID int64) (*data.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.New(apperr.Validation, "Title is required.")
	}
	todo := &data.Todo{
		Title:  title,
		Author: strings.TrimSpace(author),
		UserID: &actorID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("added todo %d", todo.ID))
	return todo, nil
}

// Toggle flips the done flag of a todo the actor may modify.
func (s *TodoService) Toggle(ctx context.Context, id, actorID int64) (*data.Todo, error) {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperr.New(apperr.NotFound, "Todo not found.")
	}
	if !auth.CanModify(todo.UserID, actorID) {
		return nil, apperr.New(apperr.Authorization, "Not authorized.")
	}
	todo.Done = !todo.Done
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes a todo the actor may modify.
func (s *TodoService) Delete(ctx context.Context, id, actorID int64) error {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return apperr.New(apperr.NotFound, "Todo not found.")
	}
	if !auth.CanModify(todo.UserID, actorID) {
		return apperr.New(apperr.Authorization, "Not authorized.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Todo not found.")
		}
		return err
	}
	s.log.Info(fmt.Sprintf("deleted todo %d", id))
	return nil
}
