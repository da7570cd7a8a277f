//go:build unit

package service

import (
	"context"
	"database/sql"
	"testing"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/data"
)

// mockTodoRepository is a mock implementation of the TodoRepository interface.
type mockTodoRepository struct {
	todoToReturn  *data.Todo
	todosToReturn []data.Todo
	errToReturn   error

	createCalled bool
	updateCalled bool
	deleteCalled bool
	lastTodo     *data.Todo
}

var _ TodoRepository = (*mockTodoRepository)(nil)

func (m *mockTodoRepository) Create(ctx context.Context, todo *data.Todo) error {
	m.createCalled = true
	m.lastTodo = todo
	if m.errToReturn != nil {
		return m.errToReturn
	}
	todo.ID = 1
	return nil
}

func (m *mockTodoRepository) GetByID(ctx context.Context, id int64) (*data.Todo, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.todoToReturn, nil
}

func (m *mockTodoRepository) GetAll(ctx context.Context) ([]data.Todo, error) {
	return m.todosToReturn, m.errToReturn
}

func (m *mockTodoRepository) Update(ctx context.Context, todo *data.Todo) error {
	m.updateCalled = true
	m.lastTodo = todo
	return m.errToReturn
}

func (m *mockTodoRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled = true
	return m.errToReturn
}

func TestTodoService_Create(t *testing.T) {
	t.Run("empty title is rejected", func(t *testing.T) {
		repo := &mockTodoRepository{}
		svc := NewTodoService(repo, noopLogger{})

		_, err := svc.Create(context.Background(), "   ", "alice", 1)
		if apperr.KindOf(err) != apperr.Validation {
			t.Fatalf("expected Validation error, got %v", err)
		}
		if repo.createCalled {
			t.Error("expected no repository call for invalid input")
		}
	})

	t.Run("ownership is assigned to the actor", func(t *testing.T) {
		repo := &mockTodoRepository{}
		svc := NewTodoService(repo, noopLogger{})

		todo, err := svc.Create(context.Background(), "buy milk", "alice", 7)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if todo.UserID == nil || *todo.UserID != 7 {
			t.Errorf("expected todo owned by user 7, got %v", todo.UserID)
		}
	})
}

func TestTodoService_Toggle(t *testing.T) {
	owner := int64(1)

	t.Run("flips the done flag", func(t *testing.T) {
		repo := &mockTodoRepository{todoToReturn: &data.Todo{ID: 5, Title: "t", Done: false, UserID: &owner}}
		svc := NewTodoService(repo, noopLogger{})

		todo, err := svc.Toggle(context.Background(), 5, owner)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if !todo.Done {
			t.Error("expected done to become true")
		}
		if !repo.updateCalled {
			t.Error("expected Update to be called")
		}
	})

	t.Run("missing todo is not found", func(t *testing.T) {
		repo := &mockTodoRepository{}
		svc := NewTodoService(repo, noopLogger{})

		_, err := svc.Toggle(context.Background(), 99, owner)
		if apperr.KindOf(err) != apperr.NotFound {
			t.Fatalf("expected NotFound error, got %v", err)
		}
	})

	t.Run("other users cannot toggle", func(t *testing.T) {
		repo := &mockTodoRepository{todoToReturn: &data.Todo{ID: 5, UserID: &owner}}
		svc := NewTodoService(repo, noopLogger{})

		_, err := svc.Toggle(context.Background(), 5, 2)
		if apperr.KindOf(err) != apperr.Authorization {
			t.Fatalf("expected Authorization error, got %v", err)
		}
		if repo.updateCalled {
			t.Error("expected no Update call")
		}
	})

	t.Run("legacy rows without an owner are writable", func(t *testing.T) {
		repo := &mockTodoRepository{todoToReturn: &data.Todo{ID: 5, UserID: nil}}
		svc := NewTodoService(repo, noopLogger{})

		if _, err := svc.Toggle(context.Background(), 5, 2); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	})
}

func TestTodoService_Delete(t *testing.T) {
	owner := int64(1)

	t.Run("owner can delete", func(t *testing.T) {
		repo := &mockTodoRepository{todoToReturn: &data.Todo{ID: 5, UserID: &owner}}
		svc := NewTodoService(repo, noopLogger{})

		if err := svc.Delete(context.Background(), 5, owner); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if !repo.deleteCalled {
			t.Error("expected Delete to be called")
		}
	})

	t.Run("other users cannot delete", func(t *testing.T) {
		repo := &mockTodoRepository{todoToReturn: &data.Todo{ID: 5, UserID: &owner}}
		svc := NewTodoService(repo, noopLogger{})

		err := svc.Delete(context.Background(), 5, 2)
		if apperr.KindOf(err) != apperr.Authorization {
			t.Fatalf("expected Authorization error, got %v", err)
		}
	})

	t.Run("row vanishing mid-delete is not found", func(t *testing.T) {
		// GetByID succeeds, then Delete reports no rows.
		repo := &deleteNoRowsRepo{mockTodoRepository: &mockTodoRepository{
			todoToReturn: &data.Todo{ID: 5, UserID: &owner},
		}}
		svc := NewTodoService(repo, noopLogger{})

		err := svc.Delete(context.Background(), 5, owner)
		if apperr.KindOf(err) != apperr.NotFound {
			t.Fatalf("expected NotFound error, got %v", err)
		}
	})
}

// deleteNoRowsRepo lets GetByID succeed while Delete reports sql.ErrNoRows.
type deleteNoRowsRepo struct {
	*mockTodoRepository
}

func (m *deleteNoRowsRepo) Delete(ctx context.Context, id int64) error {
	return sql.ErrNoRows
}
