package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TodoRepository handles database operations for todos.
type TodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts a new todo and sets its generated ID.
func (r *TodoRepository) Create(ctx context.Context, todo *Todo) error {
	query := `INSERT INTO todos (title, author, done, user_id) VALUES (:title, :author, :done, :user_id)`
	res, err := r.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get todo id: %w", err)
	}
	todo.ID = id
	return nil
}

// GetByID retrieves a todo by ID. A miss returns (nil, nil).
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*Todo, error) {
	var todo Todo
	query := `SELECT id, title, author, done, user_id FROM todos WHERE id = ?`
	if err := r.db.GetContext(ctx, &todo, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo by id: %w", err)
	}
	return &todo, nil
}

// GetAll retrieves all todos in id order.
func (r *TodoRepository) GetAll(ctx context.Context) ([]Todo, error) {
	todos := []Todo{}
	query := `SELECT id, title, author, done, user_id FROM todos ORDER BY id`
	if err := r.db.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("failed to get all todos: %w", err)
	}
	return todos, nil
}

// Update persists changes to an existing todo.
func (r *TodoRepository) Update(ctx context.Context, todo *Todo) error {
	query := `UPDATE todos SET title = :title, author = :author, done = :done WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a todo by ID.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
