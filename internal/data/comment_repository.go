package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CommentRepository handles database operations for threaded comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment and sets its generated ID.
func (r *CommentRepository) Create(ctx context.Context, comment *Comment) error {
	query := `INSERT INTO comments (author, description, article_id, user_id, parent_id)
	          VALUES (:author, :description, :article_id, :user_id, :parent_id)`
	res, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// GetByID retrieves a comment by ID. A miss returns (nil, nil).
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	query := `SELECT id, author, description, article_id, user_id, parent_id FROM comments WHERE id = ?`
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return &comment, nil
}

// ListByArticle retrieves the flat comment list for an article in id order.
// Parent pointers in the rows are the ground truth for tree reconstruction.
func (r *CommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]Comment, error) {
	comments := []Comment{}
	query := `SELECT id, author, description, article_id, user_id, parent_id
	          FROM comments WHERE article_id = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &comments, query, articleID); err != nil {
		return nil, fmt.Errorf("failed to list comments for article %d: %w", articleID, err)
	}
	return comments, nil
}

// DeleteSubtree removes a comment and every comment whose parent chain passes
// through it. The subtree is computed from the article's flat parent-pointer
// list before anything is deleted, and the delete runs in one transaction.
// Returns the number of comments removed.
func (r *CommentRepository) DeleteSubtree(ctx context.Context, articleID, commentID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	type node struct {
		ID       int64  `db:"id"`
		ParentID *int64 `db:"parent_id"`
	}
	nodes := []node{}
	query := `SELECT id, parent_id FROM comments WHERE article_id = ? ORDER BY id`
	if err := tx.SelectContext(ctx, &nodes, query, articleID); err != nil {
		return 0, fmt.Errorf("failed to load comment forest: %w", err)
	}

	// One indexed pass over the flat list instead of recursive queries.
	children := make(map[int64][]int64, len(nodes))
	found := false
	for _, n := range nodes {
		if n.ID == commentID {
			found = true
		}
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n.ID)
		}
	}
	if !found {
		return 0, sql.ErrNoRows
	}

	doomed := []int64{commentID}
	for i := 0; i < len(doomed); i++ {
		doomed = append(doomed, children[doomed[i]]...)
	}

	delQuery, args, err := sqlx.In(`DELETE FROM comments WHERE id IN (?)`, doomed)
	if err != nil {
		return 0, fmt.Errorf("failed to build subtree delete query: %w", err)
	}
	result, err := tx.ExecContext(ctx, tx.Rebind(delQuery), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment subtree: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit subtree delete: %w", err)
	}
	return deleted, nil
}
