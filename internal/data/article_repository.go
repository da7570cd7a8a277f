package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ArticleRepository handles database operations for articles and their tags.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a new article together with its tag links. Tag names that do
// not exist yet are created inside the same transaction, so a failed article
// write never leaves a half-created tag set behind.
func (r *ArticleRepository) Create(ctx context.Context, article *Article, tagNames []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO articles (title, description, author, user_id, category_id)
	          VALUES (:title, :description, :author, :user_id, :category_id)`
	res, err := tx.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get article id: %w", err)
	}
	article.ID = id

	if err := r.linkTags(ctx, tx, id, tagNames); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit article create: %w", err)
	}
	article.Tags = tagNames
	return nil
}

// Update persists changes to an existing article and replaces its tag links
// in the same transaction.
func (r *ArticleRepository) Update(ctx context.Context, article *Article, tagNames []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE articles SET title = :title, description = :description, author = :author,
	          category_id = :category_id WHERE id = :id`
	result, err := tx.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, article.ID); err != nil {
		return fmt.Errorf("failed to clear article tags: %w", err)
	}
	if err := r.linkTags(ctx, tx, article.ID, tagNames); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit article update: %w", err)
	}
	article.Tags = tagNames
	return nil
}

// linkTags resolves tag names to rows, creating missing ones, and links them
// to the article. Runs on the caller's transaction.
func (r *ArticleRepository) linkTags(ctx context.Context, tx *sqlx.Tx, articleID int64, tagNames []string) error {
	for _, name := range tagNames {
		// Insert-then-fetch instead of fetch-then-insert, so that concurrent
		// requests racing on the same new tag both land on the unique row.
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("failed to create tag %q: %w", name, err)
		}
		var tagID int64
		if err := tx.GetContext(ctx, &tagID, `SELECT id FROM tags WHERE name = ?`, name); err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`, articleID, tagID); err != nil {
			return fmt.Errorf("failed to link tag %q: %w", name, err)
		}
	}
	return nil
}

// GetByID retrieves an article with its tags. A miss returns (nil, nil).
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*Article, error) {
	var article Article
	query := `SELECT id, title, description, author, user_id, category_id FROM articles WHERE id = ?`
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}
	tags, err := r.tagsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Tags = tags
	return &article, nil
}

// GetAll retrieves all articles in id order, with tags populated.
func (r *ArticleRepository) GetAll(ctx context.Context) ([]Article, error) {
	articles := []Article{}
	query := `SELECT id, title, description, author, user_id, category_id FROM articles ORDER BY id`
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to get all articles: %w", err)
	}

	type tagRow struct {
		ArticleID int64  `db:"article_id"`
		Name      string `db:"name"`
	}
	rows := []tagRow{}
	tagQuery := `SELECT at.article_id AS article_id, t.name AS name
	             FROM article_tags at JOIN tags t ON t.id = at.tag_id
	             ORDER BY at.article_id, t.id`
	if err := r.db.SelectContext(ctx, &rows, tagQuery); err != nil {
		return nil, fmt.Errorf("failed to get article tags: %w", err)
	}
	byArticle := make(map[int64][]string, len(articles))
	for _, row := range rows {
		byArticle[row.ArticleID] = append(byArticle[row.ArticleID], row.Name)
	}
	for i := range articles {
		tags := byArticle[articles[i].ID]
		if tags == nil {
			tags = []string{}
		}
		articles[i].Tags = tags
	}
	return articles, nil
}

// tagsFor returns the tag names linked to one article, in tag id order.
func (r *ArticleRepository) tagsFor(ctx context.Context, articleID int64) ([]string, error) {
	tags := []string{}
	query := `SELECT t.name FROM article_tags at JOIN tags t ON t.id = at.tag_id
	          WHERE at.article_id = ? ORDER BY t.id`
	if err := r.db.SelectContext(ctx, &tags, query, articleID); err != nil {
		return nil, fmt.Errorf("failed to get tags for article %d: %w", articleID, err)
	}
	return tags, nil
}

// Delete removes an article, its tag links, and all of its comments in a
// single transaction.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete article comments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete article tag links: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit article delete: %w", err)
	}
	return nil
}
