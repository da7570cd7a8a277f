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

// CommentRepository defines the interface for database operations on comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *data.Comment) error
	GetByID(ctx context.Context, id int64) (*data.Comment, error)
	ListByArticle(ctx context.Context, articleID int64) ([]data.Comment, error)
	DeleteSubtree(ctx context.Context, articleID, commentID int64) (int64, error)
}

// ArticleGetter looks up the article a comment operation targets.
type ArticleGetter interface {
	GetByID(ctx context.Context, id int64) (*data.Article, error)
}

// CommentService provides business logic for threaded comments.
type CommentService struct {
	repo     CommentRepository
	articles ArticleGetter
	log      logger.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo CommentRepository, articles ArticleGetter, log logger.Logger) *CommentService {
	return &CommentService{repo: repo, articles: articles, log: log}
}

// Add posts a comment on an article, optionally as a reply. A missing
// article, a missing parent, or a parent belonging to a different article
// all surface as not-found.
func (s *CommentService) Add(ctx context.Context, articleID int64, description string, parentID *int64, actor *data.User) (*data.Comment, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.New(apperr.NotFound, "Article not found.")
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperr.New(apperr.Validation, "Description is required.")
	}

	if parentID != nil {
		parent, err := s.repo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ArticleID != articleID {
			return nil, apperr.New(apperr.NotFound, "Parent comment not found.")
		}
	}

	comment := &data.Comment{
		Author:      actor.Username,
		Description: description,
		ArticleID:   articleID,
		UserID:      &actor.ID,
		ParentID:    parentID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("added comment %d to article %d", comment.ID, articleID))
	return comment, nil
}

// Delete removes a comment the actor may modify, together with its whole
// reply subtree, atomically.
func (s *CommentService) Delete(ctx context.Context, articleID, commentID, actorID int64) error {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return apperr.New(apperr.NotFound, "Article not found.")
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.ArticleID != articleID {
		return apperr.New(apperr.NotFound, "Comment not found.")
	}
	if !auth.CanModify(comment.UserID, actorID) {
		return apperr.New(apperr.Authorization, "Not authorized.")
	}

	deleted, err := s.repo.DeleteSubtree(ctx, articleID, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Comment not found.")
		}
		return err
	}
	s.log.Info(fmt.Sprintf("deleted comment %d from article %d (%d removed)", commentID, articleID, deleted))
	return nil
}
