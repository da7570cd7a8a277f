package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go-coach-app/internal/apperr"
	"go-coach-app/internal/auth"
	"go-coach-app/internal/data"
	"go-coach-app/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// ArticleRepository defines the interface for database operations on articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *data.Article, tagNames []string) error
	Update(ctx context.Context, article *data.Article, tagNames []string) error
	GetByID(ctx context.Context, id int64) (*data.Article, error)
	GetAll(ctx context.Context) ([]data.Article, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the interface for the category lookup table.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
}

// CommentLister loads the flat comment list for an article detail view.
type CommentLister interface {
	ListByArticle(ctx context.Context, articleID int64) ([]data.Comment, error)
}

// ArticleInput carries the writable article fields. Tags is the raw
// comma-separated string as submitted.
type ArticleInput struct {
	Title       string
	Description string
	Author      string
	Tags        string
	CategoryID  *int64
}

// ArticleService provides business logic for articles.
type ArticleService struct {
	repo       ArticleRepository
	categories CategoryRepository
	comments   CommentLister
	markdown   goldmark.Markdown
	sanitizer  *bluemonday.Policy
	log        logger.Logger
}

// NewArticleService creates a new ArticleService.
func NewArticleService(repo ArticleRepository, categories CategoryRepository, comments CommentLister, log logger.Logger) *ArticleService {
	// UGCPolicy allows basic formatting like links, lists and bold while
	// stripping out dangerous HTML from the rendered markdown.
	return &ArticleService{
		repo:       repo,
		categories: categories,
		comments:   comments,
		markdown:   goldmark.New(),
		sanitizer:  bluemonday.UGCPolicy(),
		log:        log,
	}
}

// ParseTags splits a comma-separated tag string into trimmed, de-duplicated
// names, discarding empty entries.
func ParseTags(raw string) []string {
	names := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// List returns all articles in id order with tags populated.
func (s *ArticleService) List(ctx context.Context) ([]data.Article, error) {
	return s.repo.GetAll(ctx)
}

// Get returns one article with its tags, rendered description, and the flat
// comment list (parent pointers intact, id order).
func (s *ArticleService) Get(ctx context.Context, id int64) (*data.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.New(apperr.NotFound, "Article not found.")
	}
	comments, err := s.comments.ListByArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Comments = comments
	article.DescriptionHTML = s.renderDescription(article.Description)
	return article, nil
}

// Create adds an article owned by the acting user, resolving tags inside the
// article transaction.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput, actorID int64) (*data.Article, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	article := &data.Article{
		Title:       in.Title,
		Description: in.Description,
		Author:      in.Author,
		UserID:      &actorID,
		CategoryID:  in.CategoryID,
	}
	if err := s.repo.Create(ctx, article, ParseTags(in.Tags)); err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("added article %d", article.ID))
	return article, nil
}

// Update applies changes to an article the actor may modify.
func (s *ArticleService) Update(ctx context.Context, id int64, in ArticleInput, actorID int64) (*data.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.New(apperr.NotFound, "Article not found.")
	}
	if !auth.CanModify(article.UserID, actorID) {
		return nil, apperr.New(apperr.Authorization, "Not authorized.")
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	article.Title = in.Title
	article.Description = in.Description
	article.Author = in.Author
	article.CategoryID = in.CategoryID
	if err := s.repo.Update(ctx, article, ParseTags(in.Tags)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Article not found.")
		}
		return nil, err
	}
	s.log.Info(fmt.Sprintf("updated article %d", id))
	return article, nil
}

// Delete removes an article the actor may modify, cascading all comments.
func (s *ArticleService) Delete(ctx context.Context, id, actorID int64) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return apperr.New(apperr.NotFound, "Article not found.")
	}
	if !auth.CanModify(article.UserID, actorID) {
		return apperr.New(apperr.Authorization, "Not authorized.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Article not found.")
		}
		return err
	}
	s.log.Info(fmt.Sprintf("deleted article %d", id))
	return nil
}

// Categories returns the seeded category list in name order.
func (s *ArticleService) Categories(ctx context.Context) ([]data.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *ArticleService) validate(ctx context.Context, in *ArticleInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Author = strings.TrimSpace(in.Author)
	if in.Title == "" || in.Author == "" {
		return apperr.New(apperr.Validation, "Title and author are required.")
	}
	if in.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperr.New(apperr.Validation, "Unknown category.")
		}
	}
	return nil
}

// renderDescription converts the stored markdown to sanitized HTML for the
// detail view. The raw markdown stays the source of truth for editing.
func (s *ArticleService) renderDescription(description string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(description), &buf); err != nil {
		s.log.Error(err, "failed to render article description")
		return ""
	}
	return string(s.sanitizer.SanitizeBytes(buf.Bytes()))
}
