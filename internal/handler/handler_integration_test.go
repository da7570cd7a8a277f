//go:build integration

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-coach-app/internal/cache"
	"go-coach-app/internal/config"
	"go-coach-app/internal/data"
	"go-coach-app/internal/feeds"
	"go-coach-app/internal/logger"
	"go-coach-app/internal/middleware"
	"go-coach-app/internal/service"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// stubCompleter keeps chat tests off the network.
type stubCompleter struct{}

func (stubCompleter) Complete(ctx context.Context, history []data.ChatMessage) (string, error) {
	return "Start with a story.", nil
}

// stubSource feeds the aggregator without the network.
type stubSource struct{}

func (stubSource) Name() string { return "stub" }

func (stubSource) Fetch(ctx context.Context, sort string) ([]feeds.Post, error) {
	return []feeds.Post{{Title: "post", Subreddit: "stub", Score: 1}}, nil
}

// setupIntegrationTest initializes the full application stack against an
// in-memory database and returns a test server with a cookie-aware client.
func setupIntegrationTest(t *testing.T) (*httptest.Server, *http.Client, func()) {
	t.Helper()

	db, err := data.NewDB(config.DBConfig{Driver: "sqlite3", DSN: "file:memory?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	for _, name := range []string{
		"000001_initial_schema.up.sql",
		"000002_create_sessions_table.up.sql",
		"000003_rename_body_to_description.up.sql",
		"000004_add_categories.up.sql",
	} {
		schema, err := os.ReadFile("../../migrations/" + name)
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", name, err)
		}
		db.MustExec(string(schema))
	}

	log := logger.New(config.LogConfig{Level: "error", Format: "console"}, os.Stderr)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = 3 * time.Minute

	feedCache, err := cache.New(config.CacheConfig{FilePath: "file::memory:"})
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	userRepository := data.NewUserRepository(db)
	todoRepository := data.NewTodoRepository(db)
	articleRepository := data.NewArticleRepository(db)
	commentRepository := data.NewCommentRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	chatRepository := data.NewChatMessageRepository(db)

	userService := service.NewUserService(userRepository, log)
	todoService := service.NewTodoService(todoRepository, log)
	articleService := service.NewArticleService(articleRepository, categoryRepository, commentRepository, log)
	commentService := service.NewCommentService(commentRepository, articleRepository, log)
	chatService := service.NewChatService(chatRepository, stubCompleter{}, log)
	feedService := service.NewFeedService([]feeds.Source{stubSource{}}, feedCache, config.FeedsConfig{CacheTTL: 300}, log)

	router := NewRouter(
		NewAuthHandler(userService, sessionManager),
		NewTodoHandler(todoService),
		NewArticleHandler(articleService),
		NewCommentHandler(commentService),
		NewCategoryHandler(articleService),
		NewChatHandler(chatService),
		NewFeedHandler(feedService),
		middleware.Authenticator(sessionManager, userRepository, log),
		middleware.Error(log),
		sessionManager,
	)

	server := httptest.NewServer(router)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	teardown := func() {
		server.Close()
		feedCache.Close()
		db.Close()
	}
	return server, client, teardown
}

// doJSON sends a JSON request and decodes the JSON response into out (if not nil).
func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHandlers_Integration(t *testing.T) {
	server, client, teardown := setupIntegrationTest(t)
	defer teardown()
	url := func(path string) string { return server.URL + "/api" + path }

	t.Run("signup and session lifecycle", func(t *testing.T) {
		var signupResp struct {
			User struct {
				ID       int64  `json:"id"`
				Username string `json:"username"`
			} `json:"user"`
		}
		status := doJSON(t, client, http.MethodPost, url("/signup"),
			map[string]string{"username": "alice", "password": "s3cret"}, &signupResp)
		if status != http.StatusCreated {
			t.Fatalf("want status %d; got %d", http.StatusCreated, status)
		}
		if signupResp.User.Username != "alice" {
			t.Errorf("unexpected signed-up user: %+v", signupResp.User)
		}

		// Signup logs the account in.
		var meResp struct {
			User *struct {
				Username string `json:"username"`
			} `json:"user"`
		}
		status = doJSON(t, client, http.MethodGet, url("/me"), nil, &meResp)
		if status != http.StatusOK || meResp.User == nil || meResp.User.Username != "alice" {
			t.Fatalf("expected an authenticated session, got status %d, user %+v", status, meResp.User)
		}
	})

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		status := doJSON(t, client, http.MethodPost, url("/signup"),
			map[string]string{"username": "alice", "password": "other"}, nil)
		if status != http.StatusConflict {
			t.Errorf("want status %d; got %d", http.StatusConflict, status)
		}
	})

	t.Run("todo lifecycle", func(t *testing.T) {
		var createResp struct {
			Todo data.Todo `json:"todo"`
		}
		status := doJSON(t, client, http.MethodPost, url("/todos"),
			map[string]string{"title": "rehearse", "author": "alice"}, &createResp)
		if status != http.StatusCreated {
			t.Fatalf("want status %d; got %d", http.StatusCreated, status)
		}

		var toggleResp struct {
			Todo data.Todo `json:"todo"`
		}
		togglePath := fmt.Sprintf("/todos/%d/toggle", createResp.Todo.ID)
		status = doJSON(t, client, http.MethodPatch, url(togglePath), nil, &toggleResp)
		if status != http.StatusOK {
			t.Fatalf("want status %d; got %d", http.StatusOK, status)
		}
		if !toggleResp.Todo.Done {
			t.Error("expected toggled todo to be done")
		}

		deletePath := fmt.Sprintf("/todos/%d", createResp.Todo.ID)
		status = doJSON(t, client, http.MethodDelete, url(deletePath), nil, nil)
		if status != http.StatusOK {
			t.Fatalf("want status %d; got %d", http.StatusOK, status)
		}

		var listResp struct {
			Todos []data.Todo `json:"todos"`
		}
		status = doJSON(t, client, http.MethodGet, url("/todos"), nil, &listResp)
		if status != http.StatusOK || len(listResp.Todos) != 0 {
			t.Errorf("expected an empty todo list, got status %d, %v", status, listResp.Todos)
		}
	})

	t.Run("articles and threaded comments", func(t *testing.T) {
		var createResp struct {
			Article data.Article `json:"article"`
		}
		status := doJSON(t, client, http.MethodPost, url("/articles"),
			map[string]interface{}{
				"title":       "Openings",
				"description": "**Start strong.**",
				"author":      "alice",
				"tags":        "talks, openings",
			}, &createResp)
		if status != http.StatusCreated {
			t.Fatalf("want status %d; got %d", http.StatusCreated, status)
		}
		articleID := createResp.Article.ID

		var commentResp struct {
			Comment data.Comment `json:"comment"`
		}
		commentsPath := fmt.Sprintf("/articles/%d/comments", articleID)
		status = doJSON(t, client, http.MethodPost, url(commentsPath),
			map[string]interface{}{"description": "Great advice"}, &commentResp)
		if status != http.StatusCreated {
			t.Fatalf("want status %d; got %d", http.StatusCreated, status)
		}

		// A reply whose parent lives on another article is a 404.
		var otherResp struct {
			Article data.Article `json:"article"`
		}
		status = doJSON(t, client, http.MethodPost, url("/articles"),
			map[string]interface{}{"title": "Other", "author": "alice"}, &otherResp)
		if status != http.StatusCreated {
			t.Fatalf("want status %d; got %d", http.StatusCreated, status)
		}
		foreignPath := fmt.Sprintf("/articles/%d/comments", otherResp.Article.ID)
		status = doJSON(t, client, http.MethodPost, url(foreignPath),
			map[string]interface{}{"description": "reply", "parent_id": commentResp.Comment.ID}, nil)
		if status != http.StatusNotFound {
			t.Errorf("want status %d; got %d", http.StatusNotFound, status)
		}

		// The detail view renders markdown and includes the comment thread.
		var getResp struct {
			Article data.Article `json:"article"`
		}
		getPath := fmt.Sprintf("/articles/%d", articleID)
		status = doJSON(t, client, http.MethodGet, url(getPath), nil, &getResp)
		if status != http.StatusOK {
			t.Fatalf("want status %d; got %d", http.StatusOK, status)
		}
		if len(getResp.Article.Comments) != 1 {
			t.Errorf("expected 1 comment, got %d", len(getResp.Article.Comments))
		}
		if getResp.Article.DescriptionHTML == "" {
			t.Error("expected rendered description")
		}
	})

	t.Run("categories are seeded", func(t *testing.T) {
		var listResp struct {
			Categories []data.Category `json:"categories"`
		}
		status := doJSON(t, client, http.MethodGet, url("/categories"), nil, &listResp)
		if status != http.StatusOK {
			t.Fatalf("want status %d; got %d", http.StatusOK, status)
		}
		if len(listResp.Categories) != 10 {
			t.Errorf("expected 10 seeded categories, got %d", len(listResp.Categories))
		}
	})

	t.Run("chat round trip", func(t *testing.T) {
		var sendResp struct {
			Messages []data.ChatMessage `json:"messages"`
		}
		status := doJSON(t, client, http.MethodPost, url("/chat/messages"),
			map[string]string{"content": "How do I open a talk?"}, &sendResp)
		if status != http.StatusCreated {
			t.Fatalf("want status %d; got %d", http.StatusCreated, status)
		}
		if len(sendResp.Messages) != 2 || sendResp.Messages[1].Content != "Start with a story." {
			t.Errorf("unexpected exchange: %+v", sendResp.Messages)
		}

		status = doJSON(t, client, http.MethodDelete, url("/chat/messages"), nil, nil)
		if status != http.StatusOK {
			t.Fatalf("want status %d; got %d", http.StatusOK, status)
		}
		var listResp struct {
			Messages []data.ChatMessage `json:"messages"`
		}
		status = doJSON(t, client, http.MethodGet, url("/chat/messages"), nil, &listResp)
		if status != http.StatusOK || len(listResp.Messages) != 0 {
			t.Errorf("expected cleared history, got status %d, %v", status, listResp.Messages)
		}
	})

	t.Run("feeds endpoint", func(t *testing.T) {
		var feedResp struct {
			Posts []feeds.Post `json:"posts"`
		}
		status := doJSON(t, client, http.MethodGet, url("/feeds?sort=hot"), nil, &feedResp)
		if status != http.StatusOK {
			t.Fatalf("want status %d; got %d", http.StatusOK, status)
		}
		if len(feedResp.Posts) != 1 || feedResp.Posts[0].Title != "post" {
			t.Errorf("unexpected feed: %+v", feedResp.Posts)
		}
	})

	t.Run("anonymous writes are rejected", func(t *testing.T) {
		anonClient := &http.Client{}
		status := doJSON(t, anonClient, http.MethodPost, url("/todos"),
			map[string]string{"title": "nope"}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("want status %d; got %d", http.StatusUnauthorized, status)
		}
	})
}
