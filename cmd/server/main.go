package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-coach-app/internal/cache"
	"go-coach-app/internal/chat"
	"go-coach-app/internal/config"
	"go-coach-app/internal/data"
	"go-coach-app/internal/feeds"
	"go-coach-app/internal/handler"
	"go-coach-app/internal/logger"
	"go-coach-app/internal/middleware"
	"go-coach-app/internal/service"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	if cfg.DB.Driver == "mysql" {
		sessionManager.Store = mysqlstore.New(db.DB)
	} else {
		sessionManager.Store = sqlite3store.New(db.DB)
	}
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	feedCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer feedCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
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
	chatService := service.NewChatService(chatRepository, chat.NewClient(cfg.Chat), log)
	feedService := service.NewFeedService(feeds.NewRedditSources(cfg.Feeds), feedCache, cfg.Feeds, log)

	authHandler := handler.NewAuthHandler(userService, sessionManager)
	todoHandler := handler.NewTodoHandler(todoService)
	articleHandler := handler.NewArticleHandler(articleService)
	commentHandler := handler.NewCommentHandler(commentService)
	categoryHandler := handler.NewCategoryHandler(articleService)
	chatHandler := handler.NewChatHandler(chatService)
	feedHandler := handler.NewFeedHandler(feedService)

	authnMiddleware := middleware.Authenticator(sessionManager, userRepository, log)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(
		authHandler, todoHandler, articleHandler, commentHandler,
		categoryHandler, chatHandler, feedHandler,
		authnMiddleware, errorMiddleware, sessionManager,
	)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
