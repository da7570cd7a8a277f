package handler

import (
	"net/http"

	appmw "go-coach-app/internal/middleware"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new chi router for the JSON API.
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	articleHandler *ArticleHandler,
	commentHandler *CommentHandler,
	categoryHandler *CategoryHandler,
	chatHandler *ChatHandler,
	feedHandler *FeedHandler,
	authnMiddleware func(http.Handler) http.Handler,
	errorMiddleware func(appmw.AppHandler) http.Handler,
	sessionManager *scs.SessionManager,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(sessionManager.LoadAndSave)
	r.Use(authnMiddleware)

	wrap := errorMiddleware
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/signup", wrap(authHandler.signup))
		r.Method(http.MethodPost, "/login", wrap(authHandler.login))
		r.Method(http.MethodPost, "/logout", wrap(authHandler.logout))
		r.Method(http.MethodGet, "/me", wrap(authHandler.me))
		r.Method(http.MethodGet, "/profile", wrap(authHandler.getProfile))
		r.Method(http.MethodPut, "/profile", wrap(authHandler.updateProfile))

		r.Method(http.MethodGet, "/todos", wrap(todoHandler.list))
		r.Method(http.MethodPost, "/todos", wrap(todoHandler.create))
		r.Method(http.MethodPatch, "/todos/{todoID}/toggle", wrap(todoHandler.toggle))
		r.Method(http.MethodDelete, "/todos/{todoID}", wrap(todoHandler.delete))

		r.Method(http.MethodGet, "/articles", wrap(articleHandler.list))
		r.Method(http.MethodPost, "/articles", wrap(articleHandler.create))
		r.Method(http.MethodGet, "/articles/{articleID}", wrap(articleHandler.get))
		r.Method(http.MethodPut, "/articles/{articleID}", wrap(articleHandler.update))
		r.Method(http.MethodDelete, "/articles/{articleID}", wrap(articleHandler.delete))

		r.Method(http.MethodPost, "/articles/{articleID}/comments", wrap(commentHandler.create))
		r.Method(http.MethodDelete, "/articles/{articleID}/comments/{commentID}", wrap(commentHandler.delete))

		r.Method(http.MethodGet, "/categories", wrap(categoryHandler.list))

		r.Method(http.MethodGet, "/chat/messages", wrap(chatHandler.list))
		r.Method(http.MethodPost, "/chat/messages", wrap(chatHandler.send))
		r.Method(http.MethodDelete, "/chat/messages", wrap(chatHandler.clear))

		r.Method(http.MethodGet, "/feeds", wrap(feedHandler.list))
	})

	return r
}
