package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/sessions"
)

// RouterDeps carries everything the HTTP layer needs; nil optional fields are skipped
type RouterDeps struct {
	PostService    posts.Service
	SessionStore   sessions.Store
	RateLimiter    *middleware.RateLimiter
	Metrics        *middleware.Metrics
	AllowedOrigins []string
}

// NewRouter builds the application router with global middleware and all routes
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	if len(deps.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(deps.AllowedOrigins))
	}

	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	RegisterPostRoutes(r, deps.PostService, middleware.NewSessionAuthMiddleware(deps.SessionStore))

	return r
}

// corsMiddleware allows the browser UI origins to call the API with the Authorization header
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
}
