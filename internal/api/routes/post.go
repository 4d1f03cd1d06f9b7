package routes

import (
	"Inkwell/internal/api/handlers/post"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the /posts REST endpoints on the router
// Every post endpoint requires a valid session token
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.SessionAuthMiddleware) {
	// Initialize handlers
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Route("/posts", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", listHandler.HandleList)
		r.Post("/", createHandler.HandleCreate)
		r.Get("/{id}", getHandler.HandleGet)
		r.Put("/{id}", updateHandler.HandleUpdate)
		r.Delete("/{id}", deleteHandler.HandleDelete)
	})
}
