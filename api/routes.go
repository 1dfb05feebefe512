package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.getHealth())

	r.Route("/api", func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware(log.Logger))

		// Post Handler endpoints
		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Post("/posts", handlers.postHandler.createPost())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Patch("/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

		// Comment Handler endpoints
		r.Get("/posts/{postID}/comments", handlers.commentHandler.getCommentsByPost())
		r.Post("/posts/{postID}/comments", handlers.commentHandler.createComment())

		r.Post("/upload", handlers.uploadHandler.uploadImage())

		// User Handler endpoints
		r.Post("/users", handlers.userHandler.createUser())
		r.Get("/users/by-username/{username}", handlers.userHandler.getUserByUsername())
		r.Get("/users/{userID}", handlers.userHandler.getUser())
	})
}
