package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/v1/auth/login", h.login)
		r.Post("/api/v1/users", h.createUser)
	})

	// routes protected by JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/v1/users", h.getAllUsers)
		r.Get("/api/v1/users/{userID}", h.getUser)
		r.Put("/api/v1/users/{userID}", h.updateUser)
		r.Delete("/api/v1/users/{userID}", h.deleteUser)
	})

	return router
}
