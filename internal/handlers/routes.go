package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vaughan-dsouza/userapi/internal/config"
	"github.com/vaughan-dsouza/userapi/internal/middleware"
	"github.com/vaughan-dsouza/userapi/internal/utils"
)

// NewRouter builds the routing table.
func NewRouter(h *Handler, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	// Public
	r.Get("/hello", h.Hello)
	r.Get("/healthz", h.Health)
	r.Post("/register", utils.Handle(h.Users.Register))
	r.Get("/users", utils.Handle(h.Users.List))
	r.Delete("/users/{id}", utils.Handle(h.Users.Delete))
	r.Post("/login", utils.Handle(h.Auth.Login))

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTSecret))

		r.Get("/private", utils.Handle(h.Auth.Private))
	})

	// Static bundle
	r.Get("/", h.Static.Root)
	r.Get("/*", h.Static.ServeFile)

	return r
}
