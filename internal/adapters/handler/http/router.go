package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquaguard/api/internal/core/ports"
)

// NewHandler wires the API routes. Reads on water sources and alerts are
// public; mutations require a valid access token.
func NewHandler(
	authHandler *AuthHandler,
	waterSourceHandler *WaterSourceHandler,
	alertHandler *AlertHandler,
	issuer ports.AccessTokenIssuer,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(CORS(allowedOrigins))

	requireAuth := RequireAuth(issuer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		r.Route("/watersources", func(r chi.Router) {
			r.Get("/", waterSourceHandler.List)
			r.Get("/{id}", waterSourceHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", waterSourceHandler.Create)
				r.Put("/{id}", waterSourceHandler.Update)
				r.Delete("/{id}", waterSourceHandler.Delete)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", alertHandler.List)
			r.Get("/{id}", alertHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", alertHandler.Create)
				r.Put("/{id}", alertHandler.Update)
				r.Delete("/{id}", alertHandler.Delete)
			})
		})
	})

	return r
}
