package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route behind the global middleware stack.
func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(CORS(corsOrigins))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/accounts", h.Register)
		r.Post("/login", h.Login)

		r.Get("/catalog/videos", h.ListVideos)
		r.Get("/catalog/schemes", h.ListSchemes)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireUser)
			r.Post("/chat/{persona}/turns", h.SendTurn)
			r.Delete("/chat", h.EndChat)
			r.Get("/chat/{persona}/history", h.History)
		})
	})

	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
