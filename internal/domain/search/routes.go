package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns search routes; recent activity is moderator-only
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, moderatorOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Search)
	r.Get("/stats", h.Stats)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(moderatorOnly)

		r.Get("/recent", h.Recent)
	})

	return r
}
