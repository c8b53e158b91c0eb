package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers report routes. Moderation routes go behind the
// provided auth middleware plus a moderator role check.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, moderatorOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	// Moderator
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(moderatorOnly)

		r.Put("/{id}/moderate", h.Moderate)
		r.Post("/{id}/screen", h.Screen)
		r.Post("/{id}/partner-check", h.PartnerCheck)
	})

	return r
}
