package auth

import "github.com/go-chi/chi/v5"

// Routes registers auth routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	return r
}
