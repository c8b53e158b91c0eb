package evidence

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers standalone evidence routes (moderator surface).
// Upload and List are registered by the caller under the report path.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, moderatorOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(moderatorOnly)
		r.Delete("/{id}", h.Delete)
	})
	return r
}
