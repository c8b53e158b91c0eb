package search

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/response"
)

// Handler handles search HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates search handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Search runs a ranked search with a blacklist advisory
// GET /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))
	limit, _ := strconv.Atoi(params.Get("limit"))

	q := &Query{
		Text:     params.Get("q"),
		Email:    params.Get("email"),
		Phone:    params.Get("phone"),
		Website:  params.Get("website"),
		Business: params.Get("businessName"),
		ScamType: params.Get("scamType"),
		Page:     page,
		Limit:    limit,
	}

	out, err := h.service.Search(r.Context(), q)
	if err != nil {
		if err == ErrNoCriteria {
			response.BadRequest(w, "At least one search criterion is required")
			return
		}
		log.Error().Err(err).Msg("Search failed")
		response.InternalError(w)
		return
	}

	response.WithMeta(w, out, response.NewMeta(out.Total, out.Page, out.Limit))
}

// Stats returns corpus-wide aggregates
// GET /search/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Stats aggregation failed")
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}

// Recent returns the latest search activity for moderators
// GET /search/recent
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	events, err := h.service.Recent(r.Context(), n)
	if err != nil {
		log.Error().Err(err).Msg("Recent search lookup failed")
		response.InternalError(w)
		return
	}

	response.OK(w, events)
}
