package report

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/response"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/validator"
)

// ScreenResult is the outcome of a screening run as exposed over HTTP
type ScreenResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Screener runs the automated checks on a stored report
type Screener interface {
	Run(ctx context.Context, reportID uuid.UUID) ScreenResult
	RunPartnerCheck(ctx context.Context, reportID uuid.UUID) ScreenResult
}

// Handler handles report HTTP requests
type Handler struct {
	service  *Service
	screener Screener
}

// NewHandler creates report handler
func NewHandler(service *Service, screener Screener) *Handler {
	return &Handler{service: service, screener: screener}
}

// Create accepts a public report submission and runs screening on it.
// The submitter only ever learns that the report was submitted; screening
// outcomes are moderator-visible only.
// POST /scams
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	rep, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if err == ErrInvalidScamType {
			response.BadRequest(w, "Invalid scam type")
			return
		}
		log.Error().Err(err).Msg("Failed to create report")
		response.InternalError(w)
		return
	}

	result := h.screener.Run(r.Context(), rep.ID)
	log.Info().
		Str("report_id", rep.ID.String()).
		Bool("screening_success", result.Success).
		Str("screening_message", result.Message).
		Msg("Report submitted")

	response.Created(w, map[string]interface{}{
		"id":      rep.ID,
		"status":  StatusPending,
		"message": "Report submitted successfully",
	})
}

// Get returns a single report
// GET /scams/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	rep, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrReportNotFound {
			response.NotFound(w, "Report not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, rep)
}

// List returns approved reports, paginated
// GET /scams
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := &ListFilter{
		ScamType: ScamType(r.URL.Query().Get("scamType")),
		Page:     page,
		Limit:    limit,
	}

	reports, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, reports, response.NewMeta(total, filter.Page, filter.Limit))
}

// Moderate applies a moderator decision
// PUT /scams/{id}/moderate
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ModerateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	rep, err := h.service.Moderate(r.Context(), id, &req)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrInvalidStatus:
			response.BadRequest(w, "Invalid status")
		default:
			log.Error().Err(err).Str("report_id", id.String()).Msg("Moderation failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewModerationView(rep))
}

// Screen re-runs the screening pipeline on a report
// POST /scams/{id}/screen
func (h *Handler) Screen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	result := h.screener.Run(r.Context(), id)
	response.OK(w, result)
}

// PartnerCheck runs the detached partner verification stage
// POST /scams/{id}/partner-check
func (h *Handler) PartnerCheck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	result := h.screener.RunPartnerCheck(r.Context(), id)
	response.OK(w, result)
}
