package evidence

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/response"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/storage"
)

// Handler handles evidence HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates evidence handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload attaches an evidence file to a report
// POST /scams/{id}/evidence
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	// 32 MB in-memory cap for multipart parsing
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	e, err := h.service.Upload(r.Context(), reportID, header.Filename, file)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrReportClosed:
			response.Conflict(w, "Report no longer accepts evidence")
		case ErrTooManyFiles:
			response.BadRequest(w, "Evidence limit reached for this report")
		case storage.ErrFileTooLarge:
			response.BadRequest(w, "File exceeds maximum size")
		case storage.ErrInvalidMimeType:
			response.BadRequest(w, "File type not allowed")
		case storage.ErrEmptyFile:
			response.BadRequest(w, "File is empty")
		default:
			log.Error().Err(err).Str("report_id", reportID.String()).Msg("Evidence upload failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, e)
}

// List returns evidence attached to a report
// GET /scams/{id}/evidence
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	items, err := h.service.ListByReport(r.Context(), reportID)
	if err != nil {
		if err == ErrReportNotFound {
			response.NotFound(w, "Report not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, items)
}

// Delete removes an evidence file
// DELETE /evidence/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid evidence ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if err == ErrEvidenceNotFound {
			response.NotFound(w, "Evidence not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
