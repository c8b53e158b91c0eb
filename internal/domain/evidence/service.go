package evidence

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/storage"
)

// Maximum evidence files per report
const maxFilesPerReport = 10

// ReportGetter looks up the report an upload attaches to
type ReportGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*report.Report, error)
}

// Service handles evidence business logic
type Service struct {
	repo     Repository
	reports  ReportGetter
	store    storage.Storage
	maxBytes int64
}

// NewService creates evidence service
func NewService(repo Repository, reports ReportGetter, store storage.Storage, maxBytes int64) *Service {
	return &Service{repo: repo, reports: reports, store: store, maxBytes: maxBytes}
}

// Upload validates and stores an evidence file for a report
func (s *Service) Upload(ctx context.Context, reportID uuid.UUID, fileName string, file io.Reader) (*Evidence, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	// Only reports still in the moderation funnel accept new evidence
	if rep.Status != report.StatusPending && rep.Status != report.StatusUnderReview {
		return nil, ErrReportClosed
	}

	count, err := s.repo.CountByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if count >= maxFilesPerReport {
		return nil, ErrTooManyFiles
	}

	data, contentType, err := storage.ValidateEvidence(file, s.maxBytes)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	key := fmt.Sprintf("evidence/%s/%s%s", reportID, id, filepath.Ext(fileName))

	if err := s.store.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("failed to store evidence: %w", err)
	}

	e := &Evidence{
		ID:          id,
		ReportID:    reportID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		StorageKey:  key,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		// Orphaned object cleanup, failure is non-fatal
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to delete orphaned evidence file")
		}
		return nil, err
	}

	e.URL = s.store.GetURL(key)
	return e, nil
}

// ListByReport returns evidence attached to a report
func (s *Service) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*Evidence, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}

	items, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	for _, e := range items {
		e.URL = s.store.GetURL(e.StorageKey)
	}
	return items, nil
}

// Delete removes an evidence file and its record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, e.StorageKey); err != nil {
		log.Warn().Err(err).Str("key", e.StorageKey).Msg("Failed to delete evidence file from storage")
	}
	return nil
}
