package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Service handles report business logic
type Service struct {
	repo Repository
}

// NewService creates report service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new report in pending state. Screening runs separately;
// a report is never publicly visible before it has had a chance to run.
func (s *Service) Create(ctx context.Context, req *CreateReportRequest) (*Report, error) {
	now := time.Now()
	rep := &Report{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		ScamType:    ScamType(req.ScamType),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if !ValidScamType(rep.ScamType) {
		return nil, ErrInvalidScamType
	}

	if req.ScammerInfo != nil {
		rep.ScammerName = nullString(req.ScammerInfo.Name)
		rep.ScammerEmail = nullString(req.ScammerInfo.Email)
		rep.ScammerPhone = nullString(req.ScammerInfo.Phone)
		if req.ScammerInfo.Phone != "" {
			rep.ScammerPhoneNormalized = nullString(NormalizePhone(req.ScammerInfo.Phone))
		}
		rep.ScammerWebsite = nullString(req.ScammerInfo.Website)
		rep.ScammerBusiness = nullString(req.ScammerInfo.BusinessName)
	}

	if req.FinancialLoss != nil {
		rep.LossAmount = sql.NullFloat64{Float64: req.FinancialLoss.Amount, Valid: true}
		rep.LossCurrency = nullString(req.FinancialLoss.Currency)
		rep.PaymentMethod = nullString(req.FinancialLoss.PaymentMethod)
	}

	if req.DateOccurred != nil {
		rep.DateOccurred = sql.NullTime{Time: *req.DateOccurred, Valid: true}
	}
	if len(req.Tags) > 0 {
		rep.Tags = req.Tags
	}
	rep.ReporterContact = nullString(req.ReporterContact)

	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// GetByID returns a report by id
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	return rep, nil
}

// List returns approved reports for public consumption
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	if filter.Status == "" {
		filter.Status = StatusApproved
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

// Moderate applies a moderator decision to a report. This is the only way a
// report flagged under_review by screening can leave that state.
func (s *Service) Moderate(ctx context.Context, id uuid.UUID, req *ModerateRequest) (*Report, error) {
	status := Status(req.Status)
	if !ValidStatus(status) || status == StatusPending {
		return nil, ErrInvalidStatus
	}

	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}

	comments := req.Notes
	if comments == "" {
		comments = "Moderator decision: " + string(status)
	}

	if err := s.repo.SetStatus(ctx, id, status, comments); err != nil {
		return nil, err
	}

	rep.Status = status
	rep.ValidationComments = nullString(comments)
	return rep, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
