package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created *Report
	byID    *Report

	status      Status
	statusNotes string
}

func (f *fakeRepo) Create(ctx context.Context, r *Report) error {
	f.created = r
	f.byID = r
	return nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	if f.byID != nil && f.byID.ID == id {
		return f.byID, nil
	}
	return nil, nil
}
func (f *fakeRepo) List(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	return nil, 0, nil
}
func (f *fakeRepo) SetStatus(ctx context.Context, id uuid.UUID, status Status, comments string) error {
	f.status = status
	f.statusNotes = comments
	return nil
}
func (f *fakeRepo) SetValidationStep(ctx context.Context, id uuid.UUID, step string) error {
	return nil
}
func (f *fakeRepo) SetValidationComments(ctx context.Context, id uuid.UUID, comments string) error {
	return nil
}
func (f *fakeRepo) ExistsDuplicate(ctx context.Context, excludeID uuid.UUID, title, description string) (bool, error) {
	return false, nil
}
func (f *fakeRepo) CountScammerMatches(ctx context.Context, excludeID uuid.UUID, email, phone, name string) (int, error) {
	return 0, nil
}
func (f *fakeRepo) CountPhoneContains(ctx context.Context, normalized string) (int, error) {
	return 0, nil
}
func (f *fakeRepo) CountPhoneExact(ctx context.Context, phone string) (int, error)  { return 0, nil }
func (f *fakeRepo) CountEmailExact(ctx context.Context, email string) (int, error)  { return 0, nil }
func (f *fakeRepo) CountWebsiteContains(ctx context.Context, w string) (int, error) { return 0, nil }
func (f *fakeRepo) CountBusinessContains(ctx context.Context, b string) (int, error) {
	return 0, nil
}
func (f *fakeRepo) SearchCandidates(ctx context.Context, filter *SearchFilter) ([]*Report, int, error) {
	return nil, 0, nil
}
func (f *fakeRepo) Stats(ctx context.Context) (*Stats, error) { return &Stats{}, nil }

func createRequest() *CreateReportRequest {
	return &CreateReportRequest{
		Title:       "Fake rental listing in Almaty",
		Description: "Landlord demanded a deposit up front and vanished after payment.",
		ScamType:    string(ScamTypeRental),
		ScammerInfo: &ScammerInfoRequest{
			Name:  "John Doe",
			Email: "landlord@test.com",
			Phone: "+7 (777) 123-45-67",
		},
	}
}

func TestCreateStartsPending(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	rep, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Status != StatusPending {
		t.Fatalf("new report must start pending, got %q", rep.Status)
	}
	if repo.created == nil {
		t.Fatalf("report not persisted")
	}
}

func TestCreateNormalizesPhone(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	rep, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rep.ScammerPhoneNormalized.Valid || rep.ScammerPhoneNormalized.String != "77771234567" {
		t.Fatalf("normalized phone = %+v, want 77771234567", rep.ScammerPhoneNormalized)
	}
	if rep.ScammerPhone.String != "+7 (777) 123-45-67" {
		t.Fatalf("original phone must be preserved, got %q", rep.ScammerPhone.String)
	}
}

func TestCreateRejectsUnknownScamType(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	req := createRequest()
	req.ScamType = "pyramid"

	if _, err := svc.Create(context.Background(), req); err != ErrInvalidScamType {
		t.Fatalf("expected ErrInvalidScamType, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("invalid report must not be persisted")
	}
}

func TestCreateFinancialLoss(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	req := createRequest()
	req.FinancialLoss = &FinancialLossRequest{Amount: 1500, Currency: "USD", PaymentMethod: "wire"}
	occurred := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	req.DateOccurred = &occurred

	rep, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rep.LossAmount.Valid || rep.LossAmount.Float64 != 1500 {
		t.Fatalf("loss amount = %+v", rep.LossAmount)
	}
	if rep.LossCurrency.String != "USD" {
		t.Fatalf("loss currency = %q", rep.LossCurrency.String)
	}
	if !rep.DateOccurred.Valid || !rep.DateOccurred.Time.Equal(occurred) {
		t.Fatalf("date occurred = %+v", rep.DateOccurred)
	}
}

func TestModerateApproves(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	rep, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Moderate(context.Background(), rep.ID, &ModerateRequest{Status: "approved", Notes: "Verified by phone records"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != StatusApproved {
		t.Fatalf("status = %q, want approved", updated.Status)
	}
	if repo.statusNotes != "Verified by phone records" {
		t.Fatalf("notes = %q", repo.statusNotes)
	}
}

func TestModerateDefaultNotes(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	rep, _ := svc.Create(context.Background(), createRequest())

	if _, err := svc.Moderate(context.Background(), rep.ID, &ModerateRequest{Status: "rejected"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.statusNotes != "Moderator decision: rejected" {
		t.Fatalf("notes = %q", repo.statusNotes)
	}
}

func TestModerateRejectsPendingTarget(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	rep, _ := svc.Create(context.Background(), createRequest())

	if _, err := svc.Moderate(context.Background(), rep.ID, &ModerateRequest{Status: "pending"}); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestModerateUnknownReport(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.Moderate(context.Background(), uuid.New(), &ModerateRequest{Status: "approved"}); err != ErrReportNotFound {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
