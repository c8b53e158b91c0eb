package report

import "time"

// ScammerInfoRequest carries optional scammer identifiers on submission
type ScammerInfoRequest struct {
	Name         string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email        string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Website      string `json:"website,omitempty" validate:"omitempty,max=500"`
	BusinessName string `json:"business_name,omitempty" validate:"omitempty,max=200"`
}

// FinancialLossRequest carries optional loss details on submission
type FinancialLossRequest struct {
	Amount        float64 `json:"amount" validate:"gte=0"`
	Currency      string  `json:"currency,omitempty" validate:"omitempty,currency"`
	PaymentMethod string  `json:"payment_method,omitempty" validate:"omitempty,max=100"`
}

// CreateReportRequest represents a public report submission
type CreateReportRequest struct {
	Title           string                `json:"title" validate:"required,min=5,max=200"`
	Description     string                `json:"description" validate:"required,min=20,max=5000"`
	ScamType        string                `json:"scam_type" validate:"required,scam_type"`
	DateOccurred    *time.Time            `json:"date_occurred,omitempty"`
	ScammerInfo     *ScammerInfoRequest   `json:"scammer_info,omitempty"`
	FinancialLoss   *FinancialLossRequest `json:"financial_loss,omitempty"`
	Tags            []string              `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=50"`
	ReporterContact string                `json:"reporter_contact,omitempty" validate:"omitempty,email,max=320"`
}

// ModerateRequest represents a moderator status transition
type ModerateRequest struct {
	Status string `json:"status" validate:"required,report_status"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ModerationView exposes the screening metadata hidden from public responses
type ModerationView struct {
	*Report
	ValidationStep     string `json:"validation_step,omitempty"`
	ValidationComments string `json:"validation_comments,omitempty"`
}

// NewModerationView wraps a report for moderator-facing responses
func NewModerationView(r *Report) *ModerationView {
	return &ModerationView{
		Report:             r,
		ValidationStep:     r.ValidationStep.String,
		ValidationComments: r.ValidationComments.String,
	}
}

// ListFilter for the public report listing
type ListFilter struct {
	Status   Status
	ScamType ScamType
	Page     int
	Limit    int
}
