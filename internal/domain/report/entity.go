package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ScamType categorizes the kind of fraud being reported
type ScamType string

const (
	ScamTypeInvestment     ScamType = "investment"
	ScamTypeRomance        ScamType = "romance"
	ScamTypePhishing       ScamType = "phishing"
	ScamTypeTechSupport    ScamType = "tech_support"
	ScamTypeOnlineShopping ScamType = "online_shopping"
	ScamTypeLottery        ScamType = "lottery"
	ScamTypeFakeJob        ScamType = "fake_job"
	ScamTypeCharity        ScamType = "charity"
	ScamTypeRental         ScamType = "rental"
	ScamTypeCrypto         ScamType = "crypto"
	ScamTypeIdentityTheft  ScamType = "identity_theft"
	ScamTypeOther          ScamType = "other"
)

// Status represents the moderation status of a report
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// Screening step markers recorded in validation_step as the pipeline advances.
const (
	StepAutomatedVerification = "automated_verification"
	StepManualReview          = "manual_review"
)

// Report represents a single submitted fraud account
type Report struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ScamType    ScamType  `db:"scam_type" json:"scam_type"`
	Status      Status    `db:"status" json:"status"`

	// Scammer identifiers, each optional and independently matchable
	ScammerName            sql.NullString `db:"scammer_name" json:"scammer_name,omitempty"`
	ScammerEmail           sql.NullString `db:"scammer_email" json:"scammer_email,omitempty"`
	ScammerPhone           sql.NullString `db:"scammer_phone" json:"scammer_phone,omitempty"`
	ScammerPhoneNormalized sql.NullString `db:"scammer_phone_normalized" json:"-"`
	ScammerWebsite         sql.NullString `db:"scammer_website" json:"scammer_website,omitempty"`
	ScammerBusiness        sql.NullString `db:"scammer_business" json:"scammer_business,omitempty"`

	// Financial loss
	LossAmount    sql.NullFloat64 `db:"loss_amount" json:"loss_amount,omitempty"`
	LossCurrency  sql.NullString  `db:"loss_currency" json:"loss_currency,omitempty"`
	PaymentMethod sql.NullString  `db:"payment_method" json:"payment_method,omitempty"`

	// Screening metadata, moderator-visible only (see ModerationView)
	ValidationStep     sql.NullString `db:"validation_step" json:"-"`
	ValidationComments sql.NullString `db:"validation_comments" json:"-"`

	IsVerified bool           `db:"is_verified" json:"is_verified"`
	Upvotes    int            `db:"upvotes" json:"upvotes"`
	Downvotes  int            `db:"downvotes" json:"downvotes"`
	Tags       pq.StringArray `db:"tags" json:"tags,omitempty"`

	DateOccurred    sql.NullTime   `db:"date_occurred" json:"date_occurred,omitempty"`
	ReporterContact sql.NullString `db:"reporter_contact" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VoteScore returns upvotes minus downvotes
func (r *Report) VoteScore() int {
	return r.Upvotes - r.Downvotes
}

// ValidScamType reports whether t is a known scam type
func ValidScamType(t ScamType) bool {
	switch t {
	case ScamTypeInvestment, ScamTypeRomance, ScamTypePhishing, ScamTypeTechSupport,
		ScamTypeOnlineShopping, ScamTypeLottery, ScamTypeFakeJob, ScamTypeCharity,
		ScamTypeRental, ScamTypeCrypto, ScamTypeIdentityTheft, ScamTypeOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known moderation status
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}
