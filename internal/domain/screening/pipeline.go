package screening

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/partner"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/scamdb"
)

// DefaultHighTargetThreshold is the number of prior reports sharing a scammer
// identifier at which a new report is parked for manual review.
const DefaultHighTargetThreshold = 20

// Config carries the tunable screening parameters
type Config struct {
	HighTargetThreshold int
}

// StepResult is the uniform outcome every screening step reports
type StepResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// stageOutcome is a StepResult plus whether the pipeline halts here
type stageOutcome struct {
	result   StepResult
	terminal bool
}

func terminalFail(msg string) stageOutcome {
	return stageOutcome{result: StepResult{Success: false, Message: msg}, terminal: true}
}

func terminalOK(msg string) stageOutcome {
	return stageOutcome{result: StepResult{Success: true, Message: msg}, terminal: true}
}

func advance(msg string) stageOutcome {
	return stageOutcome{result: StepResult{Success: true, Message: msg}}
}

// Store is the slice of report persistence the pipeline needs.
// Satisfied by report.Repository.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*report.Report, error)
	ExistsDuplicate(ctx context.Context, excludeID uuid.UUID, title, description string) (bool, error)
	CountScammerMatches(ctx context.Context, excludeID uuid.UUID, email, phone, name string) (int, error)
	SetStatus(ctx context.Context, id uuid.UUID, status report.Status, comments string) error
	SetValidationStep(ctx context.Context, id uuid.UUID, step string) error
	SetValidationComments(ctx context.Context, id uuid.UUID, comments string) error
}

// ScamDatabase checks a report against an external known-scam corpus
type ScamDatabase interface {
	Check(ctx context.Context, q scamdb.CheckQuery) (bool, error)
}

// EmailVerifier checks deliverability of a scammer email address
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (bool, error)
}

// PartnerVerifier submits a report to an external partner for confirmation
type PartnerVerifier interface {
	Verify(ctx context.Context, p partner.VerifyPayload) (bool, error)
}

// stage is one ordered screening step. Run never returns an error: internal
// failures are contained, logged and surfaced through the StepResult.
type stage interface {
	Name() string
	Run(ctx context.Context, rep *report.Report) stageOutcome
}

// Pipeline advances a newly submitted report through the automated checks.
// The partner check is deliberately not part of the stage list; it runs
// out-of-band via RunPartnerCheck.
type Pipeline struct {
	store   Store
	stages  []stage
	partner PartnerVerifier
}

// NewPipeline creates the screening pipeline with its ordered stages
func NewPipeline(store Store, scamDB ScamDatabase, emails EmailVerifier, partnerSvc PartnerVerifier, cfg Config) *Pipeline {
	if cfg.HighTargetThreshold <= 0 {
		cfg.HighTargetThreshold = DefaultHighTargetThreshold
	}

	return &Pipeline{
		store: store,
		stages: []stage{
			&initialScreening{store: store},
			&automatedVerification{store: store, scamDB: scamDB, emails: emails},
			&highTargetCheck{store: store, threshold: cfg.HighTargetThreshold},
		},
		partner: partnerSvc,
	}
}

// Run executes the stages in order until one halts the pipeline or the list
// is exhausted, returning the last step's result. Safe to invoke again if a
// previous run was interrupted: each stage re-derives its decision from the
// stored report.
func (p *Pipeline) Run(ctx context.Context, reportID uuid.UUID) StepResult {
	rep, err := p.store.GetByID(ctx, reportID)
	if err != nil {
		log.Error().Err(err).Str("report_id", reportID.String()).Msg("Screening: failed to load report")
		return StepResult{Success: false, Message: "Error during screening"}
	}
	if rep == nil {
		return StepResult{Success: false, Message: "Report not found"}
	}

	var last StepResult
	for _, st := range p.stages {
		out := st.Run(ctx, rep)
		last = out.result

		log.Info().
			Str("report_id", reportID.String()).
			Str("stage", st.Name()).
			Bool("success", out.result.Success).
			Str("message", out.result.Message).
			Msg("Screening stage completed")

		if out.terminal {
			break
		}
	}
	return last
}

// RunPartnerCheck runs the detached partner verification stage. On a positive
// answer the report is approved; otherwise its status is left unchanged.
func (p *Pipeline) RunPartnerCheck(ctx context.Context, reportID uuid.UUID) StepResult {
	rep, err := p.store.GetByID(ctx, reportID)
	if err != nil {
		log.Error().Err(err).Str("report_id", reportID.String()).Msg("Partner check: failed to load report")
		return StepResult{Success: false, Message: "Error during partner verification"}
	}
	if rep == nil {
		return StepResult{Success: false, Message: "Report not found"}
	}

	st := &partnerCheck{store: p.store, partner: p.partner}
	return st.Run(ctx, rep).result
}
