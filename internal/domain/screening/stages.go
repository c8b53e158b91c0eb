package screening

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/partner"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/scamdb"
)

// initialScreening rejects incomplete submissions and exact duplicates
type initialScreening struct {
	store Store
}

func (s *initialScreening) Name() string { return "initial_screening" }

func (s *initialScreening) Run(ctx context.Context, rep *report.Report) stageOutcome {
	if strings.TrimSpace(rep.Title) == "" || strings.TrimSpace(rep.Description) == "" {
		return terminalFail("Missing required fields")
	}

	dup, err := s.store.ExistsDuplicate(ctx, rep.ID, rep.Title, rep.Description)
	if err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Initial screening: duplicate lookup failed")
		return terminalFail("Error during initial screening")
	}
	if dup {
		return terminalFail("Duplicate report")
	}

	if err := s.store.SetValidationStep(ctx, rep.ID, report.StepAutomatedVerification); err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Initial screening: failed to persist step")
		return terminalFail("Error during initial screening")
	}

	return advance("Initial screening passed")
}

// automatedVerification consults the external scam database, then the email
// verification service when a scammer email is present
type automatedVerification struct {
	store  Store
	scamDB ScamDatabase
	emails EmailVerifier
}

func (s *automatedVerification) Name() string { return "automated_verification" }

func (s *automatedVerification) Run(ctx context.Context, rep *report.Report) stageOutcome {
	matched, err := s.scamDB.Check(ctx, scamdb.CheckQuery{
		Title:        rep.Title,
		Description:  rep.Description,
		Email:        rep.ScammerEmail.String,
		Phone:        rep.ScammerPhone.String,
		Website:      rep.ScammerWebsite.String,
		BusinessName: rep.ScammerBusiness.String,
	})
	if err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Automated verification: scam database check failed")
		return terminalFail("Error during automated verification")
	}
	if matched {
		if err := s.store.SetStatus(ctx, rep.ID, report.StatusRejected, "Matched known scam database"); err != nil {
			log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Automated verification: failed to persist rejection")
			return terminalFail("Error during automated verification")
		}
		rep.Status = report.StatusRejected
		return terminalFail("Matched known scam database")
	}

	if rep.ScammerEmail.Valid && rep.ScammerEmail.String != "" {
		valid, err := s.emails.Verify(ctx, rep.ScammerEmail.String)
		if err != nil {
			log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Automated verification: email verification failed")
			return terminalFail("Error during automated verification")
		}
		if !valid {
			// Status stays untouched; only the disposition comment is recorded.
			if err := s.store.SetValidationComments(ctx, rep.ID, "Scammer email address failed verification"); err != nil {
				log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Automated verification: failed to persist comment")
				return terminalFail("Error during automated verification")
			}
			return terminalFail("Scammer email address failed verification")
		}
	}

	return advance("Automated verification passed")
}

// highTargetCheck parks reports about heavily reported scammer profiles for
// manual review; everything else is marked ready for a moderator decision.
// Screening never approves a report on its own.
type highTargetCheck struct {
	store     Store
	threshold int
}

func (s *highTargetCheck) Name() string { return "high_target_check" }

func (s *highTargetCheck) Run(ctx context.Context, rep *report.Report) stageOutcome {
	count, err := s.store.CountScammerMatches(ctx, rep.ID,
		rep.ScammerEmail.String, rep.ScammerPhone.String, rep.ScammerName.String)
	if err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("High target check: count failed")
		return terminalFail("Error during high target check")
	}

	if count >= s.threshold {
		if err := s.store.SetStatus(ctx, rep.ID, report.StatusUnderReview, "Profile flagged as high target scammer"); err != nil {
			log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("High target check: failed to persist flag")
			return terminalFail("Error during high target check")
		}
		rep.Status = report.StatusUnderReview
		return terminalOK("Profile flagged as high target scammer")
	}

	if err := s.store.SetValidationStep(ctx, rep.ID, report.StepManualReview); err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("High target check: failed to persist step")
		return terminalFail("Error during high target check")
	}
	return terminalOK("Passed automated screening, awaiting manual review")
}

// partnerCheck is the detached stage run out-of-band from the main pipeline
type partnerCheck struct {
	store   Store
	partner PartnerVerifier
}

func (s *partnerCheck) Name() string { return "partner_check" }

func (s *partnerCheck) Run(ctx context.Context, rep *report.Report) stageOutcome {
	verified, err := s.partner.Verify(ctx, partner.VerifyPayload{
		ReportID:     rep.ID.String(),
		Title:        rep.Title,
		Description:  rep.Description,
		ScamType:     string(rep.ScamType),
		Email:        rep.ScammerEmail.String,
		Phone:        rep.ScammerPhone.String,
		Website:      rep.ScammerWebsite.String,
		BusinessName: rep.ScammerBusiness.String,
	})
	if err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Partner check: verification call failed")
		return terminalFail("Error during partner verification")
	}
	if !verified {
		return terminalFail("Partner verification failed")
	}

	if err := s.store.SetStatus(ctx, rep.ID, report.StatusApproved, "Verified by partner service"); err != nil {
		log.Error().Err(err).Str("report_id", rep.ID.String()).Msg("Partner check: failed to persist approval")
		return terminalFail("Error during partner verification")
	}
	rep.Status = report.StatusApproved
	return terminalOK("Report verified and approved")
}
