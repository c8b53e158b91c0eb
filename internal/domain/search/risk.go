package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
)

// RiskLevel tiers a blacklisted identifier by how well-documented it is
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Identifier types reported in BlacklistInfo.Type
const (
	TypePhone    = "phone"
	TypeEmail    = "email"
	TypeWebsite  = "website"
	TypeBusiness = "business"
)

// RiskConfig holds the per-type report-count thresholds. Website and business
// thresholds are lower than phone: domains are cheap to register and
// legitimate businesses rarely accumulate multiple fraud reports, while a
// phone number can be legitimately reused and needs more corroboration.
type RiskConfig struct {
	PhoneMedium   int
	PhoneHigh     int
	PhoneCritical int

	EmailMedium int
	EmailHigh   int

	WebsiteMedium int
	WebsiteHigh   int

	BusinessMedium int
	BusinessHigh   int
}

// DefaultRiskConfig returns the production thresholds
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		PhoneMedium:    5,
		PhoneHigh:      10,
		PhoneCritical:  15,
		EmailMedium:    5,
		EmailHigh:      10,
		WebsiteMedium:  3,
		WebsiteHigh:    8,
		BusinessMedium: 3,
		BusinessHigh:   8,
	}
}

// BlacklistInfo is the advisory attached to every search response
type BlacklistInfo struct {
	IsBlacklisted bool      `json:"is_blacklisted"`
	RiskLevel     RiskLevel `json:"risk_level"`
	ReportCount   int       `json:"report_count"`
	Type          string    `json:"type,omitempty"`
	Entity        string    `json:"entity,omitempty"`
	Message       string    `json:"message,omitempty"`
}

func neutralInfo() BlacklistInfo {
	return BlacklistInfo{IsBlacklisted: false, RiskLevel: RiskLow, ReportCount: 0}
}

// RiskCounter is the slice of the report store the risk engine needs.
// All counts are restricted to approved and pending reports.
// Satisfied by report.Repository.
type RiskCounter interface {
	CountPhoneContains(ctx context.Context, normalized string) (int, error)
	CountPhoneExact(ctx context.Context, phone string) (int, error)
	CountEmailExact(ctx context.Context, email string) (int, error)
	CountWebsiteContains(ctx context.Context, website string) (int, error)
	CountBusinessContains(ctx context.Context, business string) (int, error)
}

// RiskEngine decides whether a searched identifier is already documented as a
// scam vector. Identifier types are checked in strict priority order and the
// first branch that clears its threshold wins; results are never merged
// across types.
type RiskEngine struct {
	store RiskCounter
	cfg   RiskConfig
}

// NewRiskEngine creates a risk engine over the given counter
func NewRiskEngine(store RiskCounter, cfg RiskConfig) *RiskEngine {
	return &RiskEngine{store: store, cfg: cfg}
}

// Evaluate runs the priority list for the query. A store failure degrades to
// the neutral record: search must never fail because of the advisory.
func (e *RiskEngine) Evaluate(ctx context.Context, q *Query) BlacklistInfo {
	if q.Phone != "" {
		normalized := report.NormalizePhone(q.Phone)
		count, err := e.store.CountPhoneContains(ctx, normalized)
		if err != nil {
			log.Warn().Err(err).Msg("Risk scoring: phone count failed, returning neutral advisory")
			return neutralInfo()
		}
		if info, ok := e.phoneTier(count, q.Phone); ok {
			return info
		}
	}

	if q.Email != "" {
		count, err := e.store.CountEmailExact(ctx, q.Email)
		if err != nil {
			log.Warn().Err(err).Msg("Risk scoring: email count failed, returning neutral advisory")
			return neutralInfo()
		}
		if count >= e.cfg.EmailMedium {
			level := RiskMedium
			if count >= e.cfg.EmailHigh {
				level = RiskHigh
			}
			return blacklisted(TypeEmail, q.Email, level, count)
		}
	}

	if q.Website != "" {
		count, err := e.store.CountWebsiteContains(ctx, q.Website)
		if err != nil {
			log.Warn().Err(err).Msg("Risk scoring: website count failed, returning neutral advisory")
			return neutralInfo()
		}
		if count >= e.cfg.WebsiteMedium {
			level := RiskMedium
			if count >= e.cfg.WebsiteHigh {
				level = RiskHigh
			}
			return blacklisted(TypeWebsite, q.Website, level, count)
		}
	}

	if q.Business != "" {
		count, err := e.store.CountBusinessContains(ctx, q.Business)
		if err != nil {
			log.Warn().Err(err).Msg("Risk scoring: business count failed, returning neutral advisory")
			return neutralInfo()
		}
		if count >= e.cfg.BusinessMedium {
			level := RiskMedium
			if count >= e.cfg.BusinessHigh {
				level = RiskHigh
			}
			return blacklisted(TypeBusiness, q.Business, level, count)
		}
	}

	// Free-text fallback: try the query as a phone number, exact field match
	// first, then a normalized substring match when it looks like a phone.
	if q.Text != "" {
		count, err := e.store.CountPhoneExact(ctx, q.Text)
		if err != nil {
			log.Warn().Err(err).Msg("Risk scoring: free-text phone count failed, returning neutral advisory")
			return neutralInfo()
		}
		if info, ok := e.phoneTier(count, q.Text); ok {
			return info
		}

		if report.IsPhoneLike(q.Text) {
			normalized := report.NormalizePhone(q.Text)
			count, err := e.store.CountPhoneContains(ctx, normalized)
			if err != nil {
				log.Warn().Err(err).Msg("Risk scoring: free-text phone count failed, returning neutral advisory")
				return neutralInfo()
			}
			if info, ok := e.phoneTier(count, q.Text); ok {
				return info
			}
		}
	}

	return neutralInfo()
}

func (e *RiskEngine) phoneTier(count int, entity string) (BlacklistInfo, bool) {
	if count < e.cfg.PhoneMedium {
		return BlacklistInfo{}, false
	}
	level := RiskMedium
	switch {
	case count >= e.cfg.PhoneCritical:
		level = RiskCritical
	case count >= e.cfg.PhoneHigh:
		level = RiskHigh
	}
	return blacklisted(TypePhone, entity, level, count), true
}

func blacklisted(typ, entity string, level RiskLevel, count int) BlacklistInfo {
	return BlacklistInfo{
		IsBlacklisted: true,
		RiskLevel:     level,
		ReportCount:   count,
		Type:          typ,
		Entity:        entity,
		Message:       riskMessage(typ, entity, level, count),
	}
}

func riskMessage(typ, entity string, level RiskLevel, count int) string {
	label := typ
	switch typ {
	case TypePhone:
		label = "phone number"
	case TypeEmail:
		label = "email address"
	case TypeBusiness:
		label = "business name"
	}

	switch level {
	case RiskCritical:
		return fmt.Sprintf("DANGER: %s %q has been reported %d times. Do not engage!", label, entity, count)
	case RiskHigh:
		return fmt.Sprintf("WARNING: %s %q has been reported %d times for scam activity. Avoid contact.", label, entity, count)
	default:
		return fmt.Sprintf("CAUTION: %s %q has appeared in %d scam reports. Proceed carefully.", label, entity, count)
	}
}
