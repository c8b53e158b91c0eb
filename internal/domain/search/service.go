package search

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/activity"
)

var ErrNoCriteria = errors.New("at least one search criterion is required")

// Relevance bonuses, additive per matching signal
const (
	scoreEmailExact    = 100
	scorePhoneMatch    = 90
	scoreWebsiteMatch  = 80
	scoreBusinessMatch = 70
	scoreTitleMatch    = 60
	scoreNameMatch     = 50
	scoreDescMatch     = 40
	scoreVerifiedBonus = 20
	maxVoteBonus       = 10
)

// Searcher is the slice of the report store the search engine needs.
// Satisfied by report.Repository.
type Searcher interface {
	SearchCandidates(ctx context.Context, filter *report.SearchFilter) ([]*report.Report, int, error)
	Stats(ctx context.Context) (*report.Stats, error)
}

// ActivityLogger records executed searches; failures must not fail the search
type ActivityLogger interface {
	LogSearch(ctx context.Context, ev activity.SearchEvent) error
	RecentSearches(ctx context.Context, n int64) ([]activity.SearchEvent, error)
}

// Service turns a query into ranked results with a blacklist advisory
type Service struct {
	store    Searcher
	risk     *RiskEngine
	activity ActivityLogger
}

// NewService creates search service
func NewService(store Searcher, risk *RiskEngine, activityLog ActivityLogger) *Service {
	return &Service{store: store, risk: risk, activity: activityLog}
}

// Search retrieves candidates from the store, scores them locally and orders
// them by descending relevance. The store paginates the candidate set before
// scoring, so ranking applies within a page.
func (s *Service) Search(ctx context.Context, q *Query) (*Output, error) {
	if !q.HasCriteria() {
		return nil, ErrNoCriteria
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	normalizedPhone := ""
	if q.Phone != "" {
		normalizedPhone = report.NormalizePhone(q.Phone)
	}

	filter := &report.SearchFilter{
		Text:            q.Text,
		Email:           q.Email,
		PhoneNormalized: normalizedPhone,
		Website:         q.Website,
		Business:        q.Business,
		ScamType:        report.ScamType(q.ScamType),
		Limit:           q.Limit,
		Offset:          (q.Page - 1) * q.Limit,
	}

	candidates, total, err := s.store.SearchCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(candidates))
	for i, rep := range candidates {
		results[i] = &Result{
			Report:         rep,
			RelevanceScore: scoreReport(rep, q, normalizedPhone),
		}
	}
	// Descending by score; ties keep the store's retrieval order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	// Advisory is best-effort and computed over the same query
	blacklist := s.risk.Evaluate(ctx, q)

	out := &Output{
		Results:       results,
		BlacklistInfo: blacklist,
		Total:         total,
		Page:          q.Page,
		Limit:         q.Limit,
	}

	s.logActivity(ctx, q, len(results))

	return out, nil
}

// Stats returns corpus-wide aggregates
func (s *Service) Stats(ctx context.Context) (*report.Stats, error) {
	return s.store.Stats(ctx)
}

// Recent returns the latest recorded search events, newest first.
func (s *Service) Recent(ctx context.Context, n int64) ([]activity.SearchEvent, error) {
	if s.activity == nil {
		return nil, nil
	}
	if n <= 0 || n > 100 {
		n = 20
	}
	return s.activity.RecentSearches(ctx, n)
}

func (s *Service) logActivity(ctx context.Context, q *Query, resultCount int) {
	if s.activity == nil {
		return
	}
	ev := activity.SearchEvent{
		Query:        q.Text,
		Email:        q.Email,
		Phone:        q.Phone,
		Website:      q.Website,
		BusinessName: q.Business,
		ScamType:     q.ScamType,
		ResultCount:  resultCount,
	}
	if err := s.activity.LogSearch(ctx, ev); err != nil {
		log.Warn().Err(err).Msg("Failed to record search activity")
	}
}

// scoreReport accumulates every applicable bonus for one candidate
func scoreReport(rep *report.Report, q *Query, normalizedPhone string) int {
	score := 0

	if q.Email != "" && rep.ScammerEmail.Valid && rep.ScammerEmail.String == q.Email {
		score += scoreEmailExact
	}
	if normalizedPhone != "" && rep.ScammerPhoneNormalized.Valid &&
		strings.Contains(rep.ScammerPhoneNormalized.String, normalizedPhone) {
		score += scorePhoneMatch
	}
	if q.Website != "" && containsFold(rep.ScammerWebsite.String, q.Website) {
		score += scoreWebsiteMatch
	}
	if q.Business != "" && containsFold(rep.ScammerBusiness.String, q.Business) {
		score += scoreBusinessMatch
	}
	if q.Text != "" {
		if containsFold(rep.Title, q.Text) {
			score += scoreTitleMatch
		}
		if containsFold(rep.ScammerName.String, q.Text) {
			score += scoreNameMatch
		}
		if containsFold(rep.Description, q.Text) {
			score += scoreDescMatch
		}
	}
	if rep.IsVerified {
		score += scoreVerifiedBonus
	}
	if votes := rep.VoteScore(); votes != 0 {
		if votes > maxVoteBonus {
			votes = maxVoteBonus
		}
		score += votes
	}

	return score
}

func containsFold(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
