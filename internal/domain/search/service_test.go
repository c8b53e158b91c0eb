package search

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/activity"
)

type fakeSearcher struct {
	candidates []*report.Report
	total      int
	err        error
	filter     *report.SearchFilter
	stats      *report.Stats
}

func (f *fakeSearcher) SearchCandidates(ctx context.Context, filter *report.SearchFilter) ([]*report.Report, int, error) {
	f.filter = filter
	return f.candidates, f.total, f.err
}
func (f *fakeSearcher) Stats(ctx context.Context) (*report.Stats, error) {
	return f.stats, nil
}

type fakeActivityLog struct {
	events []activity.SearchEvent
	err    error
}

func (f *fakeActivityLog) LogSearch(ctx context.Context, ev activity.SearchEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

// Newest first, like the Redis list behind the real logger.
func (f *fakeActivityLog) RecentSearches(ctx context.Context, n int64) ([]activity.SearchEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]activity.SearchEvent, 0, n)
	for i := len(f.events) - 1; i >= 0 && int64(len(out)) < n; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}

func candidate(mutate func(r *report.Report)) *report.Report {
	r := &report.Report{
		ID:          uuid.New(),
		Title:       "Fake online store",
		Description: "Took payment and never shipped anything.",
		ScamType:    report.ScamTypeOnlineShopping,
		Status:      report.StatusApproved,
	}
	if mutate != nil {
		mutate(r)
	}
	return r
}

func newSearchService(store *fakeSearcher, al ActivityLogger) *Service {
	risk := NewRiskEngine(&fakeRiskCounter{}, DefaultRiskConfig())
	return NewService(store, risk, al)
}

func TestSearchRequiresCriteria(t *testing.T) {
	svc := newSearchService(&fakeSearcher{}, nil)

	_, err := svc.Search(context.Background(), &Query{})
	if !errors.Is(err, ErrNoCriteria) {
		t.Fatalf("expected ErrNoCriteria, got %v", err)
	}
}

func TestSearchScoreAccumulation(t *testing.T) {
	rep := candidate(func(r *report.Report) {
		r.ScammerEmail = sql.NullString{String: "fraud@test.com", Valid: true}
		r.IsVerified = true
		r.Upvotes = 7
		r.Downvotes = 2
	})
	store := &fakeSearcher{candidates: []*report.Report{rep}, total: 1}
	svc := newSearchService(store, nil)

	out, err := svc.Search(context.Background(), &Query{Email: "fraud@test.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100 exact email + 20 verified + 5 votes
	if got := out.Results[0].RelevanceScore; got != 125 {
		t.Fatalf("score = %d, want 125", got)
	}
}

func TestSearchVoteBonusCapped(t *testing.T) {
	rep := candidate(func(r *report.Report) {
		r.ScammerEmail = sql.NullString{String: "fraud@test.com", Valid: true}
		r.Upvotes = 80
	})
	store := &fakeSearcher{candidates: []*report.Report{rep}, total: 1}
	svc := newSearchService(store, nil)

	out, err := svc.Search(context.Background(), &Query{Email: "fraud@test.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := out.Results[0].RelevanceScore; got != 110 {
		t.Fatalf("score = %d, want 110 (vote bonus capped at 10)", got)
	}
}

func TestSearchOrdersByDescendingScore(t *testing.T) {
	// Title-only match (60) vs exact email match with strong votes
	// (100 + 39 capped to 10 = 110): the email match must rank first even
	// though the store returned it second.
	titleOnly := candidate(func(r *report.Report) {
		r.Title = "fraud@test.com sent me a fake invoice"
	})
	emailMatch := candidate(func(r *report.Report) {
		r.Title = "Invoice scam"
		r.ScammerEmail = sql.NullString{String: "fraud@test.com", Valid: true}
		r.Upvotes = 40
		r.Downvotes = 1
	})
	store := &fakeSearcher{candidates: []*report.Report{titleOnly, emailMatch}, total: 2}
	svc := newSearchService(store, nil)

	out, err := svc.Search(context.Background(), &Query{Text: "fraud@test.com", Email: "fraud@test.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Results[0].Report.ID != emailMatch.ID {
		t.Fatalf("expected email match ranked first")
	}
	if out.Results[0].RelevanceScore <= out.Results[1].RelevanceScore {
		t.Fatalf("results not in descending score order: %d then %d",
			out.Results[0].RelevanceScore, out.Results[1].RelevanceScore)
	}
}

func TestSearchPhoneScoredOnNormalizedContainment(t *testing.T) {
	rep := candidate(func(r *report.Report) {
		r.ScammerPhone = sql.NullString{String: "+7 (777) 123-45-67", Valid: true}
		r.ScammerPhoneNormalized = sql.NullString{String: "77771234567", Valid: true}
	})
	store := &fakeSearcher{candidates: []*report.Report{rep}, total: 1}
	svc := newSearchService(store, nil)

	out, err := svc.Search(context.Background(), &Query{Phone: "777 123-45-67"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := out.Results[0].RelevanceScore; got != 90 {
		t.Fatalf("score = %d, want 90", got)
	}
	if store.filter.PhoneNormalized != "7771234567" {
		t.Fatalf("filter got %q, want normalized phone", store.filter.PhoneNormalized)
	}
}

func TestSearchTextMatchesCaseInsensitive(t *testing.T) {
	rep := candidate(func(r *report.Report) {
		r.Title = "CryptoBoost Platform"
		r.ScammerName = sql.NullString{String: "cryptoboost admin", Valid: true}
		r.Description = "The CRYPTOBOOST site locked my withdrawal."
	})
	store := &fakeSearcher{candidates: []*report.Report{rep}, total: 1}
	svc := newSearchService(store, nil)

	out, err := svc.Search(context.Background(), &Query{Text: "cryptoboost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 60 title + 50 name + 40 description
	if got := out.Results[0].RelevanceScore; got != 150 {
		t.Fatalf("score = %d, want 150", got)
	}
}

func TestSearchActivityLogged(t *testing.T) {
	store := &fakeSearcher{candidates: []*report.Report{candidate(nil)}, total: 1}
	al := &fakeActivityLog{}
	svc := newSearchService(store, al)

	_, err := svc.Search(context.Background(), &Query{Text: "fake store"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(al.events) != 1 {
		t.Fatalf("expected one activity event, got %d", len(al.events))
	}
	if al.events[0].Query != "fake store" || al.events[0].ResultCount != 1 {
		t.Fatalf("unexpected event: %+v", al.events[0])
	}
}

func TestSearchActivityFailureTolerated(t *testing.T) {
	store := &fakeSearcher{candidates: []*report.Report{candidate(nil)}, total: 1}
	al := &fakeActivityLog{err: errors.New("redis down")}
	svc := newSearchService(store, al)

	out, err := svc.Search(context.Background(), &Query{Text: "fake store"})
	if err != nil {
		t.Fatalf("activity failure must not fail the search: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("expected results despite activity failure")
	}
}

func TestRecentReturnsLoggedSearches(t *testing.T) {
	store := &fakeSearcher{candidates: []*report.Report{candidate(nil)}, total: 1}
	al := &fakeActivityLog{}
	svc := newSearchService(store, al)

	if _, err := svc.Search(context.Background(), &Query{Text: "fake store"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := svc.Search(context.Background(), &Query{Email: "fraud@test.com"}); err != nil {
		t.Fatalf("search: %v", err)
	}

	events, err := svc.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Email != "fraud@test.com" {
		t.Fatalf("expected newest event first, got %+v", events[0])
	}
}

func TestRecentClampsLimit(t *testing.T) {
	al := &fakeActivityLog{}
	for i := 0; i < 30; i++ {
		al.events = append(al.events, activity.SearchEvent{Query: "q"})
	}
	svc := newSearchService(&fakeSearcher{}, al)

	events, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 20 {
		t.Fatalf("expected default limit of 20, got %d", len(events))
	}
}

func TestSearchPaginationDefaults(t *testing.T) {
	store := &fakeSearcher{}
	svc := newSearchService(store, nil)

	_, err := svc.Search(context.Background(), &Query{Text: "scam", Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.filter.Limit != 20 || store.filter.Offset != 0 {
		t.Fatalf("expected clamped pagination, got limit=%d offset=%d",
			store.filter.Limit, store.filter.Offset)
	}
}
