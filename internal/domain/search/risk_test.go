package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
)

type fakeRiskCounter struct {
	phoneContains int
	phoneExact    int
	email         int
	website       int
	business      int
	err           error

	phoneContainsArg string
}

func (f *fakeRiskCounter) CountPhoneContains(ctx context.Context, normalized string) (int, error) {
	f.phoneContainsArg = normalized
	return f.phoneContains, f.err
}
func (f *fakeRiskCounter) CountPhoneExact(ctx context.Context, phone string) (int, error) {
	return f.phoneExact, f.err
}
func (f *fakeRiskCounter) CountEmailExact(ctx context.Context, email string) (int, error) {
	return f.email, f.err
}
func (f *fakeRiskCounter) CountWebsiteContains(ctx context.Context, website string) (int, error) {
	return f.website, f.err
}
func (f *fakeRiskCounter) CountBusinessContains(ctx context.Context, business string) (int, error) {
	return f.business, f.err
}

func newTestEngine(store RiskCounter) *RiskEngine {
	return NewRiskEngine(store, DefaultRiskConfig())
}

func TestEvaluatePhoneTiers(t *testing.T) {
	cases := []struct {
		count       int
		blacklisted bool
		level       RiskLevel
	}{
		{0, false, RiskLow},
		{4, false, RiskLow},
		{5, true, RiskMedium},
		{9, true, RiskMedium},
		{10, true, RiskHigh},
		{14, true, RiskHigh},
		{15, true, RiskCritical},
		{40, true, RiskCritical},
	}
	for _, c := range cases {
		store := &fakeRiskCounter{phoneContains: c.count}
		info := newTestEngine(store).Evaluate(context.Background(), &Query{Phone: "+7 777 123 4567"})

		if info.IsBlacklisted != c.blacklisted {
			t.Fatalf("count %d: blacklisted = %v, want %v", c.count, info.IsBlacklisted, c.blacklisted)
		}
		if c.blacklisted && info.RiskLevel != c.level {
			t.Fatalf("count %d: level = %q, want %q", c.count, info.RiskLevel, c.level)
		}
		if c.blacklisted && info.ReportCount != c.count {
			t.Fatalf("count %d: report count = %d", c.count, info.ReportCount)
		}
	}
}

func TestEvaluatePhoneNormalizesBeforeCounting(t *testing.T) {
	store := &fakeRiskCounter{phoneContains: 5}
	newTestEngine(store).Evaluate(context.Background(), &Query{Phone: "+7 (777) 123-45-67"})

	if store.phoneContainsArg != "77771234567" {
		t.Fatalf("expected normalized phone, got %q", store.phoneContainsArg)
	}
}

func TestEvaluateEmailTiers(t *testing.T) {
	cases := []struct {
		count       int
		blacklisted bool
		level       RiskLevel
	}{
		{4, false, RiskLow},
		{5, true, RiskMedium},
		{10, true, RiskHigh},
	}
	for _, c := range cases {
		store := &fakeRiskCounter{email: c.count}
		info := newTestEngine(store).Evaluate(context.Background(), &Query{Email: "fraud@test.com"})

		if info.IsBlacklisted != c.blacklisted {
			t.Fatalf("count %d: blacklisted = %v, want %v", c.count, info.IsBlacklisted, c.blacklisted)
		}
		if c.blacklisted && info.RiskLevel != c.level {
			t.Fatalf("count %d: level = %q, want %q", c.count, info.RiskLevel, c.level)
		}
	}
}

func TestEvaluateWebsiteAndBusinessTiers(t *testing.T) {
	for _, typ := range []string{TypeWebsite, TypeBusiness} {
		cases := []struct {
			count       int
			blacklisted bool
			level       RiskLevel
		}{
			{2, false, RiskLow},
			{3, true, RiskMedium},
			{8, true, RiskHigh},
		}
		for _, c := range cases {
			store := &fakeRiskCounter{website: c.count, business: c.count}
			q := &Query{}
			if typ == TypeWebsite {
				q.Website = "scam-site.com"
			} else {
				q.Business = "Totally Legit LLC"
			}
			info := newTestEngine(store).Evaluate(context.Background(), q)

			if info.IsBlacklisted != c.blacklisted {
				t.Fatalf("%s count %d: blacklisted = %v, want %v", typ, c.count, info.IsBlacklisted, c.blacklisted)
			}
			if c.blacklisted && info.Type != typ {
				t.Fatalf("%s count %d: type = %q", typ, c.count, info.Type)
			}
		}
	}
}

func TestEvaluatePriorityOrder(t *testing.T) {
	// Phone clears its threshold, so email never decides even though it
	// would score higher.
	store := &fakeRiskCounter{phoneContains: 5, email: 50}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{
		Phone: "+7 777 123 4567",
		Email: "fraud@test.com",
	})

	if info.Type != TypePhone {
		t.Fatalf("expected phone to win priority, got %q", info.Type)
	}
}

func TestEvaluateFallsThroughBelowThreshold(t *testing.T) {
	// Phone below threshold falls through to email.
	store := &fakeRiskCounter{phoneContains: 2, email: 10}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{
		Phone: "+7 777 123 4567",
		Email: "fraud@test.com",
	})

	if info.Type != TypeEmail {
		t.Fatalf("expected fallthrough to email, got %q", info.Type)
	}
	if info.RiskLevel != RiskHigh {
		t.Fatalf("expected high, got %q", info.RiskLevel)
	}
}

func TestEvaluateWebsiteBeatsBusiness(t *testing.T) {
	store := &fakeRiskCounter{website: 3, business: 8}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{
		Website:  "scam-site.com",
		Business: "Totally Legit LLC",
	})

	if info.Type != TypeWebsite {
		t.Fatalf("expected website to win priority, got %q", info.Type)
	}
}

func TestEvaluateFreeTextPhoneFallback(t *testing.T) {
	// Exact field match misses but the text looks like a phone, so the
	// normalized containment count decides.
	store := &fakeRiskCounter{phoneExact: 0, phoneContains: 15}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{Text: "+7 777 123 4567"})

	if !info.IsBlacklisted || info.RiskLevel != RiskCritical {
		t.Fatalf("expected critical phone advisory, got %+v", info)
	}
	if info.Type != TypePhone {
		t.Fatalf("expected phone type, got %q", info.Type)
	}
	if store.phoneContainsArg != "77771234567" {
		t.Fatalf("expected normalized free text, got %q", store.phoneContainsArg)
	}
}

func TestEvaluateFreeTextNotPhoneLike(t *testing.T) {
	store := &fakeRiskCounter{phoneContains: 50}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{Text: "crypto scam"})

	if info.IsBlacklisted {
		t.Fatalf("non phone-like text must not trigger containment lookup, got %+v", info)
	}
}

func TestEvaluateStoreFailureDegradesToNeutral(t *testing.T) {
	store := &fakeRiskCounter{err: errors.New("db down")}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{Phone: "+7 777 123 4567"})

	if info.IsBlacklisted || info.RiskLevel != RiskLow || info.ReportCount != 0 {
		t.Fatalf("expected neutral advisory on store failure, got %+v", info)
	}
}

func TestRiskMessages(t *testing.T) {
	store := &fakeRiskCounter{phoneContains: 15}
	info := newTestEngine(store).Evaluate(context.Background(), &Query{Phone: "5550100"})
	if !strings.HasPrefix(info.Message, "DANGER:") {
		t.Fatalf("critical message should start with DANGER, got %q", info.Message)
	}

	store = &fakeRiskCounter{email: 10}
	info = newTestEngine(store).Evaluate(context.Background(), &Query{Email: "fraud@test.com"})
	if !strings.HasPrefix(info.Message, "WARNING:") {
		t.Fatalf("high message should start with WARNING, got %q", info.Message)
	}

	store = &fakeRiskCounter{website: 3}
	info = newTestEngine(store).Evaluate(context.Background(), &Query{Website: "scam-site.com"})
	if !strings.HasPrefix(info.Message, "CAUTION:") {
		t.Fatalf("medium message should start with CAUTION, got %q", info.Message)
	}
}

var _ RiskCounter = (report.Repository)(nil)
