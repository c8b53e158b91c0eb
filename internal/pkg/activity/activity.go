package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	searchListKey = "activity:searches"
	// Only the most recent events are retained; daily counters carry the totals.
	maxRetained = 10000
)

// SearchEvent records one executed search and its result size.
type SearchEvent struct {
	Query        string    `json:"query,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Website      string    `json:"website,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	ScamType     string    `json:"scam_type,omitempty"`
	ResultCount  int       `json:"result_count"`
	At           time.Time `json:"at"`
}

// Logger records search activity in Redis. A nil Logger (or one built over a
// nil client) silently drops events; callers never fail because of it.
type Logger struct {
	rdb *redis.Client
}

// NewLogger creates an activity logger over the given Redis client.
func NewLogger(rdb *redis.Client) *Logger {
	return &Logger{rdb: rdb}
}

// LogSearch pushes the event onto a capped list and bumps the daily counter.
func (l *Logger) LogSearch(ctx context.Context, ev SearchEvent) error {
	if l == nil || l.rdb == nil {
		return nil
	}

	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	day := ev.At.Format("2006-01-02")
	pipe := l.rdb.TxPipeline()
	pipe.LPush(ctx, searchListKey, payload)
	pipe.LTrim(ctx, searchListKey, 0, maxRetained-1)
	pipe.Incr(ctx, searchListKey+":"+day)
	pipe.Expire(ctx, searchListKey+":"+day, 90*24*time.Hour)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentSearches returns up to n most recent search events.
func (l *Logger) RecentSearches(ctx context.Context, n int64) ([]SearchEvent, error) {
	if l == nil || l.rdb == nil {
		return nil, nil
	}

	raw, err := l.rdb.LRange(ctx, searchListKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]SearchEvent, 0, len(raw))
	for _, item := range raw {
		var ev SearchEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
