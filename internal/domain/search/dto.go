package search

import (
	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
)

// Query carries the search criteria from the HTTP layer
type Query struct {
	Text     string
	Email    string
	Phone    string
	Website  string
	Business string
	ScamType string
	Page     int
	Limit    int
}

// HasCriteria reports whether at least one search signal was supplied
func (q *Query) HasCriteria() bool {
	return q.Text != "" || q.Email != "" || q.Phone != "" || q.Website != "" || q.Business != ""
}

// Result is a report paired with its locally computed relevance score
type Result struct {
	*report.Report
	RelevanceScore int `json:"relevance_score"`
}

// Output is the combined search response: ranked results plus the blacklist
// advisory computed for the same query
type Output struct {
	Results       []*Result     `json:"results"`
	BlacklistInfo BlacklistInfo `json:"blacklist_info"`
	Total         int           `json:"-"`
	Page          int           `json:"-"`
	Limit         int           `json:"-"`
}
