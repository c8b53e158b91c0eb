package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Statuses visible to risk scoring and search. Pending reports are included
// deliberately so fresh submissions influence blacklist advisories before
// moderation; see DESIGN.md.
var searchableStatuses = []string{string(StatusApproved), string(StatusPending)}

// SearchFilter describes candidate retrieval for the search engine.
// Provided criteria are OR-combined; statuses and scam type are AND filters.
type SearchFilter struct {
	Text            string
	Email           string
	PhoneNormalized string
	Website         string
	Business        string
	ScamType        ScamType
	Statuses        []Status
	Limit           int
	Offset          int
}

// Stats aggregates corpus-wide numbers for the public stats endpoint
type Stats struct {
	TotalReports    int            `json:"total_reports"`
	ByStatus        []StatusCount  `json:"by_status"`
	ByType          []TypeCount    `json:"by_type"`
	TopWebsites     []WebsiteCount `json:"top_websites"`
	Trend30Days     []TrendPoint   `json:"trend_30_days"`
	FinancialImpact []CurrencyLoss `json:"financial_impact"`
}

type StatusCount struct {
	Status Status `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type TypeCount struct {
	ScamType ScamType `db:"scam_type" json:"scam_type"`
	Count    int      `db:"count" json:"count"`
}

type WebsiteCount struct {
	Website string `db:"scammer_website" json:"website"`
	Count   int    `db:"count" json:"count"`
}

type TrendPoint struct {
	Day   time.Time `db:"day" json:"day"`
	Count int       `db:"count" json:"count"`
}

type CurrencyLoss struct {
	Currency string  `db:"loss_currency" json:"currency"`
	Total    float64 `db:"total" json:"total"`
	Reports  int     `db:"count" json:"reports"`
}

// Repository defines report data access
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, filter *ListFilter) ([]*Report, int, error)

	// Screening persistence
	SetStatus(ctx context.Context, id uuid.UUID, status Status, comments string) error
	SetValidationStep(ctx context.Context, id uuid.UUID, step string) error
	SetValidationComments(ctx context.Context, id uuid.UUID, comments string) error
	ExistsDuplicate(ctx context.Context, excludeID uuid.UUID, title, description string) (bool, error)
	CountScammerMatches(ctx context.Context, excludeID uuid.UUID, email, phone, name string) (int, error)

	// Risk scoring counts, restricted to searchable statuses
	CountPhoneContains(ctx context.Context, normalized string) (int, error)
	CountPhoneExact(ctx context.Context, phone string) (int, error)
	CountEmailExact(ctx context.Context, email string) (int, error)
	CountWebsiteContains(ctx context.Context, website string) (int, error)
	CountBusinessContains(ctx context.Context, business string) (int, error)

	// Search
	SearchCandidates(ctx context.Context, filter *SearchFilter) ([]*Report, int, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (
			id, title, description, scam_type, status,
			scammer_name, scammer_email, scammer_phone, scammer_phone_normalized,
			scammer_website, scammer_business,
			loss_amount, loss_currency, payment_method,
			validation_step, validation_comments,
			is_verified, upvotes, downvotes, tags,
			date_occurred, reporter_contact, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.Title, rep.Description, rep.ScamType, rep.Status,
		rep.ScammerName, rep.ScammerEmail, rep.ScammerPhone, rep.ScammerPhoneNormalized,
		rep.ScammerWebsite, rep.ScammerBusiness,
		rep.LossAmount, rep.LossCurrency, rep.PaymentMethod,
		rep.ValidationStep, rep.ValidationComments,
		rep.IsVerified, rep.Upvotes, rep.Downvotes, rep.Tags,
		rep.DateOccurred, rep.ReporterContact, rep.CreatedAt, rep.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var rep Report
	err := r.db.GetContext(ctx, &rep, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.ScamType != "" {
		where += fmt.Sprintf(` AND scam_type = $%d`, argPos)
		args = append(args, filter.ScamType)
		argPos++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM reports ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var reports []*Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status, comments string) error {
	query := `
		UPDATE reports
		SET status = $1, validation_comments = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, comments, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *repository) SetValidationStep(ctx context.Context, id uuid.UUID, step string) error {
	query := `UPDATE reports SET validation_step = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, step, id)
	return err
}

func (r *repository) SetValidationComments(ctx context.Context, id uuid.UUID, comments string) error {
	query := `UPDATE reports SET validation_comments = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, comments, id)
	return err
}

// ExistsDuplicate reports whether another report already carries the exact
// same title and description, any status. The report under screening is
// excluded since it is stored before the pipeline runs.
func (r *repository) ExistsDuplicate(ctx context.Context, excludeID uuid.UUID, title, description string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reports WHERE id != $1 AND title = $2 AND description = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, excludeID, title, description)
	return exists, err
}

// CountScammerMatches counts existing reports sharing the scammer email,
// phone or name (OR across the three), excluding the report under screening.
func (r *repository) CountScammerMatches(ctx context.Context, excludeID uuid.UUID, email, phone, name string) (int, error) {
	conds := []string{}
	args := []interface{}{excludeID}
	argPos := 2

	if email != "" {
		conds = append(conds, fmt.Sprintf(`scammer_email = $%d`, argPos))
		args = append(args, email)
		argPos++
	}
	if phone != "" {
		conds = append(conds, fmt.Sprintf(`scammer_phone_normalized = $%d`, argPos))
		args = append(args, NormalizePhone(phone))
		argPos++
	}
	if name != "" {
		conds = append(conds, fmt.Sprintf(`scammer_name = $%d`, argPos))
		args = append(args, name)
		argPos++
	}
	if len(conds) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM reports WHERE id != $1 AND (` + strings.Join(conds, " OR ") + `)`
	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *repository) CountPhoneContains(ctx context.Context, normalized string) (int, error) {
	query := `
		SELECT COUNT(*) FROM reports
		WHERE status = ANY($1) AND scammer_phone_normalized LIKE $2
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, pq.Array(searchableStatuses), "%"+EscapeLike(normalized)+"%")
	return count, err
}

func (r *repository) CountPhoneExact(ctx context.Context, phone string) (int, error) {
	query := `
		SELECT COUNT(*) FROM reports
		WHERE status = ANY($1) AND scammer_phone = $2
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, pq.Array(searchableStatuses), phone)
	return count, err
}

func (r *repository) CountEmailExact(ctx context.Context, email string) (int, error) {
	query := `
		SELECT COUNT(*) FROM reports
		WHERE status = ANY($1) AND scammer_email = $2
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, pq.Array(searchableStatuses), email)
	return count, err
}

func (r *repository) CountWebsiteContains(ctx context.Context, website string) (int, error) {
	query := `
		SELECT COUNT(*) FROM reports
		WHERE status = ANY($1) AND scammer_website ILIKE $2
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, pq.Array(searchableStatuses), "%"+EscapeLike(website)+"%")
	return count, err
}

func (r *repository) CountBusinessContains(ctx context.Context, business string) (int, error) {
	query := `
		SELECT COUNT(*) FROM reports
		WHERE status = ANY($1) AND scammer_business ILIKE $2
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, pq.Array(searchableStatuses), "%"+EscapeLike(business)+"%")
	return count, err
}

func (r *repository) SearchCandidates(ctx context.Context, f *SearchFilter) ([]*Report, int, error) {
	args := []interface{}{}
	argPos := 1

	statuses := f.Statuses
	if len(statuses) == 0 {
		for _, s := range searchableStatuses {
			statuses = append(statuses, Status(s))
		}
	}
	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}
	where := fmt.Sprintf(`WHERE status = ANY($%d)`, argPos)
	args = append(args, pq.Array(statusStrs))
	argPos++

	// OR union of the supplied criteria
	matches := []string{}
	if f.Text != "" {
		pattern := "%" + EscapeLike(f.Text) + "%"
		matches = append(matches, fmt.Sprintf(
			`(title ILIKE $%d OR description ILIKE $%d OR scammer_name ILIKE $%d
			  OR scammer_email ILIKE $%d OR scammer_website ILIKE $%d OR scammer_business ILIKE $%d
			  OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))`,
			argPos, argPos, argPos, argPos, argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}
	if f.Email != "" {
		matches = append(matches, fmt.Sprintf(`scammer_email = $%d`, argPos))
		args = append(args, f.Email)
		argPos++
	}
	if f.PhoneNormalized != "" {
		matches = append(matches, fmt.Sprintf(`scammer_phone_normalized LIKE $%d`, argPos))
		args = append(args, "%"+EscapeLike(f.PhoneNormalized)+"%")
		argPos++
	}
	if f.Website != "" {
		matches = append(matches, fmt.Sprintf(`scammer_website ILIKE $%d`, argPos))
		args = append(args, "%"+EscapeLike(f.Website)+"%")
		argPos++
	}
	if f.Business != "" {
		matches = append(matches, fmt.Sprintf(`scammer_business ILIKE $%d`, argPos))
		args = append(args, "%"+EscapeLike(f.Business)+"%")
		argPos++
	}
	if len(matches) > 0 {
		where += ` AND (` + strings.Join(matches, " OR ") + `)`
	}

	if f.ScamType != "" {
		where += fmt.Sprintf(` AND scam_type = $%d`, argPos)
		args = append(args, f.ScamType)
		argPos++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM reports ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, f.Limit, f.Offset)

	var reports []*Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := r.db.GetContext(ctx, &stats.TotalReports,
		`SELECT COUNT(*) FROM reports`); err != nil {
		return nil, err
	}

	_ = r.db.SelectContext(ctx, &stats.ByStatus,
		`SELECT status, COUNT(*) AS count FROM reports GROUP BY status ORDER BY count DESC`)

	_ = r.db.SelectContext(ctx, &stats.ByType,
		`SELECT scam_type, COUNT(*) AS count FROM reports GROUP BY scam_type ORDER BY count DESC`)

	_ = r.db.SelectContext(ctx, &stats.TopWebsites,
		`SELECT scammer_website, COUNT(*) AS count FROM reports
		 WHERE scammer_website IS NOT NULL AND scammer_website != '' AND status = ANY($1)
		 GROUP BY scammer_website ORDER BY count DESC LIMIT 10`,
		pq.Array(searchableStatuses))

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	_ = r.db.SelectContext(ctx, &stats.Trend30Days,
		`SELECT date_trunc('day', created_at) AS day, COUNT(*) AS count FROM reports
		 WHERE created_at > $1 GROUP BY day ORDER BY day`,
		thirtyDaysAgo)

	_ = r.db.SelectContext(ctx, &stats.FinancialImpact,
		`SELECT loss_currency, SUM(loss_amount) AS total, COUNT(*) AS count FROM reports
		 WHERE loss_amount IS NOT NULL AND loss_currency IS NOT NULL
		 GROUP BY loss_currency ORDER BY total DESC`)

	return stats, nil
}
