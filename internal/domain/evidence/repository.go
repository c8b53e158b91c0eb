package evidence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines evidence data access
type Repository interface {
	Create(ctx context.Context, e *Evidence) error
	GetByID(ctx context.Context, id uuid.UUID) (*Evidence, error)
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]*Evidence, error)
	CountByReport(ctx context.Context, reportID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates evidence repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Evidence) error {
	query := `INSERT INTO report_evidence (id, report_id, file_name, content_type, size, storage_key, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ReportID, e.FileName, e.ContentType, e.Size, e.StorageKey, e.CreatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Evidence, error) {
	var e Evidence
	query := `SELECT id, report_id, file_name, content_type, size, storage_key, created_at
	          FROM report_evidence WHERE id = $1`
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*Evidence, error) {
	items := []*Evidence{}
	query := `SELECT id, report_id, file_name, content_type, size, storage_key, created_at
	          FROM report_evidence WHERE report_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &items, query, reportID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CountByReport(ctx context.Context, reportID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM report_evidence WHERE report_id = $1`
	if err := r.db.GetContext(ctx, &count, query, reportID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM report_evidence WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEvidenceNotFound
	}
	return nil
}
