package evidence

import (
	"time"

	"github.com/google/uuid"
)

// Evidence represents a file attached to a scam report
type Evidence struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ReportID    uuid.UUID `db:"report_id" json:"report_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ContentType string    `db:"content_type" json:"content_type"`
	Size        int64     `db:"size" json:"size"`
	StorageKey  string    `db:"storage_key" json:"-"`
	URL         string    `db:"-" json:"url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
