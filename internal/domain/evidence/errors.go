package evidence

import "errors"

var (
	ErrEvidenceNotFound = errors.New("evidence not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrReportClosed     = errors.New("report no longer accepts evidence")
	ErrTooManyFiles     = errors.New("evidence limit reached for report")
)
