package report

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidScamType = errors.New("invalid scam type")
	ErrInvalidStatus   = errors.New("invalid report status")
)
