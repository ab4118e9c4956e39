package newsportal

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("news not found")
	ErrValidation = errors.New("validation failed")
)

// Alert severities match the CSS classes used by the templates.
const (
	SeverityDanger  = "danger"
	SeverityWarning = "warning"
	SeveritySuccess = "success"
	SeverityInfo    = "info"
)

type News struct {
	ID            int
	Title         string
	Body          string
	Created       time.Time
	CorrelationID string
}

// Alert is a one-shot status message shown on the next page render.
type Alert struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// LoginResult holds the normalized username on success, or the alert to
// show otherwise.
type LoginResult struct {
	Username string
	Alert    *Alert
}

func (r LoginResult) OK() bool {
	return r.Alert == nil && r.Username != ""
}
