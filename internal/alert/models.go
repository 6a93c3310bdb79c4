// Package alert implements the advisory-notice feed: time-ordered regulatory
// alerts per country with a read/unread flag.
package alert

import "time"

// Severity buckets an alert's urgency.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Alert is one advisory notice. The only mutable field after ingest is
// IsRead; the UI flips it one way, though the store allows reversal.
type Alert struct {
	ID          string    `json:"id"`
	Country     string    `json:"country"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Severity    Severity  `json:"severity"`
	Date        time.Time `json:"date"`
	IsRead      bool      `json:"isRead"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
}
