package alert

import (
	"context"

	dErrors "regwise/pkg/domain-errors"
)

// listCap bounds a single feed read.
const listCap = 100

// ErrNotFound keeps alert 404s consistent across store implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "Alert not found")

// Store persists alerts. List is the only read path the feed exposes;
// secondary filtering (severity, read-state) happens client-side.
type Store interface {
	// List returns alerts sorted by date descending, capped at 100 results.
	// A non-empty country restricts the feed to that country.
	List(ctx context.Context, country string) ([]Alert, error)

	// MarkRead sets isRead on one alert and returns the updated record, or
	// ErrNotFound for an unknown id.
	MarkRead(ctx context.Context, id string) (*Alert, error)

	// Create inserts a new alert. Used by the seeder.
	Create(ctx context.Context, a Alert) error

	// CountUnread returns the number of unread alerts across all countries.
	CountUnread(ctx context.Context) (int, error)

	// CountBySeverity returns the alert count per severity.
	CountBySeverity(ctx context.Context) (map[Severity]int, error)
}
