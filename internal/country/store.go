package country

import (
	"context"

	"regwise/internal/workflow"
	dErrors "regwise/pkg/domain-errors"
)

// ErrNotFound keeps country 404s consistent across store implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "Country not found")

// Store is interface-driven so the in-memory and PostgreSQL implementations
// stay swappable without rewiring business code.
type Store interface {
	// List returns every country in the directory.
	List(ctx context.Context) ([]Country, error)

	// FindByCodeOrName resolves a country by its code or, failing that, its
	// display name. Returns ErrNotFound when neither matches.
	FindByCodeOrName(ctx context.Context, key string) (*Country, error)

	// ReplaceOnboarding atomically overwrites the stored onboarding step list
	// of one country and returns the updated record.
	ReplaceOnboarding(ctx context.Context, key string, steps []workflow.Step) (*Country, error)

	// Upsert inserts or replaces a country keyed by code. Used by the seeder.
	Upsert(ctx context.Context, c Country) error

	// Count returns the number of countries in the directory.
	Count(ctx context.Context) (int, error)
}
