package item

import (
	"context"

	dErrors "regwise/pkg/domain-errors"
)

// listCap bounds how many items a single list call returns.
const listCap = 100

// ErrNotFound is returned when an item id resolves to nothing.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "Item not found")

// Store persists items.
type Store interface {
	// List returns items newest first, capped at listCap.
	List(ctx context.Context) ([]Item, error)

	// Get resolves one item; ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Item, error)

	// Create inserts a new item.
	Create(ctx context.Context, it Item) error

	// Update overwrites title, description, and meta; ErrNotFound when absent.
	Update(ctx context.Context, it Item) (*Item, error)

	// Delete removes an item. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
