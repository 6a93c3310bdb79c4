// Package item implements the generic item CRUD endpoints.
package item

import "time"

// Item is one stored record. Meta carries free-form client data and is
// persisted as-is.
type Item struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Input is the create/update request payload.
type Input struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Meta        map[string]any `json:"meta"`
}
