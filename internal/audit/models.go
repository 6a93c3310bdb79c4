// Package audit records key actions (workflow saves, alert reads, auth
// events, searches) for the dashboard's activity feed and for traceability.
package audit

import (
	"context"
	"time"
)

// Event is one recorded action. Kept transport-agnostic so stores can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId,omitempty"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

// Known actions.
const (
	ActionSearch          = "search"
	ActionAlertRead       = "alert_read"
	ActionOnboardingSaved = "onboarding_saved"
	ActionUserRegistered  = "user_registered"
	ActionUserLoggedIn    = "user_logged_in"
	ActionItemCreated     = "item_created"
	ActionItemUpdated     = "item_updated"
	ActionItemDeleted     = "item_deleted"
	ActionFileUploaded    = "file_uploaded"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
