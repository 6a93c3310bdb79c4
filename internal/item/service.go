package item

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"regwise/internal/audit"
	dErrors "regwise/pkg/domain-errors"
)

// AuditRecorder records item mutations. Emit never blocks.
type AuditRecorder interface {
	Emit(ctx context.Context, action, subject string)
}

// Service owns item reads and writes.
type Service struct {
	store  Store
	logger *slog.Logger
	audit  AuditRecorder
}

func NewService(store Store, logger *slog.Logger, audit AuditRecorder) *Service {
	return &Service{store: store, logger: logger, audit: audit}
}

// List returns items newest first.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch items")
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Get resolves one item by id.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch item")
	}
	return it, nil
}

// Create stores a new item. Title is the only required field.
func (s *Service) Create(ctx context.Context, in Input) (*Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Title is required")
	}

	now := time.Now()
	it := Item{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Meta:        in.Meta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, it); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create item")
	}

	s.audit.Emit(ctx, audit.ActionItemCreated, it.Title)
	return &it, nil
}

// Update overwrites an item's title, description, and meta.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Title is required")
	}

	it, err := s.store.Update(ctx, Item{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Meta:        in.Meta,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update item")
	}

	s.audit.Emit(ctx, audit.ActionItemUpdated, it.Title)
	return it, nil
}

// Delete removes an item. Deleting an id that is already gone succeeds, so
// retried deletes stay safe.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete item")
	}
	s.audit.Emit(ctx, audit.ActionItemDeleted, id)
	return nil
}
