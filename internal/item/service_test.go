package item

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "regwise/pkg/domain-errors"
)

type recordedEvent struct {
	action  string
	subject string
}

type stubAudit struct {
	events []recordedEvent
}

func (s *stubAudit) Emit(_ context.Context, action, subject string) {
	s.events = append(s.events, recordedEvent{action: action, subject: subject})
}

func newTestService(t *testing.T) (*Service, *MemoryStore, *stubAudit) {
	t.Helper()
	store := NewMemoryStore()
	audit := &stubAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, logger, audit), store, audit
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _, audit := newTestService(t)

	_, err := svc.Create(context.Background(), Input{Title: "   ", Description: "x"})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
	assert.Equal(t, "Title is required", dErrors.MessageOf(err))
	assert.Empty(t, audit.events)
}

func TestCreateAndGet(t *testing.T) {
	svc, _, audit := newTestService(t)

	created, err := svc.Create(context.Background(), Input{Title: "  GDPR review  ", Description: "annual"})
	require.NoError(t, err)
	assert.Equal(t, "GDPR review", created.Title)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.Len(t, audit.events, 1)
	assert.Equal(t, "item_created", audit.events[0].action)
	assert.Equal(t, "GDPR review", audit.events[0].subject)
}

func TestCreatePersistsMeta(t *testing.T) {
	svc, _, _ := newTestService(t)

	meta := map[string]any{"jurisdiction": "EU", "version": float64(2)}
	created, err := svc.Create(context.Background(), Input{Title: "GDPR checklist", Meta: meta})
	require.NoError(t, err)
	assert.Equal(t, meta, created.Meta)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, meta, got.Meta)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, meta, items[0].Meta)

	// Update can clear meta entirely.
	updated, err := svc.Update(context.Background(), created.ID, Input{Title: "GDPR checklist"})
	require.NoError(t, err)
	assert.Nil(t, updated.Meta)
}

func TestGetUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	assert.Equal(t, "Item not found", dErrors.MessageOf(err))
}

func TestListNewestFirst(t *testing.T) {
	svc, store, _ := newTestService(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Create(context.Background(), Item{
			ID:        string(rune('a' + i)),
			Title:     "item",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[2].ID)
}

func TestListEmptyIsNotNil(t *testing.T) {
	svc, _, _ := newTestService(t)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestUpdate(t *testing.T) {
	svc, _, audit := newTestService(t)

	created, err := svc.Create(context.Background(), Input{Title: "draft"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, Input{Title: "final", Description: "done"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "done", updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = svc.Update(context.Background(), "missing", Input{Title: "x"})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))

	assert.Equal(t, "item_updated", audit.events[len(audit.events)-1].action)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), Input{Title: "to remove"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	// Second delete of the same id still succeeds.
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
