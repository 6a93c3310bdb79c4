package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regwise/pkg/requestcontext"
)

type countingDrops struct {
	n int
}

func (c *countingDrops) IncrementAuditDropped() { c.n++ }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitEnrichesFromContext(t *testing.T) {
	recorder := NewRecorder(4, discardLogger(), &countingDrops{})

	ctx := requestcontext.WithUserID(context.Background(), "u1")
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	recorder.Emit(ctx, ActionSearch, "Singapore")

	select {
	case event := <-recorder.Inbox():
		assert.Equal(t, ActionSearch, event.Action)
		assert.Equal(t, "Singapore", event.Subject)
		assert.Equal(t, "u1", event.UserID)
		assert.Equal(t, "req-1", event.RequestID)
		assert.False(t, event.Timestamp.IsZero())
	default:
		t.Fatal("no event in inbox")
	}
}

func TestEmitNeverBlocks(t *testing.T) {
	drops := &countingDrops{}
	recorder := NewRecorder(1, discardLogger(), drops)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			recorder.Emit(context.Background(), ActionSearch, "x")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full inbox")
	}
	assert.Equal(t, 9, drops.n)
}

func TestWorkerPersistsEvents(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(16, discardLogger(), nil)
	worker := NewWorker(store, recorder.Inbox(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan error, 1)
	go func() { ran <- worker.Run(ctx) }()

	recorder.Emit(context.Background(), ActionAlertRead, "alert-1")
	recorder.Emit(context.Background(), ActionOnboardingSaved, "Germany")

	require.Eventually(t, func() bool {
		events, err := store.ListRecent(context.Background(), 10)
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-ran)

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, ActionOnboardingSaved, events[0].Action)
	assert.Equal(t, ActionAlertRead, events[1].Action)
}

func TestMemoryStoreWindow(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < memoryCap+5; i++ {
		require.NoError(t, store.Append(context.Background(), Event{
			Action:  ActionSearch,
			Subject: fmt.Sprintf("s%d", i),
		}))
	}

	events, err := store.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, fmt.Sprintf("s%d", memoryCap+4), events[0].Subject)

	all, err := store.ListRecent(context.Background(), memoryCap*2)
	require.NoError(t, err)
	assert.Len(t, all, memoryCap)
}
