package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the recorder's inbox and persists them.
// Store failures are logged and skipped; the audit trail is best-effort and
// must never take the service down.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until the context is cancelled. Cancellation is the
// normal way to stop the worker and is not an error.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("append audit event failed",
					"error", err,
					"action", event.Action,
				)
			}
		}
	}
}
