package audit

import (
	"context"
	"log/slog"
	"time"

	"regwise/pkg/requestcontext"
)

// DroppedCounter counts events discarded because the inbox was full.
type DroppedCounter interface {
	IncrementAuditDropped()
}

// Recorder is the producer side of the audit pipeline. Emit enriches the
// event from the request context and hands it to the worker without ever
// blocking a request; a full inbox drops the event and counts the drop.
type Recorder struct {
	inbox   chan Event
	logger  *slog.Logger
	dropped DroppedCounter
}

func NewRecorder(buffer int, logger *slog.Logger, dropped DroppedCounter) *Recorder {
	return &Recorder{
		inbox:   make(chan Event, buffer),
		logger:  logger,
		dropped: dropped,
	}
}

// Inbox exposes the consumer end for the worker.
func (r *Recorder) Inbox() <-chan Event { return r.inbox }

// Emit records one action. Never blocks.
func (r *Recorder) Emit(ctx context.Context, action, subject string) {
	event := Event{
		Timestamp: time.Now(),
		UserID:    requestcontext.UserID(ctx),
		Action:    action,
		Subject:   subject,
		RequestID: requestcontext.RequestID(ctx),
	}
	select {
	case r.inbox <- event:
	default:
		if r.dropped != nil {
			r.dropped.IncrementAuditDropped()
		}
		r.logger.Warn("audit event dropped, inbox full", "action", action)
	}
}
