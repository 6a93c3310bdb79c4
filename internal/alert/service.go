package alert

import (
	"context"
	"log/slog"

	dErrors "regwise/pkg/domain-errors"
)

// AuditRecorder records read-state changes. Emit never blocks.
type AuditRecorder interface {
	Emit(ctx context.Context, action, subject string)
}

// Service exposes the feed operations. The feed performs no filtering beyond
// the optional country parameter; severity and read-state filters belong to
// the client.
type Service struct {
	store  Store
	logger *slog.Logger
	audit  AuditRecorder
}

func NewService(store Store, logger *slog.Logger, audit AuditRecorder) *Service {
	return &Service{store: store, logger: logger, audit: audit}
}

// List returns alerts newest-first, optionally restricted to one country.
func (s *Service) List(ctx context.Context, country string) ([]Alert, error) {
	alerts, err := s.store.List(ctx, country)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch alerts")
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	return alerts, nil
}

// MarkRead flips isRead on one alert and returns the updated record.
func (s *Service) MarkRead(ctx context.Context, id string) (*Alert, error) {
	a, err := s.store.MarkRead(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark alert read")
	}
	if s.audit != nil {
		s.audit.Emit(ctx, "alert_read", a.Title)
	}
	return a, nil
}
