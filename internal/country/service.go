package country

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"regwise/internal/workflow"
	dErrors "regwise/pkg/domain-errors"
)

// AuditRecorder records mutating directory operations. Emit never blocks.
type AuditRecorder interface {
	Emit(ctx context.Context, action, subject string)
}

// Service owns directory reads and the onboarding persistence path. Workflow
// derivation itself lives in the workflow package; this service feeds it.
type Service struct {
	store  Store
	logger *slog.Logger
	audit  AuditRecorder
}

func NewService(store Store, logger *slog.Logger, audit AuditRecorder) *Service {
	return &Service{store: store, logger: logger, audit: audit}
}

// List returns the full directory.
func (s *Service) List(ctx context.Context) ([]Country, error) {
	countries, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch countries")
	}
	if countries == nil {
		countries = []Country{}
	}
	return countries, nil
}

// Onboarding derives the displayable workflow for one country. Step ids are
// derived from the request key, so repeated reads of an unchanged record
// return identical step lists; only LastUpdated moves.
func (s *Service) Onboarding(ctx context.Context, key string) (*workflow.Workflow, error) {
	c, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}
	wf := workflow.Derive(key, c.Name, c.Onboarding, c.Workflow)
	wf.LastUpdated = time.Now()
	return &wf, nil
}

// ReplaceOnboarding overwrites the stored onboarding step list wholesale.
// The previous list, derived or authored, is gone after this call.
func (s *Service) ReplaceOnboarding(ctx context.Context, key string, steps []workflow.Step) (*Country, error) {
	c, err := s.store.ReplaceOnboarding(ctx, key, steps)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save onboarding")
	}
	if s.audit != nil {
		s.audit.Emit(ctx, "onboarding_saved", c.Name)
	}
	return c, nil
}

// SaveOnboarding adapts ReplaceOnboarding to the workflow.Saver contract used
// by draft editing sessions.
func (s *Service) SaveOnboarding(ctx context.Context, code string, steps []workflow.Step) error {
	_, err := s.ReplaceOnboarding(ctx, code, steps)
	return err
}

// Summaries builds the per-category compliance summaries for one country.
// Text is templated from the stored workflow spec; it is placeholder content,
// not retrieval.
func (s *Service) Summaries(ctx context.Context, key string) ([]Summary, error) {
	c, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var amlChecks, kycSteps []string
	if c.Workflow != nil {
		amlChecks = c.Workflow.AMLChecks
		kycSteps = c.Workflow.KYCSteps
	}

	return []Summary{
		{
			ID:          c.Code + "-aml",
			Country:     c.Name,
			Category:    "AML/CTF",
			Title:       "AML Requirements",
			Summary:     firstJoined(amlChecks, "AML/CTF requirements include risk based KYC, transaction monitoring."),
			Citations:   []Citation{},
			LastUpdated: now,
			RiskLevel:   "high",
		},
		{
			ID:          c.Code + "-kyc",
			Country:     c.Name,
			Category:    "KYC",
			Title:       "Customer Identification",
			Summary:     firstJoined(kycSteps, "Standard KYC steps"),
			Citations:   []Citation{},
			LastUpdated: now,
			RiskLevel:   "medium",
		},
	}, nil
}

// Export builds the export payload: the stored onboarding list (never the
// derived one) plus the raw workflow spec.
func (s *Service) Export(ctx context.Context, key string) (*ExportPayload, error) {
	c, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}
	payload := &ExportPayload{
		Code:     c.Code,
		Country:  c.Name,
		Steps:    c.Onboarding,
		Workflow: c.Workflow,
	}
	if payload.Steps == nil {
		payload.Steps = []workflow.Step{}
	}
	if payload.Workflow == nil {
		payload.Workflow = &workflow.Spec{}
	}
	return payload, nil
}

// ResolveName maps a country key to its display name for collaborators that
// treat lookup failure as non-fatal (the search templater).
func (s *Service) ResolveName(ctx context.Context, key string) (string, bool) {
	c, err := s.store.FindByCodeOrName(ctx, key)
	if err != nil {
		return "", false
	}
	return c.Name, true
}

func (s *Service) find(ctx context.Context, key string) (*Country, error) {
	c, err := s.store.FindByCodeOrName(ctx, key)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch country")
	}
	return c, nil
}

// firstJoined joins up to three entries with "; ", or returns the fallback
// sentence when the list is empty.
func firstJoined(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	if len(values) > 3 {
		values = values[:3]
	}
	return strings.Join(values, "; ")
}
