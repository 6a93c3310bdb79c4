package country

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regwise/internal/workflow"
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

func TestServiceOnboardingDerivesFromSpec(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{
		Code: "SG", Name: "Singapore",
		Workflow: &workflow.Spec{
			KYCSteps:  []string{"Collect particulars", "Verify identity"},
			Documents: []string{"NRIC or passport"},
			AMLChecks: []string{"PEP screening"},
		},
	}))

	wf, err := svc.Onboarding(context.Background(), "SG")
	require.NoError(t, err)
	assert.Equal(t, "Singapore", wf.Country)
	require.Len(t, wf.Steps, 4)
	assert.Equal(t, "SG-kyc-1", wf.Steps[0].ID)
	assert.Equal(t, "SG-docs-1", wf.Steps[2].ID)
	assert.Equal(t, "SG-aml-1", wf.Steps[3].ID)
	assert.False(t, wf.LastUpdated.IsZero())
}

func TestServiceOnboardingUsesRequestKeyForIDs(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{
		Code: "SG", Name: "Singapore",
		Workflow: &workflow.Spec{KYCSteps: []string{"Collect particulars"}},
	}))

	// Looking up by name keys the generated ids off the name, as the lookup
	// key is what feeds the derivation.
	wf, err := svc.Onboarding(context.Background(), "Singapore")
	require.NoError(t, err)
	assert.Equal(t, "Singapore-kyc-1", wf.Steps[0].ID)
}

func TestServiceOnboardingUnknownCountry(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Onboarding(context.Background(), "ZZ")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	assert.Equal(t, "Country not found", dErrors.MessageOf(err))
}

func TestServiceReplaceOnboardingEmitsAudit(t *testing.T) {
	svc, store, audit := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{Code: "US", Name: "United States"}))

	steps := []workflow.Step{{ID: "US-kyc-1", StepNumber: 1, Title: "Verify", Required: true}}
	c, err := svc.ReplaceOnboarding(context.Background(), "US", steps)
	require.NoError(t, err)
	assert.Len(t, c.Onboarding, 1)

	require.Len(t, audit.events, 1)
	assert.Equal(t, "onboarding_saved", audit.events[0].action)
	assert.Equal(t, "United States", audit.events[0].subject)
}

func TestServiceSummaries(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{
		Code: "US", Name: "United States",
		Workflow: &workflow.Spec{
			KYCSteps:  []string{"CIP data", "Verify ID", "OFAC screen", "Extra step"},
			AMLChecks: []string{"Beneficial ownership", "SAR monitoring"},
		},
	}))

	summaries, err := svc.Summaries(context.Background(), "US")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	aml := summaries[0]
	assert.Equal(t, "US-aml", aml.ID)
	assert.Equal(t, "high", aml.RiskLevel)
	assert.Equal(t, "Beneficial ownership; SAR monitoring", aml.Summary)

	kyc := summaries[1]
	assert.Equal(t, "US-kyc", kyc.ID)
	assert.Equal(t, "medium", kyc.RiskLevel)
	// Only the first three entries make it into the sentence.
	assert.Equal(t, "CIP data; Verify ID; OFAC screen", kyc.Summary)
}

func TestServiceSummariesFallbackText(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{Code: "DE", Name: "Germany"}))

	summaries, err := svc.Summaries(context.Background(), "DE")
	require.NoError(t, err)
	assert.Equal(t, "AML/CTF requirements include risk based KYC, transaction monitoring.", summaries[0].Summary)
	assert.Equal(t, "Standard KYC steps", summaries[1].Summary)
}

func TestServiceExportUsesStoredStepsOnly(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{
		Code: "US", Name: "United States",
		Workflow: &workflow.Spec{KYCSteps: []string{"Verify"}},
	}))

	// No stored onboarding: export stays empty even though derivation would
	// produce steps.
	payload, err := svc.Export(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, "US", payload.Code)
	assert.NotNil(t, payload.Steps)
	assert.Empty(t, payload.Steps)
	assert.Equal(t, []string{"Verify"}, payload.Workflow.KYCSteps)

	_, err = svc.ReplaceOnboarding(context.Background(), "US", []workflow.Step{{ID: "US-kyc-1", StepNumber: 1}})
	require.NoError(t, err)

	payload, err = svc.Export(context.Background(), "US")
	require.NoError(t, err)
	assert.Len(t, payload.Steps, 1)
}

func TestServiceResolveName(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, store.Upsert(context.Background(), Country{Code: "SG", Name: "Singapore"}))

	name, ok := svc.ResolveName(context.Background(), "SG")
	assert.True(t, ok)
	assert.Equal(t, "Singapore", name)

	_, ok = svc.ResolveName(context.Background(), "ZZ")
	assert.False(t, ok)
}
