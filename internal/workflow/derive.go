package workflow

import (
	"fmt"
	"strings"
)

const complianceLevelStandard = "Standard"

// Derive builds the displayable workflow for a country. A stored onboarding
// step list takes precedence over the raw workflow spec; with neither present
// the result has an empty step list.
//
// Derivation is pure and deterministic: step ids come from the country code
// and position, never from the clock or randomness, so repeated reads without
// intervening writes yield identical step sequences. The caller stamps
// LastUpdated at serve time.
func Derive(code, countryName string, onboarding []Step, spec *Spec) Workflow {
	if len(onboarding) > 0 {
		return Workflow{
			Country:         countryName,
			Steps:           onboarding,
			EstimatedTime:   joinEstimates(onboarding),
			ComplianceLevel: complianceLevelStandard,
		}
	}

	wf := Workflow{
		Country:         countryName,
		Steps:           []Step{},
		EstimatedTime:   "N/A",
		ComplianceLevel: complianceLevelStandard,
	}
	if spec == nil {
		return wf
	}

	n := 1
	for _, title := range spec.KYCSteps {
		wf.Steps = append(wf.Steps, Step{
			ID:          fmt.Sprintf("%s-kyc-%d", code, n),
			StepNumber:  n,
			Title:       title,
			Description: title,
			Required:    true,
			Documents:   []string{},
		})
		n++
	}

	if len(spec.Documents) > 0 {
		wf.Steps = append(wf.Steps, Step{
			ID:          fmt.Sprintf("%s-docs-1", code),
			StepNumber:  n,
			Title:       "Document Submission",
			Description: "Provide required documentation",
			Required:    true,
			Documents:   spec.Documents,
		})
		n++
	}

	if len(spec.AMLChecks) > 0 {
		wf.Steps = append(wf.Steps, Step{
			ID:          fmt.Sprintf("%s-aml-1", code),
			StepNumber:  n,
			Title:       "AML Checks",
			Description: strings.Join(spec.AMLChecks, "; "),
			Required:    true,
			Documents:   []string{},
		})
	}

	// risk_scoring, reporting and ongoing_monitoring are stored but not folded
	// into steps; see DESIGN.md.
	return wf
}

// joinEstimates comma-joins the non-empty per-step estimates, or "N/A" when
// no step carries one.
func joinEstimates(steps []Step) string {
	var estimates []string
	for _, s := range steps {
		if s.EstimatedTime != "" {
			estimates = append(estimates, s.EstimatedTime)
		}
	}
	if len(estimates) == 0 {
		return "N/A"
	}
	return strings.Join(estimates, ", ")
}
