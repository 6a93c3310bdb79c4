// Package country implements the country directory: per-country regulatory
// reference data, the onboarding endpoints built on workflow derivation, and
// the templated compliance summaries.
package country

import (
	"time"

	"regwise/internal/workflow"
)

// Country is one directory record. Either Onboarding or Workflow may be
// present, absent, or both; no invariant ties them together. A non-empty
// Onboarding list wins at read time (see workflow.Derive).
type Country struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Region     string          `json:"region"`
	Currency   string          `json:"currency,omitempty"`
	Population int64           `json:"population,omitempty"`
	Regulators []string        `json:"regulators"`
	Laws       []string        `json:"laws"`
	Onboarding []workflow.Step `json:"onboarding"`
	Workflow   *workflow.Spec  `json:"workflow,omitempty"`
}

// Citation is a reference attached to a compliance summary.
type Citation struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// Summary is a templated compliance summary for one regulatory category.
// Summaries are generated per request and never persisted.
type Summary struct {
	ID          string     `json:"id"`
	Country     string     `json:"country"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Citations   []Citation `json:"citations"`
	LastUpdated time.Time  `json:"lastUpdated"`
	RiskLevel   string     `json:"riskLevel"`
}

// ExportPayload is the document returned by the onboarding export endpoint.
// Code names the download file and stays out of the body.
type ExportPayload struct {
	Code     string          `json:"-"`
	Country  string          `json:"country"`
	Steps    []workflow.Step `json:"steps"`
	Workflow *workflow.Spec  `json:"workflow"`
}
