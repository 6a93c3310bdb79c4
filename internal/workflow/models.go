// Package workflow implements the onboarding-workflow domain: the read-time
// derivation of step lists from raw per-country regulatory fields, and the
// draft model used to edit a workflow before persisting it.
package workflow

import "time"

// Step is one onboarding step. stepNumber is 1-based and contiguous within a
// workflow; id is stable across repeated derivations of the same record.
type Step struct {
	ID            string   `json:"id"`
	StepNumber    int      `json:"stepNumber"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Required      bool     `json:"required"`
	Documents     []string `json:"documents"`
	Threshold     string   `json:"threshold,omitempty"`
	Conditions    []string `json:"conditions"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`
}

// Spec holds the raw regulatory workflow fields stored per country. Field
// names follow the stored document format.
type Spec struct {
	KYCSteps          []string `json:"kyc_steps,omitempty"`
	Documents         []string `json:"documents,omitempty"`
	AMLChecks         []string `json:"aml_checks,omitempty"`
	RiskScoring       []string `json:"risk_scoring,omitempty"`
	Reporting         []string `json:"reporting,omitempty"`
	OngoingMonitoring []string `json:"ongoing_monitoring,omitempty"`
}

// Workflow is the derived, displayable step list for one country.
type Workflow struct {
	Country         string    `json:"country"`
	Steps           []Step    `json:"steps"`
	EstimatedTime   string    `json:"estimatedTime"`
	ComplianceLevel string    `json:"complianceLevel"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
