// Package seed loads reference data into the stores: the country directory
// from a JSON file and a pair of sample regulatory alerts. Applying the same
// data twice is safe; countries upsert by code and alerts by a fixed id.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"regwise/internal/alert"
	"regwise/internal/country"
)

// ParseCountries decodes the countries JSON document.
func ParseCountries(r io.Reader) ([]country.Country, error) {
	var countries []country.Country
	if err := json.NewDecoder(r).Decode(&countries); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}
	return countries, nil
}

// SampleAlerts returns the built-in demo alerts. IDs are fixed so reseeding
// does not duplicate them.
func SampleAlerts(now time.Time) []alert.Alert {
	return []alert.Alert{
		{
			ID:          "seed-alert-fincen-aml",
			Country:     "United States",
			Title:       "New AML Reporting Requirements Effective Q1 2025",
			Description: "FinCEN announces enhanced beneficial ownership reporting requirements for financial institutions.",
			Severity:    alert.SeverityHigh,
			Date:        now,
			IsRead:      false,
			SourceURL:   "https://example.com/aml-q1-2025",
		},
		{
			ID:          "seed-alert-mas-fraud",
			Country:     "Singapore",
			Title:       "MAS Implements Real-time Payment Fraud Monitoring",
			Description: "Mandatory fraud surveillance for all payment service providers by Dec 2024.",
			Severity:    alert.SeverityCritical,
			Date:        now.Add(-3 * 24 * time.Hour),
			IsRead:      false,
			SourceURL:   "https://example.com/mas-fraud",
		},
	}
}

// Apply upserts the given countries and the sample alerts.
func Apply(ctx context.Context, countries country.Store, alerts alert.Store, data []country.Country, logger *slog.Logger) error {
	for _, c := range data {
		if err := countries.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert country %s: %w", c.Code, err)
		}
	}
	for _, a := range SampleAlerts(time.Now()) {
		if err := alerts.Create(ctx, a); err != nil {
			return fmt.Errorf("create alert %q: %w", a.Title, err)
		}
	}
	logger.Info("seeded reference data", "countries", len(data))
	return nil
}
