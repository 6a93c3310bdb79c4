// Package search implements the templated compliance search: a fixed summary
// sentence parameterized by country and query, with placeholder citations.
// It is deliberately not retrieval; same inputs always produce the same text.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	dErrors "regwise/pkg/domain-errors"
)

// Citation is one reference row in a search result.
type Citation struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// Result is a synthesized compliance answer. Ephemeral; never persisted.
type Result struct {
	Query         string     `json:"query"`
	Country       string     `json:"country"`
	Summary       string     `json:"summary"`
	Citations     []Citation `json:"citations"`
	RelatedTopics []string   `json:"relatedTopics"`
}

// CountryResolver resolves a country key to its display name. Lookup failure
// is non-fatal: the raw key is used instead.
type CountryResolver interface {
	ResolveName(ctx context.Context, key string) (string, bool)
}

// AuditRecorder records served searches. Emit never blocks.
type AuditRecorder interface {
	Emit(ctx context.Context, action, subject string)
}

// Service synthesizes search results.
type Service struct {
	resolver CountryResolver
	audit    AuditRecorder
}

func NewService(resolver CountryResolver, audit AuditRecorder) *Service {
	return &Service{resolver: resolver, audit: audit}
}

// Search builds the templated result. The summary substitutes the resolved
// country name and a lower-cased echo of the query into a fixed sentence; it
// makes no claim of factual relevance.
func (s *Service) Search(ctx context.Context, countryKey, query string) (*Result, error) {
	if query == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "query required")
	}

	name := countryKey
	if s.resolver != nil && countryKey != "" {
		if resolved, ok := s.resolver.ResolveName(ctx, countryKey); ok {
			name = resolved
		}
	}

	subject := name
	if subject == "" {
		subject = "the country"
	}

	if s.audit != nil {
		s.audit.Emit(ctx, "search", subject)
	}

	return &Result{
		Query:   query,
		Country: name,
		Summary: fmt.Sprintf(
			"Based on %s's regulatory framework, %s requires compliance measures such as KYC, transaction monitoring, and reporting to authorities.",
			subject, strings.ToLower(query)),
		Citations: []Citation{{
			ID:     "1",
			Title:  "Sample Regulation",
			URL:    "https://example.com",
			Source: "Regulator",
			Date:   time.Now().UTC().Format(time.RFC3339),
		}},
		RelatedTopics: []string{"KYC", "AML/CTF", "Transaction Monitoring"},
	}, nil
}
