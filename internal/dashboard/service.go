// Package dashboard aggregates simple counts and percentages over the
// directory, the alert feed and the audit trail for the overview page.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"regwise/internal/alert"
	"regwise/internal/audit"
	dErrors "regwise/pkg/domain-errors"
)

const recentActivityLimit = 5

// Metrics is the aggregate snapshot served to the overview page.
type Metrics struct {
	TotalCountries  int            `json:"totalCountries"`
	ActiveAlerts    int            `json:"activeAlerts"`
	ComplianceScore int            `json:"complianceScore"`
	LastUpdated     time.Time      `json:"lastUpdated"`
	RiskBreakdown   RiskBreakdown  `json:"riskBreakdown"`
	RecentActivity  []ActivityItem `json:"recentActivity"`
}

// RiskBreakdown is the percentage split of alerts by risk bucket.
type RiskBreakdown struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Country     string    `json:"country,omitempty"`
}

// CountryCounter exposes the directory count the aggregator needs.
type CountryCounter interface {
	Count(ctx context.Context) (int, error)
}

// AlertCounter exposes the alert counts the aggregator needs.
type AlertCounter interface {
	CountUnread(ctx context.Context) (int, error)
	CountBySeverity(ctx context.Context) (map[alert.Severity]int, error)
}

// Service computes dashboard metrics with one parallel fan-out over the
// stores per request.
type Service struct {
	countries CountryCounter
	alerts    AlertCounter
	activity  audit.Store
	logger    *slog.Logger
}

func NewService(countries CountryCounter, alerts AlertCounter, activity audit.Store, logger *slog.Logger) *Service {
	return &Service{countries: countries, alerts: alerts, activity: activity, logger: logger}
}

// Snapshot gathers the aggregate metrics. Store reads run in parallel with
// shared cancellation; the first failure aborts the snapshot.
func (s *Service) Snapshot(ctx context.Context) (*Metrics, error) {
	var (
		totalCountries int
		unread         int
		bySeverity     map[alert.Severity]int
		events         []audit.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalCountries, err = s.countries.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = s.alerts.CountUnread(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bySeverity, err = s.alerts.CountBySeverity(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.activity.ListRecent(gctx, recentActivityLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to aggregate metrics")
	}

	total := 0
	for _, n := range bySeverity {
		total += n
	}

	return &Metrics{
		TotalCountries:  totalCountries,
		ActiveAlerts:    unread,
		ComplianceScore: complianceScore(total, unread),
		LastUpdated:     time.Now(),
		RiskBreakdown:   breakdown(bySeverity, total),
		RecentActivity:  toActivity(events),
	}, nil
}

// complianceScore is the share of alerts already acknowledged, as a
// percentage. An empty feed scores 100.
func complianceScore(total, unread int) int {
	if total == 0 {
		return 100
	}
	return (total - unread) * 100 / total
}

// breakdown buckets critical with high and returns integer percentages.
func breakdown(bySeverity map[alert.Severity]int, total int) RiskBreakdown {
	if total == 0 {
		return RiskBreakdown{}
	}
	pct := func(n int) int { return n * 100 / total }
	return RiskBreakdown{
		Low:    pct(bySeverity[alert.SeverityLow]),
		Medium: pct(bySeverity[alert.SeverityMedium]),
		High:   pct(bySeverity[alert.SeverityHigh] + bySeverity[alert.SeverityCritical]),
	}
}

func toActivity(events []audit.Event) []ActivityItem {
	items := make([]ActivityItem, 0, len(events))
	for i, e := range events {
		items = append(items, ActivityItem{
			ID:          fmt.Sprint(i + 1),
			Type:        activityType(e.Action),
			Description: describe(e),
			Timestamp:   e.Timestamp,
			Country:     e.Subject,
		})
	}
	return items
}

func activityType(action string) string {
	switch action {
	case audit.ActionSearch:
		return "search"
	case audit.ActionAlertRead:
		return "alert"
	default:
		return "update"
	}
}

func describe(e audit.Event) string {
	switch e.Action {
	case audit.ActionSearch:
		return "Searched compliance requirements for " + e.Subject
	case audit.ActionAlertRead:
		return "Regulatory alert acknowledged: " + e.Subject
	case audit.ActionOnboardingSaved:
		return "Onboarding workflow updated for " + e.Subject
	case audit.ActionUserRegistered:
		return "New analyst account registered"
	case audit.ActionUserLoggedIn:
		return "Analyst signed in"
	default:
		return e.Action
	}
}
