package services

import (
	"context"

	"github.com/techstock/engine/internal/query"
	"github.com/techstock/engine/internal/repository"
)

// DashboardSummary is the aggregated rollup served to the dashboard. Health
// and cost figures are synthetic placeholders, not telemetry or billing data.
type DashboardSummary struct {
	TotalResources      int64            `json:"total_resources"`
	TotalSubscriptions  int64            `json:"total_subscriptions"`
	TotalResourceGroups int64            `json:"total_resource_groups"`
	TotalLocations      int64            `json:"total_locations"`
	ResourceTypes       []BucketSummary  `json:"resource_types"`
	Locations           []BucketSummary  `json:"locations"`
	Environments        []BucketSummary  `json:"environments"`
	HealthSummary       HealthSummary    `json:"health_summary"`
	CostSummary         CostSummary      `json:"cost_summary"`
}

// BucketSummary is one grouped count with its share of the scoped total.
type BucketSummary struct {
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float32 `json:"percentage"`
}

// HealthSummary is a mocked 85/10/5 split of the scoped total. Real health
// data is out of scope for the catalog.
type HealthSummary struct {
	Healthy  int64 `json:"healthy"`
	Warning  int64 `json:"warning"`
	Critical int64 `json:"critical"`
}

// CostSummary is a mocked flat-rate estimate, not billing data.
type CostSummary struct {
	EstimatedMonthlyCost float64 `json:"estimated_monthly_cost"`
	TopCostDriver        string  `json:"top_cost_driver"`
}

const mockMonthlyCostPerResource = 12.50

type DashboardService interface {
	// Summary aggregates counts and percentages, optionally restricted to a
	// scope. The per-dimension queries are not executed in one snapshot, so
	// concurrent writes can produce a slightly torn view; that is an accepted
	// limitation of the dashboard.
	Summary(ctx context.Context, scope query.Scope) (*DashboardSummary, error)
}

type dashboardService struct {
	resources     repository.ResourceRepository
	subscriptions repository.SubscriptionRepository
	groups        repository.ResourceGroupRepository
}

func NewDashboardService(
	resources repository.ResourceRepository,
	subscriptions repository.SubscriptionRepository,
	groups repository.ResourceGroupRepository,
) DashboardService {
	return &dashboardService{resources: resources, subscriptions: subscriptions, groups: groups}
}

var _ DashboardService = (*dashboardService)(nil)

func (s *dashboardService) Summary(ctx context.Context, scope query.Scope) (*DashboardSummary, error) {
	typeCounts, err := s.resources.CountByType(ctx, scope)
	if err != nil {
		return nil, err
	}
	locationCounts, err := s.resources.CountByLocation(ctx, scope)
	if err != nil {
		return nil, err
	}
	environmentCounts, err := s.resources.CountByEnvironment(ctx, scope)
	if err != nil {
		return nil, err
	}

	var totalResources int64
	for _, b := range typeCounts {
		totalResources += b.Count
	}

	totalSubscriptions, totalResourceGroups, err := s.entityTotals(ctx, scope)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalResources:      totalResources,
		TotalSubscriptions:  totalSubscriptions,
		TotalResourceGroups: totalResourceGroups,
		TotalLocations:      int64(len(locationCounts)),
		ResourceTypes:       withPercentages(typeCounts, totalResources),
		Locations:           withPercentages(locationCounts, totalResources),
		Environments:        withPercentages(environmentCounts, totalResources),
		HealthSummary: HealthSummary{
			Healthy:  int64(float64(totalResources) * 0.85),
			Warning:  int64(float64(totalResources) * 0.10),
			Critical: int64(float64(totalResources) * 0.05),
		},
		CostSummary: CostSummary{
			EstimatedMonthlyCost: float64(totalResources) * mockMonthlyCostPerResource,
			TopCostDriver:        topCostDriver(totalResources),
		},
	}
	return summary, nil
}

// entityTotals resolves subscription and resource group totals under the
// scope: a scoped subscription or group pins its own total to 1; a scoped
// subscription without a group narrows the group total to that subscription.
func (s *dashboardService) entityTotals(ctx context.Context, scope query.Scope) (subs, groups int64, err error) {
	if scope.SubscriptionID != nil {
		subs = 1
	} else {
		subs, err = s.subscriptions.Count(ctx)
		if err != nil {
			return 0, 0, err
		}
	}

	switch {
	case scope.ResourceGroupID != nil:
		groups = 1
	case scope.SubscriptionID != nil:
		groups, err = s.groups.CountBySubscription(ctx, *scope.SubscriptionID)
		if err != nil {
			return 0, 0, err
		}
	default:
		groups, err = s.groups.Count(ctx)
		if err != nil {
			return 0, 0, err
		}
	}
	return subs, groups, nil
}

func withPercentages(buckets []repository.Bucket, total int64) []BucketSummary {
	out := make([]BucketSummary, 0, len(buckets))
	for _, b := range buckets {
		var pct float32
		if total > 0 {
			pct = float32(b.Count) / float32(total) * 100.0
		}
		out = append(out, BucketSummary{Label: b.Label, Count: b.Count, Percentage: pct})
	}
	return out
}

func topCostDriver(totalResources int64) string {
	if totalResources > 0 {
		return "Virtual Machines"
	}
	return "N/A"
}
