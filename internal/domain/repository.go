package domain

import "context"

// TripStore defines the interface for the analytics store.
// This follows the Dependency Inversion Principle - domain defines the interface
type TripStore interface {
	// CountDailyAggregates returns the exact rollup row count for a filter.
	// Only ever issued against the small pre-aggregated table.
	CountDailyAggregates(ctx context.Context, f QueryFilter) (int, error)

	// DailyAggregates fetches one ordered page of rollup rows.
	DailyAggregates(ctx context.Context, f QueryFilter, offset, limit int) ([]DailyAggregate, error)

	// Trips fetches a bounded, recency-ordered sample window of fact rows.
	// Callers must pass a limit already clamped by the sampling policy.
	Trips(ctx context.Context, f QueryFilter, offset, limit int) ([]Trip, error)

	// SummaryTotals reduces the rollup table over the filtered range.
	SummaryTotals(ctx context.Context, f QueryFilter) (SummaryTotals, error)

	// SummaryByService groups the rollup table by service type.
	SummaryByService(ctx context.Context, f QueryFilter) ([]ServiceBreakdown, error)

	// TopBoroughs returns at most limit pickup boroughs by trip count.
	TopBoroughs(ctx context.Context, f QueryFilter, limit int) ([]BoroughBreakdown, error)

	// OverallStats returns unfiltered totals over valid fact rows.
	OverallStats(ctx context.Context) (OverallStats, error)

	// ServiceTypeStats returns the per-service data-quality breakdown.
	ServiceTypeStats(ctx context.Context) ([]ServiceTypeStats, error)

	// Health checks store connectivity.
	Health(ctx context.Context) error
}
