package postgres

import (
	"context"
	"time"

	"github.com/tlcanalytics/backend/internal/domain"
)

// MockStore implements domain.TripStore for testing/demo mode
type MockStore struct{}

// NewMockStore creates a new mock store
func NewMockStore() *MockStore {
	return &MockStore{}
}

func ptr[T any](v T) *T { return &v }

func mockAggregates() []domain.DailyAggregate {
	day := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	return []domain.DailyAggregate{
		{
			MetricDate:         day,
			ServiceType:        domain.ServiceYellow,
			TotalTrips:         112450,
			TotalRevenue:       2301457.25,
			AvgTripDistance:    ptr(3.1),
			AvgTripDurationSec: ptr(912.0),
			AvgFareAmount:      ptr(18.45),
		},
		{
			MetricDate:         day,
			ServiceType:        domain.ServiceGreen,
			TotalTrips:         8120,
			TotalRevenue:       141233.80,
			AvgTripDistance:    ptr(2.7),
			AvgTripDurationSec: ptr(845.0),
			AvgFareAmount:      ptr(16.10),
		},
	}
}

// CountDailyAggregates returns the mock rollup row count
func (r *MockStore) CountDailyAggregates(ctx context.Context, f domain.QueryFilter) (int, error) {
	return len(mockAggregates()), nil
}

// DailyAggregates returns mock rollup rows
func (r *MockStore) DailyAggregates(ctx context.Context, f domain.QueryFilter, offset, limit int) ([]domain.DailyAggregate, error) {
	rows := mockAggregates()
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// Trips returns mock fact rows
func (r *MockStore) Trips(ctx context.Context, f domain.QueryFilter, offset, limit int) ([]domain.Trip, error) {
	if offset > 0 || limit == 0 {
		return nil, nil
	}
	dropoff := time.Now().Add(-2 * time.Hour)
	return []domain.Trip{
		{
			TripID:          1,
			ServiceType:     domain.ServiceYellow,
			PickupDatetime:  dropoff.Add(-15 * time.Minute),
			DropoffDatetime: dropoff,
			PickupBorough:   ptr("Manhattan"),
			PickupZone:      ptr("Midtown Center"),
			DropoffBorough:  ptr("Brooklyn"),
			DropoffZone:     ptr("Williamsburg"),
			TripDistance:    ptr(4.2),
			TotalAmount:     ptr(23.15),
			TripDurationSec: ptr(900),
		},
	}, nil
}

// SummaryTotals returns mock summary totals
func (r *MockStore) SummaryTotals(ctx context.Context, f domain.QueryFilter) (domain.SummaryTotals, error) {
	return domain.SummaryTotals{
		TotalTrips:     120570,
		TotalRevenue:   2442691.05,
		AvgDistance:    3.05,
		AvgDurationSec: 903.4,
		AvgFare:        18.2,
	}, nil
}

// SummaryByService returns a mock service breakdown
func (r *MockStore) SummaryByService(ctx context.Context, f domain.QueryFilter) ([]domain.ServiceBreakdown, error) {
	return []domain.ServiceBreakdown{
		{ServiceType: domain.ServiceYellow, TotalTrips: 112450, TotalRevenue: 2301457.25},
		{ServiceType: domain.ServiceGreen, TotalTrips: 8120, TotalRevenue: 141233.80},
	}, nil
}

// TopBoroughs returns a mock borough breakdown
func (r *MockStore) TopBoroughs(ctx context.Context, f domain.QueryFilter, limit int) ([]domain.BoroughBreakdown, error) {
	boroughs := []domain.BoroughBreakdown{
		{PickupBorough: "Manhattan", TripCount: 90210, AvgDistance: 2.6},
		{PickupBorough: "Brooklyn", TripCount: 15400, AvgDistance: 3.8},
		{PickupBorough: "Queens", TripCount: 10980, AvgDistance: 6.1},
	}
	if limit < len(boroughs) {
		boroughs = boroughs[:limit]
	}
	return boroughs, nil
}

// OverallStats returns mock overall totals
func (r *MockStore) OverallStats(ctx context.Context) (domain.OverallStats, error) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Now().Truncate(24 * time.Hour)
	return domain.OverallStats{
		TotalTrips:   152_340_118,
		TotalRevenue: 3_104_882_410.52,
		StartDate:    &start,
		EndDate:      &end,
	}, nil
}

// ServiceTypeStats returns a mock data-quality breakdown
func (r *MockStore) ServiceTypeStats(ctx context.Context) ([]domain.ServiceTypeStats, error) {
	return []domain.ServiceTypeStats{
		{ServiceType: domain.ServiceFHV, TotalTrips: 21_004_110, ValidTrips: 19_530_822, DataQualityPct: 92.99, TotalRevenue: 0},
		{ServiceType: domain.ServiceFHVHV, TotalTrips: 60_118_402, ValidTrips: 58_904_561, DataQualityPct: 97.98, TotalRevenue: 1_204_881_230.10},
		{ServiceType: domain.ServiceGreen, TotalTrips: 4_120_339, ValidTrips: 4_008_120, DataQualityPct: 97.28, TotalRevenue: 71_882_019.34},
		{ServiceType: domain.ServiceYellow, TotalTrips: 67_097_267, ValidTrips: 65_881_004, DataQualityPct: 98.19, TotalRevenue: 1_828_119_161.08},
	}, nil
}

// Health always returns nil in mock mode
func (r *MockStore) Health(ctx context.Context) error {
	return nil
}
