package domain

import "time"

// SummaryTotals holds the SUM/AVG reducers over the rollup table for a range.
// Zero values mean "no matching rows", never null.
type SummaryTotals struct {
	TotalTrips     int64
	TotalRevenue   float64
	AvgDistance    float64
	AvgDurationSec float64
	AvgFare        float64
}

// ServiceBreakdown is one row of the per-service-type summary breakdown.
type ServiceBreakdown struct {
	ServiceType  ServiceType `json:"service_type"`
	TotalTrips   int64       `json:"total_trips"`
	TotalRevenue float64     `json:"total_revenue"`
}

// BoroughBreakdown is one row of the bounded top-N pickup borough breakdown.
type BoroughBreakdown struct {
	PickupBorough string  `json:"pickup_borough"`
	TripCount     int64   `json:"trip_count"`
	AvgDistance   float64 `json:"avg_distance"`
}

// SummaryStats backs the dashboard summary cards for a date range.
type SummaryStats struct {
	TotalTrips         int64              `json:"total_trips"`
	TotalRevenue       float64            `json:"total_revenue"`
	AvgDistance        float64            `json:"avg_distance"`
	AvgDurationMinutes float64            `json:"avg_duration_minutes"`
	AvgFare            float64            `json:"avg_fare"`
	ByServiceType      []ServiceBreakdown `json:"by_service_type"`
	ByBorough          []BoroughBreakdown `json:"by_borough"`
	// BoroughsUnavailable distinguishes "the borough query failed" from
	// "zero boroughs observed".
	BoroughsUnavailable bool `json:"boroughs_unavailable,omitempty"`
}

// OverallStats holds the single-query totals over all valid fact rows.
type OverallStats struct {
	TotalTrips   int64
	TotalRevenue float64
	StartDate    *time.Time
	EndDate      *time.Time
}

// ServiceTypeStats is one row of the per-service data-quality breakdown.
type ServiceTypeStats struct {
	ServiceType    ServiceType `json:"service_type"`
	TotalTrips     int64       `json:"total_trips"`
	ValidTrips     int64       `json:"valid_trips"`
	DataQualityPct float64     `json:"data_quality_pct"`
	TotalRevenue   float64     `json:"total_revenue"`
}

// DateRangeInfo is the observed span of valid fact rows.
type DateRangeInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StatisticsSummary is the unfiltered overall statistics response.
type StatisticsSummary struct {
	TotalTrips    int64              `json:"total_trips"`
	TotalRevenue  float64            `json:"total_revenue"`
	DateRange     DateRangeInfo      `json:"date_range"`
	ByServiceType []ServiceTypeStats `json:"by_service_type"`
}
