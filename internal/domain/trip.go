package domain

import (
	"fmt"
	"time"
)

// ServiceType is the closed set of TLC trip service categories.
type ServiceType string

const (
	ServiceYellow ServiceType = "yellow"
	ServiceGreen  ServiceType = "green"
	ServiceFHV    ServiceType = "fhv"
	ServiceFHVHV  ServiceType = "fhvhv"
)

// ParseServiceType converts a query-string value into a ServiceType.
// The empty string is accepted and means "all service types".
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case "", ServiceYellow, ServiceGreen, ServiceFHV, ServiceFHVHV:
		return ServiceType(s), nil
	}
	return "", fmt.Errorf("unknown service type %q", s)
}

// Trip is a single fact-level trip record
type Trip struct {
	TripID          int64       `json:"trip_id"`
	ServiceType     ServiceType `json:"service_type"`
	PickupDatetime  time.Time   `json:"pickup_datetime"`
	DropoffDatetime time.Time   `json:"dropoff_datetime"`
	PickupBorough   *string     `json:"pickup_borough"`
	PickupZone      *string     `json:"pickup_zone"`
	DropoffBorough  *string     `json:"dropoff_borough"`
	DropoffZone     *string     `json:"dropoff_zone"`
	TripDistance    *float64    `json:"trip_distance"`
	TotalAmount     *float64    `json:"total_amount"`
	TripDurationSec *int        `json:"trip_duration_sec"`
}

// DailyAggregate is one row of the pre-computed daily rollup table.
// Produced by the store, never mutated by this layer.
type DailyAggregate struct {
	MetricDate         time.Time   `json:"metric_date"`
	ServiceType        ServiceType `json:"service_type"`
	TotalTrips         int64       `json:"total_trips"`
	TotalRevenue       float64     `json:"total_revenue"`
	AvgTripDistance    *float64    `json:"avg_trip_distance"`
	AvgTripDurationSec *float64    `json:"avg_trip_duration_sec"`
	AvgFareAmount      *float64    `json:"avg_fare_amount"`
}
