package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlcanalytics/backend/internal/domain"
	"github.com/tlcanalytics/backend/internal/query"
)

// DefaultQueryTimeout bounds every store round trip so a pathological
// predicate cannot hold a connection open arbitrarily.
const DefaultQueryTimeout = 15 * time.Second

// PostgresStore implements domain.TripStore
type PostgresStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresStore {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &PostgresStore{pool: pool, queryTimeout: queryTimeout}
}

func (r *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

// CountDailyAggregates returns the exact rollup row count for a filter
func (r *PostgresStore) CountDailyAggregates(ctx context.Context, f domain.QueryFilter) (int, error) {
	pred, err := query.Build(query.DailyMetrics, f)
	if err != nil {
		return 0, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", query.DailyMetrics.Name, pred.Where())

	var count int
	if err := r.pool.QueryRow(ctx, sql, pred.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count daily aggregates: %w", err)
	}
	return count, nil
}

// DailyAggregates retrieves one ordered page of rollup rows
func (r *PostgresStore) DailyAggregates(ctx context.Context, f domain.QueryFilter, offset, limit int) ([]domain.DailyAggregate, error) {
	pred, err := query.Build(query.DailyMetrics, f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT metric_date, service_type, total_trips, total_revenue,
			   avg_trip_distance, avg_trip_duration_sec, avg_fare_amount
		FROM %s
		WHERE %s
		ORDER BY metric_date DESC, service_type ASC
		OFFSET $%d LIMIT $%d
	`, query.DailyMetrics.Name, pred.Where(), pred.NextPlaceholder(), pred.NextPlaceholder()+1)
	args := append(pred.Args, offset, limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query daily aggregates: %w", err)
	}
	defer rows.Close()

	var results []domain.DailyAggregate
	for rows.Next() {
		var a domain.DailyAggregate
		err := rows.Scan(
			&a.MetricDate, &a.ServiceType, &a.TotalTrips, &a.TotalRevenue,
			&a.AvgTripDistance, &a.AvgTripDurationSec, &a.AvgFareAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan aggregate row: %w", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read aggregate rows: %w", err)
	}

	return results, nil
}

// Trips retrieves a bounded window of fact rows, most recent drop-off first
func (r *PostgresStore) Trips(ctx context.Context, f domain.QueryFilter, offset, limit int) ([]domain.Trip, error) {
	pred, err := query.Build(query.FactTrips, f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT trip_id, service_type, pickup_datetime, dropoff_datetime,
			   pickup_borough, pickup_zone, dropoff_borough, dropoff_zone,
			   trip_distance, total_amount, trip_duration_sec
		FROM %s
		WHERE %s
		ORDER BY dropoff_datetime DESC
		OFFSET $%d LIMIT $%d
	`, query.FactTrips.Name, pred.Where(), pred.NextPlaceholder(), pred.NextPlaceholder()+1)
	args := append(pred.Args, offset, limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query trips: %w", err)
	}
	defer rows.Close()

	var results []domain.Trip
	for rows.Next() {
		var t domain.Trip
		err := rows.Scan(
			&t.TripID, &t.ServiceType, &t.PickupDatetime, &t.DropoffDatetime,
			&t.PickupBorough, &t.PickupZone, &t.DropoffBorough, &t.DropoffZone,
			&t.TripDistance, &t.TotalAmount, &t.TripDurationSec,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan trip row: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read trip rows: %w", err)
	}

	return results, nil
}

// SummaryTotals reduces the rollup table over the filtered range
func (r *PostgresStore) SummaryTotals(ctx context.Context, f domain.QueryFilter) (domain.SummaryTotals, error) {
	pred, err := query.Build(query.DailyMetrics, f)
	if err != nil {
		return domain.SummaryTotals{}, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT COALESCE(SUM(total_trips), 0),
			   COALESCE(SUM(total_revenue), 0),
			   COALESCE(AVG(avg_trip_distance), 0),
			   COALESCE(AVG(avg_trip_duration_sec), 0),
			   COALESCE(AVG(avg_fare_amount), 0)
		FROM %s
		WHERE %s
	`, query.DailyMetrics.Name, pred.Where())

	var totals domain.SummaryTotals
	err = r.pool.QueryRow(ctx, sql, pred.Args...).Scan(
		&totals.TotalTrips, &totals.TotalRevenue,
		&totals.AvgDistance, &totals.AvgDurationSec, &totals.AvgFare,
	)
	if err != nil {
		return domain.SummaryTotals{}, fmt.Errorf("postgres: failed to query summary totals: %w", err)
	}
	return totals, nil
}

// SummaryByService groups the rollup table by service type
func (r *PostgresStore) SummaryByService(ctx context.Context, f domain.QueryFilter) ([]domain.ServiceBreakdown, error) {
	pred, err := query.Build(query.DailyMetrics, f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT service_type,
			   COALESCE(SUM(total_trips), 0),
			   COALESCE(SUM(total_revenue), 0)
		FROM %s
		WHERE %s
		GROUP BY service_type
		ORDER BY SUM(total_trips) DESC
	`, query.DailyMetrics.Name, pred.Where())

	rows, err := r.pool.Query(ctx, sql, pred.Args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query service breakdown: %w", err)
	}
	defer rows.Close()

	var results []domain.ServiceBreakdown
	for rows.Next() {
		var b domain.ServiceBreakdown
		if err := rows.Scan(&b.ServiceType, &b.TotalTrips, &b.TotalRevenue); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan service breakdown row: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read service breakdown rows: %w", err)
	}

	return results, nil
}

// TopBoroughs returns at most limit pickup boroughs by trip count. The LIMIT
// keeps the grouped fact-table query explicitly bounded.
func (r *PostgresStore) TopBoroughs(ctx context.Context, f domain.QueryFilter, limit int) ([]domain.BoroughBreakdown, error) {
	pred, err := query.Build(query.FactTrips, f)
	if err != nil {
		return nil, err
	}
	pred.Clauses = append(pred.Clauses, "pickup_borough IS NOT NULL")

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT pickup_borough,
			   COUNT(*),
			   COALESCE(AVG(trip_distance), 0)
		FROM %s
		WHERE %s
		GROUP BY pickup_borough
		ORDER BY COUNT(*) DESC
		LIMIT $%d
	`, query.FactTrips.Name, pred.Where(), pred.NextPlaceholder())
	args := append(pred.Args, limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top boroughs: %w", err)
	}
	defer rows.Close()

	var results []domain.BoroughBreakdown
	for rows.Next() {
		var b domain.BoroughBreakdown
		if err := rows.Scan(&b.PickupBorough, &b.TripCount, &b.AvgDistance); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan borough row: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read borough rows: %w", err)
	}

	return results, nil
}

// OverallStats returns unfiltered totals over valid fact rows in one
// aggregate query
func (r *PostgresStore) OverallStats(ctx context.Context) (domain.OverallStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT COUNT(*),
			   COALESCE(SUM(total_amount), 0),
			   MIN(pickup_date),
			   MAX(pickup_date)
		FROM %s
		WHERE is_valid = TRUE
	`, query.FactTrips.Name)

	var stats domain.OverallStats
	err := r.pool.QueryRow(ctx, sql).Scan(
		&stats.TotalTrips, &stats.TotalRevenue, &stats.StartDate, &stats.EndDate,
	)
	if err != nil {
		return domain.OverallStats{}, fmt.Errorf("postgres: failed to query overall stats: %w", err)
	}
	return stats, nil
}

// ServiceTypeStats returns the per-service data-quality breakdown
func (r *PostgresStore) ServiceTypeStats(ctx context.Context) ([]domain.ServiceTypeStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql := fmt.Sprintf(`
		SELECT service_type,
			   COUNT(*),
			   SUM(CASE WHEN is_valid THEN 1 ELSE 0 END),
			   SUM(CASE WHEN is_valid THEN 1 ELSE 0 END)::float / COUNT(*) * 100,
			   COALESCE(SUM(CASE WHEN is_valid THEN total_amount ELSE 0 END), 0)
		FROM %s
		GROUP BY service_type
		ORDER BY service_type
	`, query.FactTrips.Name)

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query service stats: %w", err)
	}
	defer rows.Close()

	var results []domain.ServiceTypeStats
	for rows.Next() {
		var s domain.ServiceTypeStats
		err := rows.Scan(
			&s.ServiceType, &s.TotalTrips, &s.ValidTrips, &s.DataQualityPct, &s.TotalRevenue,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan service stats row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read service stats rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresStore) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
