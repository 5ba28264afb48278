package service

import (
	"context"
	"fmt"
	"log"

	"github.com/tlcanalytics/backend/internal/cache"
	"github.com/tlcanalytics/backend/internal/domain"
	"github.com/tlcanalytics/backend/internal/query"
	"github.com/tlcanalytics/backend/pkg/utils"
)

const (
	// DefaultCacheCapacity bounds each per-kind result cache.
	DefaultCacheCapacity = 50

	// TopBoroughLimit caps the summary borough breakdown query.
	TopBoroughLimit = 5
)

// AggregationService answers the four analytic query shapes. It is the only
// component callers interact with; per response kind it decides between exact
// counting and bounded sampling, and caches reproducible pages.
type AggregationService struct {
	store  TripStore
	policy query.SamplingPolicy

	// One cache instance per response kind since their value shapes differ.
	aggCache     *cache.Store[domain.Page[domain.DailyAggregate]]
	summaryCache *cache.Store[domain.SummaryStats]
}

// NewAggregationService creates a new aggregation service
func NewAggregationService(store TripStore, policy query.SamplingPolicy, cacheCapacity int) *AggregationService {
	if cacheCapacity <= 0 {
		cacheCapacity = DefaultCacheCapacity
	}
	return &AggregationService{
		store:        store,
		policy:       policy,
		aggCache:     cache.New[domain.Page[domain.DailyAggregate]](cacheCapacity),
		summaryCache: cache.New[domain.SummaryStats](cacheCapacity),
	}
}

func validateRequest(f domain.QueryFilter, page domain.PageRequest) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := page.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
	}
	return nil
}

// DailyAggregates returns one page of the daily rollup. The rollup is small
// enough for an exact count; a zero count short-circuits without a data query.
func (s *AggregationService) DailyAggregates(ctx context.Context, f domain.QueryFilter, page domain.PageRequest) (domain.Page[domain.DailyAggregate], error) {
	var zero domain.Page[domain.DailyAggregate]
	if err := validateRequest(f, page); err != nil {
		return zero, err
	}

	key := fmt.Sprintf("daily:%s:%d:%d", f.Key(), page.Page, page.PageSize)
	if cached, ok := s.aggCache.Get(key); ok {
		return cached, nil
	}

	total, err := s.store.CountDailyAggregates(ctx, f)
	if err != nil {
		return zero, err
	}
	if total == 0 {
		result := domain.EmptyPage[domain.DailyAggregate](page, 0)
		s.aggCache.Put(key, result)
		return result, nil
	}

	rows, err := s.store.DailyAggregates(ctx, f, page.Offset(), page.PageSize)
	if err != nil {
		return zero, err
	}
	if rows == nil {
		rows = []domain.DailyAggregate{}
	}

	result := domain.Page[domain.DailyAggregate]{
		Data:       rows,
		Pagination: domain.NewPagination(page, total),
	}
	s.aggCache.Put(key, result)
	return result, nil
}

// Trips returns a bounded sample of fact rows. The fact table is never
// counted exactly and never scanned past the sampling cap; the reported
// total is min(actual matches, cap). Infrequent enough to skip caching.
func (s *AggregationService) Trips(ctx context.Context, f domain.QueryFilter, page domain.PageRequest) (domain.Page[domain.Trip], error) {
	var zero domain.Page[domain.Trip]
	if err := validateRequest(f, page); err != nil {
		return zero, err
	}

	strategy := s.policy.Strategy(query.FactTrips)
	offset := page.Offset()
	limit := strategy.Window(offset, page.PageSize)
	if limit == 0 {
		// Requested offset lies past the cap: report the cap as the total
		// without touching the store.
		return domain.EmptyPage[domain.Trip](page, strategy.SampleCap), nil
	}

	rows, err := s.store.Trips(ctx, f, offset, limit)
	if err != nil {
		return zero, err
	}
	if rows == nil {
		rows = []domain.Trip{}
	}

	total := strategy.SampleCap
	if len(rows) < limit {
		// The window came back short, so the true match count is known and
		// below the cap.
		total = offset + len(rows)
	}

	return domain.Page[domain.Trip]{
		Data:       rows,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// Summary returns the dashboard card rollup for a range. The borough
// breakdown is a separate bounded query; when it fails the rest of the
// summary is still served with the gap explicitly flagged.
func (s *AggregationService) Summary(ctx context.Context, f domain.QueryFilter) (domain.SummaryStats, error) {
	var zero domain.SummaryStats
	if err := f.Validate(); err != nil {
		return zero, err
	}

	key := "summary:" + f.Key()
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached, nil
	}

	totals, err := s.store.SummaryTotals(ctx, f)
	if err != nil {
		return zero, err
	}

	byService, err := s.store.SummaryByService(ctx, f)
	if err != nil {
		return zero, err
	}
	if byService == nil {
		byService = []domain.ServiceBreakdown{}
	}

	result := domain.SummaryStats{
		TotalTrips:         totals.TotalTrips,
		TotalRevenue:       totals.TotalRevenue,
		AvgDistance:        utils.RoundTo(totals.AvgDistance, 2),
		AvgDurationMinutes: utils.RoundTo(totals.AvgDurationSec/60, 1),
		AvgFare:            utils.RoundTo(totals.AvgFare, 2),
		ByServiceType:      byService,
		ByBorough:          []domain.BoroughBreakdown{},
	}

	byBorough, err := s.store.TopBoroughs(ctx, f, TopBoroughLimit)
	if err != nil {
		log.Printf("Summary borough breakdown failed, serving partial result: %v", err)
		result.BoroughsUnavailable = true
		// Degraded results are not cached; a later request may succeed.
		return result, nil
	}
	if byBorough != nil {
		result.ByBorough = byBorough
	}

	s.summaryCache.Put(key, result)
	return result, nil
}

// Statistics returns unfiltered overall totals plus the per-service
// data-quality breakdown. Cheap enough to recompute on every call.
func (s *AggregationService) Statistics(ctx context.Context) (domain.StatisticsSummary, error) {
	var zero domain.StatisticsSummary

	overall, err := s.store.OverallStats(ctx)
	if err != nil {
		return zero, err
	}

	byService, err := s.store.ServiceTypeStats(ctx)
	if err != nil {
		return zero, err
	}
	if byService == nil {
		byService = []domain.ServiceTypeStats{}
	}

	result := domain.StatisticsSummary{
		TotalTrips:    overall.TotalTrips,
		TotalRevenue:  overall.TotalRevenue,
		ByServiceType: byService,
	}
	if overall.StartDate != nil {
		result.DateRange.Start = overall.StartDate.Format("2006-01-02")
	}
	if overall.EndDate != nil {
		result.DateRange.End = overall.EndDate.Format("2006-01-02")
	}
	return result, nil
}

// Health reports store connectivity.
func (s *AggregationService) Health(ctx context.Context) error {
	return s.store.Health(ctx)
}
