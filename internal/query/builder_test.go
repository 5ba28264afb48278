package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlcanalytics/backend/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rangeFilter(start, end time.Time) domain.QueryFilter {
	return domain.QueryFilter{Range: domain.DateRange{Start: start, End: end}}
}

func TestBuild_DateRangeOnly(t *testing.T) {
	f := rangeFilter(day(2024, 1, 1), day(2024, 1, 31))

	pred, err := Build(DailyMetrics, f)
	require.NoError(t, err)

	require.Equal(t, []string{"metric_date BETWEEN $1 AND $2"}, pred.Clauses)
	require.Equal(t, []any{f.Range.Start, f.Range.End}, pred.Args)
	assert.Equal(t, "metric_date BETWEEN $1 AND $2", pred.Where())
	assert.Equal(t, 3, pred.NextPlaceholder())
}

func TestBuild_FactTableAddsValidityCondition(t *testing.T) {
	f := rangeFilter(day(2024, 1, 1), day(2024, 1, 31))

	pred, err := Build(FactTrips, f)
	require.NoError(t, err)

	require.Equal(t, []string{
		"pickup_date BETWEEN $1 AND $2",
		"is_valid = TRUE",
	}, pred.Clauses)
	// The validity clause binds no parameter.
	require.Len(t, pred.Args, 2)
}

func TestBuild_OptionalConditions(t *testing.T) {
	tests := []struct {
		name        string
		table       Table
		serviceType domain.ServiceType
		borough     string
		wantClauses []string
		wantArgs    int
	}{
		{
			name:        "service type on rollup",
			table:       DailyMetrics,
			serviceType: domain.ServiceYellow,
			wantClauses: []string{
				"metric_date BETWEEN $1 AND $2",
				"service_type = $3",
			},
			wantArgs: 3,
		},
		{
			name:        "service type and borough on fact table",
			table:       FactTrips,
			serviceType: domain.ServiceGreen,
			borough:     "Brooklyn",
			wantClauses: []string{
				"pickup_date BETWEEN $1 AND $2",
				"is_valid = TRUE",
				"service_type = $3",
				"pickup_borough = $4",
			},
			wantArgs: 4,
		},
		{
			name:    "borough ignored on rollup",
			table:   DailyMetrics,
			borough: "Queens",
			wantClauses: []string{
				"metric_date BETWEEN $1 AND $2",
			},
			wantArgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := rangeFilter(day(2024, 2, 1), day(2024, 2, 29))
			f.ServiceType = tt.serviceType
			f.Borough = tt.borough

			pred, err := Build(tt.table, f)
			require.NoError(t, err)

			assert.Equal(t, tt.wantClauses, pred.Clauses)
			// Placeholders and bound values stay aligned 1:1.
			assert.Len(t, pred.Args, tt.wantArgs)
		})
	}
}

func TestBuild_BoundValuesNotInterpolated(t *testing.T) {
	f := rangeFilter(day(2024, 1, 1), day(2024, 1, 2))
	f.Borough = "Manhattan'; DROP TABLE fact_trip; --"

	pred, err := Build(FactTrips, f)
	require.NoError(t, err)

	assert.NotContains(t, pred.Where(), "DROP TABLE")
	assert.Contains(t, pred.Args, f.Borough)
}

func TestBuild_RejectsInvertedRange(t *testing.T) {
	f := rangeFilter(day(2024, 2, 1), day(2024, 1, 1))

	_, err := Build(DailyMetrics, f)
	require.ErrorIs(t, err, domain.ErrInvalidFilter)
}
