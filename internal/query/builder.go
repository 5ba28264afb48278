// Package query compiles validated filters into parameterized SQL predicates
// and decides the count strategy per logical table. Filter values are always
// bound parameters; only identifiers and clause shape are interpolated.
package query

import (
	"fmt"
	"strings"

	"github.com/tlcanalytics/backend/internal/domain"
)

// Table identifies a logical table and how to query it.
type Table struct {
	Name       string
	DateColumn string
	// FactLevel tables hold individual trip rows at full scale. They get a
	// validity condition and must never see an exact count or unbounded scan.
	FactLevel bool
}

var (
	// DailyMetrics is the pre-aggregated rollup, small enough for exact counts.
	DailyMetrics = Table{Name: "agg_daily_metrics", DateColumn: "metric_date"}

	// FactTrips is the raw trip table, hundreds of millions of rows.
	FactTrips = Table{Name: "fact_trip", DateColumn: "pickup_date", FactLevel: true}
)

// Predicate is an ordered set of boolean conditions with bound arguments
// aligned 1:1 with the $n placeholders they reference.
type Predicate struct {
	Clauses []string
	Args    []any
}

// Where joins the clauses into a WHERE body.
func (p Predicate) Where() string {
	return strings.Join(p.Clauses, " AND ")
}

// NextPlaceholder returns the $n index for the next appended argument.
func (p Predicate) NextPlaceholder() int {
	return len(p.Args) + 1
}

// Build compiles a filter into a predicate over the given table. The date
// range condition is always present; fact-level tables additionally require
// valid rows; service type and borough are appended when set.
func Build(t Table, f domain.QueryFilter) (Predicate, error) {
	if err := f.Validate(); err != nil {
		return Predicate{}, err
	}

	p := Predicate{
		Clauses: []string{fmt.Sprintf("%s BETWEEN $1 AND $2", t.DateColumn)},
		Args:    []any{f.Range.Start, f.Range.End},
	}
	if t.FactLevel {
		p.Clauses = append(p.Clauses, "is_valid = TRUE")
	}
	if f.ServiceType != "" {
		p.Clauses = append(p.Clauses, fmt.Sprintf("service_type = $%d", p.NextPlaceholder()))
		p.Args = append(p.Args, string(f.ServiceType))
	}
	if f.Borough != "" && t.FactLevel {
		p.Clauses = append(p.Clauses, fmt.Sprintf("pickup_borough = $%d", p.NextPlaceholder()))
		p.Args = append(p.Args, f.Borough)
	}
	return p, nil
}
