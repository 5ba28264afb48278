package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFilter marks client errors caught before any query is issued.
var ErrInvalidFilter = errors.New("invalid filter")

const dateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] day range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate rejects inverted ranges.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start_date %s is after end_date %s",
			ErrInvalidFilter, r.Start.Format(dateLayout), r.End.Format(dateLayout))
	}
	return nil
}

// QueryFilter is the validated, immutable representation of a request's
// date range and optional categorical filters. It is used only to derive
// cache keys and parameterized predicates.
type QueryFilter struct {
	Range       DateRange
	ServiceType ServiceType // empty means all
	Borough     string      // empty means all, pickup borough otherwise
}

// Validate re-asserts the range invariant and the service type enum.
func (f QueryFilter) Validate() error {
	if err := f.Range.Validate(); err != nil {
		return err
	}
	if _, err := ParseServiceType(string(f.ServiceType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return nil
}

// Key returns the canonical signature fragment of this filter. Two requests
// with identical logical filters always produce the same key.
func (f QueryFilter) Key() string {
	return fmt.Sprintf("%s:%s:%s:%s",
		f.Range.Start.Format(dateLayout),
		f.Range.End.Format(dateLayout),
		f.ServiceType,
		f.Borough,
	)
}
