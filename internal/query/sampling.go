package query

// DefaultSampleCap bounds how many fact rows this layer will ever report as
// available, regardless of the true match count.
const DefaultSampleCap = 500

// CountStrategy tells the caller how to obtain a page's total record count.
type CountStrategy struct {
	// Exact means COUNT(*) with the data query's predicate is affordable.
	Exact bool
	// SampleCap is set when Exact is false: the data query is limited to the
	// cap and the reported total never exceeds it.
	SampleCap int
}

// SamplingPolicy decides, per logical table, whether an exact count is
// affordable or a bounded sample must be served instead.
type SamplingPolicy struct {
	sampleCap int
}

// NewSamplingPolicy creates a policy with the given fact-table cap.
// Non-positive caps fall back to DefaultSampleCap.
func NewSamplingPolicy(sampleCap int) SamplingPolicy {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	return SamplingPolicy{sampleCap: sampleCap}
}

// Strategy returns Exact for rollup tables and Capped for fact-level tables.
func (p SamplingPolicy) Strategy(t Table) CountStrategy {
	if t.FactLevel {
		return CountStrategy{SampleCap: p.sampleCap}
	}
	return CountStrategy{Exact: true}
}

// SampleCap returns the configured fact-table cap.
func (p SamplingPolicy) SampleCap() int {
	return p.sampleCap
}

// Window clamps a page window to the sample cap. A zero limit means the
// requested offset lies past the cap and no data query should be issued.
func (s CountStrategy) Window(offset, pageSize int) (limit int) {
	if s.Exact {
		return pageSize
	}
	remaining := s.SampleCap - offset
	if remaining <= 0 {
		return 0
	}
	if pageSize < remaining {
		return pageSize
	}
	return remaining
}
