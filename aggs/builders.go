package aggs

// Typed constructors for the common bucket and metric aggregations.

// NewTerms constructs a terms bucket aggregation.
func NewTerms(field string) *Node {
	return New("terms", map[string]any{"field": field})
}

// NewHistogram constructs a histogram bucket aggregation.
func NewHistogram(field string, interval float64) *Node {
	return New("histogram", map[string]any{"field": field, "interval": interval})
}

// NewDateHistogram constructs a date_histogram bucket aggregation with the
// given calendar interval, e.g. "month".
func NewDateHistogram(field, calendarInterval string) *Node {
	return New("date_histogram", map[string]any{
		"field":             field,
		"calendar_interval": calendarInterval,
	})
}

// NewRange constructs a range bucket aggregation. Each range holds keys such
// as from, to and key.
func NewRange(field string, ranges []map[string]any) *Node {
	rs := make([]any, len(ranges))
	for i, r := range ranges {
		rs[i] = r
	}
	return New("range", map[string]any{"field": field, "ranges": rs})
}

// NewFilters constructs a filters bucket aggregation from named filters.
func NewFilters(filters map[string]any) *Node {
	return New("filters", map[string]any{"filters": filters})
}

// NewNested constructs a nested bucket aggregation over the given path.
func NewNested(path string) *Node {
	return New("nested", map[string]any{"path": path})
}

// NewTopHits constructs a top_hits metric aggregation.
func NewTopHits(size int) *Node {
	return New("top_hits", map[string]any{"size": size})
}

// NewAvg constructs an avg metric aggregation.
func NewAvg(field string) *Node {
	return New("avg", map[string]any{"field": field})
}

// NewMin constructs a min metric aggregation.
func NewMin(field string) *Node {
	return New("min", map[string]any{"field": field})
}

// NewMax constructs a max metric aggregation.
func NewMax(field string) *Node {
	return New("max", map[string]any{"field": field})
}

// NewSum constructs a sum metric aggregation.
func NewSum(field string) *Node {
	return New("sum", map[string]any{"field": field})
}

// NewStats constructs a stats metric aggregation.
func NewStats(field string) *Node {
	return New("stats", map[string]any{"field": field})
}

// NewCardinality constructs a cardinality metric aggregation.
func NewCardinality(field string) *Node {
	return New("cardinality", map[string]any{"field": field})
}

// NewValueCount constructs a value_count metric aggregation.
func NewValueCount(field string) *Node {
	return New("value_count", map[string]any{"field": field})
}

// NewPercentiles constructs a percentiles metric aggregation.
func NewPercentiles(field string) *Node {
	return New("percentiles", map[string]any{"field": field})
}
