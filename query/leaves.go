package query

// Typed constructors for the common leaf and compound kinds. They cover the
// frequent cases; Q and FromMap remain the general entry points.

func newLeaf(kind string, params map[string]any) *Node {
	return &Node{kind: kind, params: params}
}

// NewMatch constructs a match query on a single field.
func NewMatch(field string, value any) *Node {
	return newLeaf("match", map[string]any{field: value})
}

// NewMatchPhrase constructs a match_phrase query on a single field.
func NewMatchPhrase(field string, value any) *Node {
	return newLeaf("match_phrase", map[string]any{field: value})
}

// NewTerm constructs a term query on a single field.
func NewTerm(field string, value any) *Node {
	return newLeaf("term", map[string]any{field: value})
}

// NewTerms constructs a terms query matching any of the given values.
func NewTerms(field string, values ...any) *Node {
	return newLeaf("terms", map[string]any{field: values})
}

// NewRange constructs a range query; bounds holds keys like gte, lt, format.
func NewRange(field string, bounds map[string]any) *Node {
	return newLeaf("range", map[string]any{field: bounds})
}

// NewExists constructs an exists query.
func NewExists(field string) *Node {
	return newLeaf("exists", map[string]any{"field": field})
}

// NewIds constructs an ids query.
func NewIds(ids ...string) *Node {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return newLeaf("ids", map[string]any{"values": values})
}

// NewPrefix constructs a prefix query on a single field.
func NewPrefix(field, value string) *Node {
	return newLeaf("prefix", map[string]any{field: value})
}

// NewWildcard constructs a wildcard query on a single field.
func NewWildcard(field, value string) *Node {
	return newLeaf("wildcard", map[string]any{field: value})
}

// NewFuzzy constructs a fuzzy query on a single field.
func NewFuzzy(field string, value any) *Node {
	return newLeaf("fuzzy", map[string]any{field: value})
}

// NewMultiMatch constructs a multi_match query over the given fields.
func NewMultiMatch(text string, fields ...string) *Node {
	fs := make([]any, len(fields))
	for i, f := range fields {
		fs[i] = f
	}
	return newLeaf("multi_match", map[string]any{"query": text, "fields": fs})
}

// NewQueryString constructs a query_string query.
func NewQueryString(text string) *Node {
	return newLeaf("query_string", map[string]any{"query": text})
}

// NewSimpleQueryString constructs a simple_query_string query.
func NewSimpleQueryString(text string) *Node {
	return newLeaf("simple_query_string", map[string]any{"query": text})
}

// NewNested constructs a nested query over the given path.
func NewNested(path string, q Query) *Node {
	return newLeaf("nested", map[string]any{"path": path, "query": q})
}

// NewDisMax constructs a dis_max query over the given sub-queries.
func NewDisMax(queries ...Query) *Node {
	return newLeaf("dis_max", map[string]any{"queries": queries})
}

// NewBoosting constructs a boosting query.
func NewBoosting(positive, negative Query, negativeBoost float64) *Node {
	return newLeaf("boosting", map[string]any{
		"positive":       positive,
		"negative":       negative,
		"negative_boost": negativeBoost,
	})
}

// NewConstantScore constructs a constant_score query around a filter.
func NewConstantScore(filter Query, boost float64) *Node {
	return newLeaf("constant_score", map[string]any{
		"filter": filter,
		"boost":  boost,
	})
}
