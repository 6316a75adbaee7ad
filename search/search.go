// Package search implements the request builders of the grain search DSL:
// Search, MultiSearch and UpdateByQuery. Builders are immutable in the
// chaining sense: every mutator works on a clone, so a base request can be
// shared and specialized freely.
package search

import (
	"encoding/json"

	"github.com/grainsearch/grain-dsl/aggs"
	"github.com/grainsearch/grain-dsl/pkg/errors"
	"github.com/grainsearch/grain-dsl/query"
)

type namedAgg struct {
	name string
	agg  aggs.Agg
}

// Search accumulates a complete search request body.
type Search struct {
	index      []string
	query      query.Query
	postFilter query.Query

	sorts        []any
	from         *int
	size         *int
	source       any
	highlight    map[string]any
	suggestions  map[string]any
	collapse     map[string]any
	scriptFields map[string]any
	aggregations []namedAgg
	extra        map[string]any
}

// New creates an empty search request.
func New() *Search {
	return &Search{}
}

// Clone returns a copy sharing query nodes but no containers.
func (s *Search) Clone() *Search {
	c := &Search{
		index:      append([]string(nil), s.index...),
		query:      s.query,
		postFilter: s.postFilter,
		sorts:      append([]any(nil), s.sorts...),
		source:     s.source,
	}
	if s.from != nil {
		v := *s.from
		c.from = &v
	}
	if s.size != nil {
		v := *s.size
		c.size = &v
	}
	c.highlight = copyMap(s.highlight)
	c.suggestions = copyMap(s.suggestions)
	c.collapse = copyMap(s.collapse)
	c.scriptFields = copyMap(s.scriptFields)
	c.extra = copyMap(s.extra)
	c.aggregations = append([]namedAgg(nil), s.aggregations...)
	return c
}

// Index sets the indices the request targets.
func (s *Search) Index(indices ...string) *Search {
	c := s.Clone()
	c.index = append(c.index, indices...)
	return c
}

// Query combines q into the request query. A second call ANDs the new query
// with the existing one.
func (s *Search) Query(q query.Query) (*Search, error) {
	c := s.Clone()
	if c.query == nil {
		c.query = q
		return c, nil
	}
	combined, err := query.And(c.query, q)
	if err != nil {
		return nil, err
	}
	c.query = combined
	return c, nil
}

// Filter adds q as a non-scoring filter clause.
func (s *Search) Filter(q query.Query) (*Search, error) {
	return s.Query(query.NewBool().Filter(q))
}

// Exclude adds q as a negated non-scoring filter clause.
func (s *Search) Exclude(q query.Query) (*Search, error) {
	return s.Query(query.NewBool().Filter(query.Not(q)))
}

// PostFilter sets the post_filter applied after aggregations.
func (s *Search) PostFilter(q query.Query) (*Search, error) {
	c := s.Clone()
	if c.postFilter == nil {
		c.postFilter = q
		return c, nil
	}
	combined, err := query.And(c.postFilter, q)
	if err != nil {
		return nil, err
	}
	c.postFilter = combined
	return c, nil
}

// QueryValue returns the accumulated request query, or nil.
func (s *Search) QueryValue() query.Query { return s.query }

// Sort replaces the sort order with the given keys. A leading '-' sorts
// descending; passing no keys clears the sort order. Sorting by _score
// ascending makes no sense to the engine, so '-_score' is rejected.
func (s *Search) Sort(keys ...any) (*Search, error) {
	c := s.Clone()
	c.sorts = nil
	for _, key := range keys {
		if sk, ok := key.(string); ok && len(sk) > 1 && sk[0] == '-' {
			if sk == "-_score" {
				return nil, errors.UnsupportedError("sorting by -_score is not allowed")
			}
			c.sorts = append(c.sorts, map[string]any{sk[1:]: map[string]any{"order": "desc"}})
			continue
		}
		c.sorts = append(c.sorts, key)
	}
	return c, nil
}

// From sets the pagination offset.
func (s *Search) From(n int) *Search {
	c := s.Clone()
	c.from = &n
	return c
}

// Size sets the page size.
func (s *Search) Size(n int) *Search {
	c := s.Clone()
	c.size = &n
	return c
}

// Slice sets pagination from a half-open [start, stop) window.
func (s *Search) Slice(start, stop int) *Search {
	size := stop - start
	if size < 0 {
		size = 0
	}
	return s.From(start).Size(size)
}

// Source controls _source filtering: a bool, a list of fields, or a mapping
// with includes/excludes.
func (s *Search) Source(v any) *Search {
	c := s.Clone()
	c.source = v
	return c
}

// Highlight requests highlighting for the given fields. opts apply per
// field. The nested fields map is rebuilt on every call: Clone copies the
// highlight section one level deep, so writing into the inherited map
// would leak into the base request.
func (s *Search) Highlight(field string, opts map[string]any) *Search {
	c := s.Clone()
	if c.highlight == nil {
		c.highlight = map[string]any{}
	}
	fields := map[string]any{}
	if existing, ok := c.highlight["fields"].(map[string]any); ok {
		for k, v := range existing {
			fields[k] = v
		}
	}
	if opts == nil {
		opts = map[string]any{}
	}
	fields[field] = opts
	c.highlight["fields"] = fields
	return c
}

// HighlightOptions sets top-level highlight options shared by all fields.
func (s *Search) HighlightOptions(opts map[string]any) *Search {
	c := s.Clone()
	if c.highlight == nil {
		c.highlight = map[string]any{}
	}
	for k, v := range opts {
		c.highlight[k] = v
	}
	return c
}

// Suggest adds a named suggester over the given text.
func (s *Search) Suggest(name, text string, opts map[string]any) *Search {
	c := s.Clone()
	if c.suggestions == nil {
		c.suggestions = map[string]any{}
	}
	body := map[string]any{"text": text}
	for k, v := range opts {
		body[k] = v
	}
	c.suggestions[name] = body
	return c
}

// Collapse collapses hits on a field.
func (s *Search) Collapse(field string) *Search {
	c := s.Clone()
	if field == "" {
		c.collapse = nil
		return c
	}
	c.collapse = map[string]any{"field": field}
	return c
}

// ScriptField adds a scripted field to the response.
func (s *Search) ScriptField(name, source string) *Search {
	c := s.Clone()
	if c.scriptFields == nil {
		c.scriptFields = map[string]any{}
	}
	c.scriptFields[name] = map[string]any{"script": map[string]any{"source": source}}
	return c
}

// Agg attaches a named top-level aggregation.
func (s *Search) Agg(name string, a aggs.Agg) *Search {
	c := s.Clone()
	for i, existing := range c.aggregations {
		if existing.name == name {
			c.aggregations[i].agg = a
			return c
		}
	}
	c.aggregations = append(c.aggregations, namedAgg{name: name, agg: a})
	return c
}

// Extra sets an arbitrary top-level request parameter.
func (s *Search) Extra(name string, value any) *Search {
	c := s.Clone()
	if c.extra == nil {
		c.extra = map[string]any{}
	}
	c.extra[name] = value
	return c
}

// Indices returns the target indices.
func (s *Search) Indices() []string { return s.index }

// ToMap serializes the request body.
func (s *Search) ToMap() map[string]any {
	m := map[string]any{}
	for k, v := range s.extra {
		m[k] = v
	}
	if s.query != nil {
		m["query"] = s.query.ToMap()
	}
	if s.postFilter != nil {
		m["post_filter"] = s.postFilter.ToMap()
	}
	if len(s.aggregations) > 0 {
		section := make(map[string]any, len(s.aggregations))
		for _, na := range s.aggregations {
			section[na.name] = na.agg.ToMap()
		}
		m["aggs"] = section
	}
	if len(s.sorts) > 0 {
		m["sort"] = append([]any(nil), s.sorts...)
	}
	if s.from != nil {
		m["from"] = *s.from
	}
	if s.size != nil {
		m["size"] = *s.size
	}
	if s.source != nil {
		m["_source"] = s.source
	}
	if s.highlight != nil {
		m["highlight"] = s.highlight
	}
	if s.suggestions != nil {
		m["suggest"] = s.suggestions
	}
	if s.collapse != nil {
		m["collapse"] = s.collapse
	}
	if s.scriptFields != nil {
		m["script_fields"] = s.scriptFields
	}
	return m
}

// Body serializes the request body as JSON.
func (s *Search) Body() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// FromMap builds a search request from a raw body mapping.
func FromMap(m map[string]any) (*Search, error) {
	s := New()
	for key, value := range m {
		switch key {
		case "query":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("query section must be a mapping")
			}
			q, err := query.FromMap(body)
			if err != nil {
				return nil, err
			}
			s.query = q
		case "post_filter":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("post_filter section must be a mapping")
			}
			q, err := query.FromMap(body)
			if err != nil {
				return nil, err
			}
			s.postFilter = q
		case "aggs", "aggregations":
			section, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("aggs section must be a mapping")
			}
			for name, raw := range section {
				body, ok := raw.(map[string]any)
				if !ok {
					return nil, errors.ConfigurationError("aggregation body must be a mapping")
				}
				a, err := aggs.FromMap(body)
				if err != nil {
					return nil, err
				}
				s.aggregations = append(s.aggregations, namedAgg{name: name, agg: a})
			}
		case "sort":
			entries, ok := value.([]any)
			if !ok {
				return nil, errors.ConfigurationError("sort section must be a list")
			}
			s.sorts = entries
		case "from":
			n, ok := asInt(value)
			if !ok {
				return nil, errors.ConfigurationError("from must be an integer")
			}
			s.from = &n
		case "size":
			n, ok := asInt(value)
			if !ok {
				return nil, errors.ConfigurationError("size must be an integer")
			}
			s.size = &n
		case "_source":
			s.source = value
		case "highlight":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("highlight section must be a mapping")
			}
			s.highlight = body
		case "suggest":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("suggest section must be a mapping")
			}
			s.suggestions = body
		case "collapse":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("collapse section must be a mapping")
			}
			s.collapse = body
		case "script_fields":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("script_fields section must be a mapping")
			}
			s.scriptFields = body
		default:
			if s.extra == nil {
				s.extra = map[string]any{}
			}
			s.extra[key] = value
		}
	}
	return s, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
