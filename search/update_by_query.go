package search

import (
	"encoding/json"

	"github.com/grainsearch/grain-dsl/pkg/errors"
	"github.com/grainsearch/grain-dsl/query"
)

// UpdateByQuery builds an update-by-query request body: an accumulated query
// selecting documents plus a script mutating them.
type UpdateByQuery struct {
	index  []string
	query  query.Query
	script map[string]any
	extra  map[string]any
}

// NewUpdateByQuery creates an empty update-by-query request.
func NewUpdateByQuery(indices ...string) *UpdateByQuery {
	return &UpdateByQuery{index: indices}
}

// Clone returns a copy sharing query nodes but no containers.
func (u *UpdateByQuery) Clone() *UpdateByQuery {
	return &UpdateByQuery{
		index:  append([]string(nil), u.index...),
		query:  u.query,
		script: copyMap(u.script),
		extra:  copyMap(u.extra),
	}
}

// Query combines q into the selection query. A second call ANDs the new
// query with the existing one.
func (u *UpdateByQuery) Query(q query.Query) (*UpdateByQuery, error) {
	c := u.Clone()
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
func (u *UpdateByQuery) Filter(q query.Query) (*UpdateByQuery, error) {
	return u.Query(query.NewBool().Filter(q))
}

// Exclude adds q as a negated non-scoring filter clause.
func (u *UpdateByQuery) Exclude(q query.Query) (*UpdateByQuery, error) {
	return u.Query(query.NewBool().Filter(query.Not(q)))
}

// Script sets the update script. params may be nil.
func (u *UpdateByQuery) Script(source string, params map[string]any) *UpdateByQuery {
	c := u.Clone()
	c.script = map[string]any{"source": source}
	if len(params) > 0 {
		c.script["params"] = params
	}
	return c
}

// Extra sets an arbitrary top-level request parameter.
func (u *UpdateByQuery) Extra(name string, value any) *UpdateByQuery {
	c := u.Clone()
	if c.extra == nil {
		c.extra = map[string]any{}
	}
	c.extra[name] = value
	return c
}

// QueryValue returns the accumulated selection query, or nil.
func (u *UpdateByQuery) QueryValue() query.Query { return u.query }

// Indices returns the target indices.
func (u *UpdateByQuery) Indices() []string { return u.index }

// ToMap serializes the request body.
func (u *UpdateByQuery) ToMap() map[string]any {
	m := map[string]any{}
	for k, v := range u.extra {
		m[k] = v
	}
	if u.query != nil {
		m["query"] = u.query.ToMap()
	}
	if u.script != nil {
		m["script"] = u.script
	}
	return m
}

// Body serializes the request body as JSON.
func (u *UpdateByQuery) Body() ([]byte, error) {
	return json.Marshal(u.ToMap())
}

// UpdateByQueryFromMap builds an update-by-query request from a raw body
// mapping.
func UpdateByQueryFromMap(m map[string]any) (*UpdateByQuery, error) {
	u := NewUpdateByQuery()
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
			u.query = q
		case "script":
			body, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("script section must be a mapping")
			}
			u.script = body
		default:
			if u.extra == nil {
				u.extra = map[string]any{}
			}
			u.extra[key] = value
		}
	}
	return u, nil
}
