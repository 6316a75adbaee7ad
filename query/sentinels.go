package query

import "github.com/mitchellh/copystructure"

// MatchAllQuery matches every document. It is the identity element for And
// and Add, and the absorbing element for Or.
type MatchAllQuery struct {
	extra map[string]any
}

// NewMatchAll constructs a match_all query.
func NewMatchAll() *MatchAllQuery {
	return &MatchAllQuery{}
}

// Kind implements Query.
func (q *MatchAllQuery) Kind() string { return "match_all" }

// Param sets an extra parameter such as boost and returns the receiver.
func (q *MatchAllQuery) Param(name string, value any) *MatchAllQuery {
	if q.extra == nil {
		q.extra = make(map[string]any)
	}
	q.extra[name] = value
	return q
}

// Clone implements Query.
func (q *MatchAllQuery) Clone() Query {
	return &MatchAllQuery{extra: cloneExtra(q.extra)}
}

// ToMap implements Query.
func (q *MatchAllQuery) ToMap() map[string]any {
	return map[string]any{"match_all": extraBody(q.extra)}
}

// MatchNoneQuery matches no document. It is the identity element for Or and
// the absorbing element for And and Add.
type MatchNoneQuery struct {
	extra map[string]any
}

// NewMatchNone constructs a match_none query.
func NewMatchNone() *MatchNoneQuery {
	return &MatchNoneQuery{}
}

// Kind implements Query.
func (q *MatchNoneQuery) Kind() string { return "match_none" }

// Clone implements Query.
func (q *MatchNoneQuery) Clone() Query {
	return &MatchNoneQuery{extra: cloneExtra(q.extra)}
}

// ToMap implements Query.
func (q *MatchNoneQuery) ToMap() map[string]any {
	return map[string]any{"match_none": extraBody(q.extra)}
}

func cloneExtra(extra map[string]any) map[string]any {
	if extra == nil {
		return nil
	}
	copied, err := copystructure.Copy(extra)
	if err != nil {
		out := make(map[string]any, len(extra))
		for k, v := range extra {
			out[k] = v
		}
		return out
	}
	return copied.(map[string]any)
}

func extraBody(extra map[string]any) map[string]any {
	body := make(map[string]any, len(extra))
	for k, v := range extra {
		body[k] = v
	}
	return body
}
