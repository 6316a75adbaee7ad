// Package aggs implements aggregation builders for the grain search DSL.
// Aggregations serialize into the request's "aggs" section; bucket
// aggregations carry ordered named sub-aggregations.
package aggs

import (
	"fmt"

	"github.com/mitchellh/copystructure"

	"github.com/grainsearch/grain-dsl/pkg/errors"
	"github.com/grainsearch/grain-dsl/query"
)

// Agg is a single aggregation definition.
type Agg interface {
	// Kind returns the aggregation type tag, e.g. "terms", "avg".
	Kind() string

	// ToMap serializes the aggregation body, e.g.
	// {"terms": {...}, "aggs": {...}}.
	ToMap() map[string]any

	// Clone returns a copy safe to mutate without affecting the receiver.
	Clone() Agg
}

type namedAgg struct {
	name string
	agg  Agg
}

// Node is the generic aggregation node: a kind, parameters, and ordered
// named sub-aggregations. Unlike query combinators, aggregation composition
// mutates in place; that is what makes the fluent Bucket/Metric chaining
// ergonomic.
type Node struct {
	kind   string
	params map[string]any
	subs   []namedAgg
}

// New constructs an aggregation of the given kind.
func New(kind string, params map[string]any) *Node {
	if params == nil {
		params = make(map[string]any)
	}
	return &Node{kind: kind, params: params}
}

// Kind implements Agg.
func (n *Node) Kind() string { return n.kind }

// Param sets a parameter and returns the receiver.
func (n *Node) Param(name string, value any) *Node {
	n.params[name] = value
	return n
}

// SubAggregation attaches a named sub-aggregation in place and returns the
// receiver. A sub-aggregation with the same name is replaced.
func (n *Node) SubAggregation(name string, a Agg) *Node {
	for i, sub := range n.subs {
		if sub.name == name {
			n.subs[i].agg = a
			return n
		}
	}
	n.subs = append(n.subs, namedAgg{name: name, agg: a})
	return n
}

// Bucket attaches a named sub-aggregation and returns the child so chained
// calls keep nesting deeper.
func (n *Node) Bucket(name string, a *Node) *Node {
	n.SubAggregation(name, a)
	return a
}

// Metric attaches a named sub-aggregation and returns the receiver so
// chained calls attach siblings.
func (n *Node) Metric(name string, a Agg) *Node {
	return n.SubAggregation(name, a)
}

// Sub returns the named sub-aggregation, or nil.
func (n *Node) Sub(name string) Agg {
	for _, sub := range n.subs {
		if sub.name == name {
			return sub.agg
		}
	}
	return nil
}

// Clone implements Agg.
func (n *Node) Clone() Agg {
	c := &Node{kind: n.kind, params: make(map[string]any, len(n.params))}
	for k, v := range n.params {
		if q, ok := v.(query.Query); ok {
			c.params[k] = q.Clone()
			continue
		}
		if copied, err := copystructure.Copy(v); err == nil {
			c.params[k] = copied
		} else {
			c.params[k] = v
		}
	}
	for _, sub := range n.subs {
		c.subs = append(c.subs, namedAgg{name: sub.name, agg: sub.agg.Clone()})
	}
	return c
}

// ToMap implements Agg. The filter agg's parameter block is the filter
// query body itself rather than a parameter mapping.
func (n *Node) ToMap() map[string]any {
	var body map[string]any
	if n.kind == "filter" {
		if q, ok := n.params["filter"].(query.Query); ok {
			body = q.ToMap()
		}
	}
	if body == nil {
		body = make(map[string]any, len(n.params))
		for k, v := range n.params {
			if q, ok := v.(query.Query); ok {
				body[k] = q.ToMap()
				continue
			}
			body[k] = v
		}
	}

	out := map[string]any{n.kind: body}
	if aggs := serializeSubs(n.subs); aggs != nil {
		out["aggs"] = aggs
	}
	return out
}

func serializeSubs(subs []namedAgg) map[string]any {
	if len(subs) == 0 {
		return nil
	}
	out := make(map[string]any, len(subs))
	for _, sub := range subs {
		out[sub.name] = sub.agg.ToMap()
	}
	return out
}

// FromMap constructs an aggregation from a raw body of the engine shape,
// e.g. {"terms": {"field": "tags"}, "aggs": {"max_score": {"max": ...}}}.
// The body must contain exactly one key besides the optional aggs section.
func FromMap(m map[string]any) (Agg, error) {
	var kind string
	var rawSubs map[string]any

	for key, value := range m {
		if key == "aggs" || key == "aggregations" {
			subs, ok := value.(map[string]any)
			if !ok {
				return nil, errors.ConfigurationError("aggs section must be a mapping")
			}
			rawSubs = subs
			continue
		}
		if kind != "" {
			return nil, errors.ConfigurationError(
				"aggregation body must have a single kind key")
		}
		kind = key
	}
	if kind == "" {
		return nil, errors.ConfigurationError("empty aggregation body")
	}

	copied, err := copystructure.Copy(m[kind])
	if err != nil {
		return nil, errors.InternalError("copying aggregation body", err)
	}
	params, ok := copied.(map[string]any)
	if !ok {
		return nil, errors.ConfigurationError(fmt.Sprintf(
			"parameters for aggregation kind %q must be a mapping", kind))
	}

	var node *Node
	if kind == "filter" {
		q, err := query.FromMap(params)
		if err != nil {
			return nil, err
		}
		node = NewFilter(q)
	} else {
		node = New(kind, params)
	}

	for name, raw := range rawSubs {
		body, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.ConfigurationError(fmt.Sprintf(
				"sub-aggregation %q must be a mapping", name))
		}
		sub, err := FromMap(body)
		if err != nil {
			return nil, err
		}
		node.SubAggregation(name, sub)
	}
	return node, nil
}

// NewFilter constructs a filter bucket aggregation around a query.
func NewFilter(q query.Query) *Node {
	n := New("filter", nil)
	n.params["filter"] = q
	return n
}
