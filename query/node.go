package query

import (
	"github.com/mitchellh/copystructure"

	"github.com/grainsearch/grain-dsl/pkg/errors"
)

// Node is the generic tagged query node: a kind plus arbitrary parameters.
// Parameters declared as sub-queries by the kind registry hold Query values
// (or []Query for multi-valued declarations); everything else is a scalar.
type Node struct {
	kind   string
	params map[string]any
}

// NewNode constructs a generic node of the given kind. Parameter values for
// declared sub-query slots are normalized through the factory: raw mappings
// become nodes, single values of multi slots become one-element slices.
func NewNode(kind string, params map[string]any) (*Node, error) {
	n := &Node{kind: kind, params: make(map[string]any, len(params))}
	for name, value := range params {
		if err := n.SetParam(name, value); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Kind returns the query type tag.
func (n *Node) Kind() string { return n.kind }

// Param returns a parameter value and whether it is set.
func (n *Node) Param(name string) (any, bool) {
	v, ok := n.params[name]
	return v, ok
}

// SetParam assigns a parameter, coercing declared sub-query slots. Lists are
// always stored as concrete []Query slices.
func (n *Node) SetParam(name string, value any) error {
	def, ok := paramDefFor(n.kind, name)
	if ok && def.query {
		coerced, err := coerceQueryParam(def, value)
		if err != nil {
			return err
		}
		n.params[name] = coerced
		return nil
	}
	n.params[name] = value
	return nil
}

// Clone returns a deep-enough copy: sub-query parameters are cloned
// recursively, scalar values are deep-copied so in-place mutation of one
// tree never leaks into another.
func (n *Node) Clone() Query {
	c := &Node{kind: n.kind, params: make(map[string]any, len(n.params))}
	for name, value := range n.params {
		c.params[name] = cloneParamValue(value)
	}
	return c
}

// ToMap serializes the node as {"<kind>": {params...}}. Empty declared
// sub-query lists are omitted.
func (n *Node) ToMap() map[string]any {
	body := make(map[string]any, len(n.params))
	for name, value := range n.params {
		switch v := value.(type) {
		case Query:
			body[name] = v.ToMap()
		case []Query:
			if len(v) == 0 {
				continue
			}
			body[name] = serializeClauses(v)
		default:
			body[name] = value
		}
	}
	return map[string]any{n.kind: body}
}

func cloneParamValue(value any) any {
	switch v := value.(type) {
	case Query:
		return v.Clone()
	case []Query:
		out := make([]Query, len(v))
		for i, sub := range v {
			out[i] = sub.Clone()
		}
		return out
	default:
		copied, err := copystructure.Copy(value)
		if err != nil {
			return value
		}
		return copied
	}
}

func serializeClauses(clauses []Query) []any {
	out := make([]any, len(clauses))
	for i, c := range clauses {
		out[i] = c.ToMap()
	}
	return out
}

// coerceQueryParam normalizes a declared sub-query parameter value. Multi
// slots accept a single query, a []Query, or a []any of queries and raw
// mappings; anything else is rejected so clause lists stay concrete ordered
// sequences.
func coerceQueryParam(def paramDef, value any) (any, error) {
	if !def.multi {
		return resolveQueryValue(value)
	}

	switch v := value.(type) {
	case nil:
		return []Query{}, nil
	case []Query:
		out := make([]Query, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]Query, 0, len(v))
		for _, item := range v {
			q, err := resolveQueryValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, q)
		}
		return out, nil
	default:
		q, err := resolveQueryValue(value)
		if err != nil {
			return nil, errors.ValidationError("list-valued query parameter must be a query, a list of queries, or a list of mappings")
		}
		return []Query{q}, nil
	}
}

func resolveQueryValue(value any) (Query, error) {
	switch v := value.(type) {
	case Query:
		return v, nil
	case map[string]any:
		return FromMap(v)
	default:
		return nil, errors.ValidationError("query parameter must be a Query or a single-key mapping")
	}
}
