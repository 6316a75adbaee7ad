package query

import (
	"fmt"

	"github.com/mitchellh/copystructure"

	"github.com/grainsearch/grain-dsl/pkg/errors"
)

// Proxier is implemented by builder objects that hold a query under
// construction and stand in wherever a query is expected.
type Proxier interface {
	ProxiedQuery() Query
}

// Q constructs a query of the given kind with the given parameters. An empty
// kind defaults to match_all. Kinds must be registered; parameters declared
// as sub-queries are resolved recursively.
func Q(kind string, params map[string]any) (Query, error) {
	if kind == "" {
		kind = "match_all"
	}
	if !Known(kind) {
		return nil, errors.UnknownKindError(kind)
	}

	switch kind {
	case "bool":
		return newBoolFromParams(params)
	case "match_all":
		q := NewMatchAll()
		for name, value := range params {
			q.Param(name, value)
		}
		return q, nil
	case "match_none":
		q := NewMatchNone()
		if len(params) > 0 {
			q.extra = make(map[string]any, len(params))
			for name, value := range params {
				q.extra[name] = value
			}
		}
		return q, nil
	default:
		return NewNode(kind, params)
	}
}

// FromMap constructs a query from a raw mapping of the engine shape
// {"<kind>": {params...}}. The mapping must have exactly one top-level key.
// The input is deep-copied so the caller's mapping is never aliased.
func FromMap(m map[string]any) (Query, error) {
	if len(m) != 1 {
		return nil, errors.ConfigurationError(fmt.Sprintf(
			"query mapping must have a single top-level key, got %d", len(m)))
	}

	copied, err := copystructure.Copy(m)
	if err != nil {
		return nil, errors.InternalError("copying query mapping", err)
	}

	for kind, raw := range copied.(map[string]any) {
		var params map[string]any
		switch v := raw.(type) {
		case nil:
			params = nil
		case map[string]any:
			params = v
		default:
			return nil, errors.ConfigurationError(fmt.Sprintf(
				"parameters for query kind %q must be a mapping, got %T", kind, raw))
		}
		return Q(kind, params)
	}
	return nil, errors.ConfigurationError("empty query mapping")
}

// Resolve is the shortcut used everywhere a query is accepted. It takes a
// raw mapping, an existing Query, a proxy holding a query under
// construction, or a kind name, and normalizes it into a Query. params may
// only accompany a kind name; combining them with a mapping or an existing
// query is ambiguous and rejected. A nil value resolves to match_all.
func Resolve(v any, params map[string]any) (Query, error) {
	switch t := v.(type) {
	case nil:
		return Q("", params)
	case map[string]any:
		if len(params) > 0 {
			return nil, errors.ConfigurationError("cannot accept parameters when passing in a mapping")
		}
		return FromMap(t)
	case Query:
		if len(params) > 0 {
			return nil, errors.ConfigurationError("cannot accept parameters when passing in a Query")
		}
		return t, nil
	case Proxier:
		return t.ProxiedQuery(), nil
	case string:
		return Q(t, params)
	default:
		return nil, errors.ConfigurationError(fmt.Sprintf(
			"cannot resolve %T into a query", v))
	}
}

func newBoolFromParams(params map[string]any) (*BoolQuery, error) {
	q := NewBool()
	defs := kindRegistry["bool"]

	for name, value := range params {
		if def, ok := defs[name]; ok {
			clauses, err := coerceQueryParam(def, value)
			if err != nil {
				return nil, err
			}
			switch name {
			case "must":
				q.must = clauses.([]Query)
			case "filter":
				q.filter = clauses.([]Query)
			case "should":
				q.should = clauses.([]Query)
			case "must_not":
				q.mustNot = clauses.([]Query)
			}
			continue
		}
		if name == "minimum_should_match" {
			q.minimumShouldMatch = normalizeMinimumShouldMatch(value)
			continue
		}
		q.Param(name, value)
	}
	return q, nil
}

// normalizeMinimumShouldMatch folds integral floats (the default JSON number
// decoding) into ints so the And merge sees a plain integer. Everything else
// passes through and surfaces later if an And merge needs an integer.
func normalizeMinimumShouldMatch(v any) any {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case int64:
		return int(n)
	}
	return v
}
