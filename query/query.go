// Package query implements the client-side query expression tree for the
// grain search DSL. Queries are tagged nodes holding parameters, some of
// which are themselves queries. They combine through And, Or, Not and Add
// into bool trees, and serialize into the engine's JSON request shape.
package query

import (
	"encoding/json"
	"reflect"
)

// Query is a node in the search expression tree. The kind is fixed at
// construction. Parameters may be mutated in place by the owner, but
// combinators always operate on clones and never touch their operands.
type Query interface {
	// Kind returns the query type tag, e.g. "match", "term", "bool".
	Kind() string

	// Clone returns a copy safe to mutate without affecting the receiver.
	// Clause lists are fresh containers sharing node references.
	Clone() Query

	// ToMap serializes the node into the engine shape
	// {"<kind>": {<param>: <value>, ...}}.
	ToMap() map[string]any
}

// Equal reports structural equality of two queries by comparing their
// serialized forms.
func Equal(a, b Query) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a.ToMap(), b.ToMap())
}

// ToJSON serializes a query into its JSON request body fragment.
func ToJSON(q Query) ([]byte, error) {
	return json.Marshal(q.ToMap())
}
