package query

import (
	"github.com/grainsearch/grain-dsl/pkg/errors"
)

// BoolQuery is the compound query with must / filter / should / must_not
// clause lists. Its combinator logic flattens nested bools while preserving
// minimum_should_match semantics.
type BoolQuery struct {
	must    []Query
	filter  []Query
	should  []Query
	mustNot []Query

	// minimumShouldMatch is nil when unset. When set it holds the
	// caller-supplied value, normally an int; the engine also accepts
	// percentage strings, which this algebra refuses to merge.
	minimumShouldMatch any

	extra map[string]any
}

// NewBool constructs an empty bool query.
func NewBool() *BoolQuery {
	return &BoolQuery{}
}

// Must appends required clauses and returns the receiver.
func (q *BoolQuery) Must(queries ...Query) *BoolQuery {
	q.must = append(q.must, queries...)
	return q
}

// Filter appends required non-scoring clauses and returns the receiver.
func (q *BoolQuery) Filter(queries ...Query) *BoolQuery {
	q.filter = append(q.filter, queries...)
	return q
}

// Should appends optional clauses and returns the receiver.
func (q *BoolQuery) Should(queries ...Query) *BoolQuery {
	q.should = append(q.should, queries...)
	return q
}

// MustNot appends negated clauses and returns the receiver.
func (q *BoolQuery) MustNot(queries ...Query) *BoolQuery {
	q.mustNot = append(q.mustNot, queries...)
	return q
}

// MinimumShouldMatch sets the threshold count of should clauses required to
// match.
func (q *BoolQuery) MinimumShouldMatch(n int) *BoolQuery {
	q.minimumShouldMatch = n
	return q
}

// MinimumShouldMatchRaw sets a raw minimum_should_match value such as a
// percentage string. Raw values serialize fine but cannot take part in And
// merges.
func (q *BoolQuery) MinimumShouldMatchRaw(v any) *BoolQuery {
	q.minimumShouldMatch = v
	return q
}

// Param sets an extra parameter such as boost and returns the receiver.
func (q *BoolQuery) Param(name string, value any) *BoolQuery {
	if q.extra == nil {
		q.extra = make(map[string]any)
	}
	q.extra[name] = value
	return q
}

// MustClauses returns the must clause list.
func (q *BoolQuery) MustClauses() []Query { return q.must }

// FilterClauses returns the filter clause list.
func (q *BoolQuery) FilterClauses() []Query { return q.filter }

// ShouldClauses returns the should clause list.
func (q *BoolQuery) ShouldClauses() []Query { return q.should }

// MustNotClauses returns the must_not clause list.
func (q *BoolQuery) MustNotClauses() []Query { return q.mustNot }

// MinimumShouldMatchValue returns the explicit minimum_should_match value,
// or nil when unset.
func (q *BoolQuery) MinimumShouldMatchValue() any { return q.minimumShouldMatch }

// Kind implements Query.
func (q *BoolQuery) Kind() string { return "bool" }

// Clone implements Query. Clause lists are fresh slices sharing node
// references, so appends to the clone never touch the original.
func (q *BoolQuery) Clone() Query {
	return &BoolQuery{
		must:               copyClauses(q.must),
		filter:             copyClauses(q.filter),
		should:             copyClauses(q.should),
		mustNot:            copyClauses(q.mustNot),
		minimumShouldMatch: q.minimumShouldMatch,
		extra:              cloneExtra(q.extra),
	}
}

// ToMap implements Query. Empty clause lists are omitted and
// minimum_should_match appears only when explicitly set.
func (q *BoolQuery) ToMap() map[string]any {
	body := extraBody(q.extra)
	if len(q.must) > 0 {
		body["must"] = serializeClauses(q.must)
	}
	if len(q.filter) > 0 {
		body["filter"] = serializeClauses(q.filter)
	}
	if len(q.should) > 0 {
		body["should"] = serializeClauses(q.should)
	}
	if len(q.mustNot) > 0 {
		body["must_not"] = serializeClauses(q.mustNot)
	}
	if q.minimumShouldMatch != nil {
		body["minimum_should_match"] = q.minimumShouldMatch
	}
	return map[string]any{"bool": body}
}

// effectiveMinimumShouldMatch resolves the threshold when none is set: 0 if
// there are no should clauses or any must/filter clause is present, else 1.
func (q *BoolQuery) effectiveMinimumShouldMatch() any {
	if q.minimumShouldMatch != nil {
		return q.minimumShouldMatch
	}
	if len(q.should) == 0 || len(q.must) > 0 || len(q.filter) > 0 {
		return 0
	}
	return 1
}

// emptyForOr reports whether the bool degrades to a plain disjunction: no
// must, filter or must_not clauses and no explicit minimum_should_match.
func (q *BoolQuery) emptyForOr() bool {
	return len(q.must) == 0 && len(q.mustNot) == 0 && len(q.filter) == 0 &&
		q.minimumShouldMatch == nil
}

// add concatenates same-named clause lists onto a clone; a non-bool operand
// is appended to must.
func (q *BoolQuery) add(other Query) Query {
	c := q.Clone().(*BoolQuery)
	if ob, ok := other.(*BoolQuery); ok {
		c.must = append(c.must, ob.must...)
		c.should = append(c.should, ob.should...)
		c.mustNot = append(c.mustNot, ob.mustNot...)
		c.filter = append(c.filter, ob.filter...)
		return c
	}
	c.must = append(c.must, other)
	return c
}

// or splices should lists when one side is an "empty" bool, preferring the
// receiver; otherwise the disjunction nests both operands.
func (q *BoolQuery) or(other Query) Query {
	for i, cand := range []Query{q, other} {
		cb, ok := cand.(*BoolQuery)
		if !ok || !cb.emptyForOr() {
			continue
		}
		rest := other
		if i == 1 {
			rest = q
		}
		c := cb.Clone().(*BoolQuery)
		if rb, ok := rest.(*BoolQuery); ok && rb.emptyForOr() {
			c.should = append(c.should, rb.should...)
		} else {
			c.should = append(c.should, rest)
		}
		return c
	}

	nb := NewBool()
	nb.should = []Query{q, other}
	return nb
}

// and merges the operand into a clone of the receiver. Merging two bools
// concatenates must, must_not and filter, then reconciles the two should
// lists according to each side's effective minimum_should_match. The
// receiver's should list is processed before the operand's; the resulting
// clause order is part of the contract.
func (q *BoolQuery) and(other Query) (Query, error) {
	c := q.Clone().(*BoolQuery)

	ob, ok := other.(*BoolQuery)
	if !ok {
		if c.minimumShouldMatch != nil {
			n, isInt := c.minimumShouldMatch.(int)
			if !isInt || n < 0 {
				// Percentages and negative values are not
				// supported here.
				return nil, errors.ValidationError(
					"can only combine queries with positive integer values for minimum_should_match")
			}
			if len(c.should) <= n {
				// Every should clause is effectively
				// mandatory, so fold them into must.
				c.must = append(c.must, c.should...)
				c.should = nil
				c.minimumShouldMatch = nil
			}
		} else if len(c.must) == 0 && len(c.filter) == 0 && len(c.should) > 0 {
			// Lock in the current disjunction semantics before a
			// hard conjunct supersedes them.
			c.minimumShouldMatch = 1
		}
		c.must = append(c.must, other)
		return c, nil
	}

	c.must = append(c.must, ob.must...)
	c.mustNot = append(c.mustNot, ob.mustNot...)
	c.filter = append(c.filter, ob.filter...)
	c.should = []Query{}
	// Recomputed from the operands below.
	c.minimumShouldMatch = nil

	for _, qx := range []*BoolQuery{q, ob} {
		n, ok := qx.effectiveMinimumShouldMatch().(int)
		if !ok || n < 0 {
			// Percentages and negative values are not supported here.
			return nil, errors.ValidationError(
				"can only combine queries with positive integer values for minimum_should_match")
		}

		switch {
		case len(qx.should) <= n:
			// Every should clause is effectively mandatory.
			c.must = append(c.must, qx.should...)
		case len(c.should) == 0:
			// Adopt this side's disjunction wholesale.
			c.minimumShouldMatch = n
			c.should = copyClauses(qx.should)
		case intOrZero(c.effectiveMinimumShouldMatch()) == 0 && n == 0:
			// Both sides fully optional, a flat extend is safe.
			c.should = append(c.should, qx.should...)
		default:
			// Two non-trivial "at least N of" sets cannot merge;
			// keep this one as an independent sub-constraint.
			sub := NewBool()
			sub.should = copyClauses(qx.should)
			sub.minimumShouldMatch = n
			c.must = append(c.must, sub)
		}
	}
	return c, nil
}

// invert negates the bool via De Morgan expansion. An empty bool matches
// everything, so its inverse is match_none.
func (q *BoolQuery) invert() Query {
	if len(q.must) == 0 && len(q.filter) == 0 && len(q.should) == 0 &&
		len(q.mustNot) == 0 {
		return NewMatchNone()
	}

	var negations []Query
	for _, sub := range q.must {
		negations = append(negations, Not(sub))
	}
	for _, sub := range q.filter {
		negations = append(negations, Not(sub))
	}
	// Double negation cancels.
	negations = append(negations, q.mustNot...)

	if len(q.should) > 0 && truthy(q.effectiveMinimumShouldMatch()) {
		none := NewBool()
		none.mustNot = copyClauses(q.should)
		negations = append(negations, none)
	}

	if len(negations) == 1 {
		return negations[0]
	}
	nb := NewBool()
	nb.should = negations
	return nb
}

func copyClauses(clauses []Query) []Query {
	if clauses == nil {
		return nil
	}
	out := make([]Query, len(clauses))
	copy(out, clauses)
	return out
}

func intOrZero(v any) int {
	if n, ok := v.(int); ok {
		return n
	}
	return 0
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case int:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
