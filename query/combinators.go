package query

// Combinators over queries. Dispatch mirrors reflected-operator precedence:
// a left operand with its own combination logic wins, and a generic left
// operand defers to the right operand's logic before falling back to the
// generic bool wrapping. Combinators never mutate their operands; results
// are built on fresh clones, so sharing one query across concurrent
// combinations needs no synchronization.

// And combines two queries conjunctively. The only failure mode is a
// non-integer or negative minimum_should_match on either side of a
// bool/bool merge.
func And(a, b Query) (Query, error) {
	switch l := a.(type) {
	case *MatchAllQuery:
		return b.Clone(), nil
	case *MatchNoneQuery:
		return l, nil
	case *BoolQuery:
		return l.and(b)
	}

	switch r := b.(type) {
	case *MatchAllQuery:
		return a.Clone(), nil
	case *MatchNoneQuery:
		return r, nil
	case *BoolQuery:
		return r.and(a)
	}

	nb := NewBool()
	nb.must = []Query{a, b}
	return nb, nil
}

// Or combines two queries disjunctively.
func Or(a, b Query) Query {
	switch l := a.(type) {
	case *MatchAllQuery:
		return l
	case *MatchNoneQuery:
		return b.Clone()
	case *BoolQuery:
		return l.or(b)
	}

	switch r := b.(type) {
	case *MatchAllQuery:
		return r
	case *MatchNoneQuery:
		return a.Clone()
	case *BoolQuery:
		return r.or(a)
	}

	nb := NewBool()
	nb.should = []Query{a, b}
	return nb
}

// Add combines two queries with append semantics, used when accumulating
// clauses onto a query under construction.
func Add(a, b Query) Query {
	switch l := a.(type) {
	case *MatchAllQuery:
		return b.Clone()
	case *MatchNoneQuery:
		return l
	case *BoolQuery:
		return l.add(b)
	}

	switch r := b.(type) {
	case *MatchAllQuery:
		return a.Clone()
	case *MatchNoneQuery:
		return r
	case *BoolQuery:
		return r.add(a)
	}

	nb := NewBool()
	nb.must = []Query{a, b}
	return nb
}

// Not negates a query. Bools invert through De Morgan expansion; anything
// else is wrapped in a must_not clause.
func Not(a Query) Query {
	switch q := a.(type) {
	case *MatchAllQuery:
		return NewMatchNone()
	case *MatchNoneQuery:
		return NewMatchAll()
	case *BoolQuery:
		return q.invert()
	default:
		nb := NewBool()
		nb.mustNot = []Query{a}
		return nb
	}
}
