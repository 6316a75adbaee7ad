package query

import (
	"testing"

	"github.com/grainsearch/grain-dsl/pkg/errors"
)

func TestBoolAddConcatenatesClauseLists(t *testing.T) {
	p := NewMatch("f", 1)
	q := NewMatch("f", 2)

	got := Add(NewBool().Must(p), NewBool().Must(q))
	want := NewBool().Must(p, q)
	if !Equal(got, want) {
		t.Errorf("Add() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestBoolAddAppendsNonBoolToMust(t *testing.T) {
	p := NewMatch("f", 1)
	q := NewMatch("f", 2)

	got := Add(NewBool().Must(p), q)
	want := NewBool().Must(p, q)
	if !Equal(got, want) {
		t.Errorf("Add() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestBoolAddAllSlots(t *testing.T) {
	a := NewBool().
		Must(NewMatch("m", 1)).
		Should(NewMatch("s", 1)).
		MustNot(NewMatch("n", 1)).
		Filter(NewTerm("f", 1))
	b := NewBool().
		Must(NewMatch("m", 2)).
		Should(NewMatch("s", 2)).
		MustNot(NewMatch("n", 2)).
		Filter(NewTerm("f", 2))

	got := Add(a, b)
	want := NewBool().
		Must(NewMatch("m", 1), NewMatch("m", 2)).
		Should(NewMatch("s", 1), NewMatch("s", 2)).
		MustNot(NewMatch("n", 1), NewMatch("n", 2)).
		Filter(NewTerm("f", 1), NewTerm("f", 2))
	if !Equal(got, want) {
		t.Errorf("Add() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestBoolOrSplicesEmptyBools(t *testing.T) {
	tests := []struct {
		name string
		a, b Query
		want Query
	}{
		{
			name: "two should-only bools concatenate",
			a:    NewBool().Should(NewMatch("f", 1), NewMatch("f", 2)),
			b:    NewBool().Should(NewMatch("f", 3), NewMatch("f", 4)),
			want: NewBool().Should(
				NewMatch("f", 1), NewMatch("f", 2),
				NewMatch("f", 3), NewMatch("f", 4)),
		},
		{
			name: "leaf appended to empty bool's should",
			a:    NewBool().Should(NewMatch("f", 1)),
			b:    NewMatch("f", 2),
			want: NewBool().Should(NewMatch("f", 1), NewMatch("f", 2)),
		},
		{
			name: "leaf on the left still extends the empty bool",
			a:    NewMatch("g", 42),
			b:    NewBool().Should(NewMatch("f", "v"), NewMatch("f", "v2")),
			want: NewBool().Should(
				NewMatch("f", "v"), NewMatch("f", "v2"), NewMatch("g", 42)),
		},
		{
			name: "non-empty bool appended whole",
			a:    NewBool().Should(NewMatch("f", "v")),
			b:    NewBool().Must(NewMatch("f", "v")),
			want: NewBool().Should(
				NewMatch("f", "v"),
				NewBool().Must(NewMatch("f", "v"))),
		},
		{
			name: "non-empty bool on the left, empty on the right",
			a:    NewBool().Must(NewMatch("f", "v")),
			b:    NewBool().Should(NewMatch("f", "v")),
			want: NewBool().Should(
				NewMatch("f", "v"),
				NewBool().Must(NewMatch("f", "v"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Or(tt.a, tt.b)
			if !Equal(got, tt.want) {
				t.Errorf("Or() = %v, want %v", got.ToMap(), tt.want.ToMap())
			}
		})
	}
}

func TestBoolOrWithExplicitMinimumShouldMatchNests(t *testing.T) {
	q1 := NewBool().MinimumShouldMatch(2).Should(
		NewTerm("field", "aa1"), NewTerm("field", "aa2"),
		NewTerm("field", "aa3"), NewTerm("field", "aa4"))
	q2 := NewBool().MinimumShouldMatch(3).Should(
		NewTerm("field", "bb1"), NewTerm("field", "bb2"),
		NewTerm("field", "bb3"), NewTerm("field", "bb4"))

	got := Or(q1, q2)
	want := NewBool().Should(q1, q2)
	if !Equal(got, want) {
		t.Errorf("Or() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestEmptyBoolOrItselfStaysEmpty(t *testing.T) {
	a := NewBool()
	got := Or(a, NewBool())

	b, ok := got.(*BoolQuery)
	if !ok {
		t.Fatalf("Or() returned %T, want *BoolQuery", got)
	}
	if len(b.ShouldClauses()) != 0 || !b.emptyForOr() {
		t.Errorf("Or() of empty bools = %v, want empty bool", b.ToMap())
	}
}

func TestBoolAndOtherAppendsToMust(t *testing.T) {
	q1 := NewBool().Must(NewMatch("f", 1))
	q2 := NewMatch("g", 2)

	got := mustAnd(t, q1, q2)
	want := NewBool().Must(NewMatch("f", 1), NewMatch("g", 2))
	if !Equal(got, want) {
		t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

// ANDing a hard term into a should-only bool locks in the disjunction
// semantics before adding the conjunct.
func TestBoolAndOtherSetsMinShouldMatchIfNeeded(t *testing.T) {
	q1 := NewTerm("category", 1)
	q2 := NewBool().Should(NewTerm("name", "aaa"), NewTerm("name", "bbb"))

	got := mustAnd(t, q1, q2)
	want := NewBool().
		Must(q1).
		Should(NewTerm("name", "aaa"), NewTerm("name", "bbb")).
		MinimumShouldMatch(1)
	if !Equal(got, want) {
		t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

// With an explicit threshold covering every should clause, the clauses are
// all mandatory and collapse into must.
func TestBoolAndLeafCollapsesAllMandatoryShould(t *testing.T) {
	p := NewMatch("a", 1)
	q := NewMatch("b", 2)
	r := NewMatch("c", 3)

	got := mustAnd(t, NewBool().Should(p, q).MinimumShouldMatch(2), r)
	want := NewBool().Must(p, q, r)
	if !Equal(got, want) {
		t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestBoolAndBool(t *testing.T) {
	qt1, qt2, qt3 := NewMatch("f", 1), NewMatch("f", 2), NewMatch("f", 3)

	t.Run("should adopted with zero threshold", func(t *testing.T) {
		q1 := NewBool().Must(qt1).Should(qt2)
		q2 := NewBool().MustNot(qt3)

		got := mustAnd(t, q1, q2)
		want := NewBool().Must(qt1).MustNot(qt3).Should(qt2).MinimumShouldMatch(0)
		if !Equal(got, want) {
			t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
		}
	})

	t.Run("right side all-mandatory should moves to must", func(t *testing.T) {
		q1 := NewBool().Must(qt1).Should(qt1, qt2)
		q2 := NewBool().Should(qt3)

		got := mustAnd(t, q1, q2)
		want := NewBool().Must(qt1, qt3).Should(qt1, qt2).MinimumShouldMatch(0)
		if !Equal(got, want) {
			t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
		}
	})
}

func TestBoolAndBoolWithMinShouldMatch(t *testing.T) {
	qt1, qt2 := NewMatch("f", 1), NewMatch("f", 2)
	q1 := NewBool().MinimumShouldMatch(1).Should(qt1)
	q2 := NewBool().MinimumShouldMatch(1).Should(qt2)

	got := mustAnd(t, q1, q2)
	want := NewBool().Must(qt1, qt2)
	if !Equal(got, want) {
		t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

// Two non-trivial disjunctions cannot merge; the second is kept as an
// independent sub-constraint in must.
func TestBoolAndBoolKeepsSecondDisjunctionNested(t *testing.T) {
	q1 := NewBool().MinimumShouldMatch(1).Should(
		NewTerm("a", 1), NewTerm("a", 2), NewTerm("a", 3))
	q2 := NewBool().MinimumShouldMatch(2).Should(
		NewTerm("b", 1), NewTerm("b", 2), NewTerm("b", 3))

	got := mustAnd(t, q1, q2)
	want := NewBool().
		Should(NewTerm("a", 1), NewTerm("a", 2), NewTerm("a", 3)).
		MinimumShouldMatch(1).
		Must(NewBool().
			Should(NewTerm("b", 1), NewTerm("b", 2), NewTerm("b", 3)).
			MinimumShouldMatch(2))
	if !Equal(got, want) {
		t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestBoolAndBoolExtendsFullyOptionalShoulds(t *testing.T) {
	q1 := NewBool().Must(NewTerm("m", 1)).Should(NewTerm("a", 1), NewTerm("a", 2))
	q2 := NewBool().Must(NewTerm("m", 2)).Should(NewTerm("b", 1), NewTerm("b", 2))

	got := mustAnd(t, q1, q2)
	want := NewBool().
		Must(NewTerm("m", 1), NewTerm("m", 2)).
		Should(NewTerm("a", 1), NewTerm("a", 2), NewTerm("b", 1), NewTerm("b", 2)).
		MinimumShouldMatch(0)
	if !Equal(got, want) {
		t.Errorf("And() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestMinimumShouldMatchRejection(t *testing.T) {
	tests := []struct {
		name  string
		left  *BoolQuery
		right Query
	}{
		{
			name:  "percentage against leaf",
			left:  NewBool().Should(NewMatch("f", 1)).MinimumShouldMatchRaw("30%"),
			right: NewMatch("g", 2),
		},
		{
			name:  "percentage against bool",
			left:  NewBool().Should(NewMatch("f", 1)).MinimumShouldMatchRaw("30%"),
			right: NewBool().Must(NewMatch("g", 2)),
		},
		{
			name:  "negative against bool",
			left:  NewBool().Should(NewMatch("f", 1)).MinimumShouldMatch(-1),
			right: NewBool().Must(NewMatch("g", 2)),
		},
		{
			name:  "percentage on the right side of a merge",
			left:  NewBool().Must(NewMatch("g", 2)),
			right: NewBool().Should(NewMatch("f", 1)).MinimumShouldMatchRaw("60%"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := And(tt.left, tt.right)
			if err == nil {
				t.Fatal("And() expected error, got nil")
			}
			if !errors.IsValidation(err) {
				t.Errorf("And() error = %v, want validation error", err)
			}
		})
	}
}

func TestInvertEmptyBoolIsMatchNone(t *testing.T) {
	got := Not(NewBool())
	if !Equal(got, NewMatchNone()) {
		t.Errorf("Not(empty bool) = %v, want match_none", got.ToMap())
	}
}

func TestInvertMustNotSingletonUnwraps(t *testing.T) {
	p := NewMatch("f", 42)
	got := Not(NewBool().MustNot(p))
	if !Equal(got, p) {
		t.Errorf("Not() = %v, want %v", got.ToMap(), p.ToMap())
	}
}

func TestInvertMustNotBecomesShould(t *testing.T) {
	got := Not(NewBool().MustNot(NewMatch("f", 1), NewMatch("f", 2)))
	want := NewBool().Should(NewMatch("f", 1), NewMatch("f", 2))
	if !Equal(got, want) {
		t.Errorf("Not() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestInvertMustAndMustNot(t *testing.T) {
	q := NewBool().
		Must(NewMatch("f", 3), NewMatch("f", 4)).
		MustNot(NewMatch("f", 1), NewMatch("f", 2))

	got := Not(q)
	want := NewBool().Should(
		NewBool().MustNot(NewMatch("f", 3)),
		NewBool().MustNot(NewMatch("f", 4)),
		NewMatch("f", 1),
		NewMatch("f", 2),
	)
	if !Equal(got, want) {
		t.Errorf("Not() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestInvertShouldWithThresholdBecomesNoneOf(t *testing.T) {
	q := NewBool().Should(NewMatch("f", 1), NewMatch("f", 2))

	// Effective threshold is 1, so the negation is "none of them match".
	got := Not(q)
	want := NewBool().MustNot(NewMatch("f", 1), NewMatch("f", 2))
	if !Equal(got, want) {
		t.Errorf("Not() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestInvertFilterClausesAreNegated(t *testing.T) {
	q := NewBool().
		Filter(NewTerm("published", true)).
		Must(NewMatch("title", "go"))

	got := Not(q)
	want := NewBool().Should(
		NewBool().MustNot(NewMatch("title", "go")),
		NewBool().MustNot(NewTerm("published", true)),
	)
	if !Equal(got, want) {
		t.Errorf("Not() = %v, want %v", got.ToMap(), want.ToMap())
	}
}

func TestBoolCloneSharesNodesNotLists(t *testing.T) {
	p := NewMatch("f", 1)
	q := NewBool().Must(p)

	c := q.Clone().(*BoolQuery)
	c.Must(NewMatch("g", 2))

	if len(q.MustClauses()) != 1 {
		t.Errorf("original must list grew to %d entries", len(q.MustClauses()))
	}
	if c.MustClauses()[0] != p {
		t.Error("clone should share clause node references")
	}
}

func TestEffectiveMinimumShouldMatch(t *testing.T) {
	tests := []struct {
		name string
		q    *BoolQuery
		want any
	}{
		{"empty bool", NewBool(), 0},
		{"should only", NewBool().Should(NewMatch("f", 1)), 1},
		{"should with must", NewBool().Should(NewMatch("f", 1)).Must(NewMatch("g", 2)), 0},
		{"should with filter", NewBool().Should(NewMatch("f", 1)).Filter(NewTerm("g", 2)), 0},
		{"explicit wins", NewBool().Should(NewMatch("f", 1)).MinimumShouldMatch(3), 3},
		{"explicit raw wins", NewBool().Should(NewMatch("f", 1)).MinimumShouldMatchRaw("30%"), "30%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.effectiveMinimumShouldMatch(); got != tt.want {
				t.Errorf("effectiveMinimumShouldMatch() = %v, want %v", got, tt.want)
			}
		})
	}
}
