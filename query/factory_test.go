package query

import (
	"reflect"
	"testing"

	"github.com/grainsearch/grain-dsl/pkg/errors"
)

func TestQDefaultsToMatchAll(t *testing.T) {
	q, err := Q("", nil)
	if err != nil {
		t.Fatalf("Q() error = %v", err)
	}
	if !Equal(q, NewMatchAll()) {
		t.Errorf("Q(\"\") = %v, want match_all", q.ToMap())
	}
}

func TestQConstructsByName(t *testing.T) {
	q, err := Q("match", map[string]any{"title": "python"})
	if err != nil {
		t.Fatalf("Q() error = %v", err)
	}
	want := map[string]any{"match": map[string]any{"title": "python"}}
	if !reflect.DeepEqual(q.ToMap(), want) {
		t.Errorf("Q() = %v, want %v", q.ToMap(), want)
	}
}

func TestQRejectsUnknownKind(t *testing.T) {
	_, err := Q("not_a_query", nil)
	if err == nil {
		t.Fatal("Q() expected error, got nil")
	}
	if !errors.IsUnknownKind(err) {
		t.Errorf("Q() error = %v, want unknown kind error", err)
	}
}

func TestRegisterExtendsTheFactory(t *testing.T) {
	Register("custom_scope", nil, []string{"scoped"})
	defer delete(kindRegistry, "custom_scope")

	q, err := Q("custom_scope", map[string]any{
		"scoped": []any{map[string]any{"term": map[string]any{"f": 1}}},
	})
	if err != nil {
		t.Fatalf("Q() error = %v", err)
	}

	n := q.(*Node)
	scoped, _ := n.Param("scoped")
	clauses, ok := scoped.([]Query)
	if !ok || len(clauses) != 1 {
		t.Fatalf("scoped param = %#v, want one-element []Query", scoped)
	}
	if clauses[0].Kind() != "term" {
		t.Errorf("scoped[0].Kind() = %s, want term", clauses[0].Kind())
	}
}

func TestFromMapSimpleQuery(t *testing.T) {
	q, err := FromMap(map[string]any{"match": map[string]any{"title": "python"}})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if q.Kind() != "match" {
		t.Errorf("Kind() = %s, want match", q.Kind())
	}
}

func TestFromMapCompoundQuery(t *testing.T) {
	raw := map[string]any{
		"bool": map[string]any{
			"must": []any{
				map[string]any{"match": map[string]any{"title": "go"}},
			},
			"should": []any{
				map[string]any{"term": map[string]any{"tag": "dsl"}},
			},
			"minimum_should_match": float64(1),
		},
	}

	q, err := FromMap(raw)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	b, ok := q.(*BoolQuery)
	if !ok {
		t.Fatalf("FromMap() returned %T, want *BoolQuery", q)
	}
	if len(b.MustClauses()) != 1 || len(b.ShouldClauses()) != 1 {
		t.Fatalf("clause lists = %v", b.ToMap())
	}
	// JSON numbers normalize to int so the And merge sees an integer.
	if got := b.MinimumShouldMatchValue(); got != 1 {
		t.Errorf("MinimumShouldMatchValue() = %v (%T), want int 1", got, got)
	}
}

func TestFromMapDoesNotAliasInput(t *testing.T) {
	raw := map[string]any{"match": map[string]any{"title": "go"}}
	q, err := FromMap(raw)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	raw["match"].(map[string]any)["title"] = "mutated"

	want := map[string]any{"match": map[string]any{"title": "go"}}
	if !reflect.DeepEqual(q.ToMap(), want) {
		t.Errorf("ToMap() = %v, want %v", q.ToMap(), want)
	}
}

func TestFromMapRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
	}{
		{"empty mapping", map[string]any{}},
		{"two top-level keys", map[string]any{
			"match": map[string]any{"f": 1},
			"term":  map[string]any{"g": 2},
		}},
		{"non-mapping params", map[string]any{"match": "oops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.m)
			if err == nil {
				t.Fatal("FromMap() expected error, got nil")
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("FromMap() error = %v, want configuration error", err)
			}
		})
	}
}

type proxyBuilder struct {
	q Query
}

func (p *proxyBuilder) ProxiedQuery() Query { return p.q }

func TestResolve(t *testing.T) {
	match := NewMatch("f", 42)

	t.Run("query passes through", func(t *testing.T) {
		q, err := Resolve(match, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if q != Query(match) {
			t.Error("Resolve() should return the same query instance")
		}
	})

	t.Run("query with params is ambiguous", func(t *testing.T) {
		_, err := Resolve(match, map[string]any{"boost": 2})
		if !errors.IsConfiguration(err) {
			t.Errorf("Resolve() error = %v, want configuration error", err)
		}
	})

	t.Run("mapping with params is ambiguous", func(t *testing.T) {
		_, err := Resolve(map[string]any{"match": map[string]any{"f": 1}},
			map[string]any{"boost": 2})
		if !errors.IsConfiguration(err) {
			t.Errorf("Resolve() error = %v, want configuration error", err)
		}
	})

	t.Run("proxy unwraps", func(t *testing.T) {
		q, err := Resolve(&proxyBuilder{q: match}, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if q != Query(match) {
			t.Error("Resolve() should unwrap the proxied query")
		}
	})

	t.Run("name with params", func(t *testing.T) {
		q, err := Resolve("term", map[string]any{"f": 1})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !Equal(q, NewTerm("f", 1)) {
			t.Errorf("Resolve() = %v, want term query", q.ToMap())
		}
	})

	t.Run("nil resolves to match_all", func(t *testing.T) {
		q, err := Resolve(nil, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !Equal(q, NewMatchAll()) {
			t.Errorf("Resolve(nil) = %v, want match_all", q.ToMap())
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := Resolve(42, nil)
		if !errors.IsConfiguration(err) {
			t.Errorf("Resolve() error = %v, want configuration error", err)
		}
	})
}
