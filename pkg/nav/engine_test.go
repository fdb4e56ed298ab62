package nav_test

import (
	"testing"

	"github.com/drwadu/minifasb/pkg/asp"
	"github.com/drwadu/minifasb/pkg/nav"
	"github.com/drwadu/minifasb/pkg/term"
)

const program = "a;b. c;d :- b. e."

func newAndEngine(t *testing.T) *nav.Engine {
	t.Helper()
	e, err := nav.New(nav.KindAnd, program, []string{"0"}, term.New())
	if err != nil {
		t.Fatalf("nav.New error: %v", err)
	}
	return e
}

func symbolSet(models [][]asp.Symbol) []map[string]bool {
	out := make([]map[string]bool, len(models))
	for i, m := range models {
		set := map[string]bool{}
		for _, s := range m {
			set[s.String()] = true
		}
		out[i] = set
	}
	return out
}

func TestS1ConjunctiveContradiction(t *testing.T) {
	e := newAndEngine(t)
	e.Delta([]string{"&", "a", "&", "b"})

	models, err := e.Enumerate(nil)
	if err != nil {
		t.Fatalf("Enumerate error: %v", err)
	}
	if len(models) != 0 {
		t.Errorf("expected 0 models for an unsatisfiable conjunction, got %d", len(models))
	}
}

func TestS2Disjunctive(t *testing.T) {
	e, err := nav.New(nav.KindAndOr, program, []string{"0"}, term.New())
	if err != nil {
		t.Fatalf("nav.New error: %v", err)
	}
	e.Delta([]string{"|", "a", "|", "b"})

	models, err := e.Enumerate(nil)
	if err != nil {
		t.Fatalf("Enumerate error: %v", err)
	}
	if len(models) != 3 {
		t.Errorf("expected 3 models (all satisfy a or b), got %d", len(models))
	}
}

func TestS3Mixed(t *testing.T) {
	e, err := nav.New(nav.KindAndOr, program, []string{"0"}, term.New())
	if err != nil {
		t.Fatalf("nav.New error: %v", err)
	}
	e.Delta([]string{"&", "~a", "|", "d"})

	models, err := e.Enumerate(nil)
	if err != nil {
		t.Fatalf("Enumerate error: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected exactly 1 model, got %d: %v", len(models), symbolSet(models))
	}
	set := symbolSet(models)[0]
	for _, want := range []string{"b", "d", "e"} {
		if !set[want] {
			t.Errorf("expected %q in the single remaining model, got %v", want, set)
		}
	}
	if set["a"] || set["c"] {
		t.Errorf("expected neither a nor c in the single remaining model, got %v", set)
	}
}

func TestS4FacetsAfterCommit(t *testing.T) {
	e := newAndEngine(t)

	facets, err := e.Facets(nil)
	if err != nil {
		t.Fatalf("Facets error: %v", err)
	}
	assertSymbolSet(t, facets, "a", "b", "c", "d")

	e.Delta([]string{"&", "b"})
	facets, err = e.Facets(nil)
	if err != nil {
		t.Fatalf("Facets error: %v", err)
	}
	assertSymbolSet(t, facets, "c", "d")
}

func TestS5StepMaxFacetCountingFromEmpty(t *testing.T) {
	e := newAndEngine(t)
	repr, found, err := e.Step(nav.Mode{Kind: nav.MaxWeighted, Weight: nav.FacetCounting})
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if !found {
		t.Fatal("expected Step to find a facet")
	}
	if repr != "a" {
		t.Errorf("expected step to return %q, got %q", "a", repr)
	}
}

func TestS6StepMinAnswerSetCountingAfterB(t *testing.T) {
	e := newAndEngine(t)
	e.Delta([]string{"&", "b"})

	repr, found, err := e.Step(nav.Mode{Kind: nav.MinWeighted, Weight: nav.AnswerSetCounting})
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if !found {
		t.Fatal("expected Step to find a facet")
	}
	acceptable := map[string]bool{"c": true, "d": true, "~c": true, "~d": true}
	if !acceptable[string(repr)] {
		t.Fatalf("expected one of c,d,~c,~d, got %q", repr)
	}
	count, err := e.AnswerSetCount([]string{string(repr)}, 0)
	if err != nil {
		t.Fatalf("AnswerSetCount error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the chosen facet to leave exactly 1 model, got %d", count)
	}
}

func TestStepSplitOnHint(t *testing.T) {
	e := newAndEngine(t)
	e.Delta([]string{"&", "b"})

	mode := nav.Mode{Kind: nav.MinWeighted, Weight: nav.AnswerSetCounting}

	// A hint matching the true split total (2, per S6) is accepted and the
	// result is unchanged.
	repr, found, err := e.Step(mode, 2)
	if err != nil {
		t.Fatalf("Step with a valid split_on hint should not error: %v", err)
	}
	if !found {
		t.Fatal("expected Step to find a facet")
	}
	acceptable := map[string]bool{"c": true, "d": true, "~c": true, "~d": true}
	if !acceptable[string(repr)] {
		t.Fatalf("expected one of c,d,~c,~d, got %q", repr)
	}

	// A stale hint that no longer covers the current split is rejected
	// rather than silently steering the search (spec.md §9 ambiguity (c)).
	if _, _, err := e.Step(mode, 99); err == nil {
		t.Fatal("expected a stale split_on hint to be rejected")
	}
}

func assertSymbolSet(t *testing.T, got []asp.Symbol, want ...string) {
	t.Helper()
	gotSet := map[string]bool{}
	for _, s := range got {
		gotSet[s.String()] = true
	}
	wantSet := map[string]bool{}
	for _, w := range want {
		wantSet[w] = true
	}
	if len(gotSet) != len(wantSet) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for w := range wantSet {
		if !gotSet[w] {
			t.Errorf("expected %q present, got %v", w, got)
		}
	}
}
