package nav_test

import (
	"testing"

	"github.com/drwadu/minifasb/pkg/nav"
	"github.com/drwadu/minifasb/pkg/term"
)

func TestAndKindRejectsDisjunctiveOperator(t *testing.T) {
	e := newAndEngine(t)
	e.Delta([]string{"|", "a"})
	if got := e.DisjunctiveFacets(); len(got) != 0 {
		t.Errorf("expected no disjunctive facets to be recorded under KindAnd, got %v", got)
	}
	if got := e.ConjunctiveFacets(); len(got) != 0 {
		t.Errorf("expected the malformed token to leave the conjunctive list untouched, got %v", got)
	}
}

func TestUnknownSymbolIsSkippedWithoutMutatingRoute(t *testing.T) {
	e := newAndEngine(t)
	before := e.RouteRepr()
	e.Delta([]string{"&", "zzz_not_an_atom"})
	// The "&" operator is still recorded; only the unknown facet is dropped.
	if e.RouteRepr() != before+" &" {
		t.Errorf("expected only the operator added to the route after an unknown symbol, got %q", e.RouteRepr())
	}
	if len(e.ConjunctiveFacets()) != 0 {
		t.Errorf("expected no facet recorded for an unknown symbol")
	}
}

func TestClearResetsRoute(t *testing.T) {
	e := newAndEngine(t)
	e.Delta([]string{"&", "a"})
	if len(e.ConjunctiveFacets()) == 0 {
		t.Fatal("setup: expected a conjunctive facet before Clear")
	}
	if err := e.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if e.RouteRepr() != "" {
		t.Errorf("expected empty route after Clear, got %q", e.RouteRepr())
	}
	if len(e.ConjunctiveFacets()) != 0 {
		t.Errorf("expected no conjunctive facets after Clear")
	}
}

func TestAndOrReGroundsOnDisjunctiveTransition(t *testing.T) {
	e, err := nav.New(nav.KindAndOr, program, []string{"0"}, term.New())
	if err != nil {
		t.Fatalf("nav.New error: %v", err)
	}
	e.Delta([]string{"&", "a"})
	models, err := e.Enumerate(nil)
	if err != nil {
		t.Fatalf("Enumerate error: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model under a alone, got %d", len(models))
	}

	e.Delta([]string{"|", "d"})
	models, err = e.Enumerate(nil)
	if err != nil {
		t.Fatalf("Enumerate after disjunction error: %v", err)
	}
	if len(models) != 0 {
		t.Errorf("expected the integrity constraint to forbid a without d, got %d models", len(models))
	}
}

func TestFacetReprNegation(t *testing.T) {
	f := nav.FacetRepr("a")
	if f.Negative() {
		t.Error("expected \"a\" to be positive")
	}
	if f.AtomText() != "a" {
		t.Errorf("expected atom text %q, got %q", "a", f.AtomText())
	}
	n := nav.FacetRepr("~a")
	if !n.Negative() {
		t.Error("expected \"~a\" to be negative")
	}
	if n.AtomText() != "a" {
		t.Errorf("expected atom text %q, got %q", "a", n.AtomText())
	}
}
