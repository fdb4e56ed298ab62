package nav_test

import "testing"

func TestIncidencesMatrixIsSquareAndSelfConsistent(t *testing.T) {
	e := newAndEngine(t)
	rows, err := e.Incidences()
	if err != nil {
		t.Fatalf("Incidences error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 facet rows (a,b,c,d), got %d", len(rows))
	}
	for _, row := range rows {
		if len(row.Columns) != len(rows) {
			t.Errorf("row for %v: %d columns, want %d for a square matrix", row.At, len(row.Columns), len(rows))
		}
		if len(row.Membership) != len(row.Columns) {
			t.Errorf("row for %v: membership length %d != columns length %d", row.At, len(row.Membership), len(row.Columns))
		}
	}
}

func TestWeightedCountingEval(t *testing.T) {
	e := newAndEngine(t)
	count, err := e.Eval(0 /* FacetCounting */, nil, 0)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 facets at the empty route, got %d", count)
	}
}

func TestEnumerateSharpFilter(t *testing.T) {
	e := newAndEngine(t)
	models, err := e.EnumerateSharp(nil, []string{"e"})
	if err != nil {
		t.Fatalf("EnumerateSharp error: %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(models))
	}
	for _, m := range models {
		if len(m) != 1 || m[0].String() != "e" {
			t.Errorf("expected each filtered model to contain only e, got %v", m)
		}
	}
}
