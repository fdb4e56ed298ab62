package term

import "testing"

func TestParseAtom(t *testing.T) {
	p := New()
	sym, err := p.Parse("a")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if sym.String() != "a" {
		t.Errorf("expected %q, got %q", "a", sym.String())
	}
}

func TestParseCompoundTerm(t *testing.T) {
	p := New()
	sym, err := p.Parse("p(1,2)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if sym.IsZero() {
		t.Errorf("expected a non-zero symbol for %q", "p(1,2)")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	p := New()
	if _, err := p.Parse("   "); err == nil {
		t.Error("expected an error for empty input, got nil")
	}
}

func TestParseIsStableAcrossCalls(t *testing.T) {
	p := New()
	first, err := p.Parse("q(x)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	second, err := p.Parse("q(x)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("expected repeated parses of %q to agree, got %q and %q", "q(x)", first.String(), second.String())
	}
}
