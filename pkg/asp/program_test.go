package asp

import "testing"

type stubParser struct{}

func (stubParser) Parse(text string) (Symbol, error) { return NewSymbol(text), nil }

func TestParseProgramFactsAndRules(t *testing.T) {
	prog, err := parseProgram("a;b. c;d :- b. e.", stubParser{})
	if err != nil {
		t.Fatalf("parseProgram error: %v", err)
	}
	if len(prog.rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(prog.rules))
	}
	if len(prog.atoms)-1 != 5 {
		t.Fatalf("expected 5 interned atoms, got %d", len(prog.atoms)-1)
	}
}

func TestParseProgramIntegrityConstraint(t *testing.T) {
	prog, err := parseProgram("a. :- a, not b.", stubParser{})
	if err != nil {
		t.Fatalf("parseProgram error: %v", err)
	}
	last := prog.rules[len(prog.rules)-1]
	if len(last.heads) != 0 {
		t.Errorf("expected integrity constraint with no heads, got %v", last.heads)
	}
	if len(last.pos) != 1 || len(last.neg) != 1 {
		t.Errorf("expected 1 positive + 1 negative body atom, got pos=%v neg=%v", last.pos, last.neg)
	}
}

func TestSplitTopLevelIgnoresParens(t *testing.T) {
	parts := splitTopLevel("p(1,2),q(3)", ',')
	if len(parts) != 2 {
		t.Fatalf("expected 2 top-level parts, got %v", parts)
	}
	if parts[0] != "p(1,2)" || parts[1] != "q(3)" {
		t.Errorf("unexpected split: %v", parts)
	}
}
