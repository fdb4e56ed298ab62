package asp

import (
	"fmt"
	"strings"
)

// rule is one ground clause: disjunctive heads, a positive body and a
// default-negated body. A fact has an empty body. An integrity constraint
// has no heads.
type rule struct {
	heads []int32
	pos   []int32
	neg   []int32
}

// program is the parsed, ground representation of a logic program text.
// Atom ids are 1-indexed; index 0 is reserved so the zero value of an id
// slice element means "unset".
type program struct {
	atoms []Symbol // atoms[0] is the zero Symbol
	index map[string]int32
	rules []rule
}

// termParser resolves ground-atom text (e.g. "p(1,2)") into a canonical
// Symbol. pkg/term.Parser satisfies this.
type termParser interface {
	Parse(text string) (Symbol, error)
}

func newProgram() *program {
	return &program{atoms: []Symbol{{}}, index: map[string]int32{}}
}

func (p *program) intern(sym Symbol) int32 {
	if id, ok := p.index[sym.String()]; ok {
		return id
	}
	id := int32(len(p.atoms))
	p.atoms = append(p.atoms, sym)
	p.index[sym.String()] = id
	return id
}

// parseProgram parses a whitespace/period-delimited ground program. Clauses
// are separated by top-level '.'; a clause is either a fact/disjunctive
// fact ("a." / "a;b."), a rule ("h1;h2 :- b1,not b2."), or an integrity
// constraint (":- b1,not b2.").
func parseProgram(source string, parser termParser) (*program, error) {
	p := newProgram()
	for _, clauseText := range splitTopLevel(source, '.') {
		if err := p.parseClause(clauseText, parser); err != nil {
			return nil, fmt.Errorf("asp: parsing clause %q: %w", clauseText, err)
		}
	}
	return p, nil
}

func (p *program) parseClause(text string, parser termParser) error {
	headPart, bodyPart, hasBody := cutTopLevel(text, ":-")
	headPart = strings.TrimSpace(headPart)

	var heads []int32
	if headPart != "" {
		for _, h := range splitTopLevel(headPart, ';') {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			sym, err := parser.Parse(h)
			if err != nil {
				return fmt.Errorf("head atom %q: %w", h, err)
			}
			heads = append(heads, p.intern(sym))
		}
	}

	var pos, neg []int32
	if hasBody {
		for _, lit := range splitTopLevel(bodyPart, ',') {
			lit = strings.TrimSpace(lit)
			if lit == "" {
				continue
			}
			if rest, ok := cutPrefix(lit, "not "); ok {
				sym, err := parser.Parse(strings.TrimSpace(rest))
				if err != nil {
					return fmt.Errorf("negated body atom %q: %w", rest, err)
				}
				neg = append(neg, p.intern(sym))
			} else {
				sym, err := parser.Parse(lit)
				if err != nil {
					return fmt.Errorf("body atom %q: %w", lit, err)
				}
				pos = append(pos, p.intern(sym))
			}
		}
	}

	if len(heads) == 0 && !hasBody {
		// Blank clause (e.g. trailing separator); nothing to record.
		return nil
	}

	p.rules = append(p.rules, rule{heads: heads, pos: pos, neg: neg})
	return nil
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

// cutTopLevel splits text on the first top-level (paren-depth 0) occurrence
// of sep, returning (before, after, found).
func cutTopLevel(text, sep string) (string, string, bool) {
	depth := 0
	for i := 0; i+len(sep) <= len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && text[i:i+len(sep)] == sep {
			return text[:i], text[i+len(sep):], true
		}
	}
	return text, "", false
}

// splitTopLevel splits text on every top-level occurrence of sep, ignoring
// occurrences nested inside parentheses.
func splitTopLevel(text string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, text[start:i])
				start = i + 1
			}
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}
