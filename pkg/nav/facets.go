package nav

import (
	"sort"

	"github.com/drwadu/minifasb/pkg/asp"
)

// Facets returns the facets reachable under route ⊕ peek: the brave
// consequences minus the cautious consequences, or the brave consequences
// themselves when the cautious set is empty (spec.md §4.4 — an empty
// cautious set means nothing is forced, so nothing needs subtracting).
func (e *Engine) Facets(peek []string) ([]asp.Symbol, error) {
	brave, err := e.Brave(peek)
	if err != nil {
		return nil, err
	}
	cautious, err := e.Cautious(peek)
	if err != nil {
		return nil, err
	}
	return facetDifference(brave, cautious), nil
}

// facetDifference computes brave \ cautious as a set, sorted by symbol
// text for determinism, falling back to brave verbatim when cautious is
// empty.
func facetDifference(brave, cautious []asp.Symbol) []asp.Symbol {
	if len(cautious) == 0 {
		out := append([]asp.Symbol(nil), brave...)
		sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
		return out
	}
	excl := make(map[string]bool, len(cautious))
	for _, s := range cautious {
		excl[s.String()] = true
	}
	out := make([]asp.Symbol, 0, len(brave))
	for _, s := range brave {
		if !excl[s.String()] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Stats reports (|brave|, |cautious|, |facets|) under route ⊕ peek.
func (e *Engine) Stats(peek []string) (brave, cautious, facets int, err error) {
	b, err := e.Brave(peek)
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := e.Cautious(peek)
	if err != nil {
		return 0, 0, 0, err
	}
	return len(b), len(c), len(facetDifference(b, c)), nil
}
