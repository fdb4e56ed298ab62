// Package nav implements the faceted navigation engine: the Symbol/Literal
// Registry, Route State, Consequence Oracle, Faceted Navigation, Guided
// Navigation (Modes), Incidences and Weighted Counting components described
// in spec.md. It consumes a solver through the asp.Control interface and a
// parser through anything shaped like pkg/term.Parser; it never imports a
// concrete solver backend.
package nav

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drwadu/minifasb/pkg/asp"
)

// parser is the subset of pkg/term.Parser the engine needs.
type parser interface {
	Parse(text string) (asp.Symbol, error)
}

// controlFactory builds a fresh solver Control over program text, used both
// at construction and whenever the AndOr kind re-grounds (spec.md §4.3).
type controlFactory func(source string, args []string, p parser) (asp.Control, error)

// Engine is a single, non-reentrant navigation session over one ground
// program (spec.md §5: "single-threaded and not reentrant").
type Engine struct {
	kind NavigationKind

	newControl controlFactory
	parser     parser
	ctl        asp.Control

	program string
	args    []string

	registry      map[string]asp.Literal
	registryOrder []asp.Symbol

	conjLits  []asp.Literal
	conjReprs []FacetRepr
	disjReprs []FacetRepr
	route     string

	lastSyncedDisjCount int

	// Warnings receives one line per recovered ParseError/InvalidRouteError,
	// mirroring the original's eprintln! diagnostics (spec.md §7).
	Warnings io.Writer
}

// New grounds program once under args and returns a ready Engine of the
// given kind. Startup fails if grounding fails (spec.md §4.1).
func New(kind NavigationKind, program string, args []string, p parser) (*Engine, error) {
	factory := func(source string, args []string, p parser) (asp.Control, error) {
		return asp.NewGroundControl(source, args, p)
	}
	return newEngine(kind, program, args, p, factory)
}

func newEngine(kind NavigationKind, program string, args []string, p parser, factory controlFactory) (*Engine, error) {
	ctl, err := factory(program, args, p)
	if err != nil {
		return nil, &SolverError{Op: "grounding", Err: err}
	}
	e := &Engine{
		kind:       kind,
		newControl: factory,
		parser:     p,
		ctl:        ctl,
		program:    program,
		args:       append([]string(nil), args...),
		Warnings:   os.Stderr,
	}
	e.rebuildRegistry()
	return e, nil
}

// Kind reports the engine's navigation kind.
func (e *Engine) Kind() NavigationKind { return e.kind }

// Control exposes the underlying solver, mainly so the Oracle/Modes/
// Incidences helpers in this package can drive it; exported for tests that
// want to inspect solver state directly.
func (e *Engine) Control() asp.Control { return e.ctl }

func (e *Engine) warnf(format string, args ...interface{}) {
	if e.Warnings == nil {
		return
	}
	fmt.Fprintf(e.Warnings, format+"\n", args...)
}

func (e *Engine) rebuildRegistry() {
	atoms := e.ctl.SymbolicAtoms().Each()
	e.registry = make(map[string]asp.Literal, len(atoms))
	e.registryOrder = make([]asp.Symbol, 0, len(atoms))
	for _, al := range atoms {
		e.registry[al.Symbol.String()] = al.Literal
		e.registryOrder = append(e.registryOrder, al.Symbol)
	}
}

// lookup resolves a FacetRepr to a signed literal against the current
// registry, returning ok=false (never an error) for unknown/malformed
// input — callers decide whether that is a ParseError worth reporting.
func (e *Engine) lookup(repr FacetRepr) (asp.Literal, bool) {
	sym, err := e.parser.Parse(repr.AtomText())
	if err != nil {
		return asp.Literal{}, false
	}
	lit, ok := e.registry[sym.String()]
	if !ok {
		return asp.Literal{}, false
	}
	if repr.Negative() {
		return lit.Negate(), true
	}
	return lit, true
}

// RouteRepr returns the route as typed by the user, unchanged in content.
func (e *Engine) RouteRepr() string { return e.route }

// ShowRoute / Context both return the route as text (spec.md §6 lists both
// names for the same operation).
func (e *Engine) ShowRoute() string { return e.route }
func (e *Engine) Context() string   { return e.route }

// ConjunctiveLiterals returns the literals corresponding to the
// conjunctive facet-repr list, in order, negations preserved (invariant 3).
func (e *Engine) ConjunctiveLiterals() []asp.Literal {
	return append([]asp.Literal(nil), e.conjLits...)
}

// ConjunctiveFacets returns the conjunctive facet-repr list.
func (e *Engine) ConjunctiveFacets() []FacetRepr {
	return append([]FacetRepr(nil), e.conjReprs...)
}

// DisjunctiveFacets returns the disjunctive facet-repr list.
func (e *Engine) DisjunctiveFacets() []FacetRepr {
	return append([]FacetRepr(nil), e.disjReprs...)
}

// Delta ingests a whitespace-separated token stream: "&"/"|" set the mode
// bit, a facet token is resolved and appended to the list the current mode
// selects. Unknown symbols and malformed tokens are skipped with a
// diagnostic; the route keeps its prior state for that token (spec.md
// §4.2, §7). For the AndOr kind, once every token has been applied the
// solver is re-synchronized whenever the disjunctive facet count changed
// (invariant 5, §8), so a freshly appended disjunct is re-grounded before
// the next solve rather than only on the next Clear.
func (e *Engine) Delta(tokens []string) {
	var mode byte
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		switch tok {
		case "&":
			mode = '&'
			e.route += " &"
		case "|":
			if e.kind == KindAnd {
				e.warnf("%v", &InvalidRouteError{Token: tok})
				continue
			}
			mode = '|'
			e.route += " |"
		default:
			if mode == 0 {
				e.warnf("%v", &InvalidRouteError{Token: tok})
				continue
			}
			if err := e.applyFacet(tok, mode); err != nil {
				e.warnf("%v", err)
				continue
			}
			e.route += " " + tok
		}
	}
	if err := e.sync(); err != nil {
		e.warnf("%v", err)
	}
}

func (e *Engine) applyFacet(raw string, mode byte) error {
	repr := FacetRepr(raw)
	lit, ok := e.lookup(repr)
	if !ok {
		return &ParseError{Token: raw, Reason: "unknown symbol or invalid syntax"}
	}
	switch mode {
	case '&':
		e.conjLits = append(e.conjLits, lit)
		e.conjReprs = append(e.conjReprs, repr)
	case '|':
		e.disjReprs = append(e.disjReprs, repr)
	}
	return nil
}

// Clear empties all route structures. For AndOr it additionally
// re-synchronizes the solver; for And it is purely local (spec.md §4.2).
func (e *Engine) Clear() error {
	e.conjLits = nil
	e.conjReprs = nil
	e.disjReprs = nil
	e.route = ""
	if e.kind == KindAndOr {
		return e.sync()
	}
	return nil
}

// sync re-grounds the solver for the AndOr kind exactly when the
// disjunctive facet count has changed since the last sync — i.e. exactly
// when it transitions empty<->non-empty or gains a disjunct (invariant 5).
// It is a no-op for the And kind, whose solver instance is identity-stable
// across delta/clear.
func (e *Engine) sync() error {
	if e.kind != KindAndOr {
		return nil
	}
	if len(e.disjReprs) == e.lastSyncedDisjCount {
		return nil
	}
	return e.regroundAndOr()
}

// regroundAndOr implements spec.md §4.3's "otherwise" branch: forms a new
// program text with one integrity constraint per conjunctive facet,
// couples each with the negated forms of every disjunct, re-grounds on a
// fresh solver, rebuilds the registry, and re-resolves the conjunctive
// literals (the old ones are invalid — the new solver assigns fresh
// opaque literal tokens).
func (e *Engine) regroundAndOr() error {
	source := e.program
	if len(e.disjReprs) > 0 && len(e.conjReprs) > 0 {
		constraints := make([]string, 0, len(e.conjReprs))
		disjuncts := make([]string, 0, len(e.disjReprs))
		for _, d := range e.disjReprs {
			disjuncts = append(disjuncts, negatedForm(d))
		}
		for _, c := range e.conjReprs {
			body := append([]string{positiveForm(c)}, disjuncts...)
			constraints = append(constraints, ":- "+strings.Join(body, ", ")+".")
		}
		source = e.program + "\n" + strings.Join(constraints, "\n")
	}

	ctl, err := e.newControl(source, e.args, e.parser)
	if err != nil {
		return &SolverError{Op: "re-grounding", Err: err}
	}
	e.ctl = ctl
	e.rebuildRegistry()

	lits := make([]asp.Literal, 0, len(e.conjReprs))
	for _, c := range e.conjReprs {
		lit, ok := e.lookup(c)
		if !ok {
			return &SolverError{Op: "re-grounding", Err: fmt.Errorf("facet %q no longer resolves in the rebuilt registry", c)}
		}
		lits = append(lits, lit)
	}
	e.conjLits = lits
	e.lastSyncedDisjCount = len(e.disjReprs)
	return nil
}

// positiveForm is the body literal that holds exactly when a conjunctive
// facet holds: "a" if the facet is "a", or "not a" if the facet is "~a".
func positiveForm(f FacetRepr) string {
	if f.Negative() {
		return "not " + f.AtomText()
	}
	return f.AtomText()
}

// negatedForm is the default-negated form of a disjunctive facet: "not a"
// if the facet is "a", or "a" if the facet is "~a" (spec.md §4.3).
func negatedForm(f FacetRepr) string {
	if f.Negative() {
		return f.AtomText()
	}
	return "not " + string(f)
}

// assumptionsFor resolves peek tokens against the current registry and
// appends the conjunctive literal vector, matching every FacetedNavigation
// call site's "route ⊕ peek" (spec.md §4.4). Unresolvable peek tokens are
// silently dropped, the same recovery policy Delta uses for unknown
// symbols — a peek never mutates the route, so there is nothing to log
// against.
func (e *Engine) assumptionsFor(peek []string) []asp.Literal {
	out := make([]asp.Literal, 0, len(peek)+len(e.conjLits))
	for _, p := range peek {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if lit, ok := e.lookup(FacetRepr(p)); ok {
			out = append(out, lit)
		}
	}
	out = append(out, e.conjLits...)
	return out
}

// registryIterationOrder exposes the registry's deterministic atom order,
// used by GoalOriented to pick "the first element of C under the
// registry's iteration order".
func (e *Engine) registryIterationOrder() []asp.Symbol {
	return e.registryOrder
}

