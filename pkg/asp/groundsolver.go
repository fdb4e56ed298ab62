package asp

import (
	"fmt"
	"sort"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// GroundControl is the reference Control implementation: a ground,
// already-grounded logic program solved by generate-candidate-with-SAT
// (github.com/irifrance/gini) then filter-for-stability (stable.go). It
// plays the role of clingo.Control in the original design.
type GroundControl struct {
	prog    *program
	clauses [][]clauseLit
	config  *groundConfiguration
	backend *groundBackend
	input   struct {
		source string
		args   []string
	}
}

// NewGroundControl grounds source (already a ground program) under the
// given solver args and returns a ready Control. Grounding here means
// parsing the clauses and interning their atoms; there is no variable
// instantiation because the spec's Grounder/Solver collaborator already
// receives ground text.
func NewGroundControl(source string, args []string, parser termParser) (*GroundControl, error) {
	prog, err := parseProgram(source, parser)
	if err != nil {
		return nil, err
	}
	c := &GroundControl{
		prog:    prog,
		clauses: prog.baseClauses(),
		config:  &groundConfiguration{mode: EnumAuto},
	}
	c.input.source = source
	c.input.args = append([]string(nil), args...)
	c.backend = &groundBackend{ctl: c}
	return c, nil
}

func (c *GroundControl) SymbolicAtoms() SymbolicAtoms { return groundAtoms{c.prog} }
func (c *GroundControl) Configuration() Configuration { return c.config }
func (c *GroundControl) Backend() Backend             { return c.backend }

// Solve merges the backend's persistent assumptions with the call-specific
// ones and returns a lazily-advancing handle honoring the current enum_mode.
func (c *GroundControl) Solve(mode SolveMode, assumptions []Literal) (SolveHandle, error) {
	all := make([]Literal, 0, len(c.backend.persistent)+len(assumptions))
	all = append(all, c.backend.persistent...)
	all = append(all, assumptions...)

	switch c.config.mode {
	case EnumBrave, EnumCautious:
		atoms, err := c.consequence(c.config.mode, all)
		if err != nil {
			return nil, err
		}
		return &consequenceHandle{atoms: atoms, hasResult: true}, nil
	default:
		it := newModelIterator(c, all)
		h := &enumHandle{it: it}
		if err := h.advance(); err != nil {
			it.close()
			return nil, err
		}
		return h, nil
	}
}

// consequence drains every stable model reachable under assumptions and
// returns the union (brave) or intersection (cautious) of their shown
// atoms. Solve surfaces this set as the single model of a
// consequenceHandle, so a caller draining that handle with Model/Resume
// ends on it as the last non-null model.
func (c *GroundControl) consequence(mode EnumMode, assumptions []Literal) ([]Symbol, error) {
	it := newModelIterator(c, assumptions)
	defer it.close()

	var acc map[int32]bool
	first := true
	for {
		ids, ok, err := it.nextIDs()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		set := map[int32]bool{}
		for _, id := range ids {
			set[id] = true
		}
		switch mode {
		case EnumBrave:
			if acc == nil {
				acc = map[int32]bool{}
			}
			for id := range set {
				acc[id] = true
			}
		default: // EnumCautious
			if first {
				acc = set
			} else {
				for id := range acc {
					if !set[id] {
						delete(acc, id)
					}
				}
			}
		}
		first = false
	}

	ids := make([]int32, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Symbol, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.prog.atoms[id])
	}
	return out, nil
}

// AnswerSetCount returns the number of stable models reachable under
// assumptions, bounded by upperBound: once the running count exceeds
// upperBound (> 0), counting stops and that (necessarily inexact) count is
// returned, matching §4.3's pruning contract.
func (c *GroundControl) AnswerSetCount(assumptions []Literal, upperBound int) (int, error) {
	all := make([]Literal, 0, len(c.backend.persistent)+len(assumptions))
	all = append(all, c.backend.persistent...)
	all = append(all, assumptions...)

	it := newModelIterator(c, all)
	defer it.close()

	i := 0
	for {
		_, ok, err := it.nextIDs()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		i++
		if upperBound > 0 && i > upperBound {
			break
		}
	}
	return i, nil
}

type groundConfiguration struct{ mode EnumMode }

func (g *groundConfiguration) SetEnumMode(m EnumMode) error {
	switch m {
	case EnumAuto, EnumBrave, EnumCautious:
		g.mode = m
		return nil
	default:
		return fmt.Errorf("asp: invalid enum_mode %q", m)
	}
}
func (g *groundConfiguration) EnumMode() EnumMode { return g.mode }

type groundBackend struct {
	ctl        *GroundControl
	persistent []Literal
}

func (b *groundBackend) Assume(lits []Literal) error {
	b.persistent = append([]Literal(nil), lits...)
	return nil
}

type groundAtoms struct{ prog *program }

func (g groundAtoms) Each() []AtomLiteral {
	out := make([]AtomLiteral, 0, len(g.prog.atoms)-1)
	ids := make([]int32, 0, len(g.prog.atoms)-1)
	for id := 1; id < len(g.prog.atoms); id++ {
		ids = append(ids, int32(id))
	}
	sort.Slice(ids, func(i, j int) bool {
		return g.prog.atoms[ids[i]].String() < g.prog.atoms[ids[j]].String()
	})
	for _, id := range ids {
		out = append(out, AtomLiteral{Symbol: g.prog.atoms[id], Literal: newLiteral(id)})
	}
	return out
}

// consequenceHandle surfaces a single precomputed brave/cautious result as
// the "last non-null model" the Essential/Oracle loop expects, then signals
// exhaustion.
type consequenceHandle struct {
	atoms     []Symbol
	hasResult bool
}

func (h *consequenceHandle) Model() ([]Symbol, bool, error) {
	if !h.hasResult {
		return nil, false, nil
	}
	return h.atoms, true, nil
}
func (h *consequenceHandle) Resume() error { h.hasResult = false; return nil }
func (h *consequenceHandle) Close() error  { return nil }

// enumHandle walks stable models one at a time in the order the SAT
// solver finds them, "peek current / advance on Resume" as spec.md §6
// requires of model()/resume().
type enumHandle struct {
	it      *modelIterator
	current []Symbol
	ok      bool
}

func (h *enumHandle) advance() error {
	atoms, ok, err := h.it.next()
	h.current, h.ok = atoms, ok
	return err
}
func (h *enumHandle) Model() ([]Symbol, bool, error) {
	if !h.ok {
		return nil, false, nil
	}
	return h.current, true, nil
}
func (h *enumHandle) Resume() error { return h.advance() }
func (h *enumHandle) Close() error  { h.it.close(); return nil }

// modelIterator drives gini to enumerate stable models one at a time: each
// SAT candidate is blocked immediately (so it is never revisited even when
// unstable) and checked against isStableModel; non-stable candidates are
// skipped transparently.
type modelIterator struct {
	g        *gini.Gini
	vars     []z.Lit // 1-indexed atom id -> positive literal in g
	numAtoms int32
	assume   []z.Lit
	prog     *program
	done     bool
}

func newModelIterator(c *GroundControl, assumptions []Literal) *modelIterator {
	g := gini.New()
	numAtoms := int32(len(c.prog.atoms) - 1)
	vars := make([]z.Lit, numAtoms+1)
	for i := int32(1); i <= numAtoms; i++ {
		vars[i] = g.Lit()
	}
	for _, clause := range c.clauses {
		for _, lit := range clause {
			v := vars[lit.atom]
			if lit.neg {
				v = v.Not()
			}
			g.Add(v)
		}
		g.Add(z.LitNull)
	}

	assume := make([]z.Lit, 0, len(assumptions))
	for _, a := range assumptions {
		v := vars[a.id]
		if a.sign < 0 {
			v = v.Not()
		}
		assume = append(assume, v)
	}

	return &modelIterator{g: g, vars: vars, numAtoms: numAtoms, assume: assume, prog: c.prog}
}

// next returns the next stable model's shown atoms (every atom true in the
// model is shown; the reference backend has no #show directives).
func (it *modelIterator) next() ([]Symbol, bool, error) {
	ids, ok, err := it.nextIDs()
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make([]Symbol, len(ids))
	for i, id := range ids {
		out[i] = it.prog.atoms[id]
	}
	return out, true, nil
}

func (it *modelIterator) nextIDs() ([]int32, bool, error) {
	if it.done {
		return nil, false, nil
	}
	for {
		it.g.Assume(it.assume...)
		switch it.g.Solve() {
		case 1:
			val := make([]bool, it.numAtoms+1)
			for i := int32(1); i <= it.numAtoms; i++ {
				val[i] = it.g.Value(it.vars[i])
			}
			it.block(val)
			if isStableModel(it.prog, val) {
				ids := make([]int32, 0, it.numAtoms)
				for i := int32(1); i <= it.numAtoms; i++ {
					if val[i] {
						ids = append(ids, i)
					}
				}
				return ids, true, nil
			}
			// Not stable: the base clauses underdetermine stability, so
			// keep searching among the remaining candidates.
			continue
		case -1:
			it.done = true
			return nil, false, nil
		default:
			it.done = true
			return nil, false, fmt.Errorf("asp: solver returned an undetermined result")
		}
	}
}

// block adds a clause excluding exactly this valuation from future
// candidates, standard SAT-based model enumeration.
func (it *modelIterator) block(val []bool) {
	for i := int32(1); i <= it.numAtoms; i++ {
		v := it.vars[i]
		if val[i] {
			v = v.Not()
		}
		it.g.Add(v)
	}
	it.g.Add(z.LitNull)
}

func (it *modelIterator) close() { it.done = true }
