package nav

import (
	"fmt"
	"math"

	"github.com/drwadu/minifasb/pkg/asp"
)

// ModeKind selects the guided navigation strategy (spec.md §4.5).
type ModeKind int

const (
	// GoalOriented picks the first reachable facet under registry order.
	GoalOriented ModeKind = iota
	// MinWeighted picks the facet maximizing a Weight.
	MinWeighted
	// MaxWeighted picks the facet minimizing a Weight.
	MaxWeighted
)

func (k ModeKind) String() string {
	switch k {
	case GoalOriented:
		return "GoalOriented"
	case MinWeighted:
		return "MinWeighted"
	case MaxWeighted:
		return "MaxWeighted"
	default:
		return "ModeKind(unknown)"
	}
}

// Mode fixes the guided navigation strategy and, where relevant, the
// Weight it optimizes. Weight is ignored for GoalOriented. Only
// FacetCounting and AnswerSetCounting are valid guided-navigation
// weights; BcCounting/CcCounting are Eval-only.
type Mode struct {
	Kind   ModeKind
	Weight Weight
}

// Step picks the next facet to commit to under mode, without applying it:
// callers feed the returned FacetRepr back through Delta themselves. It
// reports found=false when no facets remain reachable.
//
// splitOn is the optional running total from spec.md §6's "step(mode,
// split_on?)": a caller-supplied answer-set count for the current route.
// MaxWeighted/MinWeighted(AnswerSetCounting) always compute the total
// fresh and only compare the hint against it (spec.md §9 ambiguity (c): a
// hint is safe only when it still covers exactly the current split); a
// stale hint is reported as a SolverError rather than silently corrupting
// the result. Supplying a hint never skips the recount. Ignored for
// Weights other than AnswerSetCounting.
func (e *Engine) Step(mode Mode, splitOn ...int) (repr FacetRepr, found bool, err error) {
	fs, err := e.Facets(nil)
	if err != nil {
		return "", false, err
	}
	if len(fs) == 0 {
		return "", false, nil
	}

	if mode.Kind == GoalOriented {
		return e.firstFacet(fs)
	}

	switch mode.Weight {
	case FacetCounting:
		return e.stepByFacetCounting(mode.Kind, fs)
	case AnswerSetCounting:
		return e.stepByAnswerSetCounting(mode.Kind, fs, splitOnHint(splitOn))
	default:
		return "", false, &SolverError{Op: "step", Err: fmt.Errorf("%s is not a guided-navigation weight", mode.Weight)}
	}
}

// StepWithin is step() restricted to an externally supplied candidate
// list, used when the caller has already computed and filtered facets
// (spec.md §4.5: step_wrt). splitOn behaves exactly as it does for Step.
func (e *Engine) StepWithin(mode Mode, candidates []asp.Symbol, splitOn ...int) (repr FacetRepr, found bool, err error) {
	if len(candidates) == 0 {
		return "", false, nil
	}
	if mode.Kind == GoalOriented {
		return e.firstFacet(candidates)
	}
	switch mode.Weight {
	case FacetCounting:
		return e.stepByFacetCounting(mode.Kind, candidates)
	case AnswerSetCounting:
		return e.stepByAnswerSetCounting(mode.Kind, candidates, splitOnHint(splitOn))
	default:
		return "", false, &SolverError{Op: "step_wrt", Err: fmt.Errorf("%s is not a guided-navigation weight", mode.Weight)}
	}
}

// splitOnHint extracts the optional split_on argument, returning -1 (no
// hint supplied) when the caller omitted it.
func splitOnHint(splitOn []int) int {
	if len(splitOn) == 0 {
		return -1
	}
	return splitOn[0]
}

// firstFacet returns the first fs member in the registry's atom iteration
// order (spec.md §4.5: GoalOriented).
func (e *Engine) firstFacet(fs []asp.Symbol) (FacetRepr, bool, error) {
	set := make(map[string]bool, len(fs))
	for _, s := range fs {
		set[s.String()] = true
	}
	for _, sym := range e.registryIterationOrder() {
		if set[sym.String()] {
			return FacetRepr(sym.String()), true, nil
		}
	}
	return "", false, nil
}

// stepByFacetCounting explores every facet in both polarities, scoring
// each trial by the number of facets it leaves reachable (spec.md §4.5).
//
// MaxWeighted(FacetCounting) chooses the trial that *minimizes* the
// resulting count (fewer open facets means more is decided, i.e. greater
// navigational weight): initial best is |C|-1, and a trial reaching 0
// returns immediately — ambiguity (a) in spec.md §9 is resolved in favor
// of the 0 early-stop.
//
// MinWeighted(FacetCounting) is the mirror: it *maximizes* the resulting
// count, seeded at 0, early-stopping once a trial reaches the upper bound
// |C|-1.
func (e *Engine) stepByFacetCounting(kind ModeKind, fs []asp.Symbol) (FacetRepr, bool, error) {
	ub := len(fs) - 1
	best := 0
	if kind == MaxWeighted {
		best = ub
	}
	var bestRepr FacetRepr
	haveBest := false

	for _, sym := range fs {
		pos := FacetRepr(sym.String())
		for _, trial := range [...]FacetRepr{pos, pos.negate()} {
			count, err := e.Eval(FacetCounting, []string{string(trial)}, 0)
			if err != nil {
				return "", false, err
			}
			switch kind {
			case MaxWeighted:
				if count == 0 {
					return trial, true, nil
				}
				if count <= best {
					best, bestRepr, haveBest = count, trial, true
				}
			case MinWeighted:
				if count == ub {
					return trial, true, nil
				}
				if count >= best {
					best, bestRepr, haveBest = count, trial, true
				}
			}
		}
	}
	return bestRepr, haveBest, nil
}

// stepByAnswerSetCounting explores every facet in both polarities,
// scoring each trial by its reachable stable-model count.
//
// MaxWeighted(AnswerSetCounting) *minimizes* the count (a smaller
// remaining answer-set space is more resolved), seeded at a large
// sentinel, early-stopping at count 1.
//
// MinWeighted(AnswerSetCounting) *maximizes* the count, seeded at 0 per
// ambiguity (b) in spec.md §9, early-stopping once a trial reaches the
// total model count under the current route (the "upper bound" the
// unsplit route already has).
//
// Only MaxWeighted caps a trial's count at the current best. The negative
// branch of a pair is derived from the positive branch via
// total-positiveCount whenever total is known to cover exactly this split
// and the positive count was not cut off by that cap (otherwise the
// negative branch is counted directly): total is always recomputed fresh
// at the top of this call, so it
// is guaranteed to reflect exactly the route these two trials are split
// from — ambiguity (c) in spec.md §9, resolved by never blindly trusting a
// possibly-stale total. hint, when >= 0, is the caller's split_on guess
// (spec.md §6); it is checked against the freshly computed total and
// rejected with a SolverError if it no longer covers the current split,
// rather than silently steering the search with stale data.
func (e *Engine) stepByAnswerSetCounting(kind ModeKind, fs []asp.Symbol, hint int) (FacetRepr, bool, error) {
	total, err := e.AnswerSetCount(nil, 0)
	if err != nil {
		return "", false, err
	}
	if hint >= 0 && hint != total {
		return "", false, &SolverError{Op: "step", Err: fmt.Errorf("split_on hint %d no longer covers the current split (actual total %d)", hint, total)}
	}

	best := 0
	if kind == MaxWeighted {
		best = math.MaxInt - 1
	}
	var bestRepr FacetRepr
	haveBest := false

	consider := func(trial FacetRepr, count int) bool {
		switch kind {
		case MaxWeighted:
			if count == 1 {
				return true
			}
			if count <= best {
				best, bestRepr, haveBest = count, trial, true
			}
		case MinWeighted:
			if count == total {
				return true
			}
			if count >= best {
				best, bestRepr, haveBest = count, trial, true
			}
		}
		return false
	}

	for _, sym := range fs {
		pos := FacetRepr(sym.String())
		bound := 0
		if kind == MaxWeighted {
			bound = best
		}
		posCount, err := e.AnswerSetCount([]string{string(pos)}, bound)
		if err != nil {
			return "", false, err
		}
		if consider(pos, posCount) {
			return pos, true, nil
		}

		neg := pos.negate()
		negCount := total - posCount
		if bound > 0 && posCount > bound {
			negCount, err = e.AnswerSetCount([]string{string(neg)}, bound)
			if err != nil {
				return "", false, err
			}
		}
		if consider(neg, negCount) {
			return neg, true, nil
		}
	}
	return bestRepr, haveBest, nil
}
