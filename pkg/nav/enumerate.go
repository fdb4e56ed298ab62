package nav

import (
	"sort"

	"github.com/drwadu/minifasb/pkg/asp"
)

// Enumerate drains every stable model reachable under route ⊕ peek and
// returns each one's shown atoms, sorted for determinism (spec.md §4.7,
// the original's output_answer_sets).
func (e *Engine) Enumerate(peek []string) ([][]asp.Symbol, error) {
	return e.enumerate(peek, nil)
}

// EnumerateSharp is Enumerate restricted to atoms named in filter (when
// filter is non-empty), supplementing the original's output_answer_sets_sharp
// with the atom-filtering the original_source keeps as a separate,
// narrower query.
func (e *Engine) EnumerateSharp(peek []string, filter []string) ([][]asp.Symbol, error) {
	return e.enumerate(peek, filter)
}

func (e *Engine) enumerate(peek []string, filter []string) ([][]asp.Symbol, error) {
	var keep map[string]bool
	if len(filter) > 0 {
		keep = make(map[string]bool, len(filter))
		for _, f := range filter {
			keep[f] = true
		}
	}

	handle, err := e.ctl.Solve(asp.SolveYield, e.assumptionsFor(peek))
	if err != nil {
		return nil, &SolverError{Op: "enumerate", Err: err}
	}
	defer handle.Close()

	var out [][]asp.Symbol
	for {
		atoms, ok, err := handle.Model()
		if err != nil {
			return nil, &SolverError{Op: "enumerate", Err: err}
		}
		if !ok {
			break
		}
		model := append([]asp.Symbol(nil), atoms...)
		if keep != nil {
			filtered := model[:0]
			for _, a := range model {
				if keep[a.String()] {
					filtered = append(filtered, a)
				}
			}
			model = filtered
		}
		sort.Slice(model, func(i, j int) bool { return model[i].String() < model[j].String() })
		out = append(out, model)
		if err := handle.Resume(); err != nil {
			return nil, &SolverError{Op: "enumerate", Err: err}
		}
	}
	return out, nil
}

// Count is the number of stable models reachable under route ⊕ peek,
// computed by fully draining Enumerate (no pruning, unlike AnswerSetCount).
func (e *Engine) Count(peek []string) (int, error) {
	models, err := e.Enumerate(peek)
	if err != nil {
		return 0, err
	}
	return len(models), nil
}
