package nav

import "github.com/drwadu/minifasb/pkg/asp"

// Consequences computes the brave or cautious consequences of the route
// combined with peek, restoring enum_mode to auto afterwards regardless of
// outcome (invariant 6). It is the single choke point every other
// component (facets, modes, weighted counting) goes through to ask the
// solver for brave/cautious results.
func (e *Engine) Consequences(mode asp.EnumMode, peek []string) ([]asp.Symbol, error) {
	if mode != asp.EnumBrave && mode != asp.EnumCautious {
		return nil, &SolverError{Op: "consequences", Err: errInvalidConsequenceMode(mode)}
	}

	cfg := e.ctl.Configuration()
	if err := cfg.SetEnumMode(mode); err != nil {
		return nil, &SolverError{Op: "consequences", Err: err}
	}
	defer cfg.SetEnumMode(asp.EnumAuto)

	handle, err := e.ctl.Solve(asp.SolveYield, e.assumptionsFor(peek))
	if err != nil {
		return nil, &SolverError{Op: "consequences", Err: err}
	}
	defer handle.Close()

	var atoms []asp.Symbol
	for {
		model, ok, err := handle.Model()
		if err != nil {
			return nil, &SolverError{Op: "consequences", Err: err}
		}
		if !ok {
			break
		}
		atoms = model
		if err := handle.Resume(); err != nil {
			return nil, &SolverError{Op: "consequences", Err: err}
		}
	}
	return atoms, nil
}

// Brave returns the brave consequences (symbols true in at least one
// stable model reachable under route ⊕ peek).
func (e *Engine) Brave(peek []string) ([]asp.Symbol, error) {
	return e.Consequences(asp.EnumBrave, peek)
}

// Cautious returns the cautious consequences (symbols true in every stable
// model reachable under route ⊕ peek).
func (e *Engine) Cautious(peek []string) ([]asp.Symbol, error) {
	return e.Consequences(asp.EnumCautious, peek)
}

type invalidConsequenceModeError string

func (e invalidConsequenceModeError) Error() string {
	return "invalid consequence mode: " + string(e)
}

func errInvalidConsequenceMode(mode asp.EnumMode) error {
	return invalidConsequenceModeError(mode)
}

// AnswerSetCount returns the number of stable models reachable under
// route ⊕ peek, early-stopping once the running count exceeds upperBound
// (upperBound <= 0 means unbounded, matching the original's contract that
// a non-positive bound disables pruning).
func (e *Engine) AnswerSetCount(peek []string, upperBound int) (int, error) {
	count, err := e.answerSetCounter().AnswerSetCount(e.assumptionsFor(peek), upperBound)
	if err != nil {
		return 0, &SolverError{Op: "answer_set_count", Err: err}
	}
	return count, nil
}

// answerSetCounter narrows e.ctl down to the counting capability the
// reference GroundControl exposes; any Control wanting to support
// MaxWeighted/MinWeighted(AnswerSetCounting) must implement it.
type answerSetCounter interface {
	AnswerSetCount(assumptions []asp.Literal, upperBound int) (int, error)
}

func (e *Engine) answerSetCounter() answerSetCounter {
	if c, ok := e.ctl.(answerSetCounter); ok {
		return c
	}
	return noCounting{}
}

type noCounting struct{}

func (noCounting) AnswerSetCount([]asp.Literal, int) (int, error) {
	return 0, errNoAnswerSetCounting
}

var errNoAnswerSetCounting = countingUnsupportedError{}

type countingUnsupportedError struct{}

func (countingUnsupportedError) Error() string {
	return "asp: Control does not implement answer-set counting"
}
