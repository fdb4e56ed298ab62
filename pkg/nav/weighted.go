package nav

// Weight names a way to score a candidate facet for guided navigation
// (spec.md §4.5). SupportedModelCounting from the original design is
// dropped — see DESIGN.md.
type Weight int

const (
	// FacetCounting scores a candidate by the number of facets it leaves
	// reachable.
	FacetCounting Weight = iota
	// AnswerSetCounting scores a candidate by its reachable stable-model
	// count, pruned against a running bound.
	AnswerSetCounting
	// BcCounting scores by the size of the brave consequence set.
	BcCounting
	// CcCounting scores by the size of the cautious consequence set.
	CcCounting
)

func (w Weight) String() string {
	switch w {
	case FacetCounting:
		return "FacetCounting"
	case AnswerSetCounting:
		return "AnswerSetCounting"
	case BcCounting:
		return "BcCounting"
	case CcCounting:
		return "CcCounting"
	default:
		return "Weight(unknown)"
	}
}

// Eval scores peek's route under w, returning the count w denotes.
// upperBound only matters for AnswerSetCounting, where it caps the search
// exactly as AnswerSetCount documents.
func (e *Engine) Eval(w Weight, peek []string, upperBound int) (int, error) {
	switch w {
	case FacetCounting:
		_, _, facets, err := e.Stats(peek)
		return facets, err
	case AnswerSetCounting:
		return e.AnswerSetCount(peek, upperBound)
	case BcCounting:
		brave, _, _, err := e.Stats(peek)
		return brave, err
	case CcCounting:
		_, cautious, _, err := e.Stats(peek)
		return cautious, err
	default:
		return 0, &SolverError{Op: "eval", Err: errUnknownWeight(w)}
	}
}

type unknownWeightError string

func (e unknownWeightError) Error() string { return "unknown weight: " + string(e) }

func errUnknownWeight(w Weight) error { return unknownWeightError(w.String()) }
