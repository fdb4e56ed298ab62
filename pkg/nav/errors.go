package nav

import "fmt"

// ParseError reports a facet token whose symbol part failed to parse or is
// unknown to the registry. It is always recovered locally by Delta: the
// caller never sees it, only the diagnostic line it formats.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ignoring unknown or malformed facet %q: %s", e.Token, e.Reason)
}

// InvalidRouteError reports an operator token followed by a non-facet or by
// end of stream. Also always recovered locally by Delta.
type InvalidRouteError struct {
	Token string
}

func (e *InvalidRouteError) Error() string {
	return fmt.Sprintf("ignoring invalid input: %q", e.Token)
}

// SolverError wraps any failure crossing the solver boundary (grounding,
// configuration, solving, backend). It always propagates to the caller.
type SolverError struct {
	Op  string
	Err error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("nav: %s: %v", e.Op, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }
