// Package term implements the Parser collaborator spec.md treats as
// external: converting a text fragment such as "p(1,2)" into an opaque
// symbol token, or reporting failure without mutating any shared state.
//
// It uses github.com/ichiban/prolog purely as a term reader. Asserting the
// candidate text as the sole argument of a private, uniquely-numbered fact
// forces the interpreter to parse it as a Prolog term; reading the
// argument back through a query both validates the syntax and yields a
// canonical textual form.
package term

import (
	"context"
	"fmt"
	"strings"

	"github.com/ichiban/prolog"

	"github.com/drwadu/minifasb/pkg/asp"
)

// Parser parses ground-atom text into asp.Symbol values.
type Parser struct {
	interp *prolog.Interpreter
	seq    int
}

// New returns a ready Parser.
func New() *Parser {
	return &Parser{interp: prolog.New(nil, nil)}
}

// Parse converts exp (e.g. "p(1,2)", "a", "foo(bar,1)") into a Symbol, or
// reports a failure. Every call, failed or not, consumes one marker number
// from the Parser's counter.
func (p *Parser) Parse(exp string) (asp.Symbol, error) {
	exp = strings.TrimSpace(exp)
	if exp == "" {
		return asp.Symbol{}, fmt.Errorf("term: empty symbol text")
	}

	p.seq++
	marker := fmt.Sprintf("'$term_%d'", p.seq)
	if err := p.interp.Exec(fmt.Sprintf("%s(%s).", marker, exp)); err != nil {
		return asp.Symbol{}, fmt.Errorf("term: parsing %q: %w", exp, err)
	}

	sols, err := p.interp.QueryContext(context.Background(), fmt.Sprintf("%s(X).", marker))
	if err != nil {
		return asp.Symbol{}, fmt.Errorf("term: resolving %q: %w", exp, err)
	}
	defer sols.Close()

	if !sols.Next() {
		if err := sols.Err(); err != nil {
			return asp.Symbol{}, fmt.Errorf("term: resolving %q: %w", exp, err)
		}
		return asp.Symbol{}, fmt.Errorf("term: %q did not resolve to a term", exp)
	}

	var row struct{ X interface{} }
	if err := sols.Scan(&row); err != nil {
		return asp.Symbol{}, fmt.Errorf("term: scanning %q: %w", exp, err)
	}

	return asp.NewSymbol(canonical(row.X, exp)), nil
}

// canonical renders a resolved term back to text, falling back to the
// caller's own (whitespace-trimmed) spelling when the term carries no
// better string form than fmt's default.
func canonical(v interface{}, fallback string) string {
	if s, ok := v.(fmt.Stringer); ok {
		if str := s.String(); str != "" {
			return str
		}
	}
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
