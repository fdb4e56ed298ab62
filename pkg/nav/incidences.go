package nav

import "github.com/drwadu/minifasb/pkg/asp"

// IncidenceRow is one row of a facet incidence matrix: for facet At,
// Membership[j] reports whether Columns[j] is still a facet once At is
// peeked onto the route (spec.md §4.6). Only the "F" structure from the
// original design is carried over — "B" and "C" were never implemented
// there either.
type IncidenceRow struct {
	At         asp.Symbol
	Columns    []asp.Symbol
	Membership []bool
}

// Incidences builds the full facet co-occurrence matrix under the current
// route: for every facet f (in registry order), it peeks f onto the route
// and records which facets of the original (unpeeked) set remain facets.
func (e *Engine) Incidences() ([]IncidenceRow, error) {
	columns, err := e.Facets(nil)
	if err != nil {
		return nil, err
	}
	rows := make([]IncidenceRow, 0, len(columns))
	for _, at := range columns {
		withPeek, err := e.Facets([]string{at.String()})
		if err != nil {
			return nil, err
		}
		present := make(map[string]bool, len(withPeek))
		for _, s := range withPeek {
			present[s.String()] = true
		}
		membership := make([]bool, len(columns))
		for j, col := range columns {
			membership[j] = present[col.String()]
		}
		rows = append(rows, IncidenceRow{At: at, Columns: columns, Membership: membership})
	}
	return rows, nil
}
