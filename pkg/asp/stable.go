package asp

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// clauseLit is one (possibly negated) atom-variable reference in a base SAT
// clause; baseClauses builds each clause as a disjunction of these, derived
// from a rule's material-implication reading (body true implies some head
// true).
type clauseLit struct {
	atom int32
	neg  bool
}

// baseClauses derives the necessary (not sufficient) classical constraints
// every stable model must satisfy: "if the positive body holds and no
// negative-body atom holds, some head atom holds". Facts and disjunctive
// facts fall out as the case of an empty body. Integrity constraints fall
// out as the case of empty heads.
func (p *program) baseClauses() [][]clauseLit {
	clauses := make([][]clauseLit, 0, len(p.rules))
	for _, r := range p.rules {
		clause := make([]clauseLit, 0, len(r.pos)+len(r.neg)+len(r.heads))
		for _, a := range r.pos {
			clause = append(clause, clauseLit{atom: a, neg: true}) // ¬pos
		}
		for _, a := range r.neg {
			clause = append(clause, clauseLit{atom: a, neg: false}) // neg atom itself
		}
		for _, a := range r.heads {
			clause = append(clause, clauseLit{atom: a, neg: false})
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// isStableModel checks whether the atoms true in val form a stable model
// (answer set) of p, using the Gelfond-Lifschitz reduct: rules whose
// negative body intersects val are dropped, and the surviving rules'
// negative bodies are dropped (they are satisfied by construction). val is
// then required to be a subset-minimal model of that purely positive
// program: not just "no single atom can be dropped", but "no subset of
// val's true atoms, however many are dropped at once, still satisfies the
// reduct" — checked exactly with a second SAT query (hasSmallerModel)
// rather than approximated by one-at-a-time flips, since head/body
// interdependencies (e.g. "a;b;c.", "a:-b,c.", "b:-a,c.", "c:-a,b.") can
// require removing several atoms together even though every single-atom
// removal individually fails.
func isStableModel(p *program, val []bool) bool {
	reduct := make([]rule, 0, len(p.rules))
	for _, r := range p.rules {
		dropped := false
		for _, n := range r.neg {
			if val[n] {
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}
		reduct = append(reduct, rule{heads: r.heads, pos: r.pos})
	}

	if !satisfies(reduct, val) {
		return false
	}
	return !hasSmallerModel(reduct, val)
}

// hasSmallerModel asks a fresh SAT instance whether some proper subset of
// val's true atoms also satisfies reduct: every reduct rule becomes a
// material-implication clause as in baseClauses, every atom val holds false
// is pinned false (a subset can only drop atoms, never add them), and one
// clause requires at least one of val's true atoms to end up false (so any
// solution found is a strictly smaller set). Satisfiable means val isn't
// minimal.
func hasSmallerModel(reduct []rule, val []bool) bool {
	numAtoms := int32(len(val) - 1)
	g := gini.New()
	vars := make([]z.Lit, numAtoms+1)
	for i := int32(1); i <= numAtoms; i++ {
		vars[i] = g.Lit()
	}

	for _, r := range reduct {
		for _, a := range r.pos {
			g.Add(vars[a].Not())
		}
		for _, h := range r.heads {
			g.Add(vars[h])
		}
		g.Add(z.LitNull)
	}

	var trueAtoms []int32
	for i := int32(1); i <= numAtoms; i++ {
		if val[i] {
			trueAtoms = append(trueAtoms, i)
			continue
		}
		g.Add(vars[i].Not())
		g.Add(z.LitNull)
	}

	for _, a := range trueAtoms {
		g.Add(vars[a].Not())
	}
	g.Add(z.LitNull)

	return g.Solve() == 1
}

func satisfies(reduct []rule, val []bool) bool {
	for _, r := range reduct {
		bodyHolds := true
		for _, a := range r.pos {
			if !val[a] {
				bodyHolds = false
				break
			}
		}
		if !bodyHolds {
			continue
		}
		if len(r.heads) == 0 {
			return false // integrity constraint violated
		}
		headHolds := false
		for _, h := range r.heads {
			if val[h] {
				headHolds = true
				break
			}
		}
		if !headHolds {
			return false
		}
	}
	return true
}
