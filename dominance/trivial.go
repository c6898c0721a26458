package dominance

import (
	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/satiface"
)

// TrivialChecker1 compares two already-known mandatory condition lists
// without touching the SAT solver: it reports whether cond1 is compatible
// with cond2, i.e. asserting cond1 does not force cond2's negation
// (SPEC_FULL.md §4.7). A false result proves f1 cannot dominate f2 under
// these conditions without ever building a cone.
func TrivialChecker1(cond1, cond2 *assign.List) bool {
	return assign.Compatible(cond1, cond2)
}

// condAssumptions converts the Time==1 (capture-frame) entries of cond into
// SAT assumption literals against g, skipping nodes g has no variable for.
func condAssumptions(cond *assign.List, g gateenc.VarMap) []satiface.Literal {
	var out []satiface.Literal
	for _, a := range cond.Items() {
		if a.Time != 1 {
			continue
		}
		lit, ok := g[a.Node]
		if !ok {
			continue
		}
		if !a.Val {
			lit = lit.Not()
		}
		out = append(out, lit)
	}
	return out
}

// TrivialChecker2 mixes a cone-propagation variable with a condition list:
// it asks whether prop can be made true simultaneously with cond, i.e.
// SAT(prop ∧ cond) (SPEC_FULL.md §4.7). ok is false on a solver Unknown.
func TrivialChecker2(solver satiface.Solver, prop satiface.Literal, cond *assign.List, g gateenc.VarMap) (satisfiable, ok bool) {
	assumptions := append([]satiface.Literal{prop}, condAssumptions(cond, g)...)
	switch solver.Solve(assumptions...) {
	case satiface.SatTrue:
		return true, true
	case satiface.SatFalse:
		return false, true
	default:
		return false, false
	}
}

// TrivialChecker3 is TrivialChecker2's converse: it asks whether cond
// already implies prop, i.e. whether SAT(cond ∧ ¬prop) is UNSAT
// (SPEC_FULL.md §4.7). ok is false on a solver Unknown.
func TrivialChecker3(solver satiface.Solver, prop satiface.Literal, cond *assign.List, g gateenc.VarMap) (implies, ok bool) {
	assumptions := append([]satiface.Literal{prop.Not()}, condAssumptions(cond, g)...)
	switch solver.Solve(assumptions...) {
	case satiface.SatFalse:
		return true, true
	case satiface.SatTrue:
		return false, true
	default:
		return false, false
	}
}
