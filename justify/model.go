package justify

import (
	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/valkind"
)

// ModelJustifier projects an already-solved SAT model down onto the PPIs:
// the condition passed to Justify is only checked for consistency against
// the model, never searched for, since the solver has already committed to
// one (SPEC_FULL.md §6's Justifier contract, satisfied trivially once a
// model exists).
type ModelJustifier struct {
	Nodes   []node.NodeRep
	PPIList []int
	Solver  satiface.Solver
	G       gateenc.VarMap
	H       gateenc.VarMap // previous-frame map; nil outside transition-delay mode
}

// Justify reports false if cond conflicts with the solved model; otherwise
// it returns the model's values at every PPI at Time 1 (and, when H is set,
// each PPI's previous-frame value from H at Time 0) as an AssignList.
func (j *ModelJustifier) Justify(cond *assign.List) (*assign.List, bool) {
	for _, a := range cond.Items() {
		vm := j.G
		if a.Time == 0 && j.H != nil {
			vm = j.H
		}
		lit, ok := vm[a.Node]
		if !ok {
			continue
		}
		got := j.Solver.Model(lit)
		want := satiface.FromBool(a.Val)
		if got != satiface.SatUnknown && got != want {
			return nil, false
		}
	}

	var items []assign.Assign
	for _, id := range j.PPIList {
		if lit, ok := j.G[id]; ok {
			if v := modelVal(j.Solver, lit); !v.IsX() {
				items = append(items, assign.Assign{Node: id, Time: 1, Val: v.Bool()})
			}
		}
		if j.H != nil {
			if lit, ok := j.H[id]; ok {
				if v := modelVal(j.Solver, lit); !v.IsX() {
					items = append(items, assign.Assign{Node: id, Time: 0, Val: v.Bool()})
				}
			}
		}
	}
	return assign.NewList(items...), true
}

func modelVal(s satiface.Solver, lit satiface.Literal) valkind.Val3 {
	switch s.Model(lit) {
	case satiface.SatTrue:
		return valkind.V1
	case satiface.SatFalse:
		return valkind.V0
	default:
		return valkind.X
	}
}
