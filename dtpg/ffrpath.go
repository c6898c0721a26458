package dtpg

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/justify"
	"github.com/vellum-eda/tpgcore/propagate"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/satsolver"
	"github.com/vellum-eda/tpgcore/tvec"
)

// tryFFRPath attempts the cheap FFR-local encoding for f. handled reports
// whether the FFR path actually ran (true) or its preconditions failed,
// meaning the caller should fall back to conePath (false, nil error).
func (e *Engine) tryFFRPath(f *fault.Fault, origin int) (out Outcome, handled bool, err error) {
	if f.IsTransitionDelay() {
		// FFREnc is a single-frame encoder; transition-delay's launch/
		// capture pair always needs BSEnc and the full cone path.
		return Outcome{}, false, nil
	}
	ffrRoot := e.Nt.FFRRootOf(origin)
	if e.Nt.MFFCRootOf(ffrRoot) != ffrRoot {
		return Outcome{}, false, nil
	}
	region, ok := e.ffrByRoot[ffrRoot]
	if !ok {
		return Outcome{}, false, nil
	}
	for _, in := range region.Inputs {
		if !e.nodes[in].IsPPI() {
			// An external driver isn't itself a PPI: the solved model would
			// need a further backtrace pass this path doesn't run. Fall
			// back to the full cone path instead of guessing.
			return Outcome{}, false, nil
		}
	}

	solver := satsolver.New(e.MaxDecisions)
	gv := gateenc.VarMap{}
	for _, id := range region.Nodes {
		gv[id] = solver.NewVariable(true)
	}
	for _, id := range region.Inputs {
		if _, ok := gv[id]; !ok {
			gv[id] = solver.NewVariable(true)
		}
	}
	for _, id := range region.Nodes {
		if e.nodes[id].Kind.IsLogic() {
			if err := gateenc.GateEnc(solver, e.nodes, id, gv); err != nil {
				return Outcome{}, true, err
			}
		}
	}

	enc := propagate.BuildFFREnc(solver, e.nodes, region, gv, 0)
	rootPV, ok := enc.FaultPV(region.Root)
	if !ok {
		return Outcome{}, true, fmt.Errorf("dtpg: FFR %d has no propagation variable for its own root", region.ID)
	}
	solver.AddClause(rootPV)

	originPV, ok := enc.FaultPV(origin)
	if !ok {
		// origin sits outside this FFR's node set (can happen for a branch
		// fault whose side-pinned chain reaches past it) — not handleable
		// by this encoder.
		return Outcome{}, false, nil
	}

	cond := f.FFRPropagateCondition(e.nodes, e.gates)
	assumptions := []satiface.Literal{originPV}
	for _, a := range cond.Items() {
		if a.Time != 1 {
			continue
		}
		lit, ok := gv[a.Node]
		if !ok {
			return Outcome{}, false, nil
		}
		assumptions = append(assumptions, assumeLit(lit, a.Val))
	}

	status := solver.Solve(assumptions...)
	if status != satiface.SatTrue {
		return Outcome{Status: status}, true, nil
	}

	j := &justify.ModelJustifier{Nodes: e.nodes, PPIList: e.Nt.PPIList(), Solver: solver, G: gv}
	proj, ok := j.Justify(assign.NewList())
	if !ok {
		return Outcome{}, true, fmt.Errorf("dtpg: FFR-local model for fault %d rejected by justifier", f.ID)
	}
	tv, err := tvec.FromAssignList(e.Nt.FaultType(), e.numInputs, e.numDffs, proj, e.ppiIdx)
	if err != nil {
		return Outcome{}, true, err
	}
	return Outcome{Status: status, Vector: &tv}, true, nil
}
