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

// conePath runs the full twin-circuit encoding: propagate.ConeEnc over the
// fault's TFO/TFI cone, plus propagate.BSEnc's previous-frame encoding when
// f is a transition-delay fault.
func (e *Engine) conePath(f *fault.Fault, origin int) (Outcome, error) {
	solver := satsolver.New(e.MaxDecisions)
	cone := propagate.BuildCone(e.Nt, origin)

	site, err := e.faultSite(f)
	if err != nil {
		return Outcome{}, err
	}
	vm, prop, err := propagate.ConeEnc(solver, e.nodes, cone, site)
	if err != nil {
		return Outcome{}, err
	}

	isTD := f.IsTransitionDelay()
	var bs propagate.BSEnc
	if isTD {
		bs = propagate.BuildBSEnc(solver, e.Nt, e.nodes, cone.TFISupport, vm.G)
	}

	cond := f.ExcitationCondition(e.nodes, e.gates)
	assumptions := []satiface.Literal{prop}
	for _, a := range cond.Items() {
		vmSel := vm.G
		if a.Time == 0 {
			if !isTD {
				continue
			}
			vmSel = bs.H
		}
		lit, ok := vmSel[a.Node]
		if !ok {
			return Outcome{}, fmt.Errorf("dtpg: fault %d excitation references node %d outside its cone", f.ID, a.Node)
		}
		assumptions = append(assumptions, assumeLit(lit, a.Val))
	}

	status := solver.Solve(assumptions...)
	if status != satiface.SatTrue {
		return Outcome{Status: status}, nil
	}

	var h gateenc.VarMap
	if isTD {
		h = bs.H
	}
	j := &justify.ModelJustifier{Nodes: e.nodes, PPIList: e.Nt.PPIList(), Solver: solver, G: vm.G, H: h}
	proj, ok := j.Justify(assign.NewList())
	if !ok {
		return Outcome{}, fmt.Errorf("dtpg: solved model for fault %d rejected by justifier", f.ID)
	}
	tv, err := tvec.FromAssignList(e.Nt.FaultType(), e.numInputs, e.numDffs, proj, e.ppiIdx)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Status: status, Vector: &tv}, nil
}
