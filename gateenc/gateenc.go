package gateenc

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/valkind"
)

// VarMap maps a node id to the SAT literal carrying its value in whatever
// cone/frame is currently being encoded.
type VarMap map[int]satiface.Literal

// litFor returns the literal that is true exactly when lit's variable takes
// val (V1 -> lit itself, V0 -> its complement). val must not be X.
func litFor(lit satiface.Literal, val valkind.Val3) satiface.Literal {
	if val == valkind.V1 {
		return lit
	}
	return lit.Not()
}

func literalsFor(ids []int, vm VarMap) ([]satiface.Literal, error) {
	out := make([]satiface.Literal, len(ids))
	for i, id := range ids {
		lit, ok := vm[id]
		if !ok {
			return nil, fmt.Errorf("gateenc: no literal mapped for node %d", id)
		}
		out[i] = lit
	}
	return out, nil
}

// GateEnc emits CNF for node n's good-machine function (SPEC_FULL.md §4.5).
// n must be a logic node (Const0/Const1/Buff/Not/And/Nand/Or/Nor/Xor/Xnor);
// calling it on a PPI/PPO/DFF-role node is a programmer error and panics.
func GateEnc(solver satiface.Solver, nodes []node.NodeRep, nodeID int, vm VarMap) error {
	n := &nodes[nodeID]
	if !n.Kind.IsLogic() {
		panic(fmt.Sprintf("gateenc: GateEnc called on non-logic node %d (%s)", nodeID, n.Kind))
	}
	out, ok := vm[nodeID]
	if !ok {
		return fmt.Errorf("gateenc: no literal mapped for node %d", nodeID)
	}
	ins, err := literalsFor(n.Fanin, vm)
	if err != nil {
		return err
	}
	return emitFunction(solver, n.Kind, out, ins)
}

// emitFunction emits the CNF for kind(ins...) == out, shared by GateEnc and
// the unfaulted portions of FaultyGateEnc.
func emitFunction(solver satiface.Solver, kind node.Kind, out satiface.Literal, ins []satiface.Literal) error {
	switch kind {
	case node.Const0:
		solver.AddClause(out.Not())
	case node.Const1:
		solver.AddClause(out)
	case node.Buff:
		solver.AddBuffGate(out, ins[0])
	case node.Not:
		solver.AddNotGate(out, ins[0])
	case node.And:
		emitControlling(solver, out, ins, kind)
	case node.Nand:
		emitControlling(solver, out, ins, kind)
	case node.Or:
		emitControlling(solver, out, ins, kind)
	case node.Nor:
		emitControlling(solver, out, ins, kind)
	case node.Xor:
		solver.AddXorGate(out, ins...)
	case node.Xnor:
		solver.AddXnorGate(out, ins...)
	default:
		return fmt.Errorf("gateenc: %s has no encodable function", kind)
	}
	return nil
}

// emitControlling implements the AND/NAND/OR/NOR clause shape: k forward
// clauses ("input at controlling value forces the output") plus one
// k+1-wide backward clause (SPEC_FULL.md §4.5).
func emitControlling(solver satiface.Solver, out satiface.Literal, ins []satiface.Literal, kind node.Kind) {
	cval, nval, coval, noval := kind.ControlValues()
	for _, in := range ins {
		solver.AddClause(litFor(in, cval).Not(), litFor(out, coval))
	}
	backward := make([]satiface.Literal, 0, len(ins)+1)
	for _, in := range ins {
		backward = append(backward, litFor(in, nval).Not())
	}
	backward = append(backward, litFor(out, noval))
	solver.AddClause(backward...)
}

// CalcCNFSize returns the (clause count, literal count) GateEnc would emit
// for node n, without emitting anything — the budget-accounting size oracle
// (SPEC_FULL.md §4.5's calc_cnf_size).
func CalcCNFSize(nodes []node.NodeRep, nodeID int) (clauses, literals int) {
	n := &nodes[nodeID]
	k := len(n.Fanin)
	switch n.Kind {
	case node.Const0, node.Const1:
		return 1, 1
	case node.Buff, node.Not:
		return 2, 4
	case node.And, node.Nand, node.Or, node.Nor:
		return k + 1, 2*k + (k + 1)
	case node.Xor, node.Xnor:
		if k <= 1 {
			return 2, 4
		}
		stages := k - 1
		return stages * 4, stages * 12
	default:
		return 0, 0
	}
}

// FaultSite identifies where, within one node's local function, a fault
// overrides the good-machine CNF (SPEC_FULL.md §4.5's FaultyGateEnc).
type FaultSite struct {
	// IsStem forces nodeID's own output to Fval, bypassing its function
	// entirely. Otherwise Ipos names which fanin position is corrupted to
	// Fval before the node's function is evaluated (a branch fault).
	IsStem bool
	Ipos   int
	Fval   valkind.Fval2
}

// FaultyGateEnc emits CNF for node n with site active: a stem fault pins the
// node's output directly; a branch fault substitutes a fresh forced-value
// literal for the named fanin position and otherwise encodes the node's
// normal function (SPEC_FULL.md §4.5).
func FaultyGateEnc(solver satiface.Solver, nodes []node.NodeRep, nodeID int, vm VarMap, site FaultSite) error {
	n := &nodes[nodeID]
	out, ok := vm[nodeID]
	if !ok {
		return fmt.Errorf("gateenc: no literal mapped for node %d", nodeID)
	}
	if site.IsStem {
		solver.AddClause(litFor(out, site.Fval.Val3()))
		return nil
	}
	ins, err := literalsFor(n.Fanin, vm)
	if err != nil {
		return err
	}
	if site.Ipos < 0 || site.Ipos >= len(ins) {
		return fmt.Errorf("gateenc: branch fault ipos %d out of range for node %d", site.Ipos, nodeID)
	}
	forced := solver.NewVariable(false)
	solver.AddClause(litFor(forced, site.Fval.Val3()))
	ins[site.Ipos] = forced
	return emitFunction(solver, n.Kind, out, ins)
}
