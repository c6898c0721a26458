package netbuild

import (
	"errors"
	"fmt"

	"github.com/vellum-eda/tpgcore/diag"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// Sentinel errors for Builder operations.
var (
	ErrForwardReference = errors.New("netbuild: fanin references a node id that does not exist yet")
	ErrBadArity         = errors.New("netbuild: wrong fanin arity for gate kind")
	ErrUnknownInput     = errors.New("netbuild: complex-gate literal index out of range")
	ErrAlreadyPaired    = errors.New("netbuild: dff output already paired")
)

// Builder accumulates NodeRep/GateRep values in topological (input-to-
// output) order. It is not safe for concurrent use; callers build a network
// single-threaded and then share the frozen result (SPEC_FULL.md §5).
type Builder struct {
	nodes   []node.NodeRep
	gates   []gate.GateRep
	ppiList []int
	ppoList []int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) newNode(kind node.Kind, fanin []int) (int, error) {
	for _, f := range fanin {
		if f < 0 || f >= len(b.nodes) {
			return 0, fmt.Errorf("netbuild: fanin %d for new %s node: %w", f, kind, ErrForwardReference)
		}
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, node.NodeRep{
		ID:      id,
		Kind:    kind,
		Fanin:   append([]int(nil), fanin...),
		ImmDom:  node.NoNode,
		PPIRank: node.NoNode,
		PPORank: node.NoNode,
		TFIRank: node.NoNode,
		AltNode: node.NoNode,
	})
	return id, nil
}

// AddPrimaryInput creates a PrimaryInput node and returns its id.
func (b *Builder) AddPrimaryInput() int {
	id, _ := b.newNode(node.PrimaryInput, nil)
	b.nodes[id].PPIRank = len(b.ppiList)
	b.ppiList = append(b.ppiList, id)
	return id
}

// AddConst0 creates a tied-low source node.
func (b *Builder) AddConst0() int {
	id, _ := b.newNode(node.Const0, nil)
	return id
}

// AddConst1 creates a tied-high source node.
func (b *Builder) AddConst1() int {
	id, _ := b.newNode(node.Const1, nil)
	return id
}

// AddDffOutput creates the PPI half of a scan flip-flop; its paired
// DffInput is supplied later via AddDffInput.
func (b *Builder) AddDffOutput() int {
	id, _ := b.newNode(node.DffOutput, nil)
	b.nodes[id].PPIRank = len(b.ppiList)
	b.ppiList = append(b.ppiList, id)
	return id
}

// AddDffInput creates the PPO half of a scan flip-flop, driven by driver,
// and pairs it with pairedOutput (invariant 3: DFF input/output Nodes come
// in paired form).
func (b *Builder) AddDffInput(driver, pairedOutput int) (int, error) {
	if pairedOutput < 0 || pairedOutput >= len(b.nodes) || b.nodes[pairedOutput].Kind != node.DffOutput {
		return 0, fmt.Errorf("netbuild: AddDffInput: pairedOutput %d is not a DffOutput node", pairedOutput)
	}
	if b.nodes[pairedOutput].AltNode != node.NoNode {
		return 0, fmt.Errorf("netbuild: AddDffInput: %w", ErrAlreadyPaired)
	}
	id, err := b.newNode(node.DffInput, []int{driver})
	if err != nil {
		return 0, err
	}
	b.nodes[id].AltNode = pairedOutput
	b.nodes[pairedOutput].AltNode = id
	b.nodes[id].PPORank = len(b.ppoList)
	b.ppoList = append(b.ppoList, id)
	return id, nil
}

// AddPrimaryOutput creates a PrimaryOutput node driven by driver.
func (b *Builder) AddPrimaryOutput(driver int) (int, error) {
	id, err := b.newNode(node.PrimaryOutput, []int{driver})
	if err != nil {
		return 0, err
	}
	b.nodes[id].PPORank = len(b.ppoList)
	b.ppoList = append(b.ppoList, id)
	return id, nil
}

// AddPrimitiveGate creates a one-node gate of the given primitive kind.
// The branch position of logical input i is (nodeID, i) — a primitive
// gate's Node *is* its own decomposition.
func (b *Builder) AddPrimitiveGate(kind node.Kind, fanin []int) (nodeID, gateID int, err error) {
	if !kind.IsGate() {
		return 0, 0, fmt.Errorf("netbuild: %s is not a gate kind", kind)
	}
	if len(fanin) < kind.MinFanin() {
		return 0, 0, fmt.Errorf("netbuild: %s needs >= %d fanin, got %d: %w", kind, kind.MinFanin(), len(fanin), ErrBadArity)
	}
	nodeID, err = b.newNode(kind, fanin)
	if err != nil {
		return 0, 0, err
	}
	inputs := make([]gate.BranchInfo, len(fanin))
	for i := range fanin {
		inputs[i] = gate.BranchInfo{Node: nodeID, Ipos: i}
	}
	gateID = len(b.gates)
	b.gates = append(b.gates, gate.GateRep{
		ID: gateID, Output: nodeID, Inputs: inputs,
		IsPrimitive: true, PrimType: kind,
	})
	return nodeID, gateID, nil
}

// AddComplexGate realizes expr (a factored AND/OR/XOR tree over len(drivers)
// logical inputs) as a small tree of decomposed Nodes, applying SPEC_FULL.md
// §4.2's branch-point decomposition rule so every logical input ends up with
// exactly one physical BranchInfo.
func (b *Builder) AddComplexGate(expr *gate.Expr, drivers []int) (nodeID, gateID int, err error) {
	pos, neg := gate.CountLiteralPolarities(expr, len(drivers))

	leaf := make([]int, len(drivers))    // node id a positive literal resolves to
	negLeaf := make([]int, len(drivers)) // node id a negative literal resolves to
	branchInfos := make([]gate.BranchInfo, len(drivers))
	directDriverIndex := make(map[int]int, len(drivers))

	for i, drv := range drivers {
		plan := gate.DecomposePlan(pos[i], neg[i])
		switch plan.Kind {
		case gate.DecompDirect:
			leaf[i] = drv
			directDriverIndex[drv] = i
		case gate.DecompBuffer:
			bufID, berr := b.newNode(node.Buff, []int{drv})
			if berr != nil {
				return 0, 0, berr
			}
			leaf[i] = bufID
			branchInfos[i] = gate.BranchInfo{Node: bufID, Ipos: 0}
		case gate.DecompInverter:
			invID, ierr := b.newNode(node.Not, []int{drv})
			if ierr != nil {
				return 0, 0, ierr
			}
			negLeaf[i] = invID
			branchInfos[i] = gate.BranchInfo{Node: invID, Ipos: 0}
		case gate.DecompInverterAndBuffer:
			invID, ierr := b.newNode(node.Not, []int{drv})
			if ierr != nil {
				return 0, 0, ierr
			}
			bufID, berr := b.newNode(node.Buff, []int{drv})
			if berr != nil {
				return 0, 0, berr
			}
			leaf[i] = bufID
			negLeaf[i] = invID
			branchInfos[i] = gate.BranchInfo{Node: bufID, Ipos: 0}
		}
	}

	var build func(e *gate.Expr) (int, error)
	build = func(e *gate.Expr) (int, error) {
		if e.Kind == gate.ExprLit {
			if e.Lit < 0 || e.Lit >= len(drivers) {
				return 0, ErrUnknownInput
			}
			if e.Neg {
				return negLeaf[e.Lit], nil
			}
			return leaf[e.Lit], nil
		}
		if len(e.Args) == 1 {
			return build(e.Args[0])
		}
		fanin := make([]int, len(e.Args))
		for i, a := range e.Args {
			cid, err := build(a)
			if err != nil {
				return 0, err
			}
			fanin[i] = cid
		}
		var kind node.Kind
		switch e.Kind {
		case gate.ExprAnd:
			kind = node.And
		case gate.ExprOr:
			kind = node.Or
		case gate.ExprXor:
			kind = node.Xor
		}
		id, err := b.newNode(kind, fanin)
		if err != nil {
			return 0, err
		}
		for pidx, fid := range fanin {
			if i, ok := directDriverIndex[fid]; ok && branchInfos[i] == (gate.BranchInfo{}) {
				branchInfos[i] = gate.BranchInfo{Node: id, Ipos: pidx}
			}
		}
		return id, nil
	}

	root, err := build(expr)
	if err != nil {
		return 0, 0, err
	}

	gateID = len(b.gates)
	b.gates = append(b.gates, gate.GateRep{
		ID: gateID, Output: root, Inputs: branchInfos,
		IsPrimitive: false, Expr: expr,
	})
	return root, gateID, nil
}

// Nodes, Gates, PPIList, PPOList expose the accumulated (still mutable, not
// yet frozen) state for network.Freeze to consume.
func (b *Builder) Nodes() []node.NodeRep { return b.nodes }
func (b *Builder) Gates() []gate.GateRep { return b.gates }
func (b *Builder) PPIList() []int        { return append([]int(nil), b.ppiList...) }
func (b *Builder) PPOList() []int        { return append([]int(nil), b.ppoList...) }

// Finish validates that every DFF pairing was completed and hands the
// accumulated state to network.Freeze, producing the immutable Network
// (SPEC_FULL.md §4.1 lifecycle). logger may be nil.
func (b *Builder) Finish(faultType valkind.FaultType, logger *diag.Logger) (*network.Network, error) {
	for i := range b.nodes {
		if b.nodes[i].IsDff() && b.nodes[i].AltNode == node.NoNode {
			return nil, fmt.Errorf("netbuild: Finish: DFF node %d was never paired", i)
		}
	}
	return network.Freeze(b, faultType, logger)
}
