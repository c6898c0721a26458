package fault

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// NoFault is the sentinel "no fault" id.
const NoFault = -1

// Variant tags which concrete shape a Fault takes (SPEC_FULL.md §3.2/§4.3).
type Variant int8

const (
	StemSA Variant = iota
	BranchSA
	StemTD
	BranchTD
	Exhaustive
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case StemSA:
		return "stem-sa"
	case BranchSA:
		return "branch-sa"
	case StemTD:
		return "stem-td"
	case BranchTD:
		return "branch-td"
	case Exhaustive:
		return "exhaustive"
	default:
		return "unknown"
	}
}

// Fault is a tagged fault record. Contract (SPEC_FULL.md §7): calling Ipos()
// on a StemSA/StemTD/Exhaustive fault, or Bits() on anything but Exhaustive,
// is a programmer error and panics immediately — these are not recoverable
// conditions, unlike SAT Unknown or propagation overflow.
type Fault struct {
	ID      int
	Variant Variant
	Gate    int          // GateRep.ID
	ipos    int          // valid for BranchSA/BranchTD
	Fval    valkind.Fval2 // valid for StemSA/BranchSA/StemTD/BranchTD
	bits    uint64        // valid for Exhaustive: bit i = value of logical input i
	Rep     int           // representative fault id; Rep == ID if this fault is its own rep
}

// Ipos returns the branch input position. Panics for non-branch variants.
func (f *Fault) Ipos() int {
	if f.Variant != BranchSA && f.Variant != BranchTD {
		panic(fmt.Sprintf("fault: Ipos() called on %s fault", f.Variant))
	}
	return f.ipos
}

// Bits returns the packed input vector of an Exhaustive fault. Panics
// otherwise.
func (f *Fault) Bits() uint64 {
	if f.Variant != Exhaustive {
		panic(fmt.Sprintf("fault: Bits() called on %s fault", f.Variant))
	}
	return f.bits
}

// IsStem reports whether f is a StemSA or StemTD fault.
func (f *Fault) IsStem() bool { return f.Variant == StemSA || f.Variant == StemTD }

// IsBranch reports whether f is a BranchSA or BranchTD fault.
func (f *Fault) IsBranch() bool { return f.Variant == BranchSA || f.Variant == BranchTD }

// IsTransitionDelay reports whether f belongs to the two-frame broadside
// model.
func (f *Fault) IsTransitionDelay() bool { return f.Variant == StemTD || f.Variant == BranchTD }

// OriginNode returns the node id at which the faulty value first diverges
// (SPEC_FULL.md §3.2/table in §4.3).
func (f *Fault) OriginNode(gates []gate.GateRep) int {
	g := &gates[f.Gate]
	switch f.Variant {
	case StemSA, StemTD, Exhaustive:
		return g.Output
	case BranchSA, BranchTD:
		bi := g.BranchPos(f.ipos)
		return bi.Node
	default:
		panic("fault: unknown variant")
	}
}

// sidePinning emits, for node b's inputs other than position k, an Assign at
// time t pinning each to b's non-controlling value — the shared "sensitize
// the other inputs" clause used by BranchSA/BranchTD excitation and by
// FFRPropagateCondition (SPEC_FULL.md §4.3 table, §4.6.2).
func sidePinning(nodes []node.NodeRep, b *node.NodeRep, k int, t int8) []assign.Assign {
	_, nval, _, _ := b.ControlValues()
	if nval.IsX() {
		return nil
	}
	want := nval == valkind.V1
	out := make([]assign.Assign, 0, len(b.Fanin)-1)
	for j, fi := range b.Fanin {
		if j == k {
			continue
		}
		out = append(out, assign.Assign{Node: fi, Time: t, Val: want})
	}
	return out
}

// ExcitationCondition returns the ordered, deduplicated assignment list
// necessary to activate f and propagate it to OriginNode's output
// (SPEC_FULL.md §4.3 table).
func (f *Fault) ExcitationCondition(nodes []node.NodeRep, gates []gate.GateRep) *assign.List {
	g := &gates[f.Gate]
	switch f.Variant {
	case StemSA:
		// o@1 = 1 to excite fval=0 (stuck-at-0 is caught by driving a 1);
		// o@1 = 0 to excite fval=1.
		return assign.NewList(assign.Assign{Node: g.Output, Time: 1, Val: f.Fval == valkind.Fzero})

	case StemTD:
		// fval=0 (rise 0->1): o@0=0, o@1=1. fval=1 (fall 1->0): o@0=1, o@1=0.
		rise := f.Fval == valkind.Fzero
		return assign.NewList(
			assign.Assign{Node: g.Output, Time: 0, Val: !rise},
			assign.Assign{Node: g.Output, Time: 1, Val: rise},
		)

	case BranchSA:
		bi := g.BranchPos(f.ipos)
		b := &nodes[bi.Node]
		items := []assign.Assign{{Node: b.Fanin[bi.Ipos], Time: 1, Val: f.Fval == valkind.Fzero}}
		items = append(items, sidePinning(nodes, b, bi.Ipos, 1)...)
		return assign.NewList(items...)

	case BranchTD:
		bi := g.BranchPos(f.ipos)
		b := &nodes[bi.Node]
		rise := f.Fval == valkind.Fzero
		items := []assign.Assign{
			{Node: b.Fanin[bi.Ipos], Time: 0, Val: !rise},
			{Node: b.Fanin[bi.Ipos], Time: 1, Val: rise},
		}
		items = append(items, sidePinning(nodes, b, bi.Ipos, 1)...)
		return assign.NewList(items...)

	case Exhaustive:
		items := make([]assign.Assign, 0, len(g.Inputs))
		for i, bi := range g.Inputs {
			v := (f.bits>>uint(i))&1 == 1
			items = append(items, assign.Assign{Node: nodes[bi.Node].Fanin[bi.Ipos], Time: 1, Val: v})
		}
		return assign.NewList(items...)

	default:
		panic("fault: unknown variant")
	}
}

// FFRPropagateCondition extends ExcitationCondition by walking out of
// OriginNode along single-fanout edges, pinning side inputs of each node
// passed through to its non-controlling value (SPEC_FULL.md §4.3/§4.6.2).
// Walking stops at the first branch point (fanout_num != 1) or at a node
// with no fanout (a PPO).
func (f *Fault) FFRPropagateCondition(nodes []node.NodeRep, gates []gate.GateRep) *assign.List {
	cond := f.ExcitationCondition(nodes, gates)
	items := append([]assign.Assign(nil), cond.Items()...)

	cur := f.OriginNode(gates)
	for nodes[cur].FanoutNum() == 1 {
		nxt := nodes[cur].Fanout[0]
		nn := &nodes[nxt]
		k := indexOf(nn.Fanin, cur)
		items = append(items, sidePinning(nodes, nn, k, 1)...)
		cur = nxt
	}
	return assign.NewList(items...)
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
