package node

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/valkind"
)

// Kind enumerates every primitive a NodeRep can be. It subsumes both the
// node's "role" (primary I/O, DFF port) and its logic function, matching
// SPEC_FULL.md §3.2's single closed list of Node primitives.
type Kind int8

const (
	PrimaryInput Kind = iota
	DffOutput
	PrimaryOutput
	DffInput
	Const0
	Const1
	Buff
	Not
	And
	Nand
	Or
	Nor
	Xor
	Xnor
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case PrimaryInput:
		return "PI"
	case DffOutput:
		return "DFF_OUT"
	case PrimaryOutput:
		return "PO"
	case DffInput:
		return "DFF_IN"
	case Const0:
		return "C0"
	case Const1:
		return "C1"
	case Buff:
		return "BUFF"
	case Not:
		return "NOT"
	case And:
		return "AND"
	case Nand:
		return "NAND"
	case Or:
		return "OR"
	case Nor:
		return "NOR"
	case Xor:
		return "XOR"
	case Xnor:
		return "XNOR"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// IsPPI reports whether k is a pseudo-primary input (primary input or DFF
// output) per the GLOSSARY.
func (k Kind) IsPPI() bool { return k == PrimaryInput || k == DffOutput }

// IsPPO reports whether k is a pseudo-primary output (primary output or DFF
// input).
func (k Kind) IsPPO() bool { return k == PrimaryOutput || k == DffInput }

// IsLogic reports whether k has a Boolean function (excludes PPI/PPO roles).
func (k Kind) IsLogic() bool {
	switch k {
	case Const0, Const1, Buff, Not, And, Nand, Or, Nor, Xor, Xnor:
		return true
	default:
		return false
	}
}

// IsGate reports whether k is a proper multi/single-input logic gate, i.e.
// IsLogic minus the two constant sources (which take no fanin).
func (k Kind) IsGate() bool {
	return k.IsLogic() && k != Const0 && k != Const1
}

// MinFanin returns the minimum arity k accepts (0 for constants/PPI/PPO roles
// with no internal fanin recorded here, 1 for Buff/Not, 2 for the rest).
func (k Kind) MinFanin() int {
	switch k {
	case Buff, Not:
		return 1
	case And, Nand, Or, Nor, Xor, Xnor:
		return 2
	default:
		return 0
	}
}

// ControlValues returns (cval, nval, coval, noval) per SPEC_FULL.md §4.2's
// table. Non-controlling-value gate kinds (XOR/XNOR/Buff/Not) and non-logic
// kinds all report valkind.X in every slot.
func (k Kind) ControlValues() (cval, nval, coval, noval valkind.Val3) {
	switch k {
	case And:
		return valkind.V0, valkind.V1, valkind.V0, valkind.V1
	case Nand:
		return valkind.V0, valkind.V1, valkind.V1, valkind.V0
	case Or:
		return valkind.V1, valkind.V0, valkind.V1, valkind.V0
	case Nor:
		return valkind.V1, valkind.V0, valkind.V0, valkind.V1
	default:
		return valkind.X, valkind.X, valkind.X, valkind.X
	}
}

// NoNode is the sentinel id meaning "no node" (absent dominator, absent DFF
// pairing, absent fanin/fanout slot).
const NoNode = -1

// NodeRep is a single decomposed primitive. It is owned by a network.Network
// arena and is immutable once that arena is frozen (SPEC_FULL.md §4.1
// lifecycle). Fanin/Fanout hold node ids, not pointers, so NodeRep values can
// be copied freely and never outlive anything.
type NodeRep struct {
	ID   int
	Kind Kind

	// Fanin is the ordered list of driving node ids. Logic nodes (and
	// DffInput) have len(Fanin) >= Kind.MinFanin(); PrimaryInput/DffOutput/
	// Const0/Const1 have none.
	Fanin []int

	// Fanout is the set of node ids that list this node in their Fanin,
	// materialized once during post-processing (invariant 2, SPEC_FULL.md §4.1).
	Fanout []int

	// ImmDom is the immediate-dominator node id, or NoNode if this node has
	// no single dominating successor (i.e. it is an MFFC root).
	ImmDom int

	// PPIRank is this node's index in Network.PPIList, or NoNode if it is not
	// a PPI.
	PPIRank int

	// PPORank is this node's index in Network.PPOList (declaration order,
	// NOT the TFI-size-sorted order_id2 rank), or NoNode if not a PPO.
	PPORank int

	// TFIRank is output_id2: this PPO's rank when PPOs are sorted by
	// ascending transitive-fanin size (invariant 4). NoNode for non-PPOs.
	TFIRank int

	// AltNode is the paired DFF node id (DffInput <-> DffOutput), or NoNode.
	AltNode int
}

// IsPPI reports whether n is a pseudo-primary input.
func (n *NodeRep) IsPPI() bool { return n.Kind.IsPPI() }

// IsPPO reports whether n is a pseudo-primary output.
func (n *NodeRep) IsPPO() bool { return n.Kind.IsPPO() }

// IsLogic reports whether n has a Boolean function.
func (n *NodeRep) IsLogic() bool { return n.Kind.IsLogic() }

// IsDff reports whether n is one half of a DFF pair.
func (n *NodeRep) IsDff() bool { return n.Kind == DffOutput || n.Kind == DffInput }

// FanoutNum returns len(Fanout) (SPEC_FULL.md invariant 6 uses this to find
// FFR roots: fanout_num(n) != 1).
func (n *NodeRep) FanoutNum() int { return len(n.Fanout) }

// ControlValues delegates to n.Kind.ControlValues.
func (n *NodeRep) ControlValues() (cval, nval, coval, noval valkind.Val3) {
	return n.Kind.ControlValues()
}
