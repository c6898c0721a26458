package tvec

import (
	"fmt"
	"math/rand"

	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// InputVector and DffVector are BitVector used in the PPI-input and DFF-state
// roles respectively; they carry no extra behavior of their own, just intent
// at call sites (SPEC_FULL.md §4.9).
type InputVector = BitVector
type DffVector = BitVector

// TestVector is a single stimulus: one (stuck-at) or two (transition-delay,
// launch+capture) input frames plus one DFF-state frame, packed into a
// single BitVector (SPEC_FULL.md §4.9's length formula).
type TestVector struct {
	faultType valkind.FaultType
	numInputs int
	numDffs   int
	bits      BitVector
}

// NewTestVector allocates an all-X TestVector sized for faultType.
func NewTestVector(faultType valkind.FaultType, numInputs, numDffs int) TestVector {
	return TestVector{
		faultType: faultType,
		numInputs: numInputs,
		numDffs:   numDffs,
		bits:      New(vectorLen(faultType, numInputs, numDffs)),
	}
}

func vectorLen(faultType valkind.FaultType, numInputs, numDffs int) int {
	if faultType == valkind.TransitionDelay {
		return 2*numInputs + numDffs
	}
	return numInputs + numDffs
}

// frames a TestVector has for its input section: 1 under stuck-at/
// gate-exhaustive, 2 (launch, capture) under transition-delay.
func (tv *TestVector) numFrames() int {
	if tv.faultType == valkind.TransitionDelay {
		return 2
	}
	return 1
}

func (tv *TestVector) inputIndex(ppiRank int, frame int8) int {
	return int(frame)*tv.numInputs + ppiRank
}

func (tv *TestVector) dffIndex(dffRank int) int {
	return tv.numFrames()*tv.numInputs + dffRank
}

// Len returns the packed vector's total bit length.
func (tv *TestVector) Len() int { return tv.bits.Len() }

// FaultType reports the fault model this TestVector's layout was sized for.
func (tv *TestVector) FaultType() valkind.FaultType { return tv.faultType }

// Input returns the value of PPI rank ppiRank in the given frame (frame must
// be 0 under stuck-at/gate-exhaustive, 0 or 1 under transition-delay).
func (tv *TestVector) Input(ppiRank int, frame int8) valkind.Val3 {
	return tv.bits.Get(tv.inputIndex(ppiRank, frame))
}

// SetInput assigns the value of PPI rank ppiRank in the given frame.
func (tv *TestVector) SetInput(ppiRank int, frame int8, v valkind.Val3) {
	tv.bits.Set(tv.inputIndex(ppiRank, frame), v)
}

// Dff returns the value of DFF rank dffRank (always a single, steady frame).
func (tv *TestVector) Dff(dffRank int) valkind.Val3 {
	return tv.bits.Get(tv.dffIndex(dffRank))
}

// SetDff assigns the value of DFF rank dffRank.
func (tv *TestVector) SetDff(dffRank int, v valkind.Val3) {
	tv.bits.Set(tv.dffIndex(dffRank), v)
}

// SetFromRandom resolves every position to 0 or 1.
func (tv *TestVector) SetFromRandom(rng *rand.Rand) { tv.bits.SetFromRandom(rng) }

// FixXFromRandom resolves only the X positions randomly.
func (tv *TestVector) FixXFromRandom(rng *rand.Rand) { tv.bits.FixXFromRandom(rng) }

// Clone returns a copy-on-write clone of tv.
func (tv *TestVector) Clone() TestVector {
	c := *tv
	c.bits = tv.bits.Clone()
	return c
}

// IsCompatible delegates to the underlying BitVector.
func (tv *TestVector) IsCompatible(other *TestVector) bool { return tv.bits.IsCompatible(&other.bits) }

// LessEq delegates to the underlying BitVector's partial order.
func (tv *TestVector) LessEq(other *TestVector) bool { return tv.bits.LessEq(&other.bits) }

// MergeWith delegates to the underlying BitVector, rebuilding a TestVector
// with the same layout on success.
func (tv *TestVector) MergeWith(other *TestVector) (TestVector, error) {
	merged, err := tv.bits.MergeWith(&other.bits)
	if err != nil {
		return TestVector{}, err
	}
	out := *tv
	out.bits = merged
	return out, nil
}

// BinStr / HexStr delegate to the underlying BitVector.
func (tv *TestVector) BinStr() string { return tv.bits.BinStr() }
func (tv *TestVector) HexStr() string { return tv.bits.HexStr() }

// PPIIndex maps PPI node ids to their rank (node.NodeRep.PPIRank) and
// reports whether a given node is the DFF half of a PPI (so its rank counts
// against numDffs rather than numInputs). Built once per Network and reused
// across every TestVector constructed against it.
type PPIIndex struct {
	rankOf map[int]int
	isDff  map[int]bool
}

// BuildPPIIndex derives a PPIIndex from a frozen node list and its PPI list.
func BuildPPIIndex(nodes []node.NodeRep, ppiList []int) PPIIndex {
	idx := PPIIndex{rankOf: make(map[int]int, len(ppiList)), isDff: make(map[int]bool, len(ppiList))}
	inputRank, dffRank := 0, 0
	for _, id := range ppiList {
		if nodes[id].Kind == node.DffOutput {
			idx.rankOf[id] = dffRank
			idx.isDff[id] = true
			dffRank++
		} else {
			idx.rankOf[id] = inputRank
			inputRank++
		}
	}
	return idx
}

// FromAssignList builds a TestVector from an assign.List, sized for
// faultType/numInputs/numDffs. Assign.Time selects the frame for PI
// positions; it is ignored for DFF positions, which hold a single state.
func FromAssignList(faultType valkind.FaultType, numInputs, numDffs int, list *assign.List, idx PPIIndex) (TestVector, error) {
	tv := NewTestVector(faultType, numInputs, numDffs)
	for _, a := range list.Items() {
		rank, ok := idx.rankOf[a.Node]
		if !ok {
			return TestVector{}, fmt.Errorf("tvec: assignment to node %d which is not a PPI", a.Node)
		}
		v := valkind.FromBool(a.Val)
		if idx.isDff[a.Node] {
			tv.SetDff(rank, v)
		} else {
			tv.SetInput(rank, a.Time, v)
		}
	}
	return tv, nil
}

// ToAssignList reconstructs the AssignList implied by tv's non-X positions,
// projected onto ppiList (SPEC_FULL.md §8's round-trip property).
func (tv *TestVector) ToAssignList(ppiList []int, idx PPIIndex) *assign.List {
	var items []assign.Assign
	for _, id := range ppiList {
		rank := idx.rankOf[id]
		if idx.isDff[id] {
			if v := tv.Dff(rank); !v.IsX() {
				items = append(items, assign.Assign{Node: id, Time: 1, Val: v.Bool()})
			}
			continue
		}
		for frame := int8(0); frame < int8(tv.numFrames()); frame++ {
			if v := tv.Input(rank, frame); !v.IsX() {
				items = append(items, assign.Assign{Node: id, Time: frame, Val: v.Bool()})
			}
		}
	}
	return assign.NewList(items...)
}
