package fsim

import (
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/tvec"
	"github.com/vellum-eda/tpgcore/valkind"
)

// frameVals evaluates every node in nodes once, given the PPI values in
// ppi (keyed by node id) and an optional fault injected at origin. Nodes
// are visited in ascending id order, which is always a topological order
// because netbuild rejects forward references.
func frameVals(nodes []node.NodeRep, ppi map[int]valkind.Val3, f *fault.Fault, origin int) []valkind.Val3 {
	vals := make([]valkind.Val3, len(nodes))
	for id := range nodes {
		n := &nodes[id]
		switch {
		case n.IsPPI():
			vals[id] = ppi[id]
		case n.IsPPO():
			vals[id] = vals[n.Fanin[0]]
		case n.Kind.IsLogic():
			if f != nil && f.IsStem() && id == origin {
				vals[id] = f.Fval.Val3()
				continue
			}
			ins := make([]valkind.Val3, len(n.Fanin))
			for i, fi := range n.Fanin {
				ins[i] = vals[fi]
			}
			if f != nil && f.IsBranch() && id == origin {
				ins[f.Ipos()] = f.Fval.Val3()
			}
			if f != nil && f.Variant == fault.Exhaustive && id == origin && matchesBits(ins, f) {
				vals[id] = valkind.Not(EvalKind(n.Kind, ins))
				continue
			}
			vals[id] = EvalKind(n.Kind, ins)
		}
	}
	return vals
}

// matchesBits reports whether ins is exactly the fully-defined input
// combination f.Bits() enumerates (SPEC_FULL.md §4.3's gate-exhaustive
// excitation: the fault only manifests under that one exact pattern).
func matchesBits(ins []valkind.Val3, f *fault.Fault) bool {
	bits := f.Bits()
	for i, v := range ins {
		if v.IsX() {
			return false
		}
		want := (bits>>uint(i))&1 == 1
		if v.Bool() != want {
			return false
		}
	}
	return true
}

// dffFrame builds the PPI value map for one simulation frame: PI values
// come from tv's input frame, DFF-output values come from dffOut (the
// flip-flop state entering this frame).
func dffFrame(nodes []node.NodeRep, ppiList []int, idx tvec.PPIIndex, tv *tvec.TestVector, frame int8, dffOut map[int]valkind.Val3) map[int]valkind.Val3 {
	out := make(map[int]valkind.Val3, len(ppiList))
	for _, id := range ppiList {
		if nodes[id].Kind == node.DffOutput {
			out[id] = dffOut[id]
			continue
		}
		rank := ppiRank(nodes, id)
		out[id] = tv.Input(rank, frame)
	}
	return out
}

func ppiRank(nodes []node.NodeRep, id int) int { return nodes[id].PPIRank }

// Simulate runs good- and (if f != nil) faulty-machine simulation of tv over
// nodes/gates, returning the good-machine and faulty-machine value arrays
// for the final (capture) frame. Under transition-delay mode it first runs
// a launch frame (t=0) to derive the DFF-input values captured into the
// flip-flops, then a capture frame (t=1) using those captured values as the
// DFF-output state — the same two-frame split propagate.BSEnc/ConeEnc use.
func Simulate(nodes []node.NodeRep, gates []gate.GateRep, ppiList []int, idx tvec.PPIIndex, tv *tvec.TestVector, f *fault.Fault) (good, faulty []valkind.Val3) {
	origin := -1
	if f != nil {
		origin = f.OriginNode(gates)
	}

	initialDff := make(map[int]valkind.Val3, len(ppiList))
	for _, id := range ppiList {
		if nodes[id].Kind == node.DffOutput {
			rank := ppiRank(nodes, id)
			initialDff[id] = tv.Dff(rank)
		}
	}

	if tv.FaultType() != valkind.TransitionDelay {
		frame := dffFrame(nodes, ppiList, idx, tv, 0, initialDff)
		good = frameVals(nodes, frame, nil, origin)
		if f != nil {
			faulty = frameVals(nodes, frame, f, origin)
		}
		return good, faulty
	}

	// The launch frame always runs good-machine only: a transition-delay
	// defect only manifests when a transition is demanded and fails to
	// settle by the capture edge, so it cannot affect the launch frame's
	// own values or the flip-flop state it latches. This mirrors
	// propagate.BSEnc, which emits exactly one (good-machine) h-map for the
	// previous frame and lets good/faulty diverge only inside the capture
	// frame's ConeEnc.
	launchFrame := dffFrame(nodes, ppiList, idx, tv, 0, initialDff)
	goodLaunch := frameVals(nodes, launchFrame, nil, origin)
	captureDff := capturedDffState(nodes, ppiList, goodLaunch)
	captureFrame := dffFrame(nodes, ppiList, idx, tv, 1, captureDff)

	good = frameVals(nodes, captureFrame, nil, origin)
	if f != nil {
		site := origin
		if f.IsBranch() {
			site = nodes[origin].Fanin[gates[f.Gate].BranchPos(f.Ipos()).Ipos]
		}
		if f.IsTransitionDelay() && goodLaunch[site] != f.Fval.Val3() {
			// No launch value to transition from at the fault site.
			faulty = good
		} else {
			faulty = frameVals(nodes, captureFrame, f, origin)
		}
	}
	return good, faulty
}

// capturedDffState reads, from a launch-frame value array, the value
// latched into each DFF output for the following capture frame.
func capturedDffState(nodes []node.NodeRep, ppiList []int, launch []valkind.Val3) map[int]valkind.Val3 {
	out := make(map[int]valkind.Val3)
	for _, id := range ppiList {
		n := &nodes[id]
		if n.Kind != node.DffOutput || n.AltNode == node.NoNode {
			continue
		}
		out[id] = launch[n.AltNode]
	}
	return out
}
