package propagate

import (
	"sort"

	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
)

// BSEnc emits the previous-frame ("launch") half of a broadside
// transition-delay pattern: good-machine CNF over a previous-frame TFI plus
// the buffer constraints binding each DFF output at t=1 to its paired DFF
// input's launch value at t=0 (SPEC_FULL.md §4.6.3).
type BSEnc struct {
	H gateenc.VarMap // node id -> previous-frame ("t=0") literal
}

// BuildBSEnc computes the previous-frame TFI of every DFF input inside
// roots (the current-frame TFI support a ConeEnc already built) and emits
// its good-machine CNF into a fresh h-map, then binds every DFF output
// reachable in the current frame (via g) to its paired DFF input's h value.
func BuildBSEnc(solver satiface.Solver, nt *network.Network, nodes []node.NodeRep, roots []int, g gateenc.VarMap) BSEnc {
	v := network.NewVisited(nt)
	supportSet := make(map[int]bool)
	for _, r := range roots {
		network.WalkTFI(nt, r, v, func(n int) { supportSet[n] = true })
	}
	support := make([]int, 0, len(supportSet))
	for id := range supportSet {
		support = append(support, id)
	}
	sort.Ints(support)

	enc := BSEnc{H: gateenc.VarMap{}}
	for _, id := range support {
		enc.H[id] = solver.NewVariable(true)
	}
	for _, id := range support {
		if nodes[id].Kind.IsLogic() {
			_ = gateenc.GateEnc(solver, nodes, id, enc.H)
		}
	}

	// buffer(g(dff_out), h(dff_in)): every DFF output's current-frame value
	// equals its paired DFF input's previous-frame value.
	for _, id := range support {
		n := &nodes[id]
		if n.Kind != node.DffInput {
			continue
		}
		dffOut := n.AltNode
		if dffOut == node.NoNode {
			continue
		}
		gLit, ok := g[dffOut]
		if !ok {
			continue
		}
		solver.AddBuffGate(gLit, enc.H[id])
	}

	return enc
}
