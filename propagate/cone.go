package propagate

import (
	"sort"

	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
)

// Cone is the support structure ConeEnc needs for one fault root: its
// transitive fanout, the PPOs within that fanout, and the transitive fanin
// of the whole fanout cone (SPEC_FULL.md §4.6.1 step 1).
type Cone struct {
	Root       int
	TFO        []int // ascending node ids, includes Root
	TFISupport []int // ascending node ids: TFI(TFO(Root)), includes TFO itself
	PPOs       []int // ascending node ids, the PPO subset of TFO
}

// BuildCone computes Cone for root over nt.
func BuildCone(nt *network.Network, root int) Cone {
	tfo := network.TFOCone(nt, root)
	sort.Ints(tfo)

	inTFO := make(map[int]bool, len(tfo))
	for _, id := range tfo {
		inTFO[id] = true
	}

	v := network.NewVisited(nt)
	supportSet := make(map[int]bool)
	for _, id := range tfo {
		network.WalkTFI(nt, id, v, func(n int) { supportSet[n] = true })
	}
	support := make([]int, 0, len(supportSet))
	for id := range supportSet {
		support = append(support, id)
	}
	sort.Ints(support)

	var ppos []int
	for _, id := range tfo {
		if nt.Node(id).IsPPO() {
			ppos = append(ppos, id)
		}
	}

	return Cone{Root: root, TFO: tfo, TFISupport: support, PPOs: ppos}
}

// fanoutWithin returns n's Fanout ids restricted to those present in set.
func fanoutWithin(n *node.NodeRep, set map[int]bool) []int {
	var out []int
	for _, fo := range n.Fanout {
		if set[fo] {
			out = append(out, fo)
		}
	}
	return out
}
