package network

import (
	"fmt"
	"sort"

	"github.com/vellum-eda/tpgcore/diag"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/ffr"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// NoNode mirrors node.NoNode.
const NoNode = node.NoNode

// Network is the frozen, fully annotated netlist. Every slice it holds is
// read-only to callers after Freeze returns (SPEC_FULL.md §4.1).
type Network struct {
	nodes []node.NodeRep
	gates []gate.GateRep

	ppiList []int
	ppoList []int

	// ppoByTFIRank is ppoList sorted by ascending node.TFIRank (invariant 4 —
	// the TFI-size order, output_id2).
	ppoByTFIRank []int

	ffrRootOf  []int
	mffcRootOf []int
	ffrs       []ffr.FFR
	mffcs      []ffr.MFFC

	faults     []fault.Fault
	faultType  valkind.FaultType

	logger *diag.Logger
}

// Builder is the minimal surface network.Freeze needs from netbuild.Builder,
// kept narrow here to avoid an import cycle (netbuild imports network, not
// the reverse).
type Builder interface {
	Nodes() []node.NodeRep
	Gates() []gate.GateRep
	PPIList() []int
	PPOList() []int
}

// Freeze runs SPEC_FULL.md §4.1's full post-processing pipeline over a
// Builder's accumulated state and returns an immutable Network:
//
//  1. copy nodes/gates out of the builder so later builder mutation (there is
//     none once Finish is called, but this keeps ownership unambiguous)
//     cannot alias the frozen result;
//  2. materialize Fanout from Fanin (invariant 2);
//  3. warn (never error) about nodes with no path to any PPO;
//  4. compute output_id2 / TFIRank by sorting PPOs on ascending TFI size;
//  5. compute immediate dominators with a single descending-id pass;
//  6. build FFRs and MFFCs;
//  7. generate the fault catalogue for faultType and collapse it to
//     representatives.
//
// logger may be nil, in which case diag.Nop() is used.
func Freeze(b Builder, faultType valkind.FaultType, logger *diag.Logger) (*Network, error) {
	if logger == nil {
		logger = diag.Nop()
	}

	nt := &Network{
		nodes:     append([]node.NodeRep(nil), b.Nodes()...),
		gates:     append([]gate.GateRep(nil), b.Gates()...),
		ppiList:   append([]int(nil), b.PPIList()...),
		ppoList:   append([]int(nil), b.PPOList()...),
		faultType: faultType,
		logger:    logger,
	}

	if err := nt.materializeFanout(); err != nil {
		return nil, err
	}
	nt.warnUnreachable()
	nt.computeTFIRanks()
	if err := nt.computeDominators(); err != nil {
		return nil, err
	}
	nt.ffrRootOf, nt.mffcRootOf, nt.ffrs, nt.mffcs = ffr.Build(nt.nodes, nt.immDomSlice())

	nt.faults = fault.GenerateCatalogue(nt.gates, faultType)
	fault.ComputeRepresentatives(nt.nodes, nt.gates, nt.faults)

	return nt, nil
}

// materializeFanout derives Fanout from Fanin and checks bidirectional
// consistency is even possible to build, i.e. every Fanin entry is a valid
// node id (invariant 1/2). Builder.newNode already rejects forward
// references, so the only remaining failure mode here is a self-loop, which
// would indicate a Builder invariant was bypassed.
func (nt *Network) materializeFanout() error {
	for i := range nt.nodes {
		for _, f := range nt.nodes[i].Fanin {
			if f == i {
				return fmt.Errorf("network: node %d feeds its own Fanin (cycle)", i)
			}
			if f < 0 || f >= len(nt.nodes) {
				return fmt.Errorf("network: node %d has out-of-range fanin %d", i, f)
			}
			nt.nodes[f].Fanout = append(nt.nodes[f].Fanout, i)
		}
	}
	return nil
}

// warnUnreachable flags every node with no path to any PPO via a backward
// BFS seeded at every PPO's Fanin closure (SPEC_FULL.md §7: harmless,
// produces untestable faults, never fatal).
func (nt *Network) warnUnreachable() {
	reached := make([]bool, len(nt.nodes))
	queue := make([]int, 0, len(nt.ppoList))
	for _, ppo := range nt.ppoList {
		if !reached[ppo] {
			reached[ppo] = true
			queue = append(queue, ppo)
		}
	}
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		for _, f := range nt.nodes[n].Fanin {
			if !reached[f] {
				reached[f] = true
				queue = append(queue, f)
			}
		}
		if alt := nt.nodes[n].AltNode; alt != NoNode && !reached[alt] {
			reached[alt] = true
			queue = append(queue, alt)
		}
	}
	for i := range nt.nodes {
		if !reached[i] {
			nt.logger.UnreachableNode(i)
		}
	}
}

// computeTFIRanks assigns TFIRank (output_id2) to every PPO: PPOs sorted by
// ascending transitive-fanin-cone size, ties broken by declaration order
// (PPORank), matching invariant 4's "cheapest cones processed first" intent.
func (nt *Network) computeTFIRanks() {
	type sized struct{ ppo, size int }
	sizes := make([]sized, len(nt.ppoList))
	visited := make([]bool, len(nt.nodes))
	for i, ppo := range nt.ppoList {
		for k := range visited {
			visited[k] = false
		}
		sizes[i] = sized{ppo: ppo, size: nt.tfiSize(ppo, visited)}
	}
	sort.SliceStable(sizes, func(a, bIdx int) bool { return sizes[a].size < sizes[bIdx].size })
	nt.ppoByTFIRank = make([]int, len(sizes))
	for rank, s := range sizes {
		nt.nodes[s.ppo].TFIRank = rank
		nt.ppoByTFIRank[rank] = s.ppo
	}
}

func (nt *Network) tfiSize(root int, visited []bool) int {
	stack := []int{root}
	visited[root] = true
	count := 0
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, f := range nt.nodes[n].Fanin {
			if !visited[f] {
				visited[f] = true
				stack = append(stack, f)
			}
		}
	}
	return count
}

// computeDominators fills in every node's ImmDom using the descending-id
// "climb the smaller id until equality" intersect (SPEC_FULL.md §4.1 step
// 5), valid because Fanout entries always have a strictly greater id than
// their driver in a topologically ordered netlist.
func (nt *Network) computeDominators() error {
	n := len(nt.nodes)
	idom := make([]int, n)
	for i := range idom {
		idom[i] = NoNode
	}
	isPPO := make([]bool, n)
	for _, p := range nt.ppoList {
		isPPO[p] = true
	}

	for i := n - 1; i >= 0; i-- {
		nd := &nt.nodes[i]
		if isPPO[i] || len(nd.Fanout) == 0 {
			idom[i] = NoNode
			continue
		}
		cand := NoNode
		for _, fo := range nd.Fanout {
			if cand == NoNode {
				cand = fo
				continue
			}
			cand = intersect(idom, fo, cand)
			if cand == NoNode {
				break
			}
		}
		idom[i] = cand
	}

	for i := range nt.nodes {
		nt.nodes[i].ImmDom = idom[i]
	}
	return nil
}

// intersect climbs whichever of a/b has the smaller id, via idom, until the
// two agree. idom entries point to strictly greater ids than their own since
// dominators sit downstream (toward the PPOs) of the node; repeatedly
// following idom therefore moves to larger ids, toward NoNode or a shared
// dominator closer to an output.
func intersect(idom []int, a, b int) int {
	for a != b {
		if a == NoNode || b == NoNode {
			return NoNode
		}
		for a < b {
			a = idom[a]
			if a == NoNode {
				return NoNode
			}
		}
		for b < a {
			b = idom[b]
			if b == NoNode {
				return NoNode
			}
		}
	}
	return a
}

func (nt *Network) immDomSlice() []int {
	out := make([]int, len(nt.nodes))
	for i := range nt.nodes {
		out[i] = nt.nodes[i].ImmDom
	}
	return out
}

// ---- read-only accessors ----

// NumNodes returns the node count.
func (nt *Network) NumNodes() int { return len(nt.nodes) }

// Node returns the NodeRep with the given id.
func (nt *Network) Node(id int) *node.NodeRep { return &nt.nodes[id] }

// NumGates returns the gate count.
func (nt *Network) NumGates() int { return len(nt.gates) }

// Gate returns the GateRep with the given id.
func (nt *Network) Gate(id int) *gate.GateRep { return &nt.gates[id] }

// PPIList returns the pseudo-primary-input node ids in declaration order.
func (nt *Network) PPIList() []int { return nt.ppiList }

// PPOList returns the pseudo-primary-output node ids in declaration order.
func (nt *Network) PPOList() []int { return nt.ppoList }

// PPOByTFIRank returns the PPO node ids sorted by ascending TFI-cone size
// (output_id2 order).
func (nt *Network) PPOByTFIRank() []int { return nt.ppoByTFIRank }

// FFRRootOf returns the FFR root node id for node n.
func (nt *Network) FFRRootOf(n int) int { return nt.ffrRootOf[n] }

// MFFCRootOf returns the MFFC root node id for node n.
func (nt *Network) MFFCRootOf(n int) int { return nt.mffcRootOf[n] }

// FFRs returns every FFR in the network.
func (nt *Network) FFRs() []ffr.FFR { return nt.ffrs }

// MFFCs returns every MFFC in the network.
func (nt *Network) MFFCs() []ffr.MFFC { return nt.mffcs }

// Faults returns the full fault catalogue (index == fault.Fault.ID).
func (nt *Network) Faults() []fault.Fault { return nt.faults }

// Fault returns the fault with the given id.
func (nt *Network) Fault(id int) *fault.Fault { return &nt.faults[id] }

// FaultType reports which fault model the catalogue was generated under.
func (nt *Network) FaultType() valkind.FaultType { return nt.faultType }

// RepresentativeFaults returns every fault that is its own representative
// (fault.Rep == fault.ID), i.e. the reduced fault list a DTPG run should
// actually target (SPEC_FULL.md §4.3.3).
func (nt *Network) RepresentativeFaults() []fault.Fault {
	out := make([]fault.Fault, 0, len(nt.faults))
	for i := range nt.faults {
		if nt.faults[i].Rep == nt.faults[i].ID {
			out = append(out, nt.faults[i])
		}
	}
	return out
}
