package ffr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vellum-eda/tpgcore/node"
)

// n builds a minimal NodeRep for Build's purposes: only ID/Kind/Fanin/Fanout
// matter, since Build never inspects anything else.
func n(id int, kind node.Kind, fanin ...int) node.NodeRep {
	return node.NodeRep{ID: id, Kind: kind, Fanin: fanin}
}

// TestBuildFFRRootAtBranchPoint builds a = PI(0), s = NOT(a) (id 1), with s
// fanning out to two independent gates that reach two different primary
// outputs (b = PI, id 2; g1 = AND(s,b), id 3; c = PI, id 4; g2 = OR(s,c),
// id 5; po1 = PO(g1), id 6; po2 = PO(g2), id 7), so s is the only node with
// FanoutNum() != 1 among the
// internal nodes and its two paths never reconverge.
func TestBuildFFRRootAtBranchPoint(t *testing.T) {
	nodes := []node.NodeRep{
		n(0, node.PrimaryInput),     // a
		n(1, node.Not, 0),           // s = NOT(a)
		n(2, node.PrimaryInput),     // b
		n(3, node.And, 1, 2),        // g1 = AND(s, b)
		n(4, node.PrimaryInput),     // c
		n(5, node.Or, 1, 4),         // g2 = OR(s, c)
		n(6, node.PrimaryOutput, 3), // po1
		n(7, node.PrimaryOutput, 5), // po2
	}
	nodes[0].Fanout = []int{1}
	nodes[1].Fanout = []int{3, 5}
	nodes[2].Fanout = []int{3}
	nodes[3].Fanout = []int{6}
	nodes[4].Fanout = []int{5}
	nodes[5].Fanout = []int{7}
	nodes[6].Fanout = nil
	nodes[7].Fanout = nil

	// No node's fanout reconverges before its own PPO, so nothing has a
	// single converging successor below its own FFR root: every FFR root is
	// also its own MFFC root.
	immDom := []int{NoNode, NoNode, NoNode, NoNode, NoNode, NoNode, NoNode, NoNode}

	ffrRootOf, mffcRootOf, ffrs, mffcs := Build(nodes, immDom)

	assert.Equal(t, 1, ffrRootOf[0], "a's only path runs through s, the branch point")
	assert.Equal(t, 1, ffrRootOf[1], "s has two fanouts, so it is its own FFR root")
	assert.Equal(t, 6, ffrRootOf[2], "b's only path runs to po1")
	assert.Equal(t, 6, ffrRootOf[3])
	assert.Equal(t, 6, ffrRootOf[6])
	assert.Equal(t, 7, ffrRootOf[4])
	assert.Equal(t, 7, ffrRootOf[5])
	assert.Equal(t, 7, ffrRootOf[7])

	assert.Len(t, ffrs, 3, "three FFR roots: s, po1, po2")
	for _, f := range ffrs {
		assert.Equal(t, f.Root, mffcRootOf[f.Root], "with a nil immDom everywhere, every FFR root is its own MFFC root")
	}
	assert.Len(t, mffcs, 3)
}

// TestBuildMFFCGroupsReconvergingFFRs gives s (id 1) a genuine immediate
// dominator: both of its fanout paths (through g1 id 2 and g2 id 3)
// reconverge at po (id 4), the single node through which every path from s
// must pass — so mffcRootOf[1] must climb to 4, pulling s's FFR into po's
// MFFC even though they are separate FFRs.
func TestBuildMFFCGroupsReconvergingFFRs(t *testing.T) {
	nodes := []node.NodeRep{
		n(0, node.PrimaryInput),     // a
		n(1, node.Not, 0),           // s = NOT(a), fanout 2: branch point
		n(2, node.Buff, 1),          // g1
		n(3, node.Buff, 1),          // g2
		n(4, node.And, 2, 3),        // reconvergence of g1/g2; no fanout, so it is the sink
	}
	nodes[0].Fanout = []int{1}
	nodes[1].Fanout = []int{2, 3}
	nodes[2].Fanout = []int{4}
	nodes[3].Fanout = []int{4}
	nodes[4].Fanout = nil

	// s's immediate dominator is node 4: every path from s passes through it.
	immDom := []int{NoNode, 4, 4, 4, NoNode}

	ffrRootOf, mffcRootOf, ffrs, mffcs := Build(nodes, immDom)

	assert.Equal(t, 1, ffrRootOf[1], "s is a branch point, so its own FFR root")
	assert.Equal(t, 4, ffrRootOf[2])
	assert.Equal(t, 4, ffrRootOf[3])
	assert.Equal(t, 4, ffrRootOf[4])

	assert.Equal(t, 4, mffcRootOf[1], "s's FFR must be pulled into the dominating node's MFFC")
	assert.Equal(t, 4, mffcRootOf[4])

	// Exactly one MFFC, containing both FFRs (root==1 and root==4).
	assert.Len(t, mffcs, 1)
	assert.Len(t, ffrs, 2)
	assert.ElementsMatch(t, []int{0, 1}, mffcs[0].FFRs)
}
