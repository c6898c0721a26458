package dominance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

func nodesOf(nt *network.Network) []node.NodeRep {
	out := make([]node.NodeRep, nt.NumNodes())
	for i := range out {
		out[i] = *nt.Node(i)
	}
	return out
}

func gatesOf(nt *network.Network) []gate.GateRep {
	out := make([]gate.GateRep, nt.NumGates())
	for i := range out {
		out[i] = *nt.Gate(i)
	}
	return out
}

func buildAND2(t *testing.T) (nt *network.Network, gi int) {
	t.Helper()
	b := netbuild.NewBuilder()
	a := b.AddPrimaryInput()
	bb := b.AddPrimaryInput()
	out, gid, err := b.AddPrimitiveGate(node.And, []int{a, bb})
	require.NoError(t, err)
	_, err = b.AddPrimaryOutput(out)
	require.NoError(t, err)
	nt, err = b.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)
	return nt, gid
}

// TestNaiveDomCheckerSelfDomination confirms any fault trivially dominates
// itself: asserting prop ∧ ¬prop is unsatisfiable regardless of the circuit.
func TestNaiveDomCheckerSelfDomination(t *testing.T) {
	nt, gi := buildAND2(t)
	nodes, gates := nodesOf(nt), gatesOf(nt)

	f := &fault.Fault{ID: 0, Variant: fault.StemSA, Gate: gi, Fval: valkind.Fzero, Rep: 0}

	dominates, ok := NaiveDomChecker(nodes, gates, f, f, nt, 0)
	require.True(t, ok)
	assert.True(t, dominates)
}

// TestNaiveDomCheckerNonDomination uses a stuck-at-0 branch fault on AND2's
// input a (only detected by a=1,b=1, the good output being 1) against a
// stuck-at-1 stem fault on the same gate's output (only detected when the
// good output is 0). The two detecting conditions are mutually exclusive,
// so f1 cannot dominate f2: SAT(prop1 ∧ ¬prop2) must hold.
func TestNaiveDomCheckerNonDomination(t *testing.T) {
	nt, gi := buildAND2(t)
	nodes, gates := nodesOf(nt), gatesOf(nt)

	f1 := &fault.Fault{ID: 0, Variant: fault.BranchSA, Gate: gi, Fval: valkind.Fzero, Rep: 0}
	f2 := &fault.Fault{ID: 1, Variant: fault.StemSA, Gate: gi, Fval: valkind.Fone, Rep: 1}

	dominates, ok := NaiveDomChecker(nodes, gates, f1, f2, nt, 0)
	require.True(t, ok)
	assert.False(t, dominates)
}

func TestStructDomCheckerMatchesNaive(t *testing.T) {
	nt, gi := buildAND2(t)
	nodes, gates := nodesOf(nt), gatesOf(nt)
	f := &fault.Fault{ID: 0, Variant: fault.StemSA, Gate: gi, Fval: valkind.Fzero, Rep: 0}

	dominates, ok := StructDomChecker(nodes, gates, f, f, nt, 0)
	require.True(t, ok)
	assert.True(t, dominates)
}

func TestTrivialChecker1(t *testing.T) {
	cond1 := assign.NewList(assign.Assign{Node: 3, Time: 1, Val: true})
	cond2 := assign.NewList(assign.Assign{Node: 3, Time: 1, Val: true}, assign.Assign{Node: 5, Time: 1, Val: false})
	assert.True(t, TrivialChecker1(cond1, cond2))

	cond3 := assign.NewList(assign.Assign{Node: 3, Time: 1, Val: false})
	assert.False(t, TrivialChecker1(cond1, cond3))
}

// TestXChecker exercises the sorted-set intersection prefilter directly;
// TestPPISupport below covers PPISupport over a real cone.
func TestXChecker(t *testing.T) {
	assert.True(t, XChecker([]int{1, 4, 9}, []int{0, 4, 7}))
	assert.False(t, XChecker([]int{1, 4, 9}, []int{0, 5, 7}))
	assert.False(t, XChecker(nil, []int{1}))
}

func TestPPISupport(t *testing.T) {
	nt, _ := buildAND2(t)
	support := PPISupport(nt, nt.PPOList()[0])
	assert.Len(t, support, 2)
}
