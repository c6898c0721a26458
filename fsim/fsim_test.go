package fsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/tvec"
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

func buildAND2(t *testing.T, ft valkind.FaultType) (nt *network.Network, gi int) {
	t.Helper()
	b := netbuild.NewBuilder()
	a := b.AddPrimaryInput()
	bb := b.AddPrimaryInput()
	out, gid, err := b.AddPrimitiveGate(node.And, []int{a, bb})
	require.NoError(t, err)
	_, err = b.AddPrimaryOutput(out)
	require.NoError(t, err)
	nt, err = b.Finish(ft, nil)
	require.NoError(t, err)
	return nt, gid
}

// TestSpsfpAND2StuckAt0 reproduces SPEC_FULL.md §8 scenario 1.
func TestSpsfpAND2StuckAt0(t *testing.T) {
	nt, gi := buildAND2(t, valkind.StuckAt)
	nodes, gates := nodesOf(nt), gatesOf(nt)
	faults := fault.GenerateCatalogue(gates, valkind.StuckAt)

	branchFaultID := gates[gi].BranchFault[0][0] // input 0, stuck-at-0
	f := &faults[branchFaultID]

	ppiList, ppoList := nt.PPIList(), nt.PPOList()
	idx := tvec.BuildPPIIndex(nodes, ppiList)

	detecting := tvec.NewTestVector(valkind.StuckAt, 2, 0)
	detecting.SetInput(0, 0, valkind.V1)
	detecting.SetInput(1, 0, valkind.V1)
	db := Spsfp(nodes, gates, ppiList, ppoList, idx, &detecting, f)
	assert.Equal(t, DiffBits(ppoList), db)

	masked := tvec.NewTestVector(valkind.StuckAt, 2, 0)
	masked.SetInput(0, 0, valkind.V0)
	masked.SetInput(1, 0, valkind.V1)
	db2 := Spsfp(nodes, gates, ppiList, ppoList, idx, &masked, f)
	assert.Empty(t, db2)
}

// TestSpsfpAND2TransitionFall reproduces SPEC_FULL.md §8 scenario 2.
func TestSpsfpAND2TransitionFall(t *testing.T) {
	nt, gi := buildAND2(t, valkind.TransitionDelay)
	nodes, gates := nodesOf(nt), gatesOf(nt)
	faults := fault.GenerateCatalogue(gates, valkind.TransitionDelay)
	f := &faults[gates[gi].StemTDFault[1]] // fall: 1 -> 0

	ppiList, ppoList := nt.PPIList(), nt.PPOList()
	idx := tvec.BuildPPIIndex(nodes, ppiList)

	detecting := tvec.NewTestVector(valkind.TransitionDelay, 2, 0)
	detecting.SetInput(0, 0, valkind.V1)
	detecting.SetInput(1, 0, valkind.V1)
	detecting.SetInput(0, 1, valkind.V0)
	detecting.SetInput(1, 1, valkind.V1)
	db := Spsfp(nodes, gates, ppiList, ppoList, idx, &detecting, f)
	assert.Equal(t, DiffBits(ppoList), db)

	noTransition := tvec.NewTestVector(valkind.TransitionDelay, 2, 0)
	noTransition.SetInput(0, 0, valkind.V1)
	noTransition.SetInput(1, 0, valkind.V1)
	noTransition.SetInput(0, 1, valkind.V1)
	noTransition.SetInput(1, 1, valkind.V1)
	db2 := Spsfp(nodes, gates, ppiList, ppoList, idx, &noTransition, f)
	assert.Empty(t, db2)
}

// TestPpsfpMatchesSppfp is SPEC_FULL.md §8's fault-simulator oracle law:
// ppsfp's per-pattern results must equal the composition of per-pattern
// spsfp/sppfp calls.
func TestPpsfpMatchesSppfp(t *testing.T) {
	nt, _ := buildAND2(t, valkind.StuckAt)
	nodes, gates := nodesOf(nt), gatesOf(nt)
	faults := fault.GenerateCatalogue(gates, valkind.StuckAt)
	ppiList, ppoList := nt.PPIList(), nt.PPOList()
	idx := tvec.BuildPPIIndex(nodes, ppiList)

	combos := [][2]valkind.Val3{
		{valkind.V0, valkind.V0},
		{valkind.V0, valkind.V1},
		{valkind.V1, valkind.V0},
		{valkind.V1, valkind.V1},
	}
	patterns := make([]tvec.TestVector, len(combos))
	for i, c := range combos {
		tv := tvec.NewTestVector(valkind.StuckAt, 2, 0)
		tv.SetInput(0, 0, c[0])
		tv.SetInput(1, 0, c[1])
		patterns[i] = tv
	}

	packed := Ppsfp(nodes, gates, ppiList, ppoList, idx, patterns, faults)

	for pi := range patterns {
		perPattern := Sppfp(nodes, gates, ppiList, ppoList, idx, &patterns[pi], faults)
		for fi := range faults {
			id := faults[fi].ID
			require.True(t, perPattern[id].Equal(packed[id][pi]),
				"fault %d pattern %d: sppfp=%v ppsfp=%v", id, pi, perPattern[id], packed[id][pi])
		}
	}
}

func TestDiffBitsEqualIgnoresOrder(t *testing.T) {
	a := DiffBits{3, 1, 2}
	b := DiffBits{1, 2, 3}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(DiffBits{1, 2}))
}
