package propagate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/ffr"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/satsolver"
	"github.com/vellum-eda/tpgcore/valkind"
)

// nodesOf copies nt's frozen NodeRep slice out for direct indexing by the
// gateenc/propagate packages, which take []node.NodeRep rather than a
// *network.Network (keeping them independent of the network package).
func nodesOf(nt *network.Network) []node.NodeRep {
	out := make([]node.NodeRep, nt.NumNodes())
	for i := range out {
		out[i] = *nt.Node(i)
	}
	return out
}

func buildAND2(t *testing.T) (a, bb, out, po int, nt *network.Network) {
	t.Helper()
	builder := netbuild.NewBuilder()
	a = builder.AddPrimaryInput()
	bb = builder.AddPrimaryInput()
	var err error
	out, _, err = builder.AddPrimitiveGate(node.And, []int{a, bb})
	require.NoError(t, err)
	po, err = builder.AddPrimaryOutput(out)
	require.NoError(t, err)
	nt, err = builder.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)
	return a, bb, out, po, nt
}

// TestConeEncAND2StuckAt0 reproduces SPEC_FULL.md §8's scenario 1: an AND2
// gate with a stuck-at-0 fault at its stem is only detected by a=1,b=1.
func TestConeEncAND2StuckAt0(t *testing.T) {
	a, bb, out, _, nt := buildAND2(t)
	nodes := nodesOf(nt)

	cone := BuildCone(nt, out)
	s := satsolver.New(0)
	site := gateenc.FaultSite{IsStem: true, Fval: valkind.Fzero}
	vm, prop, err := ConeEnc(s, nodes, cone, site)
	require.NoError(t, err)

	res := s.Solve(prop)
	require.Equal(t, satiface.SatTrue, res)
	assert.Equal(t, satiface.SatTrue, s.Model(vm.G[a]))
	assert.Equal(t, satiface.SatTrue, s.Model(vm.G[bb]))
}

// TestConeEncAND2StuckAt0UnderA0IsUnsat confirms the fault is undetectable
// once a=0 is assumed (the good machine already forces the output low).
func TestConeEncAND2StuckAt0UnderA0IsUnsat(t *testing.T) {
	a, _, out, _, nt := buildAND2(t)
	nodes := nodesOf(nt)

	cone := BuildCone(nt, out)
	s := satsolver.New(0)
	site := gateenc.FaultSite{IsStem: true, Fval: valkind.Fzero}
	vm, prop, err := ConeEnc(s, nodes, cone, site)
	require.NoError(t, err)

	res := s.Solve(prop, vm.G[a].Not())
	assert.Equal(t, satiface.SatFalse, res)
}

func TestBuildConeBasics(t *testing.T) {
	_, _, out, po, nt := buildAND2(t)
	cone := BuildCone(nt, out)
	assert.Contains(t, cone.TFO, out)
	assert.Contains(t, cone.TFO, po)
	assert.Contains(t, cone.PPOs, po)
}

// buildAND4 builds a single 4-input AND gate driving one PO — the FFR
// region under test is just the gate and its PO, with every fanin an
// external (PI) input.
func buildAND4(t *testing.T) (pis []int, out int, nt *network.Network) {
	t.Helper()
	builder := netbuild.NewBuilder()
	pis = make([]int, 4)
	for i := range pis {
		pis[i] = builder.AddPrimaryInput()
	}
	var err error
	out, _, err = builder.AddPrimitiveGate(node.And, pis)
	require.NoError(t, err)
	_, err = builder.AddPrimaryOutput(out)
	require.NoError(t, err)
	nt, err = builder.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)
	return pis, out, nt
}

// TestBuildFFREncSideInputPinning exercises BuildFFREnc's prefix/suffix
// side-input conjunction directly on a 4-input gate (k=4, so a quadratic
// per-position conjunction and the linear prefix/suffix one would only
// disagree if the rewrite mis-indexed a position): for every fanin
// position, asserting that position's propagation literal true must force
// every OTHER fanin's good-machine value to AND's non-controlling value (1)
// in the solved model, and the target position itself stays unconstrained.
func TestBuildFFREncSideInputPinning(t *testing.T) {
	pis, out, nt := buildAND4(t)
	nodes := nodesOf(nt)
	region := ffr.FFR{ID: 0, Root: out, Inputs: append([]int(nil), pis...), Nodes: []int{out}}

	for ipos := range pis {
		s := satsolver.New(0)
		gv := gateenc.VarMap{out: s.NewVariable(true)}
		for _, pi := range pis {
			gv[pi] = s.NewVariable(true)
		}
		require.NoError(t, gateenc.GateEnc(s, nodes, out, gv))

		enc := BuildFFREnc(s, nodes, region, gv, 0)
		rootPV, ok := enc.FaultPV(out)
		require.True(t, ok)
		ipPV, ok := enc.PV[pis[ipos]]
		require.True(t, ok)

		res := s.Solve(rootPV, ipPV)
		require.Equal(t, satiface.SatTrue, res)
		for j, pi := range pis {
			if j == ipos {
				continue
			}
			assert.Equal(t, satiface.SatTrue, s.Model(gv[pi]), "fanin %d must be pinned to AND's non-controlling value", j)
		}
	}
}
