package justify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satsolver"
	"github.com/vellum-eda/tpgcore/valkind"
)

func nodesOf(nt *network.Network) []node.NodeRep {
	out := make([]node.NodeRep, nt.NumNodes())
	for i := range out {
		out[i] = *nt.Node(i)
	}
	return out
}

func buildAND2(t *testing.T) (a, bb, out, po int, nt *network.Network) {
	t.Helper()
	b := netbuild.NewBuilder()
	a = b.AddPrimaryInput()
	bb = b.AddPrimaryInput()
	var err error
	out, _, err = b.AddPrimitiveGate(node.And, []int{a, bb})
	require.NoError(t, err)
	po, err = b.AddPrimaryOutput(out)
	require.NoError(t, err)
	nt, err = b.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)
	return a, bb, out, po, nt
}

func TestBacktraceJustifierANDOutputOne(t *testing.T) {
	a, bb, out, _, nt := buildAND2(t)
	j := &BacktraceJustifier{Nodes: nodesOf(nt)}

	cond := assign.NewList(assign.Assign{Node: out, Time: 1, Val: true})
	result, ok := j.Justify(cond)
	require.True(t, ok)

	assert.True(t, result.Contains(assign.Assign{Node: a, Time: 1, Val: true}))
	assert.True(t, result.Contains(assign.Assign{Node: bb, Time: 1, Val: true}))
}

func TestBacktraceJustifierANDOutputZeroUnderestablishedInput(t *testing.T) {
	a, bb, out, _, nt := buildAND2(t)
	j := &BacktraceJustifier{Nodes: nodesOf(nt)}

	cond := assign.NewList(
		assign.Assign{Node: out, Time: 1, Val: false},
		assign.Assign{Node: a, Time: 1, Val: true},
	)
	result, ok := j.Justify(cond)
	require.True(t, ok)
	assert.True(t, result.Contains(assign.Assign{Node: bb, Time: 1, Val: false}))
}

func TestBacktraceJustifierConflict(t *testing.T) {
	a, _, out, _, nt := buildAND2(t)
	j := &BacktraceJustifier{Nodes: nodesOf(nt)}

	cond := assign.NewList(
		assign.Assign{Node: out, Time: 1, Val: true},
		assign.Assign{Node: a, Time: 1, Val: false},
	)
	_, ok := j.Justify(cond)
	assert.False(t, ok)
}

func TestModelJustifierProjectsSolvedModel(t *testing.T) {
	a, bb, out, _, nt := buildAND2(t)
	nodes := nodesOf(nt)

	s := satsolver.New(0)
	vm := gateenc.VarMap{}
	for _, id := range []int{a, bb, out} {
		vm[id] = s.NewVariable(true)
	}
	require.NoError(t, gateenc.GateEnc(s, nodes, out, vm))

	res := s.Solve(vm[out])
	require.Equal(t, "true", res.String())

	j := &ModelJustifier{Nodes: nodes, PPIList: []int{a, bb}, Solver: s, G: vm}
	result, ok := j.Justify(assign.NewList())
	require.True(t, ok)
	assert.True(t, result.Contains(assign.Assign{Node: a, Time: 1, Val: true}))
	assert.True(t, result.Contains(assign.Assign{Node: bb, Time: 1, Val: true}))
}
