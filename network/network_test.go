package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// TestCheckInvariantsOnMultiFanoutDffNetwork builds a network with a
// multi-fanout stem and a DFF pair, freezes it, and asserts CheckInvariants
// reports no violation — exercising checkFanoutConsistency, checkDffPairing,
// and checkTopologicalFanin on a fixture nontrivial enough for all three to
// do real work.
func TestCheckInvariantsOnMultiFanoutDffNetwork(t *testing.T) {
	b := netbuild.NewBuilder()
	a := b.AddPrimaryInput()
	qOut := b.AddDffOutput()

	s, _, err := b.AddPrimitiveGate(node.Not, []int{a})
	require.NoError(t, err)

	g1, _, err := b.AddPrimitiveGate(node.And, []int{s, qOut})
	require.NoError(t, err)
	g2, _, err := b.AddPrimitiveGate(node.Or, []int{s, qOut})
	require.NoError(t, err)

	_, err = b.AddPrimaryOutput(g1)
	require.NoError(t, err)
	_, err = b.AddDffInput(g2, qOut)
	require.NoError(t, err)

	nt, err := b.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)

	assert.NoError(t, nt.CheckInvariants())
}
