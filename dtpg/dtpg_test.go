package dtpg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/config"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/valkind"
)

func buildAND2(t *testing.T, faultType valkind.FaultType) (a, b, gi int, nt *network.Network) {
	t.Helper()
	bld := netbuild.NewBuilder()
	a = bld.AddPrimaryInput()
	b = bld.AddPrimaryInput()
	out, gateID, err := bld.AddPrimitiveGate(node.And, []int{a, b})
	require.NoError(t, err)
	_, err = bld.AddPrimaryOutput(out)
	require.NoError(t, err)
	nt, err = bld.Finish(faultType, nil)
	require.NoError(t, err)
	return a, b, gateID, nt
}

func TestGenerateStuckAtBranchFault(t *testing.T) {
	_, _, gi, nt := buildAND2(t, valkind.StuckAt)
	faultID := nt.Gate(gi).BranchFaultID(0, 0) // input 0 stuck-at-0
	require.NotEqual(t, -1, faultID)

	e := NewEngine(nt, config.DtpgConfig{UseFFREncoder: true}, 0)
	out, err := e.Generate(nt.Fault(faultID))
	require.NoError(t, err)
	require.Equal(t, satiface.SatTrue, out.Status)
	require.NotNil(t, out.Vector)

	// Detecting input 0 stuck-at-0 needs input 0 driven to 1; the other
	// input must sit at the AND's non-controlling-defeating value (1) too.
	assert.Equal(t, valkind.V1, out.Vector.Input(0, 0))
	assert.Equal(t, valkind.V1, out.Vector.Input(1, 0))
}

func TestGenerateStuckAtBranchFaultFFRMatchesConePath(t *testing.T) {
	_, _, gi, nt := buildAND2(t, valkind.StuckAt)
	faultID := nt.Gate(gi).BranchFaultID(1, 1) // input 1 stuck-at-1

	ffrEngine := NewEngine(nt, config.DtpgConfig{UseFFREncoder: true}, 0)
	coneEngine := NewEngine(nt, config.DtpgConfig{UseFFREncoder: false}, 0)

	ffrOut, err := ffrEngine.Generate(nt.Fault(faultID))
	require.NoError(t, err)
	coneOut, err := coneEngine.Generate(nt.Fault(faultID))
	require.NoError(t, err)

	require.Equal(t, satiface.SatTrue, ffrOut.Status)
	require.Equal(t, satiface.SatTrue, coneOut.Status)
	assert.Equal(t, coneOut.Vector.BinStr(), ffrOut.Vector.BinStr())
}

func TestGenerateTransitionDelayFault(t *testing.T) {
	_, _, gi, nt := buildAND2(t, valkind.TransitionDelay)
	faultID := nt.Gate(gi).StemTDFault[1] // fall: 1->0

	e := NewEngine(nt, config.DtpgConfig{UseFFREncoder: true}, 0)
	out, err := e.Generate(nt.Fault(faultID))
	require.NoError(t, err)
	require.Equal(t, satiface.SatTrue, out.Status)
	require.NotNil(t, out.Vector)

	// Launch frame must drive the AND output high (both inputs 1), capture
	// frame must drop it to 0 (at least one input released).
	assert.Equal(t, valkind.V1, out.Vector.Input(0, 0))
	assert.Equal(t, valkind.V1, out.Vector.Input(1, 0))
	capture0 := out.Vector.Input(0, 1)
	capture1 := out.Vector.Input(1, 1)
	assert.False(t, capture0 == valkind.V1 && capture1 == valkind.V1)
}

func TestGenerateGateExhaustiveFault(t *testing.T) {
	_, _, gi, nt := buildAND2(t, valkind.GateExhaustive)
	g := nt.Gate(gi)
	faultID := g.ExFaultID(0b11) // input0=1, input1=1 combination
	require.NotEqual(t, -1, faultID)

	e := NewEngine(nt, config.DtpgConfig{UseFFREncoder: true}, 0)
	out, err := e.Generate(nt.Fault(faultID))
	require.NoError(t, err)
	require.Equal(t, satiface.SatTrue, out.Status)
	require.NotNil(t, out.Vector)
	assert.Equal(t, valkind.V1, out.Vector.Input(0, 0))
	assert.Equal(t, valkind.V1, out.Vector.Input(1, 0))
}

func TestGenerateUnknownStatusNeverReturnsVector(t *testing.T) {
	_, _, gi, nt := buildAND2(t, valkind.StuckAt)
	faultID := nt.Gate(gi).BranchFaultID(0, 0)

	// A decision budget of 1 (0 would mean unlimited) may make the solver
	// report Unknown rather than finish the search; either
	// way Vector must stay nil unless Status is SatTrue.
	e := NewEngine(nt, config.DtpgConfig{UseFFREncoder: true}, 1)
	out, err := e.Generate(nt.Fault(faultID))
	require.NoError(t, err)
	if out.Status != satiface.SatTrue {
		assert.Nil(t, out.Vector)
	}
}
