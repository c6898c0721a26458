package dtpg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/config"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// buildWideFanoutStem builds a single stem s = NOT(a) driving n independent
// single-fanout chains, each ending in its own primary output — the
// reconvergence-free wide-fanout shape scenario 6 needs to force
// GenerateDetCond's cube-cap overflow deterministically.
func buildWideFanoutStem(t *testing.T, n int) (stemGate int, bld *netbuild.Builder) {
	t.Helper()
	bld = netbuild.NewBuilder()
	a := bld.AddPrimaryInput()
	s, gi, err := bld.AddPrimitiveGate(node.Not, []int{a})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		b, _, err := bld.AddPrimitiveGate(node.Buff, []int{s})
		require.NoError(t, err)
		_, err = bld.AddPrimaryOutput(b)
		require.NoError(t, err)
	}
	return gi, bld
}

func TestGenerateDetCondOverflowsOnWideFanout(t *testing.T) {
	gi, bld := buildWideFanoutStem(t, 128)
	nt, err := bld.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)

	faultID := nt.Gate(gi).StemFaultID(0)
	require.NotEqual(t, fault.NoFault, faultID)

	e := NewEngine(nt, config.DtpgConfig{CubeCap: 4}, 0)
	dc := e.GenerateDetCond(nt.Fault(faultID))

	assert.True(t, dc.Overflow)
	assert.Len(t, dc.UncoveredPPOs, 128-4)
	assert.Len(t, dc.Conditions, 4)
}

func TestGenerateDetCondCoversEveryPPOBelowCap(t *testing.T) {
	gi, bld := buildWideFanoutStem(t, 3)
	nt, err := bld.Finish(valkind.StuckAt, nil)
	require.NoError(t, err)

	faultID := nt.Gate(gi).StemFaultID(1)
	require.NotEqual(t, fault.NoFault, faultID)

	e := NewEngine(nt, config.DtpgConfig{CubeCap: 64}, 0)
	dc := e.GenerateDetCond(nt.Fault(faultID))

	assert.False(t, dc.Overflow)
	assert.Empty(t, dc.UncoveredPPOs)
	assert.Len(t, dc.Conditions, 3)
	for _, ppo := range nt.PPOList() {
		cond, ok := dc.Conditions[ppo]
		assert.True(t, ok)
		assert.NotNil(t, cond)
	}
}
