package tpgnetwork

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/config"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/tvec"
	"github.com/vellum-eda/tpgcore/valkind"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadISCAS89AndGeneratePattern(t *testing.T) {
	path := writeTemp(t, "and2.bench", `
INPUT(a)
INPUT(b)
OUTPUT(y)
y = AND(a, b)
`)
	tn, err := ReadISCAS89(path, valkind.StuckAt, config.DtpgConfig{UseFFREncoder: true}, config.FsimConfig{Workers: 1}, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, len(tn.PPIList()))
	assert.Equal(t, 1, len(tn.PPOList()))
	assert.True(t, tn.MaxFaultID() >= 0)

	faults := tn.RepFaultList()
	require.NotEmpty(t, faults)

	var sawDetected bool
	for i := range faults {
		status, _, err := tn.GenPattern(&faults[i])
		require.NoError(t, err)
		if status == satiface.SatTrue {
			sawDetected = true
		}
	}
	assert.True(t, sawDetected, "at least one AND2 fault should be detectable")
}

func TestReadBLIFAndSimulateDetects(t *testing.T) {
	path := writeTemp(t, "and2.blif", `
.model and2
.inputs a b
.outputs y
.names a b y
11 1
.end
`)
	tn, err := ReadBLIF(path, valkind.StuckAt, config.DtpgConfig{UseFFREncoder: true}, config.FsimConfig{Workers: 1}, 0, nil)
	require.NoError(t, err)

	faults := tn.RepFaultList()
	require.NotEmpty(t, faults)

	tv := tvec.NewTestVector(valkind.StuckAt, 2, 0)
	tv.SetInput(0, 0, valkind.V1)
	tv.SetInput(1, 0, valkind.V1)

	var sawDetection bool
	for i := range faults {
		if len(tn.Spsfp(&tv, &faults[i])) > 0 {
			sawDetection = true
		}
	}
	assert.True(t, sawDetection, "pattern (1,1) should detect at least one AND2 fault")
}

func TestReadISCAS89RejectsUndeclaredNet(t *testing.T) {
	path := writeTemp(t, "bad.bench", "INPUT(a)\nOUTPUT(y)\ny = AND(a, ghost)\n")
	_, err := ReadISCAS89(path, valkind.StuckAt, config.DtpgConfig{}, config.FsimConfig{}, 0, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "ghost"))
}

func TestReadISCAS89WithLatch(t *testing.T) {
	path := writeTemp(t, "latch.bench", `
INPUT(clk)
INPUT(a)
OUTPUT(q)
q = DFF(d)
d = AND(a, q)
`)
	tn, err := ReadISCAS89(path, valkind.StuckAt, config.DtpgConfig{UseFFREncoder: true}, config.FsimConfig{Workers: 1}, 0, nil)
	require.NoError(t, err)
	// PPIs: clk, a (primary inputs) + q (DFF output); PPOs: q's OutPut(q) + d (DFF input).
	assert.Equal(t, 3, len(tn.PPIList()))
	assert.Equal(t, 2, len(tn.PPOList()))
}
