package tpgnetwork

import (
	"fmt"
	"os"

	"github.com/vellum-eda/tpgcore/config"
	"github.com/vellum-eda/tpgcore/diag"
	"github.com/vellum-eda/tpgcore/dominance"
	"github.com/vellum-eda/tpgcore/dtpg"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/ffr"
	"github.com/vellum-eda/tpgcore/fsim"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/parser"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/tvec"
	"github.com/vellum-eda/tpgcore/valkind"
)

// TpgNetwork is the frozen network plus the collaborators (a dtpg.Engine,
// the fsim config) needed to run the public operations SPEC_FULL.md §6
// lists, all reachable from one handle instead of five package imports.
type TpgNetwork struct {
	Nt     *network.Network
	ppiIdx tvec.PPIIndex
	engine *dtpg.Engine
	fsim   config.FsimConfig
	logger *diag.Logger
}

// ReadBLIF parses and freezes a BLIF file at path under faultType, wiring a
// dtpg.Engine configured by dtpgCfg/maxDecisions. logger may be nil.
func ReadBLIF(path string, faultType valkind.FaultType, dtpgCfg config.DtpgConfig, fsimCfg config.FsimConfig, maxDecisions int, logger *diag.Logger) (*TpgNetwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tpgnetwork: read_blif: %w", err)
	}
	defer f.Close()
	nl, err := parser.ParseBLIF(f)
	if err != nil {
		return nil, fmt.Errorf("tpgnetwork: read_blif: %w", err)
	}
	return fromNetlist(nl, faultType, dtpgCfg, fsimCfg, maxDecisions, logger)
}

// ReadISCAS89 parses and freezes an ISCAS-89 bench file at path, otherwise
// identical to ReadBLIF.
func ReadISCAS89(path string, faultType valkind.FaultType, dtpgCfg config.DtpgConfig, fsimCfg config.FsimConfig, maxDecisions int, logger *diag.Logger) (*TpgNetwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tpgnetwork: read_iscas89: %w", err)
	}
	defer f.Close()
	nl, err := parser.ParseISCAS89(f)
	if err != nil {
		return nil, fmt.Errorf("tpgnetwork: read_iscas89: %w", err)
	}
	return fromNetlist(nl, faultType, dtpgCfg, fsimCfg, maxDecisions, logger)
}

func fromNetlist(nl *parser.Netlist, faultType valkind.FaultType, dtpgCfg config.DtpgConfig, fsimCfg config.FsimConfig, maxDecisions int, logger *diag.Logger) (*TpgNetwork, error) {
	nt, err := buildNetwork(nl, faultType, logger)
	if err != nil {
		return nil, err
	}
	return &TpgNetwork{
		Nt:     nt,
		ppiIdx: tvec.BuildPPIIndex(nodesOf(nt), nt.PPIList()),
		engine: dtpg.NewEngine(nt, dtpgCfg, maxDecisions),
		fsim:   fsimCfg,
		logger: logger,
	}, nil
}

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

// NodeList returns every NodeRep, indexed by id.
func (t *TpgNetwork) NodeList() []node.NodeRep { return nodesOf(t.Nt) }

// GateList returns every GateRep, indexed by id.
func (t *TpgNetwork) GateList() []gate.GateRep { return gatesOf(t.Nt) }

// PPIList / PPOList return the pseudo-primary I/O node ids in declaration order.
func (t *TpgNetwork) PPIList() []int { return t.Nt.PPIList() }
func (t *TpgNetwork) PPOList() []int { return t.Nt.PPOList() }

// PPOListByTFISize returns the PPO node ids sorted by ascending transitive-
// fanin cone size (output_id2 order).
func (t *TpgNetwork) PPOListByTFISize() []int { return t.Nt.PPOByTFIRank() }

// FFRList / MFFCList return every FFR/MFFC computed at freeze time.
func (t *TpgNetwork) FFRList() []ffr.FFR   { return t.Nt.FFRs() }
func (t *TpgNetwork) MFFCList() []ffr.MFFC { return t.Nt.MFFCs() }

// RepFaultList returns the reduced representative fault list (SPEC_FULL.md
// §4.3.3) — the list a DTPG run should actually target.
func (t *TpgNetwork) RepFaultList() []fault.Fault { return t.Nt.RepresentativeFaults() }

// Fault returns the fault record with the given id.
func (t *TpgNetwork) Fault(id int) *fault.Fault { return t.Nt.Fault(id) }

// MaxFaultID returns the highest valid fault id, or fault.NoFault if the
// catalogue is empty.
func (t *TpgNetwork) MaxFaultID() int {
	if n := len(t.Nt.Faults()); n > 0 {
		return n - 1
	}
	return fault.NoFault
}

// Solve reports whether f is detectable, untestable, or undetermined under
// the engine's decision budget, without constructing a TestVector.
func (t *TpgNetwork) Solve(f *fault.Fault) (satiface.SatBool3, error) {
	out, err := t.engine.Generate(f)
	return out.Status, err
}

// GenPattern runs the DTPG engine for f and returns a detecting TestVector.
// It returns a nil vector alongside the solver's status if f is untestable
// or undetermined.
func (t *TpgNetwork) GenPattern(f *fault.Fault) (*tvec.TestVector, satiface.SatBool3, error) {
	out, err := t.engine.Generate(f)
	return out.Vector, out.Status, err
}

// GenDetCond runs the structural per-PPO detection-condition enumerator
// (SPEC_FULL.md §7, test scenario 6) for f, logging a PropagationOverflow
// warning through the network's configured logger when the cube-cap is
// exceeded.
func (t *TpgNetwork) GenDetCond(f *fault.Fault) fault.DetCond {
	dc := t.engine.GenerateDetCond(f)
	if dc.Overflow && t.logger != nil {
		t.logger.PropagationOverflow(f.ID, len(dc.UncoveredPPOs))
	}
	return dc
}

// Spsfp runs single-pattern/single-fault simulation.
func (t *TpgNetwork) Spsfp(tv *tvec.TestVector, f *fault.Fault) fsim.DiffBits {
	nodes, gates := t.NodeList(), t.GateList()
	return fsim.Spsfp(nodes, gates, t.Nt.PPIList(), t.Nt.PPOList(), t.ppiIdx, tv, f)
}

// Sppfp runs single-pattern/parallel-fault simulation, sharded across
// FsimConfig.Workers when configured above 1.
func (t *TpgNetwork) Sppfp(tv *tvec.TestVector, faults []fault.Fault) map[int]fsim.DiffBits {
	nodes, gates := t.NodeList(), t.GateList()
	if t.fsim.Workers > 1 {
		return fsim.SppfpPool(nodes, gates, t.Nt.PPIList(), t.Nt.PPOList(), t.ppiIdx, tv, faults, t.fsim.Workers)
	}
	return fsim.Sppfp(nodes, gates, t.Nt.PPIList(), t.Nt.PPOList(), t.ppiIdx, tv, faults)
}

// Ppsfp runs bit-parallel-pattern/parallel-fault simulation, sharded across
// FsimConfig.Workers when configured above 1.
func (t *TpgNetwork) Ppsfp(patterns []tvec.TestVector, faults []fault.Fault) map[int][]fsim.DiffBits {
	nodes, gates := t.NodeList(), t.GateList()
	if t.fsim.Workers > 1 {
		return fsim.PpsfpPool(nodes, gates, t.Nt.PPIList(), t.Nt.PPOList(), t.ppiIdx, patterns, faults, t.fsim.Workers)
	}
	return fsim.Ppsfp(nodes, gates, t.Nt.PPIList(), t.Nt.PPOList(), t.ppiIdx, patterns, faults)
}

// NaiveDominates reports whether f1 structurally dominates f2 via the naive
// two-independent-cone SAT checker (SPEC_FULL.md §4.7). ok is false if
// either fault's FFR cone couldn't be encoded.
func (t *TpgNetwork) NaiveDominates(f1, f2 *fault.Fault, maxDecisions int) (dominates, ok bool) {
	return dominance.NaiveDomChecker(t.NodeList(), t.GateList(), f1, f2, t.Nt, maxDecisions)
}

// StructDominates is StructDomChecker's facade entry point.
func (t *TpgNetwork) StructDominates(f1, f2 *fault.Fault, maxDecisions int) (dominates, ok bool) {
	return dominance.StructDomChecker(t.NodeList(), t.GateList(), f1, f2, t.Nt, maxDecisions)
}
