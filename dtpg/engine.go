package dtpg

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/config"
	"github.com/vellum-eda/tpgcore/ffr"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/fsim"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/tvec"
	"github.com/vellum-eda/tpgcore/valkind"
)

// Outcome is the result of generating (or failing to generate) a pattern
// for one fault. Vector is nil unless Status == satiface.SatTrue.
type Outcome struct {
	Status satiface.SatBool3
	Vector *tvec.TestVector
}

// Engine generates test patterns against one frozen Network.
type Engine struct {
	Nt           *network.Network
	Dtpg         config.DtpgConfig
	MaxDecisions int

	nodes     []node.NodeRep
	gates     []gate.GateRep
	ffrByRoot map[int]ffr.FFR
	ppiIdx    tvec.PPIIndex
	numInputs int
	numDffs   int
}

// NewEngine precomputes the per-Network lookups Generate needs: a plain
// node/gate snapshot, an FFR-by-root-id index, and the PPIIndex tvec needs
// to pack/unpack TestVectors.
func NewEngine(nt *network.Network, dtpgCfg config.DtpgConfig, maxDecisions int) *Engine {
	nodes := make([]node.NodeRep, nt.NumNodes())
	for i := range nodes {
		nodes[i] = *nt.Node(i)
	}
	gates := make([]gate.GateRep, nt.NumGates())
	for i := range gates {
		gates[i] = *nt.Gate(i)
	}
	ffrByRoot := make(map[int]ffr.FFR, len(nt.FFRs()))
	for _, f := range nt.FFRs() {
		ffrByRoot[f.Root] = f
	}

	numInputs, numDffs := 0, 0
	for _, id := range nt.PPIList() {
		if nodes[id].Kind == node.DffOutput {
			numDffs++
		} else {
			numInputs++
		}
	}

	return &Engine{
		Nt:           nt,
		Dtpg:         dtpgCfg,
		MaxDecisions: maxDecisions,
		nodes:        nodes,
		gates:        gates,
		ffrByRoot:    ffrByRoot,
		ppiIdx:       tvec.BuildPPIIndex(nodes, nt.PPIList()),
		numInputs:    numInputs,
		numDffs:      numDffs,
	}
}

// Generate tries the FFR-local path first (when configured and applicable),
// falling back to the full twin-circuit path otherwise.
func (e *Engine) Generate(f *fault.Fault) (Outcome, error) {
	origin := f.OriginNode(e.gates)

	if e.Dtpg.UseFFREncoder {
		out, handled, err := e.tryFFRPath(f, origin)
		if handled {
			return out, err
		}
	}
	return e.conePath(f, origin)
}

// faultSite translates f into the gateenc.FaultSite ConeEnc/FFR-local CNF
// needs. Stem/branch faults map directly. A gate-exhaustive fault has no
// per-input site shape of its own (SPEC_FULL.md's ExFault is keyed by the
// gate's *entire* input combination, not one position) — since its
// excitation condition already pins every input to that exact combination,
// the good-machine value under that pinning is a known constant, so the
// fault reduces to a stem override to its complement.
func (e *Engine) faultSite(f *fault.Fault) (gateenc.FaultSite, error) {
	switch f.Variant {
	case fault.StemSA, fault.StemTD:
		return gateenc.FaultSite{IsStem: true, Fval: f.Fval}, nil
	case fault.BranchSA, fault.BranchTD:
		return gateenc.FaultSite{Ipos: f.Ipos(), Fval: f.Fval}, nil
	case fault.Exhaustive:
		g := &e.gates[f.Gate]
		ins := make([]valkind.Val3, len(g.Inputs))
		for i := range g.Inputs {
			ins[i] = valkind.FromBool((f.Bits()>>uint(i))&1 == 1)
		}
		good := fsim.EvalKind(g.PrimType, ins)
		if good.IsX() {
			return gateenc.FaultSite{}, fmt.Errorf("dtpg: exhaustive fault %d has an undefined good value", f.ID)
		}
		fv := valkind.Fzero
		if good == valkind.V0 {
			fv = valkind.Fone
		}
		return gateenc.FaultSite{IsStem: true, Fval: fv}, nil
	default:
		return gateenc.FaultSite{}, fmt.Errorf("dtpg: unknown fault variant %s", f.Variant)
	}
}

// assumeLit returns the literal asserting lit's variable at val.
func assumeLit(lit satiface.Literal, val bool) satiface.Literal {
	if val {
		return lit
	}
	return lit.Not()
}
