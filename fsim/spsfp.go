package fsim

import (
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/tvec"
)

// Spsfp ("single pattern, single fault") simulates tv against f and reports
// the PPOs where the good and faulty machines disagree (SPEC_FULL.md §4.8).
func Spsfp(nodes []node.NodeRep, gates []gate.GateRep, ppiList, ppoList []int, idx tvec.PPIIndex, tv *tvec.TestVector, f *fault.Fault) DiffBits {
	good, faulty := Simulate(nodes, gates, ppiList, idx, tv, f)
	return diffOf(ppoList, good, faulty)
}

// Sppfp ("single pattern, all faults") simulates tv once for the good
// machine, then once per distinct fault, returning every fault's DiffBits
// keyed by Fault.ID (SPEC_FULL.md §4.8). Faults that share a Rep still get
// their own entry — Sppfp grades every fault, representative collapse is a
// fault-list concern, not a simulation one.
func Sppfp(nodes []node.NodeRep, gates []gate.GateRep, ppiList, ppoList []int, idx tvec.PPIIndex, tv *tvec.TestVector, faults []fault.Fault) map[int]DiffBits {
	out := make(map[int]DiffBits, len(faults))
	for i := range faults {
		f := &faults[i]
		out[f.ID] = Spsfp(nodes, gates, ppiList, ppoList, idx, tv, f)
	}
	return out
}
