package dominance

import (
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/propagate"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/satsolver"
)

// siteOf translates a Fault into the gateenc.FaultSite its own ConeEnc call
// needs to override at OriginNode (SPEC_FULL.md §4.6.1 step 1).
func siteOf(f *fault.Fault) gateenc.FaultSite {
	if f.IsStem() {
		return gateenc.FaultSite{IsStem: true, Fval: f.Fval}
	}
	return gateenc.FaultSite{IsStem: false, Ipos: f.Ipos(), Fval: f.Fval}
}

// NaiveDomChecker asks "does every pattern detecting f1 also detect f2?" by
// encoding two fully independent faulty circuits (each with its own
// good-machine copy) over their own cones and checking
// SAT(prop1 ∧ ¬prop2) — SPEC_FULL.md §4.7. UNSAT means f1 dominates f2.
//
// ok is false when the decision budget was exhausted before a verdict; the
// caller should fall back to treating the pair as "not proven to dominate"
// rather than trust the zero value of dominates.
func NaiveDomChecker(nodes []node.NodeRep, gates []gate.GateRep, f1, f2 *fault.Fault, nt *network.Network, maxDecisions int) (dominates bool, ok bool) {
	s := satsolver.New(maxDecisions)

	cone1 := propagate.BuildCone(nt, f1.OriginNode(gates))
	_, prop1, err := propagate.ConeEnc(s, nodes, cone1, siteOf(f1))
	if err != nil {
		return false, false
	}

	cone2 := propagate.BuildCone(nt, f2.OriginNode(gates))
	_, prop2, err := propagate.ConeEnc(s, nodes, cone2, siteOf(f2))
	if err != nil {
		return false, false
	}

	res := s.Solve(prop1, prop2.Not())
	switch res {
	case satiface.SatFalse:
		return true, true
	case satiface.SatTrue:
		return false, true
	default:
		return false, false
	}
}

// StructDomChecker answers the same question as NaiveDomChecker. It is kept
// as a distinct entry point for callers that want to batch many dominance
// queries against one cone pair and later swap in a shared propagation
// engine; today it delegates straight to NaiveDomChecker — sharing the
// good-machine encoding across both faulty circuits is a solver-level
// optimization this port does not implement (see DESIGN.md).
func StructDomChecker(nodes []node.NodeRep, gates []gate.GateRep, f1, f2 *fault.Fault, nt *network.Network, maxDecisions int) (dominates bool, ok bool) {
	return NaiveDomChecker(nodes, gates, f1, f2, nt, maxDecisions)
}
