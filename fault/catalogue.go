package fault

import (
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// GenerateCatalogue enumerates every fault for faultType over gates, in the
// deterministic order SPEC_FULL.md §5 mandates: increasing gate id, then
// input position, then fval in {0,1}, then (for GateExhaustive) exhaustive
// input-bit lexicographic order.
//
// It mutates each GateRep's fault-id lookup tables (StemFault, BranchFault,
// StemTDFault, BranchTDFault, ExFault) in place so later lookups
// (GateRep.StemFaultID etc.) are O(1), and returns the flat fault list whose
// index equals Fault.ID.
func GenerateCatalogue(gates []gate.GateRep, faultType valkind.FaultType) []Fault {
	var faults []Fault
	next := func() int { return len(faults) }

	for gi := range gates {
		g := &gates[gi]
		g.StemFault = [2]int{NoFault, NoFault}
		g.StemTDFault = [2]int{NoFault, NoFault}
		g.BranchFault = make([][2]int, len(g.Inputs))
		g.BranchTDFault = make([][2]int, len(g.Inputs))
		for i := range g.BranchFault {
			g.BranchFault[i] = [2]int{NoFault, NoFault}
			g.BranchTDFault[i] = [2]int{NoFault, NoFault}
		}

		switch faultType {
		case valkind.StuckAt:
			for fv := 0; fv < 2; fv++ {
				id := next()
				faults = append(faults, Fault{ID: id, Variant: StemSA, Gate: gi, Fval: valkind.Fval2(fv), Rep: id})
				g.StemFault[fv] = id
			}
			for ipos := range g.Inputs {
				for fv := 0; fv < 2; fv++ {
					id := next()
					faults = append(faults, Fault{ID: id, Variant: BranchSA, Gate: gi, ipos: ipos, Fval: valkind.Fval2(fv), Rep: id})
					g.BranchFault[ipos][fv] = id
				}
			}

		case valkind.TransitionDelay:
			for fv := 0; fv < 2; fv++ {
				id := next()
				faults = append(faults, Fault{ID: id, Variant: StemTD, Gate: gi, Fval: valkind.Fval2(fv), Rep: id})
				g.StemTDFault[fv] = id
			}
			for ipos := range g.Inputs {
				for fv := 0; fv < 2; fv++ {
					id := next()
					faults = append(faults, Fault{ID: id, Variant: BranchTD, Gate: gi, ipos: ipos, Fval: valkind.Fval2(fv), Rep: id})
					g.BranchTDFault[ipos][fv] = id
				}
			}

		case valkind.GateExhaustive:
			g.ExFault = make(map[uint64]int)
			n := len(g.Inputs)
			if n == 0 {
				continue
			}
			total := uint64(1) << uint(n)
			for bits := uint64(0); bits < total; bits++ {
				id := next()
				faults = append(faults, Fault{ID: id, Variant: Exhaustive, Gate: gi, bits: bits, Rep: id})
				g.ExFault[bits] = id
			}
		}
	}

	return faults
}

// ComputeRepresentatives applies SPEC_FULL.md §4.3.3's two equivalence rules
// and resolves every fault's Rep to a fixed point (invariant 7), mutating
// faults in place.
//
// Complexity: O(F * alpha(F)) via union-find path compression, where F is
// the fault count.
func ComputeRepresentatives(nodes []node.NodeRep, gates []gate.GateRep, faults []Fault) {
	repOf := make([]int, len(faults))
	for i := range repOf {
		repOf[i] = faults[i].ID
	}

	link := func(from, to int) {
		if from != to {
			repOf[from] = to
		}
	}

	outputToGate := make(map[int]int, len(gates))
	for gi := range gates {
		outputToGate[gates[gi].Output] = gi
	}

	for gi := range gates {
		g := &gates[gi]
		if !g.IsPrimitive {
			continue
		}
		cval, _, coval, _ := g.PrimType.ControlValues()
		if cval.IsX() {
			continue // XOR/XNOR/Buff/Not/constants: no controlling value, rule 1 never applies
		}
		for ipos, bi := range g.Inputs {
			driver := &nodes[bi.Node]
			for fv := 0; fv < 2; fv++ {
				branchID := g.BranchFault[ipos][fv]
				if branchID == NoFault {
					continue
				}
				excitedVal := valkind.Fval2(fv).Val3()

				// Rule 1: excited value equals the gate's controlling value
				// -> collapses into the stem fault with the matching coval.
				if excitedVal == cval {
					stemFv := 0
					if coval == valkind.V1 {
						stemFv = 1
					}
					if stemID := g.StemFault[stemFv]; stemID != NoFault {
						link(branchID, stemID)
						continue
					}
				}

				// Rule 2: driver has a single fanout -> its stem fault
				// collapses into this branch fault of the same polarity.
				if driver.FanoutNum() == 1 {
					if driverStemID := stemFaultOf(gates, driverGate(outputToGate, bi.Node), fv); driverStemID != NoFault {
						link(driverStemID, branchID)
					}
				}
			}

			// Same two rules for the transition-delay branch faults, reusing
			// the identical controlling-value/fanout tests.
			for fv := 0; fv < 2; fv++ {
				branchID := g.BranchTDFault[ipos][fv]
				if branchID == NoFault {
					continue
				}
				excitedVal := valkind.Fval2(fv).Val3()
				if excitedVal == cval {
					stemFv := 0
					if coval == valkind.V1 {
						stemFv = 1
					}
					if stemID := g.StemTDFault[stemFv]; stemID != NoFault {
						link(branchID, stemID)
						continue
					}
				}
				if driver.FanoutNum() == 1 {
					if driverStemID := stemTDFaultOf(gates, driverGate(outputToGate, bi.Node), fv); driverStemID != NoFault {
						link(driverStemID, branchID)
					}
				}
			}
		}
	}

	for i := range faults {
		faults[i].Rep = find(repOf, faults[i].ID)
	}
}

func driverGate(outputToGate map[int]int, nodeID int) int {
	if gi, ok := outputToGate[nodeID]; ok {
		return gi
	}
	return NoFault
}

func stemFaultOf(gates []gate.GateRep, gi, fv int) int {
	if gi == NoFault {
		return NoFault
	}
	return gates[gi].StemFault[fv]
}

func stemTDFaultOf(gates []gate.GateRep, gi, fv int) int {
	if gi == NoFault {
		return NoFault
	}
	return gates[gi].StemTDFault[fv]
}

// find resolves x to its fixed point in repOf with path compression.
func find(repOf []int, x int) int {
	root := x
	for repOf[root] != root {
		root = repOf[root]
	}
	for repOf[x] != root {
		repOf[x], x = root, repOf[x]
	}
	return root
}
