package propagate

import (
	"github.com/vellum-eda/tpgcore/ffr"
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/valkind"
)

// FFREnc is the cheap FFR-local propagation encoder (SPEC_FULL.md §4.6.2):
// one variable pv(n) per node in the FFR meaning "a difference at n
// propagates to the FFR's Root", built with a single pre-order DFS from
// Root down to the FFR's leaves (external Inputs). Root's own pv is the
// caller-supplied or freshly allocated "propagates to FFR boundary" handle.
type FFREnc struct {
	PV gateenc.VarMap // node id -> propagation literal, every node in the FFR
}

// BuildFFREnc runs the FFR encoder for region f, given the good-machine
// value map gv covering every node in f (SPEC_FULL.md §4.6.2). For node n
// with a controlling value and fanin position ipos, it asserts:
//
//	pv(fanin[ipos]) <=> pv(n) AND (every OTHER fanin of n == nval)
//
// via a plain Tseitin AND gate, avoiding the quadratic side-input expansion
// by reusing prefix/suffix AND literals across fanin positions (the "linear
// pair-of-prefix-arrays trick").
func BuildFFREnc(solver satiface.Solver, nodes []node.NodeRep, f ffr.FFR, gv gateenc.VarMap, rootPV satiface.Literal) FFREnc {
	enc := FFREnc{PV: gateenc.VarMap{}}
	if rootPV == 0 {
		rootPV = solver.NewVariable(true)
	}
	enc.PV[f.Root] = rootPV

	// f.Nodes is built in ascending (topological) id order by ffr.Build;
	// reversing it gives a valid pre-order DFS from Root to the leaves,
	// since every fanin of a node in an FFR has strictly smaller id and
	// stays within the same FFR (by the FFR-internal-node definition).
	order := make([]int, len(f.Nodes))
	for i, id := range f.Nodes {
		order[len(f.Nodes)-1-i] = id
	}

	for _, nid := range order {
		n := &nodes[nid]
		pvN, ok := enc.PV[nid]
		if !ok || len(n.Fanin) == 0 {
			continue
		}
		_, nval, _, _ := n.Kind.ControlValues()
		if nval.IsX() {
			if len(n.Fanin) == 1 {
				// Buff/Not/PPO/DffInput pass a difference straight through
				// with no side-input condition to gate it on.
				pvFanin := solver.NewVariable(false)
				solver.AddBuffGate(pvFanin, pvN)
				enc.PV[n.Fanin[0]] = pvFanin
			}
			continue // XOR/XNOR have no single distinguished side-input condition
		}
		sideAtNval := make([]satiface.Literal, len(n.Fanin))
		for i, fi := range n.Fanin {
			sideAtNval[i] = litFor(gv[fi], nval)
		}

		// prefix[i] = AND(sideAtNval[0..i-1]), suffix[i] = AND(sideAtNval[i+1..k-1]);
		// prefix[0] and suffix[k] are the empty-AND sentinel (true). Each
		// array is built with one running AND gate per step, so the whole
		// side-input-product-at-every-position table costs O(k) gates
		// instead of the O(k^2) a fresh per-position conjunction would.
		k := len(n.Fanin)
		trueLit := solver.NewVariable(false)
		solver.AddAndGate(trueLit)

		prefix := make([]satiface.Literal, k+1)
		prefix[0] = trueLit
		for i := 0; i < k; i++ {
			if i == 0 {
				prefix[1] = sideAtNval[0]
				continue
			}
			v := solver.NewVariable(false)
			solver.AddAndGate(v, prefix[i], sideAtNval[i])
			prefix[i+1] = v
		}

		suffix := make([]satiface.Literal, k+1)
		suffix[k] = trueLit
		for i := k - 1; i >= 0; i-- {
			if i == k-1 {
				suffix[k-1] = sideAtNval[k-1]
				continue
			}
			v := solver.NewVariable(false)
			solver.AddAndGate(v, sideAtNval[i], suffix[i+1])
			suffix[i] = v
		}

		for ipos, fanin := range n.Fanin {
			pvFanin := solver.NewVariable(false)
			solver.AddAndGate(pvFanin, pvN, prefix[ipos], suffix[ipos+1])
			enc.PV[fanin] = pvFanin
		}
	}

	return enc
}

// litFor returns the literal true exactly when lit's variable takes val
// (mirrors gateenc's unexported helper of the same name).
func litFor(lit satiface.Literal, val valkind.Val3) satiface.Literal {
	if val == valkind.V1 {
		return lit
	}
	return lit.Not()
}

// FaultPV returns the propagation literal for fault f's origin node if
// covered by this FFREnc. The caller separately asserts pv(f) <=>
// FaultPV(origin) AND excitation(f), where excitation comes from
// fault.Fault.ExcitationCondition (SPEC_FULL.md §4.6.2's pv(f) handle).
func (enc FFREnc) FaultPV(originNode int) (satiface.Literal, bool) {
	lit, ok := enc.PV[originNode]
	return lit, ok
}
