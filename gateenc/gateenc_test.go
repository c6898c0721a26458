package gateenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
	"github.com/vellum-eda/tpgcore/satsolver"
	"github.com/vellum-eda/tpgcore/valkind"
)

// truthTable returns the Go-level expected output of kind over a bit vector
// of k inputs (bit i = 1 means input i is true).
func truthTable(kind node.Kind, bits, k int) bool {
	vals := make([]bool, k)
	for i := 0; i < k; i++ {
		vals[i] = (bits>>i)&1 == 1
	}
	switch kind {
	case node.And, node.Nand:
		r := true
		for _, v := range vals {
			r = r && v
		}
		if kind == node.Nand {
			return !r
		}
		return r
	case node.Or, node.Nor:
		r := false
		for _, v := range vals {
			r = r || v
		}
		if kind == node.Nor {
			return !r
		}
		return r
	case node.Xor, node.Xnor:
		r := false
		for _, v := range vals {
			r = r != v
		}
		if kind == node.Xnor {
			return !r
		}
		return r
	case node.Buff:
		return vals[0]
	case node.Not:
		return !vals[0]
	}
	panic("unhandled kind")
}

// TestGateEncCorrectness verifies, by exhaustive 2^k enumeration, that the
// CNF GateEnc emits is equisatisfiable with kind's Boolean function
// (SPEC_FULL.md §8's gate-encoding-correctness property).
func TestGateEncCorrectness(t *testing.T) {
	kinds := []node.Kind{node.And, node.Nand, node.Or, node.Nor, node.Xor, node.Xnor, node.Buff, node.Not}
	for _, kind := range kinds {
		for k := kind.MinFanin(); k <= 5; k++ {
			if (kind == node.Buff || kind == node.Not) && k != 1 {
				continue
			}
			s := satsolver.New(0)
			ins := make([]satiface.Literal, k)
			for i := range ins {
				ins[i] = s.NewVariable(true)
			}
			out := s.NewVariable(true)
			require.NoError(t, emitFunction(s, kind, out, ins))

			for bits := 0; bits < (1 << uint(k)); bits++ {
				assumptions := make([]satiface.Literal, k)
				for i, lit := range ins {
					if (bits>>i)&1 == 1 {
						assumptions[i] = lit
					} else {
						assumptions[i] = lit.Not()
					}
				}
				want := truthTable(kind, bits, k)
				res := s.Solve(assumptions...)
				require.Equal(t, satiface.SatTrue, res, "%s k=%d bits=%b should be satisfiable", kind, k, bits)
				got := s.Model(out) == satiface.SatTrue
				assert.Equal(t, want, got, "%s k=%d bits=%b output mismatch", kind, k, bits)
			}
		}
	}
}

func TestCalcCNFSizeMatchesEmission(t *testing.T) {
	nodes := []node.NodeRep{
		{ID: 0, Kind: node.PrimaryInput},
		{ID: 1, Kind: node.PrimaryInput},
		{ID: 2, Kind: node.PrimaryInput},
		{ID: 3, Kind: node.And, Fanin: []int{0, 1, 2}},
	}
	wantClauses, wantLits := CalcCNFSize(nodes, 3)

	s := satsolver.New(0)
	vm := VarMap{}
	for i := 0; i < 3; i++ {
		vm[i] = s.NewVariable(true)
	}
	vm[3] = s.NewVariable(true)
	require.NoError(t, GateEnc(s, nodes, 3, vm))

	clauses, lits := s.CNFSize()
	assert.Equal(t, wantClauses, clauses)
	assert.Equal(t, wantLits, lits)
}

func TestFaultyGateEncStemOverride(t *testing.T) {
	nodes := []node.NodeRep{
		{ID: 0, Kind: node.PrimaryInput},
		{ID: 1, Kind: node.PrimaryInput},
		{ID: 2, Kind: node.And, Fanin: []int{0, 1}},
	}
	s := satsolver.New(0)
	vm := VarMap{0: s.NewVariable(true), 1: s.NewVariable(true), 2: s.NewVariable(true)}

	require.NoError(t, FaultyGateEnc(s, nodes, 2, vm, FaultSite{IsStem: true, Fval: valkind.Fone}))
	// Stuck-at-1 stem fault: output is 1 even when both inputs are 0.
	res := s.Solve(vm[0].Not(), vm[1].Not())
	require.Equal(t, satiface.SatTrue, res)
	assert.Equal(t, satiface.SatTrue, s.Model(vm[2]))
}

func TestFaultyGateEncBranchOverride(t *testing.T) {
	nodes := []node.NodeRep{
		{ID: 0, Kind: node.PrimaryInput},
		{ID: 1, Kind: node.PrimaryInput},
		{ID: 2, Kind: node.And, Fanin: []int{0, 1}},
	}
	s := satsolver.New(0)
	vm := VarMap{0: s.NewVariable(true), 1: s.NewVariable(true), 2: s.NewVariable(true)}

	// Branch stuck-at-1 on input 0: even if the real driver is 0, the gate
	// sees a 1 on that input.
	require.NoError(t, FaultyGateEnc(s, nodes, 2, vm, FaultSite{Ipos: 0, Fval: valkind.Fone}))
	res := s.Solve(vm[0].Not(), vm[1])
	require.Equal(t, satiface.SatTrue, res)
	assert.Equal(t, satiface.SatTrue, s.Model(vm[2]))
}
