package satsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-eda/tpgcore/satiface"
)

func TestSimpleSatisfiable(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	s.AddClause(a, b)
	s.AddClause(a.Not(), b.Not())

	got := s.Solve()
	require.Equal(t, satiface.SatTrue, got)
	assert.NotEqual(t, s.Model(a), s.Model(b))
}

func TestSimpleUnsatisfiable(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	s.AddClause(a)
	s.AddClause(a.Not())

	assert.Equal(t, satiface.SatFalse, s.Solve())
}

func TestSolveWithAssumptions(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	s.AddClause(a, b) // a OR b

	require.Equal(t, satiface.SatTrue, s.Solve(a.Not()))
	assert.Equal(t, satiface.SatTrue, s.Model(b))
}

func TestDecisionBudgetYieldsUnknown(t *testing.T) {
	// Propagation alone (no branching) still succeeds even with a tight
	// budget: a unit clause never consumes a decision.
	s := New(1)
	a := s.NewVariable(true)
	s.AddClause(a)
	assert.Equal(t, satiface.SatTrue, s.Solve())

	// Two independent OR-pairs force at least two branch decisions (the
	// first decision only satisfies its own clause); with a budget of one,
	// search must give up once it needs a second.
	limited := New(1)
	a1 := limited.NewVariable(true)
	a2 := limited.NewVariable(true)
	b1 := limited.NewVariable(true)
	b2 := limited.NewVariable(true)
	limited.AddClause(a1, a2)
	limited.AddClause(b1, b2)
	assert.Equal(t, satiface.SatUnknown, limited.Solve())
}

func TestAndGateEncoding(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	out := s.NewVariable(true)
	s.AddAndGate(out, a, b)

	require.Equal(t, satiface.SatTrue, s.Solve(a, b))
	assert.Equal(t, satiface.SatTrue, s.Model(out))

	require.Equal(t, satiface.SatTrue, s.Solve(a.Not()))
	assert.Equal(t, satiface.SatFalse, s.Model(out))
}

func TestOrGateEncoding(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	out := s.NewVariable(true)
	s.AddOrGate(out, a, b)

	require.Equal(t, satiface.SatTrue, s.Solve(a.Not(), b.Not()))
	assert.Equal(t, satiface.SatFalse, s.Model(out))
}

func TestXorGateEncodingThreeInputs(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	c := s.NewVariable(true)
	out := s.NewVariable(true)
	s.AddXorGate(out, a, b, c)

	require.Equal(t, satiface.SatTrue, s.Solve(a, b.Not(), c.Not()))
	assert.Equal(t, satiface.SatTrue, s.Model(out))

	require.Equal(t, satiface.SatTrue, s.Solve(a, b, c.Not()))
	assert.Equal(t, satiface.SatFalse, s.Model(out))
}

func TestNotGateEncoding(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	out := s.NewVariable(true)
	s.AddNotGate(out, a)

	require.Equal(t, satiface.SatTrue, s.Solve(a))
	assert.Equal(t, satiface.SatFalse, s.Model(out))
}

func TestCNFSizeTracksClauses(t *testing.T) {
	s := New(0)
	a := s.NewVariable(true)
	b := s.NewVariable(true)
	s.AddClause(a, b)
	s.AddClause(a.Not())

	clauses, literals := s.CNFSize()
	assert.Equal(t, 2, clauses)
	assert.Equal(t, 3, literals)
}
