package satiface

import "fmt"

// Literal is a signed SAT literal: a positive value is variable v=value
// true, its negation is variable v false. Literal 0 is never valid.
type Literal int32

// Var returns the unsigned variable index of l.
func (l Literal) Var() int32 {
	if l < 0 {
		return int32(-l)
	}
	return int32(l)
}

// Not returns the complement of l.
func (l Literal) Not() Literal { return -l }

// IsPositive reports whether l asserts its variable true.
func (l Literal) IsPositive() bool { return l > 0 }

// SatBool3 is the solver's three-valued result/model type (SPEC_FULL.md §6).
type SatBool3 int8

const (
	SatFalse SatBool3 = iota
	SatTrue
	SatUnknown
)

// String implements fmt.Stringer.
func (s SatBool3) String() string {
	switch s {
	case SatTrue:
		return "true"
	case SatFalse:
		return "false"
	default:
		return "unknown"
	}
}

// FromBool lifts a defined Go bool into SatBool3.
func FromBool(b bool) SatBool3 {
	if b {
		return SatTrue
	}
	return SatFalse
}

// Solver is the CNF boundary consumed by gateenc/propagate/dominance/dtpg.
// Implementations are not required to be safe for concurrent use; callers
// that shard work across goroutines give each worker its own Solver
// (SPEC_FULL.md §5).
type Solver interface {
	// NewVariable allocates a fresh variable and returns its positive
	// literal. decision hints whether the solver's branching heuristic
	// should treat it as a decision variable (vs. a pure Tseitin auxiliary);
	// implementations may ignore the hint.
	NewVariable(decision bool) Literal

	// AddClause asserts the disjunction of lits. An empty clause makes the
	// instance immediately unsatisfiable.
	AddClause(lits ...Literal)

	// AddAndGate/AddOrGate/AddXorGate assert out == AND/OR/XOR(inputs...).
	AddAndGate(out Literal, inputs ...Literal)
	AddOrGate(out Literal, inputs ...Literal)
	AddXorGate(out Literal, inputs ...Literal)

	// AddBuffGate/AddNotGate assert out == in / out == !in.
	AddBuffGate(out, in Literal)
	AddNotGate(out, in Literal)

	// AddNandGate/AddNorGate/AddXnorGate assert the negated-output variants.
	AddNandGate(out Literal, inputs ...Literal)
	AddNorGate(out Literal, inputs ...Literal)
	AddXnorGate(out Literal, inputs ...Literal)

	// Solve runs the solver under the given unit assumptions and returns
	// SatTrue/SatFalse, or SatUnknown if a resource limit was hit
	// (SPEC_FULL.md §7 — propagates as a value, never an error/panic).
	Solve(assumptions ...Literal) SatBool3

	// Model returns the value the last successful Solve assigned to lit's
	// variable, respecting lit's polarity; SatUnknown if Solve has not
	// returned SatTrue or lit's variable was never constrained.
	Model(lit Literal) SatBool3

	// CNFSize returns the running (clause count, total literal count) —
	// the size oracle SPEC_FULL.md §4.5's calc_cnf_size is checked against.
	CNFSize() (clauses, literals int)
}

// ErrNoModel is returned by helpers that need a model but the last Solve
// call did not return SatTrue.
var ErrNoModel = fmt.Errorf("satiface: no model available")
