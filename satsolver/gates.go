package satsolver

import "github.com/vellum-eda/tpgcore/satiface"

// AddAndGate asserts out <-> AND(inputs...): k forward clauses (out true
// forces every input true) plus one k+1-wide backward clause (SPEC_FULL.md
// §4.5's clause-count shape).
func (s *Solver) AddAndGate(out satiface.Literal, inputs ...satiface.Literal) {
	for _, in := range inputs {
		s.AddClause(out.Not(), in)
	}
	backward := make([]satiface.Literal, 0, len(inputs)+1)
	for _, in := range inputs {
		backward = append(backward, in.Not())
	}
	backward = append(backward, out)
	s.AddClause(backward...)
}

// AddOrGate asserts out <-> OR(inputs...), dual to AddAndGate.
func (s *Solver) AddOrGate(out satiface.Literal, inputs ...satiface.Literal) {
	for _, in := range inputs {
		s.AddClause(out, in.Not())
	}
	forward := make([]satiface.Literal, 0, len(inputs)+1)
	forward = append(forward, out.Not())
	forward = append(forward, inputs...)
	s.AddClause(forward...)
}

// AddNandGate asserts out <-> NAND(inputs...) by encoding AND over the
// complemented output.
func (s *Solver) AddNandGate(out satiface.Literal, inputs ...satiface.Literal) {
	s.AddAndGate(out.Not(), inputs...)
}

// AddNorGate asserts out <-> NOR(inputs...) by encoding OR over the
// complemented output.
func (s *Solver) AddNorGate(out satiface.Literal, inputs ...satiface.Literal) {
	s.AddOrGate(out.Not(), inputs...)
}

// AddBuffGate asserts out <-> in (two clauses).
func (s *Solver) AddBuffGate(out, in satiface.Literal) {
	s.AddClause(out.Not(), in)
	s.AddClause(out, in.Not())
}

// AddNotGate asserts out <-> !in (two clauses).
func (s *Solver) AddNotGate(out, in satiface.Literal) {
	s.AddClause(out.Not(), in.Not())
	s.AddClause(out, in)
}

// addXor2 asserts out <-> (a xor b): the standard 4 clauses of width 3
// (SPEC_FULL.md §4.5).
func (s *Solver) addXor2(out, a, b satiface.Literal) {
	s.AddClause(out.Not(), a, b)
	s.AddClause(out.Not(), a.Not(), b.Not())
	s.AddClause(out, a.Not(), b)
	s.AddClause(out, a, b.Not())
}

// AddXorGate asserts out <-> XOR(inputs...) by chaining k-1 two-input XOR
// stages through fresh auxiliary variables (SPEC_FULL.md §4.5).
func (s *Solver) AddXorGate(out satiface.Literal, inputs ...satiface.Literal) {
	switch len(inputs) {
	case 0:
		s.AddClause(out.Not())
		return
	case 1:
		s.AddBuffGate(out, inputs[0])
		return
	}
	acc := inputs[0]
	for i := 1; i < len(inputs)-1; i++ {
		aux := s.NewVariable(false)
		s.addXor2(aux, acc, inputs[i])
		acc = aux
	}
	s.addXor2(out, acc, inputs[len(inputs)-1])
}

// AddXnorGate asserts out <-> XNOR(inputs...) by encoding XOR over the
// complemented output.
func (s *Solver) AddXnorGate(out satiface.Literal, inputs ...satiface.Literal) {
	s.AddXorGate(out.Not(), inputs...)
}
