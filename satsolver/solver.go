package satsolver

import "github.com/vellum-eda/tpgcore/satiface"

var _ satiface.Solver = (*Solver)(nil)

// Solver is a single-threaded, non-incremental-search DPLL solver. It is not
// safe for concurrent use; callers that shard fault lists across goroutines
// construct one Solver per worker (SPEC_FULL.md §5).
type Solver struct {
	clauses      [][]satiface.Literal
	numVars      int32
	nliterals    int
	maxDecisions int // 0 = unlimited

	model []int8 // 1-indexed by variable; 0=unknown,1=true,-1=false; valid only right after a SatTrue Solve
}

// New returns an empty Solver. maxDecisions <= 0 means unlimited search
// (SPEC_FULL.md §5's "no internal deadline" default); a positive value
// makes Solve return SatUnknown once that many branch decisions are taken.
func New(maxDecisions int) *Solver {
	return &Solver{maxDecisions: maxDecisions}
}

// NewVariable implements satiface.Solver. decision is accepted for
// interface compatibility but this solver's first-unassigned-variable
// branching does not distinguish decision from auxiliary variables.
func (s *Solver) NewVariable(decision bool) satiface.Literal {
	s.numVars++
	return satiface.Literal(s.numVars)
}

// AddClause implements satiface.Solver.
func (s *Solver) AddClause(lits ...satiface.Literal) {
	clause := append([]satiface.Literal(nil), lits...)
	s.clauses = append(s.clauses, clause)
	s.nliterals += len(clause)
}

// CNFSize implements satiface.Solver.
func (s *Solver) CNFSize() (clauses, literals int) {
	return len(s.clauses), s.nliterals
}

// Solve implements satiface.Solver via plain recursive DPLL with unit
// propagation; assumptions are injected as unit clauses for this call only.
func (s *Solver) Solve(assumptions ...satiface.Literal) satiface.SatBool3 {
	trail := make([]int8, s.numVars+1)
	for _, a := range assumptions {
		v := a.Var()
		want := int8(1)
		if !a.IsPositive() {
			want = -1
		}
		if trail[v] != 0 && trail[v] != want {
			s.model = nil
			return satiface.SatFalse
		}
		trail[v] = want
	}

	decisions := 0
	sat, ok := s.search(trail, &decisions)
	if !ok {
		s.model = nil
		return satiface.SatUnknown
	}
	if !sat {
		s.model = nil
		return satiface.SatFalse
	}
	s.model = trail
	return satiface.SatTrue
}

// Model implements satiface.Solver.
func (s *Solver) Model(lit satiface.Literal) satiface.SatBool3 {
	if s.model == nil {
		return satiface.SatUnknown
	}
	v := lit.Var()
	if int(v) >= len(s.model) {
		return satiface.SatUnknown
	}
	val := s.model[v]
	if val == 0 {
		return satiface.SatUnknown
	}
	positive := val == 1
	if !lit.IsPositive() {
		positive = !positive
	}
	return satiface.FromBool(positive)
}

// search returns (satisfiable, ok). ok is false only when the decision
// budget was exhausted (SatUnknown); a definite UNSAT on this branch is
// (false, true).
func (s *Solver) search(trail []int8, decisions *int) (bool, bool) {
	for {
		changed := false
		for _, cl := range s.clauses {
			status, unit, unassignedCount := evalClause(cl, trail)
			if status == clauseConflict {
				return false, true
			}
			if status == clauseUndetermined && unassignedCount == 1 {
				setLit(trail, unit)
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	allSat := true
	for _, cl := range s.clauses {
		status, _, _ := evalClause(cl, trail)
		switch status {
		case clauseConflict:
			return false, true
		case clauseUndetermined:
			allSat = false
		}
	}
	if allSat {
		return true, true
	}

	v := firstUnassigned(trail)
	if v == 0 {
		// every variable assigned but some clause still undetermined can't
		// happen: evalClause only reports undetermined when an unassigned
		// literal remains.
		return true, true
	}

	if s.maxDecisions > 0 && *decisions >= s.maxDecisions {
		return false, false
	}
	*decisions++

	tryTrue := append([]int8(nil), trail...)
	tryTrue[v] = 1
	if sat, ok := s.search(tryTrue, decisions); !ok {
		return false, false
	} else if sat {
		copy(trail, tryTrue)
		return true, true
	}

	tryFalse := append([]int8(nil), trail...)
	tryFalse[v] = -1
	sat, ok := s.search(tryFalse, decisions)
	if !ok {
		return false, false
	}
	if sat {
		copy(trail, tryFalse)
	}
	return sat, true
}

type clauseStatus int8

const (
	clauseUndetermined clauseStatus = iota
	clauseSatisfied
	clauseConflict
)

// evalClause reports cl's status under trail. When undetermined with
// exactly one unassigned literal, that literal (unit) is returned so the
// caller can propagate it.
func evalClause(cl []satiface.Literal, trail []int8) (status clauseStatus, unit satiface.Literal, unassignedCount int) {
	for _, lit := range cl {
		v := trail[lit.Var()]
		switch {
		case v == 0:
			unassignedCount++
			unit = lit
		case (v == 1) == lit.IsPositive():
			return clauseSatisfied, 0, 0
		}
	}
	if unassignedCount == 0 {
		return clauseConflict, 0, 0
	}
	return clauseUndetermined, unit, unassignedCount
}

func setLit(trail []int8, lit satiface.Literal) {
	v := lit.Var()
	if lit.IsPositive() {
		trail[v] = 1
	} else {
		trail[v] = -1
	}
}

func firstUnassigned(trail []int8) int32 {
	for v := int32(1); v < int32(len(trail)); v++ {
		if trail[v] == 0 {
			return v
		}
	}
	return 0
}
