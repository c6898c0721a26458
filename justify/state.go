package justify

import "github.com/vellum-eda/tpgcore/valkind"

// state is the ternary assignment array BacktraceJustifier mutates in
// place while implying. One slot per node id, X meaning unassigned.
type state struct {
	vals []valkind.Val3
}

func newState(n int) state {
	return state{vals: make([]valkind.Val3, n)}
}

func (s *state) get(id int) valkind.Val3 { return s.vals[id] }

// trySet assigns v to id. changed reports whether this call actually moved
// id from X to a defined value; conflict reports an attempt to overwrite an
// existing, different, defined value — JustifyLine's "already has
// conflicting value" case in the FAN reference.
func (s *state) trySet(id int, v valkind.Val3) (changed, conflict bool) {
	if v.IsX() {
		return false, false
	}
	cur := s.vals[id]
	if cur.IsX() {
		s.vals[id] = v
		return true, false
	}
	if cur != v {
		return false, true
	}
	return false, false
}
