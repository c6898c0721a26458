package justify

import (
	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/fsim"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// maxIterations bounds the forward/backward fixed-point loop, mirroring the
// FAN reference's "Limit iterations to prevent infinite loops" guard in
// Implication.ImplyValues.
const maxIterations = 100

// BacktraceJustifier justifies a single-frame (stuck-at) interior condition
// by ternary forward/backward implication over the whole network, with no
// SAT solver involved (SPEC_FULL.md §6, grounded on the FAN reference's
// Implication type).
type BacktraceJustifier struct {
	Nodes []node.NodeRep
}

// Justify runs forward/backward implication to a fixed point starting from
// cond, then projects every PPI's resulting value into the returned
// AssignList. It returns ok=false if cond is self-contradictory or implies
// a conflict anywhere in the network. Only Time==1 assignments in cond are
// honored; callers needing transition-delay two-frame justification should
// use ModelJustifier instead.
func (j *BacktraceJustifier) Justify(cond *assign.List) (*assign.List, bool) {
	s := newState(len(j.Nodes))
	for _, a := range cond.Items() {
		if a.Time != 1 {
			continue
		}
		if _, conflict := s.trySet(a.Node, valkind.FromBool(a.Val)); conflict {
			return nil, false
		}
	}

	for iter := 0; iter < maxIterations; iter++ {
		fChanged, fConflict := forwardImply(j.Nodes, &s)
		if fConflict {
			return nil, false
		}
		bChanged, bConflict := backwardImplyAll(j.Nodes, &s)
		if bConflict {
			return nil, false
		}
		if !fChanged && !bChanged {
			break
		}
	}

	var items []assign.Assign
	for i := range j.Nodes {
		n := &j.Nodes[i]
		if n.IsPPI() {
			if v := s.get(n.ID); !v.IsX() {
				items = append(items, assign.Assign{Node: n.ID, Time: 1, Val: v.Bool()})
			}
		}
	}
	return assign.NewList(items...), true
}

// forwardImply evaluates every logic/PPO node whose function is already
// determined by its (possibly partially assigned) fanin — valkind.And/Or
// are controlling-value absorptive, so a single 0 fanin on an AND already
// determines its output even with other fanin still X.
func forwardImply(nodes []node.NodeRep, s *state) (changed, conflict bool) {
	for i := range nodes {
		n := &nodes[i]
		switch {
		case n.IsPPO():
			if v := s.get(n.Fanin[0]); !v.IsX() {
				ch, cf := s.trySet(n.ID, v)
				changed = changed || ch
				conflict = conflict || cf
			}
		case n.Kind.IsLogic() && n.Kind != node.Const0 && n.Kind != node.Const1:
			ins := make([]valkind.Val3, len(n.Fanin))
			for k, fi := range n.Fanin {
				ins[k] = s.get(fi)
			}
			if v := fsim.EvalKind(n.Kind, ins); !v.IsX() {
				ch, cf := s.trySet(n.ID, v)
				changed = changed || ch
				conflict = conflict || cf
			}
		case n.Kind == node.Const0:
			ch, cf := s.trySet(n.ID, valkind.V0)
			changed = changed || ch
			conflict = conflict || cf
		case n.Kind == node.Const1:
			ch, cf := s.trySet(n.ID, valkind.V1)
			changed = changed || ch
			conflict = conflict || cf
		}
	}
	return changed, conflict
}

// backwardImplyAll applies, for every logic node whose own value is already
// known, the unique-determination rule for its inverse function.
func backwardImplyAll(nodes []node.NodeRep, s *state) (changed, conflict bool) {
	for i := range nodes {
		n := &nodes[i]
		if !n.Kind.IsGate() {
			continue
		}
		ch, cf := backwardImply(n, s)
		changed = changed || ch
		conflict = conflict || cf
	}
	return changed, conflict
}

// backwardImply justifies n's fanin from n's own (already assigned) value.
// For controlling-value gates (AND/NAND/OR/NOR): a non-controlling output
// forces every fanin to the non-controlling value; a controlling output
// forces the one remaining undetermined fanin to the controlling value only
// once every other fanin is already pinned at non-controlling (otherwise
// which input caused it is still ambiguous). Buff/Not invert directly. XOR/
// XNOR solve the single remaining undetermined fanin via the running parity
// of the determined ones.
func backwardImply(n *node.NodeRep, s *state) (changed, conflict bool) {
	out := s.get(n.ID)
	if out.IsX() {
		return false, false
	}
	switch n.Kind {
	case node.Buff:
		return s.trySet(n.Fanin[0], out)
	case node.Not:
		return s.trySet(n.Fanin[0], valkind.Not(out))
	case node.And, node.Nand, node.Or, node.Nor:
		return backwardImplyControlling(n, out, s)
	case node.Xor, node.Xnor:
		return backwardImplyParity(n, out, s)
	default:
		return false, false
	}
}

func backwardImplyControlling(n *node.NodeRep, out valkind.Val3, s *state) (changed, conflict bool) {
	cval, nval, coval, _ := n.ControlValues()

	if out != coval {
		// Non-controlling output: every fanin must be at the non-controlling
		// value.
		for _, fi := range n.Fanin {
			ch, cf := s.trySet(fi, nval)
			changed = changed || ch
			conflict = conflict || cf
		}
		return changed, conflict
	}

	// Controlling output: determined only if exactly one fanin is still
	// unknown and every other fanin already sits at nval.
	unknown := -1
	for i, fi := range n.Fanin {
		v := s.get(fi)
		if v.IsX() {
			if unknown != -1 {
				return false, false
			}
			unknown = i
			continue
		}
		if v != nval {
			// Already explained by a different fanin; nothing more to imply.
			return false, false
		}
	}
	if unknown == -1 {
		return false, false
	}
	return s.trySet(n.Fanin[unknown], cval)
}

func backwardImplyParity(n *node.NodeRep, out valkind.Val3, s *state) (changed, conflict bool) {
	unknown := -1
	acc := valkind.V0
	for i, fi := range n.Fanin {
		v := s.get(fi)
		if v.IsX() {
			if unknown != -1 {
				return false, false
			}
			unknown = i
			continue
		}
		acc = valkind.Xor(acc, v)
	}
	if unknown == -1 {
		return false, false
	}
	want := out
	if n.Kind == node.Xnor {
		want = valkind.Not(out)
	}
	return s.trySet(n.Fanin[unknown], valkind.Xor(acc, want))
}
