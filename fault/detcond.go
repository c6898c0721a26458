package fault

import (
	"github.com/vellum-eda/tpgcore/assign"
	"github.com/vellum-eda/tpgcore/node"
)

// DetCond is the result of a single-observation detection-condition
// generator: either a complete per-PPO condition set, or an Overflow value
// naming the PPOs it never got to (SPEC_FULL.md §7, test scenario 6).
type DetCond struct {
	// Conditions maps PPO node id -> the assignment list sufficient to
	// detect the fault at that PPO.
	Conditions map[int]*assign.List

	// Overflow is true if the generator's iteration cap was hit before every
	// reachable PPO was covered.
	Overflow bool

	// UncoveredPPOs lists the PPO node ids the caller must fall back to
	// per-output splitting for, valid only when Overflow is true.
	UncoveredPPOs []int
}

// GenerateDetCond enumerates, for every ppo in ppos (in the order given —
// callers typically pass PPOs sorted by ascending TFI size per invariant 4,
// so cheap cones are attempted first), the condition obtained by conjoining
// f's FFR-propagate condition with side-input pinning along each additional
// single-fanout hop from the FFR root toward ppo.
//
// cubeCap bounds the number of ppo entries GenerateDetCond will compute
// before giving up and reporting Overflow — this models the source's
// enumeration-based condition generator, which can blow up combinatorially
// on wide reconvergent fanout (SPEC_FULL.md §7's "Propagation overflow").
// extend(ppo) must return nil if ppo is unreachable from f's origin along a
// single deterministic path (the caller's FFR/MFFC walk decides that); a nil
// result is treated as "no condition for this PPO," not an error.
func GenerateDetCond(f *Fault, base *assign.List, ppos []int, cubeCap int, extend func(ppo int) *assign.List) DetCond {
	dc := DetCond{Conditions: make(map[int]*assign.List)}
	for i, ppo := range ppos {
		if i >= cubeCap {
			dc.Overflow = true
			dc.UncoveredPPOs = append(dc.UncoveredPPOs, ppos[i:]...)
			break
		}
		if extra := extend(ppo); extra != nil {
			dc.Conditions[ppo] = assign.Union(base, extra)
		}
	}
	return dc
}

// DetConditionExtender builds the extend(ppo) callback GenerateDetCond
// needs: starting at ffrRoot, walk forward hop by hop toward ppo, pinning
// side inputs at every node passed through, exactly like
// Fault.FFRPropagateCondition does from the fault's origin to ffrRoot.
// At a branch point (more than one fanout), the walk follows whichever
// single fanout successor's own fanout cone contains ppo; if none do, or
// more than one does (a reconvergent path, not a single deterministic
// one), the hop — and so the whole walk — fails and extend returns nil.
func DetConditionExtender(nodes []node.NodeRep, ffrRoot int) func(ppo int) *assign.List {
	return func(ppo int) *assign.List {
		cur := ffrRoot
		var items []assign.Assign
		for cur != ppo {
			next, ok := nextHopToward(nodes, cur, ppo)
			if !ok {
				return nil
			}
			nn := &nodes[next]
			k := indexOf(nn.Fanin, cur)
			items = append(items, sidePinning(nodes, nn, k, 1)...)
			cur = next
		}
		return assign.NewList(items...)
	}
}

// nextHopToward picks the single fanout successor of cur that lies on a
// path to target.
func nextHopToward(nodes []node.NodeRep, cur, target int) (int, bool) {
	fanout := nodes[cur].Fanout
	if len(fanout) == 0 {
		return node.NoNode, false
	}
	if len(fanout) == 1 {
		return fanout[0], true
	}
	found := node.NoNode
	for _, fo := range fanout {
		if fo == target || reachesNode(nodes, fo, target) {
			if found != node.NoNode {
				return node.NoNode, false
			}
			found = fo
		}
	}
	return found, found != node.NoNode
}

// reachesNode is a plain forward-fanout DFS reachability check used only to
// disambiguate branch points in DetConditionExtender's walk.
func reachesNode(nodes []node.NodeRep, from, target int) bool {
	seen := make(map[int]bool)
	stack := []int{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, nodes[n].Fanout...)
	}
	return false
}
