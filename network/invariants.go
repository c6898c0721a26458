package network

import "fmt"

// CheckInvariants re-validates the structural invariants SPEC_FULL.md §4.1
// lists, beyond what Freeze already enforces by construction. It is meant
// for tests and debug builds, not the hot Freeze path.
func (nt *Network) CheckInvariants() error {
	if err := nt.checkFanoutConsistency(); err != nil {
		return err
	}
	if err := nt.checkDffPairing(); err != nil {
		return err
	}
	if err := nt.checkTopologicalFanin(); err != nil {
		return err
	}
	return nil
}

// checkFanoutConsistency re-derives Fanout from Fanin and compares as sets
// (invariant 2).
func (nt *Network) checkFanoutConsistency() error {
	want := make([][]int, len(nt.nodes))
	for i := range nt.nodes {
		for _, f := range nt.nodes[i].Fanin {
			want[f] = append(want[f], i)
		}
	}
	for i := range nt.nodes {
		if !sameSet(want[i], nt.nodes[i].Fanout) {
			return fmt.Errorf("network: node %d Fanout %v inconsistent with derived %v", i, nt.nodes[i].Fanout, want[i])
		}
	}
	return nil
}

// checkDffPairing verifies every DffInput/DffOutput has a reciprocal
// AltNode (invariant 3).
func (nt *Network) checkDffPairing() error {
	for i := range nt.nodes {
		nd := &nt.nodes[i]
		if !nd.IsDff() {
			continue
		}
		if nd.AltNode == NoNode {
			return fmt.Errorf("network: DFF node %d has no paired AltNode", i)
		}
		if nt.nodes[nd.AltNode].AltNode != i {
			return fmt.Errorf("network: DFF node %d <-> %d pairing is not reciprocal", i, nd.AltNode)
		}
	}
	return nil
}

// checkTopologicalFanin verifies every Fanin id is strictly less than its
// owner's id (the ascending-id topological convention every other pass in
// this package relies on).
func (nt *Network) checkTopologicalFanin() error {
	for i := range nt.nodes {
		for _, f := range nt.nodes[i].Fanin {
			if f >= i {
				return fmt.Errorf("network: node %d has non-topological fanin %d", i, f)
			}
		}
	}
	return nil
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[int]int, len(a))
	for _, x := range a {
		count[x]++
	}
	for _, x := range b {
		count[x]--
	}
	for _, c := range count {
		if c != 0 {
			return false
		}
	}
	return true
}
