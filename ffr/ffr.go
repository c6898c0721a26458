package ffr

import "github.com/vellum-eda/tpgcore/node"

// NoNode mirrors node.NoNode so callers of this package don't need to import
// node just for the sentinel.
const NoNode = node.NoNode

// FFR is a maximal subtree of Nodes whose only fanout-branching point is its
// root (SPEC_FULL.md §3.2/§4.4).
type FFR struct {
	ID     int
	Root   int   // root NodeRep.ID
	Inputs []int // external drivers feeding this region, in first-encountered order
	Nodes  []int // internal node ids, including Root
}

// MFFC is a region dominated by its Root: every path from any node it
// contains to a PPO passes through Root.
type MFFC struct {
	ID   int
	Root int   // root NodeRep.ID (an FFR root with a null immediate dominator)
	FFRs []int // FFR ids contained in this cone, in ascending FFR id order
}

// Build runs SPEC_FULL.md §4.1 steps 6-7 given the frozen node list (Fanin/
// Fanout/ID already populated) and the immDom array computed separately
// (immDom[n] == NoNode means n has no single converging successor).
//
// It returns: the FFR root id for every node (ffrRootOf), the MFFC root id
// for every node (mffcRootOf), and the materialized FFR/MFFC slices.
//
// Complexity: O(V + E) — two descending linear passes plus one grouping pass.
func Build(nodes []node.NodeRep, immDom []int) (ffrRootOf, mffcRootOf []int, ffrs []FFR, mffcs []MFFC) {
	n := len(nodes)
	ffrRootOf = make([]int, n)
	mffcRootOf = make([]int, n)

	// Step 6a: ffr_root(n) = n if fanout_num(n) != 1, else ffr_root(fanout(n,0)).
	// Nodes are processed highest-id-first so that fanout(n,0) (strictly
	// greater id, since the netlist is topologically ordered) is already
	// resolved — invariant 6.
	for i := n - 1; i >= 0; i-- {
		nd := &nodes[i]
		if nd.FanoutNum() != 1 {
			ffrRootOf[i] = i
		} else {
			ffrRootOf[i] = ffrRootOf[nd.Fanout[0]]
		}
	}

	// Step 7a: mffc_root(n) = climb immDom until it is NoNode. Memoized with
	// the same descending pass; immDom[i] is always > i or NoNode, so the
	// target is already resolved.
	for i := n - 1; i >= 0; i-- {
		if immDom[i] == NoNode {
			mffcRootOf[i] = i
		} else {
			mffcRootOf[i] = mffcRootOf[immDom[i]]
		}
	}

	// Step 6b: group nodes by ffrRootOf into FFR.Nodes, and collect external
	// Inputs (fanins whose own ffrRootOf differs from this FFR's root).
	rootToFFRIdx := make(map[int]int)
	for i := 0; i < n; i++ {
		root := ffrRootOf[i]
		idx, ok := rootToFFRIdx[root]
		if !ok {
			idx = len(ffrs)
			rootToFFRIdx[root] = idx
			ffrs = append(ffrs, FFR{ID: idx, Root: root})
		}
		ffrs[idx].Nodes = append(ffrs[idx].Nodes, i)
	}
	for i := range ffrs {
		f := &ffrs[i]
		seen := make(map[int]bool)
		for _, nid := range f.Nodes {
			for _, fi := range nodes[nid].Fanin {
				if ffrRootOf[fi] != f.Root && !seen[fi] {
					seen[fi] = true
					f.Inputs = append(f.Inputs, fi)
				}
			}
		}
	}

	// Step 7b: group FFR roots by mffcRootOf into MFFC.FFRs (FFR ids).
	rootToMFFCIdx := make(map[int]int)
	for _, f := range ffrs {
		root := mffcRootOf[f.Root]
		idx, ok := rootToMFFCIdx[root]
		if !ok {
			idx = len(mffcs)
			rootToMFFCIdx[root] = idx
			mffcs = append(mffcs, MFFC{ID: idx, Root: root})
		}
		mffcs[idx].FFRs = append(mffcs[idx].FFRs, rootToFFRIdx[f.Root])
	}

	return ffrRootOf, mffcRootOf, ffrs, mffcs
}
