package dominance

import (
	"sort"

	"github.com/vellum-eda/tpgcore/network"
)

// PPISupport returns the sorted set of PPI node ids in the transitive fanin
// of root — the per-FFR cached input list XChecker intersects (SPEC_FULL.md
// §4.7).
func PPISupport(nt *network.Network, root int) []int {
	v := network.NewVisited(nt)
	var out []int
	network.WalkTFI(nt, root, v, func(id int) {
		if nt.Node(id).IsPPI() {
			out = append(out, id)
		}
	})
	sort.Ints(out)
	return out
}

// XChecker reports whether two sorted PPI-support lists intersect — the
// non-SAT structural prefilter: two FFRs can only possibly share a test
// pattern if their PPI supports do (SPEC_FULL.md §4.7).
func XChecker(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}
