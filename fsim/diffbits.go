package fsim

import (
	"sort"

	"github.com/vellum-eda/tpgcore/valkind"
)

// DiffBits is the set of PPO node ids at which the good and faulty machines
// disagree (SPEC_FULL.md §4.8). A nil/empty DiffBits means the fault was not
// detected by the pattern that produced it.
type DiffBits []int

// sort normalizes d in place so two DiffBits values are comparable by
// reflect.DeepEqual/slices.Equal after construction (SPEC_FULL.md §4.8).
func (d DiffBits) sort() DiffBits {
	sort.Ints(d)
	return d
}

// Equal reports whether d and other contain the same PPO ids, ignoring
// input order.
func (d DiffBits) Equal(other DiffBits) bool {
	a, b := append(DiffBits(nil), d...).sort(), append(DiffBits(nil), other...).sort()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// diffOf compares good and faulty machine values at every PPO in ppoList and
// returns the sorted set of PPOs where they disagree. A PPO is reported
// only when both sides are fully defined (non-X) and differ; an X on either
// side is treated as "not yet observed a difference" rather than a detection.
func diffOf(ppoList []int, good, faulty []valkind.Val3) DiffBits {
	var out DiffBits
	for _, ppo := range ppoList {
		g, fv := good[ppo], faulty[ppo]
		if g.IsX() || fv.IsX() {
			continue
		}
		if g != fv {
			out = append(out, ppo)
		}
	}
	return out.sort()
}
