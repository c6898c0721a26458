package fsim

import (
	"sync"

	"github.com/JekaMas/workerpool"
	"github.com/vellum-eda/tpgcore/fault"
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/tvec"
)

// shardFaults splits faults into n contiguous shards, balancing remainder
// across the first shards so no worker gets more than one extra fault.
func shardFaults(faults []fault.Fault, n int) [][]fault.Fault {
	if n < 1 {
		n = 1
	}
	if n > len(faults) {
		n = len(faults)
	}
	if n <= 1 {
		return [][]fault.Fault{faults}
	}
	shards := make([][]fault.Fault, n)
	base, rem := len(faults)/n, len(faults)%n
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		shards[i] = faults[start : start+size]
		start += size
	}
	return shards
}

// SppfpPool is Sppfp sharded across workers worker goroutines via
// JekaMas/workerpool: each worker simulates the good machine and its own
// fault shard independently, so results never need merging beyond map
// assembly (SPEC_FULL.md §5's "optional thread-pool mode").
func SppfpPool(nodes []node.NodeRep, gates []gate.GateRep, ppiList, ppoList []int, idx tvec.PPIIndex, tv *tvec.TestVector, faults []fault.Fault, workers int) map[int]DiffBits {
	shards := shardFaults(faults, workers)
	out := make(map[int]DiffBits, len(faults))
	var mu sync.Mutex
	var wg sync.WaitGroup

	wp := workerpool.New(len(shards))
	for _, shard := range shards {
		shard := shard
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			partial := Sppfp(nodes, gates, ppiList, ppoList, idx, tv, shard)
			mu.Lock()
			for id, db := range partial {
				out[id] = db
			}
			mu.Unlock()
		})
	}
	wg.Wait()
	wp.StopWait()
	return out
}

// PpsfpPool is Ppsfp sharded the same way as SppfpPool.
func PpsfpPool(nodes []node.NodeRep, gates []gate.GateRep, ppiList, ppoList []int, idx tvec.PPIIndex, patterns []tvec.TestVector, faults []fault.Fault, workers int) map[int][]DiffBits {
	shards := shardFaults(faults, workers)
	out := make(map[int][]DiffBits, len(faults))
	var mu sync.Mutex
	var wg sync.WaitGroup

	wp := workerpool.New(len(shards))
	for _, shard := range shards {
		shard := shard
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			partial := Ppsfp(nodes, gates, ppiList, ppoList, idx, patterns, shard)
			mu.Lock()
			for id, db := range partial {
				out[id] = db
			}
			mu.Unlock()
		})
	}
	wg.Wait()
	wp.StopWait()
	return out
}
