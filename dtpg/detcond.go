package dtpg

import "github.com/vellum-eda/tpgcore/fault"

// GenerateDetCond runs the structural, non-SAT per-PPO detection-condition
// enumerator (SPEC_FULL.md §7, test scenario 6) against every PPO in
// ascending-TFI-size order, capped at Dtpg.CubeCap entries before reporting
// fault.DetCond.Overflow. Unlike Generate, this never invokes the solver,
// and Generate never calls it; tpgnetwork.GenDetCond is its caller. It
// overflows only when more PPOs yield a condition than CubeCap allows; a
// PPO reached through reconvergent fanout yields no condition at all.
func (e *Engine) GenerateDetCond(f *fault.Fault) fault.DetCond {
	origin := f.OriginNode(e.gates)
	ffrRoot := e.Nt.FFRRootOf(origin)
	base := f.FFRPropagateCondition(e.nodes, e.gates)
	extend := fault.DetConditionExtender(e.nodes, ffrRoot)
	return fault.GenerateDetCond(f, base, e.Nt.PPOByTFIRank(), e.Dtpg.CubeCap, extend)
}
