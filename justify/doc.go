// Package justify implements the Justifier interface consumed by package
// dtpg (SPEC_FULL.md §6): given an interior assignment (a condition that
// must hold somewhere inside the network) it produces an AssignList
// restricted to PPI/DFF-output nodes.
//
// Two implementations are provided. ModelJustifier is the trivial one this
// engine's SAT-based DTPG actually uses day to day: once ConeEnc/FFREnc have
// been solved, every node already has a model value, so "justification" is
// just projecting the good-machine variable map down onto the PPIs.
// BacktraceJustifier is a ternary forward/backward implication engine
// grounded on the FAN reference's Implication.ImplyValues/JustifyLine
// (other_examples/e4b2f37e_fyerfyer-fan-atpg__pkg-algorithm-implication.go.go):
// it justifies a condition by propagating known values forward through
// already-determined gates and backward through controlling-value gates
// until a fixed point, without ever invoking the SAT solver. It exists as an
// independent, solver-free way to justify conditions that are local enough
// not to need full CNF. Nothing else in this module calls it: both dtpg
// paths, the FFR-local one included, use ModelJustifier.
package justify
