// Package gate defines GateRep, the user-visible gate abstraction that sits
// above node.NodeRep. A Gate is either primitive (one NodeRep) or complex (a
// small factored AND/OR/XOR tree of NodeRep values); Gates, not Nodes, carry
// fault identity (SPEC_FULL.md §4.2).
//
// The complex-gate decomposition rule — how a single logical input of a
// factored expression becomes one physical branch point — lives here as a
// pure function (DecomposePlan) so netbuild can apply it while constructing
// nodes, and gateenc/fault can later read BranchInfo off the frozen GateRep
// without recomputing it.
package gate
