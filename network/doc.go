// Package network owns the immutable, frozen netlist: the Network type and
// the Freeze post-processing pipeline that turns a netbuild.Builder's raw
// accumulation into a fully annotated graph (fanout lists, dominators,
// FFR/MFFC roots, the fault catalogue and its representative reduction).
//
// Freeze runs once per build and never mutates its result afterward
// (SPEC_FULL.md §4.1's Builder/Network split, §9 design note). Traversal
// helpers (TFI/TFO) take a Network and a visited scratch buffer supplied by
// the caller so concurrent readers never share mutable state.
package network
