// Package netbuild is the mutable Builder that accumulates nodes and gates
// in topological order and hands them to network.Freeze to produce an
// immutable network.Network (SPEC_FULL.md §4.1 lifecycle / §9 design note:
// "split into two types: a mutable Builder and an immutable frozen Network").
//
// Builder enforces the no-cycles invariant structurally: every AddXxx method
// that records a fanin rejects a node id that has not been created yet
// (ErrForwardReference), so a Builder can never represent a cyclic netlist —
// there is no separate cycle-detection pass later.
package netbuild
