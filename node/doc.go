// Package node defines NodeRep, the decomposed-primitive representation that
// is the atomic unit of a frozen network (SPEC_FULL.md §network), and the
// GateType enum of built-in primitives.
//
// A NodeRep never carries a pointer back into its owning network; call sites
// that need fanin/fanout *Node* values (rather than ids) go through
// network.Network, which owns the backing slice. This mirrors the teacher's
// "handle into an arena" discipline (core.Graph owns Vertex/Edge by value;
// see SPEC_FULL.md's AMBIENT STACK note on reference-counted handles) and the
// source's §9 design note: no back-pointer cycles, ids index a dense arena.
package node
