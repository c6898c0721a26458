// Package fault implements the FaultRep taxonomy of SPEC_FULL.md §4.3: the
// stuck-at / transition-delay / gate-exhaustive fault variants, their
// excitation and FFR-propagation conditions, and the representative-fault
// (equivalence-class) reduction of §4.3.3.
//
// Fault is a tagged struct rather than an interface hierarchy, per the
// source's §9 design note ("dynamic dispatch on fault kind" does not survive
// unchanged): Variant is matched once in OriginNode/ExcitationCondition and
// every other caller works against the concrete struct.
//
// This package depends only on node, gate, valkind and assign — never on
// network — so that network (which owns the fault catalogue) can import
// fault without a cycle.
package fault
