// Package parser reads the two text netlist formats SPEC_FULL.md §6 names
// (BLIF, ISCAS-89 "bench") into a format-agnostic Netlist: primary-input
// names in declaration order, DFF (input-net, output-net) pairs, one
// primitive-or-factored-cover gate declaration per internal net, and the
// output names with their driving net. It performs no circuit construction
// of its own — package tpgnetwork turns a Netlist into a frozen
// network.Network.
//
// Both readers require every net to be declared before it is used as a
// fanin (a single forward pass, no two-pass net-name resolution); this is
// the "minimal" reader SPEC_FULL.md §6 calls for, not a general EDA-format
// implementation. Clock and reset nets are accepted as ordinary primary
// inputs and otherwise ignored, matching §6's "clock/reset networks may be
// ignored".
package parser
