// Package gateenc emits CNF for individual logic nodes: GateEnc for the
// good-machine function, FaultyGateEnc for a node with one specific fault
// active, and CalcCNFSize as a no-emit size oracle for budget accounting
// (SPEC_FULL.md §4.5). All three are driven by a caller-supplied VarMap so
// the same node can be encoded into different cones (good/faulty/previous
// frame) without the encoder knowing about frames itself.
package gateenc
