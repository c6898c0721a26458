package parser

import (
	"github.com/vellum-eda/tpgcore/gate"
	"github.com/vellum-eda/tpgcore/node"
)

// GateDecl declares one internal net's driver. Either Prim is a proper gate
// kind and Expr is nil (ISCAS-89, and the common one-cover-per-output BLIF
// case), or Expr is a factored AND/OR/XOR tree over Fanin and Prim is
// ignored (a multi-row BLIF .names cover).
type GateDecl struct {
	Output string
	Fanin  []string
	Prim   node.Kind
	Expr   *gate.Expr
}

// LatchDecl is one sequential element: Output is the net a reader downstream
// sees as the DFF's current state (PPI), Input is the net driving its next
// state (PPO). Clock/set/reset nets named alongside a latch declaration are
// discarded (SPEC_FULL.md §6).
type LatchDecl struct {
	Input, Output string
}

// Netlist is the read-only view SPEC_FULL.md §6's "Parser expectations"
// describes: PI names/order, DFF pairs, one primitive/factored-cover
// declaration per internal gate, and named outputs with their driver.
type Netlist struct {
	Inputs  []string
	Outputs []string
	Gates   []GateDecl
	Latches []LatchDecl
}
