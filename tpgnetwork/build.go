package tpgnetwork

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/diag"
	"github.com/vellum-eda/tpgcore/netbuild"
	"github.com/vellum-eda/tpgcore/network"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/parser"
	"github.com/vellum-eda/tpgcore/valkind"
)

// buildNetwork realizes a parser.Netlist through netbuild.Builder, freezing
// the result into a network.Network. DFF outputs are declared before any
// gate is processed so a latch's data-in net may reference nets the netlist
// only declares later (the bench-format feedback convention); every other
// fanin must already be declared, matching parser's own forward-declaration
// requirement.
func buildNetwork(nl *parser.Netlist, faultType valkind.FaultType, logger *diag.Logger) (*network.Network, error) {
	bld := netbuild.NewBuilder()
	ids := make(map[string]int, len(nl.Inputs)+len(nl.Gates)+len(nl.Latches))
	dffOutput := make(map[string]int, len(nl.Latches))

	for _, in := range nl.Inputs {
		if _, dup := ids[in]; dup {
			return nil, fmt.Errorf("tpgnetwork: input net %q declared more than once", in)
		}
		ids[in] = bld.AddPrimaryInput()
	}
	for _, lt := range nl.Latches {
		if _, dup := ids[lt.Output]; dup {
			return nil, fmt.Errorf("tpgnetwork: net %q declared more than once", lt.Output)
		}
		id := bld.AddDffOutput()
		ids[lt.Output] = id
		dffOutput[lt.Output] = id
	}

	for _, g := range nl.Gates {
		fanin := make([]int, len(g.Fanin))
		for i, name := range g.Fanin {
			id, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("tpgnetwork: gate driving %q references undeclared net %q", g.Output, name)
			}
			fanin[i] = id
		}
		var outID int
		var err error
		if g.Expr != nil {
			outID, _, err = bld.AddComplexGate(g.Expr, fanin)
		} else if g.Prim == node.Const0 {
			outID = bld.AddConst0()
		} else if g.Prim == node.Const1 {
			outID = bld.AddConst1()
		} else {
			outID, _, err = bld.AddPrimitiveGate(g.Prim, fanin)
		}
		if err != nil {
			return nil, fmt.Errorf("tpgnetwork: gate driving %q: %w", g.Output, err)
		}
		if _, dup := ids[g.Output]; dup {
			return nil, fmt.Errorf("tpgnetwork: net %q declared more than once", g.Output)
		}
		ids[g.Output] = outID
	}

	for _, out := range nl.Outputs {
		id, ok := ids[out]
		if !ok {
			return nil, fmt.Errorf("tpgnetwork: output %q references undeclared net", out)
		}
		if _, err := bld.AddPrimaryOutput(id); err != nil {
			return nil, fmt.Errorf("tpgnetwork: output %q: %w", out, err)
		}
	}
	for _, lt := range nl.Latches {
		driverID, ok := ids[lt.Input]
		if !ok {
			return nil, fmt.Errorf("tpgnetwork: latch %q references undeclared data-in net %q", lt.Output, lt.Input)
		}
		if _, err := bld.AddDffInput(driverID, dffOutput[lt.Output]); err != nil {
			return nil, fmt.Errorf("tpgnetwork: latch %q: %w", lt.Output, err)
		}
	}

	return bld.Finish(faultType, logger)
}
