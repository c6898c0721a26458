package justify

import "github.com/vellum-eda/tpgcore/assign"

// Justifier is the consumed interface SPEC_FULL.md §6 describes: given an
// interior condition (an AssignList over any node, any time frame), produce
// the AssignList restricted to PPI/DFF-output nodes that realizes it, or
// report that no such assignment exists.
type Justifier interface {
	Justify(cond *assign.List) (*assign.List, bool)
}
