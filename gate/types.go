package gate

import "github.com/vellum-eda/tpgcore/node"

// NoFault is the sentinel fault id meaning "no fault of this kind exists
// here": the catalogue's fault type does not generate it for this gate.
// Equivalence collapsing never removes a fault; it only sets Fault.Rep.
const NoFault = -1

// BranchInfo pins one of a Gate's logical inputs to the physical Node/input
// position that carries its branch-fault identity (SPEC_FULL.md §3.2).
type BranchInfo struct {
	Node int // the NodeRep.ID where this input physically lands
	Ipos int // the fanin position of Node.Fanin that is this branch
}

// ExprKind tags a node in a factored Boolean expression tree.
type ExprKind int8

const (
	ExprLit ExprKind = iota
	ExprAnd
	ExprOr
	ExprXor
)

// Expr is a factored AND/OR/XOR expression over a gate's logical inputs,
// used for complex (non-primitive) gates (SPEC_FULL.md §1's "factored
// AND/OR/XOR tree derived from an expression").
type Expr struct {
	Kind ExprKind
	Lit  int  // logical input index, valid when Kind == ExprLit
	Neg  bool // literal polarity, valid when Kind == ExprLit
	Args []*Expr
}

// Lit builds a positive or negative literal expression for logical input i.
func Lit(i int, neg bool) *Expr { return &Expr{Kind: ExprLit, Lit: i, Neg: neg} }

// AndExpr builds an AND of the given sub-expressions.
func AndExpr(args ...*Expr) *Expr { return &Expr{Kind: ExprAnd, Args: args} }

// OrExpr builds an OR of the given sub-expressions.
func OrExpr(args ...*Expr) *Expr { return &Expr{Kind: ExprOr, Args: args} }

// XorExpr builds an XOR of the given sub-expressions.
func XorExpr(args ...*Expr) *Expr { return &Expr{Kind: ExprXor, Args: args} }

// CountLiteralPolarities walks expr and, for each logical input index,
// counts how many positive (p) and negative (n) literal occurrences it has.
// This feeds DecomposePlan, which needs exactly these two counts per input
// (SPEC_FULL.md §4.2's decomposition rule).
func CountLiteralPolarities(expr *Expr, numInputs int) (pos, neg []int) {
	pos = make([]int, numInputs)
	neg = make([]int, numInputs)
	var walk func(e *Expr)
	walk = func(e *Expr) {
		if e == nil {
			return
		}
		if e.Kind == ExprLit {
			if e.Neg {
				neg[e.Lit]++
			} else {
				pos[e.Lit]++
			}
			return
		}
		for _, a := range e.Args {
			walk(a)
		}
	}
	walk(expr)
	return pos, neg
}

// DecompKind tags how one original logical input is wired into a complex
// gate's decomposed node tree.
type DecompKind int8

const (
	// DecompDirect: p==1, n==0 — wire the external driver straight into the
	// tree; the branch point is wherever the literal ends up in the tree.
	DecompDirect DecompKind = iota
	// DecompBuffer: p>=2, n==0 — insert an explicit buffer; its input is the
	// branch point.
	DecompBuffer
	// DecompInverter: n>0, p==0 — insert an inverter; its input is the branch
	// point.
	DecompInverter
	// DecompInverterAndBuffer: n>0 and p>0 — insert an inverter for the
	// negative-polarity uses and a buffer for the positive-polarity uses, so
	// there is still exactly one branch point (the buffer's input, which the
	// inverter's input is wired from).
	DecompInverterAndBuffer
)

// DecompPlan is the result of DecomposePlan for one logical input.
type DecompPlan struct {
	Kind DecompKind
	// NeedsInverter/NeedsBuffer mirror Kind for callers that prefer booleans.
	NeedsInverter bool
	NeedsBuffer   bool
}

// DecomposePlan applies SPEC_FULL.md §4.2's complex-gate decomposition rule
// given the positive (p) and negative (n) literal occurrence counts for one
// original logical input.
func DecomposePlan(p, n int) DecompPlan {
	switch {
	case n == 0 && p <= 1:
		return DecompPlan{Kind: DecompDirect}
	case n == 0 && p >= 2:
		return DecompPlan{Kind: DecompBuffer, NeedsBuffer: true}
	case n > 0 && p == 0:
		return DecompPlan{Kind: DecompInverter, NeedsInverter: true}
	default: // n > 0 && p > 0
		return DecompPlan{Kind: DecompInverterAndBuffer, NeedsInverter: true, NeedsBuffer: true}
	}
}

// GateRep is a user-visible gate: either primitive (Output is itself the one
// decomposed NodeRep) or complex (Output is the root of a small tree of
// NodeRep values realizing Expr). GateRep is the carrier of fault identity
// (SPEC_FULL.md §3.2); the *Fault* maps below store fault ids, not Fault
// values, to keep this package acyclic with respect to package fault.
type GateRep struct {
	ID     int
	Output int // NodeRep.ID of this gate's output
	Inputs []BranchInfo

	IsPrimitive bool
	PrimType    node.Kind // valid iff IsPrimitive
	Expr        *Expr     // valid iff !IsPrimitive

	// StemFault[fval] is the stuck-at fault id at this gate's stem for fval
	// in {0,1}, or NoFault if the catalogue did not generate a stuck-at
	// stem fault for this gate.
	StemFault [2]int

	// BranchFault[ipos][fval] is the stuck-at branch fault id.
	BranchFault [][2]int

	// StemTDFault[fval] / BranchTDFault are the transition-delay analogues,
	// fval 0 meaning a 0->1 rise and fval 1 meaning a 1->0 fall (matching
	// valkind.Fval2's "post-transition value" reading).
	StemTDFault   [2]int
	BranchTDFault [][2]int

	// ExFault maps a packed input-bit-vector (bit i = ivals[i]) to its
	// gate-exhaustive fault id, populated only under FaultType ==
	// GateExhaustive.
	ExFault map[uint64]int
}

// NumInputs returns the gate's logical arity.
func (g *GateRep) NumInputs() int { return len(g.Inputs) }

// BranchPos returns the (node, ipos) branch point for logical input i.
func (g *GateRep) BranchPos(i int) BranchInfo { return g.Inputs[i] }

// StemFaultID returns the fault id of the stem stuck-at fault with the given
// polarity, or NoFault.
func (g *GateRep) StemFaultID(fval int) int { return g.StemFault[fval] }

// BranchFaultID returns the fault id of the branch stuck-at fault at logical
// input ipos with the given polarity, or NoFault.
func (g *GateRep) BranchFaultID(ipos, fval int) int { return g.BranchFault[ipos][fval] }

// ExFaultID returns the fault id of the gate-exhaustive fault for the given
// packed input vector, or NoFault if not present.
func (g *GateRep) ExFaultID(bits uint64) int {
	if id, ok := g.ExFault[bits]; ok {
		return id
	}
	return NoFault
}
