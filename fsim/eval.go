package fsim

import (
	"fmt"

	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/valkind"
)

// EvalKind computes the three-valued output of a logic node kind over its
// fanin values. It is the scalar twin of gateenc's CNF emission: the same
// truth table, evaluated directly instead of encoded as clauses.
func EvalKind(kind node.Kind, ins []valkind.Val3) valkind.Val3 {
	switch kind {
	case node.Const0:
		return valkind.V0
	case node.Const1:
		return valkind.V1
	case node.Buff:
		return ins[0]
	case node.Not:
		return valkind.Not(ins[0])
	case node.And:
		return foldAnd(ins)
	case node.Nand:
		return valkind.Not(foldAnd(ins))
	case node.Or:
		return foldOr(ins)
	case node.Nor:
		return valkind.Not(foldOr(ins))
	case node.Xor:
		return foldXor(ins)
	case node.Xnor:
		return valkind.Not(foldXor(ins))
	default:
		panic(fmt.Sprintf("fsim: EvalKind called on non-logic kind %s", kind))
	}
}

func foldAnd(ins []valkind.Val3) valkind.Val3 {
	r := valkind.V1
	for _, v := range ins {
		r = valkind.And(r, v)
	}
	return r
}

func foldOr(ins []valkind.Val3) valkind.Val3 {
	r := valkind.V0
	for _, v := range ins {
		r = valkind.Or(r, v)
	}
	return r
}

func foldXor(ins []valkind.Val3) valkind.Val3 {
	r := valkind.V0
	for _, v := range ins {
		r = valkind.Xor(r, v)
	}
	return r
}
