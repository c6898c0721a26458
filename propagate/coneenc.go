package propagate

import (
	"github.com/vellum-eda/tpgcore/gateenc"
	"github.com/vellum-eda/tpgcore/node"
	"github.com/vellum-eda/tpgcore/satiface"
)

// ConeVarMaps holds the three SAT variable maps ConeEnc allocates: the
// good-machine value (G), the faulty-machine value (F, only over the TFO),
// and the difference flag (D, only over the TFO) — SPEC_FULL.md §4.6.1
// step 2.
type ConeVarMaps struct {
	G gateenc.VarMap
	F gateenc.VarMap
	D gateenc.VarMap
}

// combined looks up id in f first, falling back to g — the encoding of
// "outside the TFO, f ≡ g" (SPEC_FULL.md §4.6.1 step 2).
func combined(g, f gateenc.VarMap, id int) satiface.Literal {
	if lit, ok := f[id]; ok {
		return lit
	}
	return g[id]
}

// ConeEnc runs SPEC_FULL.md §4.6.1 steps 2-6 for a single fault whose
// activation site is the cone's root (site describes how the root's
// function is overridden). It returns the three variable maps and the
// top-level observation literal prop, with d(root) already pinned true.
func ConeEnc(solver satiface.Solver, nodes []node.NodeRep, cone Cone, site gateenc.FaultSite) (ConeVarMaps, satiface.Literal, error) {
	vm := ConeVarMaps{G: gateenc.VarMap{}, F: gateenc.VarMap{}, D: gateenc.VarMap{}}

	for _, id := range cone.TFISupport {
		vm.G[id] = solver.NewVariable(true)
	}
	for _, id := range cone.TFO {
		if _, ok := vm.G[id]; !ok {
			vm.G[id] = solver.NewVariable(true)
		}
	}

	// Step 3: good-machine CNF over the whole support cone. PPO/DffInput
	// nodes carry no function of their own (GateEnc only covers logic
	// nodes) but are wired to their single fanin by a plain buffer
	// equivalence, matching their "just a label on a value" role.
	for _, id := range cone.TFISupport {
		n := &nodes[id]
		switch {
		case n.Kind.IsLogic():
			if err := gateenc.GateEnc(solver, nodes, id, vm.G); err != nil {
				return vm, 0, err
			}
		case n.IsPPO():
			solver.AddBuffGate(vm.G[id], vm.G[n.Fanin[0]])
		}
	}

	// Step 2/4: faulty-machine literals and CNF over TFO \ {root} use
	// combined(f,g) for their fanin, so upstream-of-TFO values are shared
	// with the good machine.
	for _, id := range cone.TFO {
		vm.F[id] = solver.NewVariable(false)
	}
	for _, id := range cone.TFO {
		n := &nodes[id]
		fanin := make([]satiface.Literal, len(n.Fanin))
		for i, fi := range n.Fanin {
			fanin[i] = combined(vm.G, vm.F, fi)
		}
		localF := gateenc.VarMap{id: vm.F[id]}
		for i, fi := range n.Fanin {
			localF[fi] = fanin[i]
		}
		if id == cone.Root {
			if err := gateenc.FaultyGateEnc(solver, nodes, id, localF, site); err != nil {
				return vm, 0, err
			}
			continue
		}
		switch {
		case n.Kind.IsLogic():
			if err := gateenc.GateEnc(solver, nodes, id, localF); err != nil {
				return vm, 0, err
			}
		case n.IsPPO():
			solver.AddBuffGate(localF[id], localF[n.Fanin[0]])
		}
	}

	// Step 5: D-chain clauses.
	tfoSet := make(map[int]bool, len(cone.TFO))
	for _, id := range cone.TFO {
		tfoSet[id] = true
	}
	for _, id := range cone.TFO {
		vm.D[id] = solver.NewVariable(false)
	}
	for _, id := range cone.TFO {
		n := &nodes[id]
		g, f, d := vm.G[id], vm.F[id], vm.D[id]

		solver.AddClause(d.Not(), g, f)
		solver.AddClause(d.Not(), g.Not(), f.Not())

		if n.IsPPO() {
			solver.AddClause(d, g.Not(), f)
			solver.AddClause(d, g, f.Not())
			continue
		}
		fanoutIDs := fanoutWithin(n, tfoSet)
		clause := make([]satiface.Literal, 0, len(fanoutIDs)+1)
		clause = append(clause, d.Not())
		for _, fo := range fanoutIDs {
			clause = append(clause, vm.D[fo])
		}
		solver.AddClause(clause...)

		if n.ImmDom != node.NoNode {
			if domD, ok := vm.D[n.ImmDom]; ok {
				solver.AddClause(d.Not(), domD)
			}
		}
	}

	// Step 6: top-level observation OR and pin d(root).
	ppoD := make([]satiface.Literal, len(cone.PPOs))
	for i, ppo := range cone.PPOs {
		ppoD[i] = vm.D[ppo]
	}
	prop := solver.NewVariable(true)
	if len(ppoD) == 0 {
		solver.AddClause(prop.Not())
	} else {
		solver.AddOrGate(prop, ppoD...)
	}
	solver.AddClause(vm.D[cone.Root])

	return vm, prop, nil
}
