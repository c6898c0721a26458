// Package satsolver is a small DPLL-style CNF solver implementing
// satiface.Solver. No third-party SAT library appears anywhere in the
// example corpus (DESIGN.md records this), so this package is a deliberate
// standard-library-only exception: a correctness-first reference solver,
// not a performance one. It favors a clear, restartable recursive search
// over watched literals or clause learning.
package satsolver
