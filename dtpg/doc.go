// Package dtpg ties the CNF encoders (gateenc/propagate), a Justifier
// (package justify) and a satiface.Solver together into the test-pattern
// generator SPEC_FULL.md §5/§6 describe: given one fault, either report it
// SAT-proven untestable (SatFalse), undetermined under the solver's decision
// budget (SatUnknown), or produce a detecting tvec.TestVector (SatTrue).
//
// Engine.Generate picks between two propagation encodings per fault:
//
//   - the cheap FFR-local path (propagate.FFREnc), used only when f is not
//     transition-delay (FFREnc is single-frame only) AND the fault's FFR
//     root is also its own MFFC root (propagation reaches a PPO with no
//     reconvergence to disambiguate) AND every external driver the FFR
//     takes as an Input is itself a PPI — so the solved model already sits
//     on true primary inputs with no further justification needed;
//   - the full twin-circuit path (propagate.ConeEnc, plus propagate.BSEnc
//     for transition-delay's launch frame) otherwise.
//
// Both paths finish the same way: solve under a prop-true assumption plus
// the fault's excitation condition, then hand the solved model to a
// justify.ModelJustifier to read off the PPI/DFF-state values as a
// tvec.TestVector.
package dtpg
