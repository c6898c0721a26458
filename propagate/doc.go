// Package propagate implements the three propagation-condition CNF
// encoders: ConeEnc (the twin-circuit / D-chain encoder over a fault's full
// TFO/TFI cone), FFREnc (the cheap FFR-local propagation encoder), and
// BSEnc (the previous-frame encoder transition-delay mode needs for its
// launch cycle) — SPEC_FULL.md §4.6.
package propagate
