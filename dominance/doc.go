// Package dominance implements the SAT-based fault dominance/equivalence
// checkers and the structural XChecker prefilter used to reduce fault lists
// beyond the cheap representative collapse in package fault (SPEC_FULL.md
// §4.7).
package dominance
