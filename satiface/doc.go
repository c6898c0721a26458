// Package satiface declares the SAT solver boundary the CNF encoders and
// DTPG engine are written against (SPEC_FULL.md §6 "SAT interface
// (consumed)"). It is deliberately a thin interface package with no backing
// implementation, so gateenc/propagate/dtpg compile and test against a stub
// or the satsolver package interchangeably.
package satiface
