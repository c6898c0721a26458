// Package valkind defines the value domains shared across the test-pattern
// generation core: three-valued simulation logic, two-valued fault values,
// and the fault-model tag.
//
// These are the leaves of the dependency graph (see SPEC_FULL.md's package
// table) — every other package imports valkind, and valkind imports nothing
// from this module.
package valkind
