// Package diag is the core's out-of-band diagnostic stream (SPEC_FULL.md
// §7): "Unreachable logic" warnings, SAT Unknown results, and propagation
// overflow events are written here without aborting anything.
//
// Grounded on jhkimqd-chaos-utils/pkg/reporting/logger.go: a Logger wraps a
// zerolog.Logger, configured by a small struct instead of a package-global,
// per SPEC_FULL.md's "global-state singletons become explicit configuration
// structs" design note.
package diag
