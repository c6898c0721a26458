// Package fsim implements the reference three-valued gate-level fault
// simulator used as an oracle against the SAT-based DTPG path and for test
// grading (SPEC_FULL.md §4.8/§5).
//
// Spsfp grades one pattern against one fault, Sppfp grades one pattern
// against every fault in a network, and Ppsfp grades a list of patterns
// against every fault by packing up to 64 patterns (a fixed width; it does
// not read config.FsimConfig.PackedBitlen) into a pair of bit-parallel
// planes per node (PlaneV3) so And/Or/Xor/Not run as
// plain word-wide bitwise operations instead of one scalar evaluation per
// pattern. SppfpPool/PpsfpPool shard the fault list across a
// github.com/JekaMas/workerpool pool, each worker owning its own simulator
// state so no synchronization is needed on the per-node value arrays.
package fsim
