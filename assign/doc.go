// Package assign implements Assign and AssignList (SPEC_FULL.md §4.9): the
// node x time x value triples used throughout the core to describe
// excitation conditions, propagation conditions, and justified test patterns.
package assign
