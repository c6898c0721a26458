// Package ffr implements the Fanout-Free Region and Maximum-Fanout-Free-Cone
// groupings of SPEC_FULL.md §4.4. Both types are passive containers; this
// package supplies the post-processing construction walks that populate them
// (spec §4.1 steps 6-7) given a frozen node list and a precomputed immediate-
// dominator array (see package network for the dominator computation itself).
package ffr
