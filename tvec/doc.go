// Package tvec implements the ternary vector types used to carry stimulus
// and fault-justification state: BitVector, the copy-on-write primitive, and
// the InputVector/DffVector/TestVector aliases layered on top of it
// (SPEC_FULL.md §4.9). A TestVector's length is input_num+dff_num under the
// stuck-at model or 2*input_num+dff_num under transition-delay (two input
// frames, one DFF frame — a transition pattern's launch and capture inputs).
package tvec
