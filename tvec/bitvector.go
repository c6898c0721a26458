package tvec

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/vellum-eda/tpgcore/valkind"
)

// ErrIncompatible is returned by MergeWith when the two vectors pin
// opposite 0/1 values at some position (SPEC_FULL.md §4.9: "undefined when
// both sides pin opposite values").
var ErrIncompatible = errors.New("tvec: incompatible vectors")

// BitVector is a copy-on-write ternary (X/0/1) vector. The zero BitVector is
// not usable; construct one with New.
type BitVector struct {
	bits  []valkind.Val3
	owned bool // true iff bits' backing array is not aliased by any clone
}

// New returns a length-n BitVector with every position X.
func New(n int) BitVector {
	bits := make([]valkind.Val3, n)
	for i := range bits {
		bits[i] = valkind.X
	}
	return BitVector{bits: bits, owned: true}
}

// FromVals copies vals into a new owned BitVector.
func FromVals(vals []valkind.Val3) BitVector {
	bits := append([]valkind.Val3(nil), vals...)
	return BitVector{bits: bits, owned: true}
}

// Clone returns a BitVector sharing this one's backing array; the first
// mutation on either side detaches it (copy-on-write).
func (b *BitVector) Clone() BitVector {
	b.owned = false
	return BitVector{bits: b.bits, owned: false}
}

// Len returns the vector's length.
func (b *BitVector) Len() int { return len(b.bits) }

// Get returns the value at position i.
func (b *BitVector) Get(i int) valkind.Val3 { return b.bits[i] }

func (b *BitVector) detach() {
	if !b.owned {
		b.bits = append([]valkind.Val3(nil), b.bits...)
		b.owned = true
	}
}

// Set assigns the value at position i, detaching from any shared backing
// array first.
func (b *BitVector) Set(i int, v valkind.Val3) {
	b.detach()
	b.bits[i] = v
}

// SetFromRandom resolves every position to 0 or 1, discarding any existing
// value (SPEC_FULL.md §4.9).
func (b *BitVector) SetFromRandom(rng *rand.Rand) {
	b.detach()
	for i := range b.bits {
		b.bits[i] = valkind.FromBool(rng.Intn(2) == 1)
	}
}

// FixXFromRandom resolves only the X positions randomly, preserving every
// already-pinned 0/1 (SPEC_FULL.md §4.9).
func (b *BitVector) FixXFromRandom(rng *rand.Rand) {
	b.detach()
	for i := range b.bits {
		if b.bits[i].IsX() {
			b.bits[i] = valkind.FromBool(rng.Intn(2) == 1)
		}
	}
}

// IsCompatible reports whether no position of b and other pins opposite 0/1
// values (SPEC_FULL.md §4.9's is_compatible).
func (b *BitVector) IsCompatible(other *BitVector) bool {
	if len(b.bits) != len(other.bits) {
		return false
	}
	for i := range b.bits {
		x, y := b.bits[i], other.bits[i]
		if !x.IsX() && !y.IsX() && x != y {
			return false
		}
	}
	return true
}

// MergeWith returns the position-wise combination of b and other: each
// position takes whichever side is pinned, or X if both are X. It returns
// ErrIncompatible (and leaves b unchanged) if any position pins opposite
// values.
func (b *BitVector) MergeWith(other *BitVector) (BitVector, error) {
	if len(b.bits) != len(other.bits) {
		return BitVector{}, ErrIncompatible
	}
	out := make([]valkind.Val3, len(b.bits))
	for i := range b.bits {
		x, y := b.bits[i], other.bits[i]
		switch {
		case x.IsX():
			out[i] = y
		case y.IsX():
			out[i] = x
		case x == y:
			out[i] = x
		default:
			return BitVector{}, ErrIncompatible
		}
	}
	return BitVector{bits: out, owned: true}, nil
}

// LessEq implements the partial order "b contains other" (more X on the
// left): every position of b is either X or equal to the corresponding
// position of other (SPEC_FULL.md §4.9's `<=`).
func (b *BitVector) LessEq(other *BitVector) bool {
	if len(b.bits) != len(other.bits) {
		return false
	}
	for i := range b.bits {
		if !b.bits[i].IsX() && b.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// BinStr renders the vector as a string of '0'/'1'/'X' characters, most
// significant (index 0) first.
func (b *BitVector) BinStr() string {
	var sb strings.Builder
	sb.Grow(len(b.bits))
	for _, v := range b.bits {
		sb.WriteString(v.String())
	}
	return sb.String()
}

// HexStr renders the vector packed 4 bits per hex digit, most significant
// nibble first; an X anywhere in a nibble renders that nibble as 'X'. Length
// is padded with leading X on the left to a multiple of 4 first.
func (b *BitVector) HexStr() string {
	pad := (4 - len(b.bits)%4) % 4
	var sb strings.Builder
	sb.Grow((len(b.bits) + pad + 3) / 4)
	nibble := 0
	bitsInNibble := 0
	hasX := false
	flush := func() {
		if hasX {
			sb.WriteByte('X')
		} else {
			sb.WriteByte("0123456789abcdef"[nibble])
		}
		nibble, bitsInNibble, hasX = 0, 0, false
	}
	for i := 0; i < pad; i++ {
		hasX = true
		bitsInNibble++
		if bitsInNibble == 4 {
			flush()
		}
	}
	for _, v := range b.bits {
		if v.IsX() {
			hasX = true
		} else {
			nibble = nibble<<1 | boolBit(v)
		}
		bitsInNibble++
		if bitsInNibble == 4 {
			flush()
		}
	}
	return sb.String()
}

func boolBit(v valkind.Val3) int {
	if v == valkind.V1 {
		return 1
	}
	return 0
}

// FromBinStr parses a BinStr-produced string back into a BitVector.
func FromBinStr(s string) (BitVector, error) {
	bits := make([]valkind.Val3, len(s))
	for i, c := range s {
		switch c {
		case '0':
			bits[i] = valkind.V0
		case '1':
			bits[i] = valkind.V1
		case 'X', 'x':
			bits[i] = valkind.X
		default:
			return BitVector{}, errors.New("tvec: invalid character in bin string")
		}
	}
	return BitVector{bits: bits, owned: true}, nil
}
