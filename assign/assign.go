package assign

import "sort"

// Assign is a single node x time x value triple (SPEC_FULL.md §4.9). Time is
// 0 or 1: frame 0 is the broadside launch frame (transition-delay mode only),
// frame 1 is the capture / steady-state frame used by stuck-at mode.
type Assign struct {
	Node int
	Time int8 // 0 or 1
	Val  bool
}

// key packs a into an int64 such that lexicographic order on (Node, Time,
// Val) equals numeric order on key.
func (a Assign) key() int64 {
	v := int64(0)
	if a.Val {
		v = 1
	}
	return (int64(a.Node) << 2) | (int64(a.Time) << 1) | v
}

// Not returns a with its Val flipped (the spec's "~a").
func (a Assign) Not() Assign { return Assign{Node: a.Node, Time: a.Time, Val: !a.Val} }

// Less implements the packed-key lexicographic ordering.
func (a Assign) Less(b Assign) bool { return a.key() < b.key() }

// List is an ordered, deduplicated sequence of Assign values.
type List struct {
	items []Assign
}

// NewList builds a List from zero or more Assign values, sorting and
// deduplicating them.
func NewList(items ...Assign) *List {
	l := &List{items: append([]Assign(nil), items...)}
	l.normalize()
	return l
}

func (l *List) normalize() {
	sort.Slice(l.items, func(i, j int) bool { return l.items[i].Less(l.items[j]) })
	out := l.items[:0]
	for i, a := range l.items {
		if i == 0 || a != l.items[i-1] {
			out = append(out, a)
		}
	}
	l.items = out
}

// Add inserts a, keeping the list sorted and deduplicated.
func (l *List) Add(a Assign) {
	l.items = append(l.items, a)
	l.normalize()
}

// Items returns the underlying sorted, deduplicated slice. Callers must not
// mutate it.
func (l *List) Items() []Assign { return l.items }

// Len returns the number of entries.
func (l *List) Len() int { return len(l.items) }

// Contains reports whether a is present.
func (l *List) Contains(a Assign) bool {
	i := sort.Search(len(l.items), func(i int) bool { return !l.items[i].Less(a) })
	return i < len(l.items) && l.items[i] == a
}

// Conflicts reports whether a's negation (same node/time, opposite val) is
// present — i.e. whether adding a to l would be contradictory.
func (l *List) Conflicts(a Assign) bool { return l.Contains(a.Not()) }

// Union returns a new List containing every Assign in l or other.
func Union(l, other *List) *List {
	merged := append(append([]Assign(nil), l.items...), other.items...)
	return NewList(merged...)
}

// Intersect returns a new List containing only Assign values present in
// both l and other.
func Intersect(l, other *List) *List {
	out := make([]Assign, 0)
	for _, a := range l.items {
		if other.Contains(a) {
			out = append(out, a)
		}
	}
	return NewList(out...)
}

// Compatible reports whether l and other contain no directly contradictory
// assignment (same node+time, opposite val) — i.e. they could be merged.
func Compatible(l, other *List) bool {
	for _, a := range l.items {
		if other.Conflicts(a) {
			return false
		}
	}
	return true
}
