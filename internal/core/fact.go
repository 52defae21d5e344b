package core

import (
	"fmt"

	"sledgehammer-sudoku/internal/gridset"
)

// Species identifies the origin of a Fact. The four standard species
// partition the 4N² facts of a puzzle; FactInit is never stored in the
// puzzle's fact universe and no fact carries it — the initializer's
// events are labeled EventInitializer instead (spec.md §9 unifies
// Fact/Rule to one type with a species tag; FactInit is that tag's
// degenerate case).
type Species int

const (
	FactCell Species = iota
	FactRow
	FactColumn
	FactBox
	FactInit
)

func (s Species) String() string {
	switch s {
	case FactCell:
		return "cell"
	case FactRow:
		return "row"
	case FactColumn:
		return "column"
	case FactBox:
		return "box"
	case FactInit:
		return "init"
	default:
		return "unknown"
	}
}

// Fact is an "exactly one of" set of claims. Two facts with the same
// species and coordinates are equal; identity is the arena index
// (spec.md §9).
type Fact struct {
	Index   int
	Species Species
	A, B, C int // coordinates, meaning depends on Species (see puzzle.go)

	members *gridset.BackedSet
	puzzle  *Puzzle
}

// Size returns the number of currently active claims in the fact.
func (f *Fact) Size() int {
	return f.members.Count()
}

// Contains reports whether claim c is currently a member of f.
func (f *Fact) Contains(c *Claim) bool {
	return f.members.Has(c.Index)
}

// IsXor reports whether f has exactly two members.
func (f *Fact) IsXor() bool {
	return f.Size() == 2
}

// Members returns the current member claims, in universe order.
func (f *Fact) Members() []*Claim {
	idxs := f.members.ToSlice()
	out := make([]*Claim, len(idxs))
	for i, idx := range idxs {
		out[i] = f.puzzle.claims[idx]
	}
	return out
}

// MemberSet returns the backing set of member claim indices. Callers
// must treat it as read-only; clone before mutating.
func (f *Fact) MemberSet() *gridset.BackedSet {
	return f.members
}

// IsProperSubsetOf reports whether f's members are a proper subset of g's.
func (f *Fact) IsProperSubsetOf(g *Fact) bool {
	return f.members.IsProperSubsetOf(g.members)
}

// HasProperSubset reports whether g's members are a proper subset of f's.
func (f *Fact) HasProperSubset(g *Fact) bool {
	return g.members.IsProperSubsetOf(f.members)
}

// VisibleFacts returns the facts that share at least one member with f,
// excluding f itself.
func (f *Fact) VisibleFacts() []*Fact {
	seen := make(map[int]bool)
	var out []*Fact
	for _, idx := range f.members.ToSlice() {
		c := f.puzzle.claims[idx]
		for _, g := range c.facts {
			if g.Index == f.Index || seen[g.Index] {
				continue
			}
			seen[g.Index] = true
			out = append(out, g)
		}
	}
	return out
}

func (f *Fact) String() string {
	return fmt.Sprintf("%s(%d,%d,%d)", f.Species, f.A, f.B, f.C)
}

// remove deletes claim c from f, if present, and runs the auto-resolution
// rules (I3/I4) on f's resulting state. parent is the event the
// falsification that caused this removal belongs to; any cascades are
// recorded as parent's children.
func (f *Fact) remove(c *Claim, parent *Event) error {
	if !f.members.Has(c.Index) {
		return nil
	}
	f.members.Remove(c.Index)
	c.detach(f)
	return f.puzzle.autoResolve(f, parent)
}
