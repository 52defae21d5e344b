package core

import (
	"fmt"

	"sledgehammer-sudoku/internal/gridset"
)

// Puzzle owns the universes of claims and facts for one solve. It is
// built once from a loader's (m, values); universes are frozen at
// construction and only membership shrinks thereafter (spec.md §3.4).
type Puzzle struct {
	M int // magnitude
	N int // side length, N = M*M

	Givens []int // loader's initial values, row-major, length N*N

	claimUniverse gridset.Universe
	factUniverse  gridset.Universe

	claims []*Claim
	facts  []*Fact

	cellBase, rowBase, colBase, boxBase int

	eventSeq int
}

// NewPuzzle validates (m, values) per spec.md §6 and builds the frozen
// claim/fact graph. It does not assert any claims true — that is the
// Initializer's job (spec.md §9).
func NewPuzzle(m int, values []int) (*Puzzle, error) {
	if m < 1 {
		return nil, &LoaderError{Reason: fmt.Sprintf("magnitude must be >= 1, got %d", m)}
	}
	n := m * m
	if len(values) != n*n {
		return nil, &LoaderError{Reason: fmt.Sprintf("expected %d values for magnitude %d, got %d", n*n, m, len(values))}
	}
	for i, v := range values {
		if v < 0 || v > n {
			return nil, &LoaderError{Reason: fmt.Sprintf("value %d at position %d out of range [0,%d]", v, i, n)}
		}
	}
	if err := checkNoDuplicateGivens(m, n, values); err != nil {
		return nil, err
	}

	p := &Puzzle{
		M:             m,
		N:             n,
		Givens:        append([]int(nil), values...),
		claimUniverse: gridset.NewUniverse(n * n * n),
		factUniverse:  gridset.NewUniverse(4 * n * n),
		cellBase:      0,
		rowBase:       n * n,
		colBase:       2 * n * n,
		boxBase:       3 * n * n,
	}
	p.buildClaims()
	p.buildFacts()
	return p, nil
}

func checkNoDuplicateGivens(m, n int, values []int) error {
	row := make([][]bool, n)
	col := make([][]bool, n)
	box := make([][]bool, n)
	for i := range row {
		row[i] = make([]bool, n+1)
		col[i] = make([]bool, n+1)
		box[i] = make([]bool, n+1)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := values[x+y*n]
			if v == 0 {
				continue
			}
			b := (y/m)*m + x/m
			if row[y][v] {
				return &LoaderError{Reason: fmt.Sprintf("duplicate initial value %d in row %d", v, y)}
			}
			if col[x][v] {
				return &LoaderError{Reason: fmt.Sprintf("duplicate initial value %d in column %d", v, x)}
			}
			if box[b][v] {
				return &LoaderError{Reason: fmt.Sprintf("duplicate initial value %d in box %d", v, b)}
			}
			row[y][v], col[x][v], box[b][v] = true, true, true
		}
	}
	return nil
}

func (p *Puzzle) claimIndex(x, y, z int) int {
	return x + y*p.N + z*p.N*p.N
}

func (p *Puzzle) buildClaims() {
	n := p.N
	p.claims = make([]*Claim, n*n*n)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				idx := p.claimIndex(x, y, z)
				p.claims[idx] = &Claim{Index: idx, X: x, Y: y, Z: z, state: Active, puzzle: p}
			}
		}
	}
}

func (p *Puzzle) newFact(index int, species Species, a, b, c int) *Fact {
	f := &Fact{Index: index, Species: species, A: a, B: b, C: c, puzzle: p, members: p.claimUniverse.Empty()}
	p.facts[index] = f
	return f
}

func (p *Puzzle) link(c *Claim, f *Fact) {
	f.members.Add(c.Index)
	c.facts = append(c.facts, f)
}

func (p *Puzzle) buildFacts() {
	n, m := p.N, p.M
	p.facts = make([]*Fact, 4*n*n)

	// cell(x,y): one claim per digit z
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f := p.newFact(p.cellBase+x+y*n, FactCell, x, y, 0)
			for z := 0; z < n; z++ {
				p.link(p.claims[p.claimIndex(x, y, z)], f)
			}
		}
	}

	// row(y,z): one claim per column x
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			f := p.newFact(p.rowBase+y+z*n, FactRow, y, z, 0)
			for x := 0; x < n; x++ {
				p.link(p.claims[p.claimIndex(x, y, z)], f)
			}
		}
	}

	// column(x,z): one claim per row y
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			f := p.newFact(p.colBase+x+z*n, FactColumn, x, z, 0)
			for y := 0; y < n; y++ {
				p.link(p.claims[p.claimIndex(x, y, z)], f)
			}
		}
	}

	// box(bx,by,z): one claim per cell in the box
	for z := 0; z < n; z++ {
		for by := 0; by < m; by++ {
			for bx := 0; bx < m; bx++ {
				f := p.newFact(p.boxBase+bx+by*m+z*m*m, FactBox, bx, by, z)
				for dy := 0; dy < m; dy++ {
					for dx := 0; dx < m; dx++ {
						x, y := bx*m+dx, by*m+dy
						p.link(p.claims[p.claimIndex(x, y, z)], f)
					}
				}
			}
		}
	}
}

// Claim returns the claim at (x,y,z) in O(1).
func (p *Puzzle) Claim(x, y, z int) *Claim {
	return p.claims[p.claimIndex(x, y, z)]
}

// ClaimByIndex returns the claim with the given stable index.
func (p *Puzzle) ClaimByIndex(idx int) *Claim {
	return p.claims[idx]
}

// CellFact returns the cell(x,y) fact.
func (p *Puzzle) CellFact(x, y int) *Fact {
	return p.facts[p.cellBase+x+y*p.N]
}

// RowFact returns the row(y,z) fact.
func (p *Puzzle) RowFact(y, z int) *Fact {
	return p.facts[p.rowBase+y+z*p.N]
}

// ColumnFact returns the column(x,z) fact.
func (p *Puzzle) ColumnFact(x, z int) *Fact {
	return p.facts[p.colBase+x+z*p.N]
}

// BoxFact returns the box(bx,by,z) fact.
func (p *Puzzle) BoxFact(bx, by, z int) *Fact {
	return p.facts[p.boxBase+bx+by*p.M+z*p.M*p.M]
}

// Facts returns every standard fact in the puzzle, in universe order.
func (p *Puzzle) Facts() []*Fact {
	out := make([]*Fact, len(p.facts))
	copy(out, p.facts)
	return out
}

// Claims returns every claim in the puzzle, in universe order.
func (p *Puzzle) Claims() []*Claim {
	out := make([]*Claim, len(p.claims))
	copy(out, p.claims)
	return out
}

// ClaimUniverse returns the universe claim indices are drawn from.
func (p *Puzzle) ClaimUniverse() gridset.Universe {
	return p.claimUniverse
}

// FactUniverse returns the universe fact indices are drawn from.
func (p *Puzzle) FactUniverse() gridset.Universe {
	return p.factUniverse
}

// Solved reports whether every standard fact has exactly one member.
func (p *Puzzle) Solved() bool {
	for _, f := range p.facts {
		if f.Size() != 1 {
			return false
		}
	}
	return true
}

// Grid returns the current solved digit (0 if undetermined) for every
// cell, row-major.
func (p *Puzzle) Grid() []int {
	n := p.N
	out := make([]int, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f := p.CellFact(x, y)
			if v, ok := f.members.Only(); ok {
				out[x+y*n] = p.claims[v].Z + 1
			}
		}
	}
	return out
}

// NewEventTree returns a fresh root event for one solve.
func (p *Puzzle) NewEventTree() *Event {
	return newEventTree()
}

// NewTechniqueEvent appends a new top-level technique event under root.
func (p *Puzzle) NewTechniqueEvent(root *Event, description string) *Event {
	return root.newChild(&p.eventSeq, EventTechnique, description)
}

// NewInitializerEvent appends a new initializer event under root.
func (p *Puzzle) NewInitializerEvent(root *Event, description string) *Event {
	return root.newChild(&p.eventSeq, EventInitializer, description)
}

func (p *Puzzle) child(parent *Event, kind EventKind, description string) *Event {
	return parent.newChild(&p.eventSeq, kind, description)
}

// autoResolve runs the singleton-collapse and subset-collapse rules on f
// to a local fixed point, recording cascades as children of parent
// (I3, I4).
func (p *Puzzle) autoResolve(f *Fact, parent *Event) error {
	for {
		size := f.Size()
		if size == 0 {
			return &Contradiction{Reason: fmt.Sprintf("%s has no active members", f)}
		}
		if size == 1 {
			idx, _ := f.members.Only()
			claim := p.claims[idx]
			if claim.state != Active {
				return nil
			}
			child := p.child(parent, EventSingletonCollapse, fmt.Sprintf("%s collapsed to singleton %s", f, claim))
			return claim.AssertTrue(child)
		}

		changed, err := p.collapseAgainstVisible(f, parent)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
}

// collapseAgainstVisible scans f's visible facts once for a proper
// subset relation in either direction and, if found, eliminates the
// difference (I4). Returns changed=true if an elimination was applied.
func (p *Puzzle) collapseAgainstVisible(f *Fact, parent *Event) (bool, error) {
	for _, g := range f.VisibleFacts() {
		switch {
		case f.members.IsProperSubsetOf(g.members):
			diff := g.members.Difference(f.members)
			if !p.anyActive(diff) {
				continue
			}
			child := p.child(parent, EventSubsetCollapse, fmt.Sprintf("%s proper subset of %s", f, g))
			if err := falsifyAll(p, diff, child); err != nil {
				return false, err
			}
			return true, nil
		case g.members.IsProperSubsetOf(f.members):
			diff := f.members.Difference(g.members)
			if !p.anyActive(diff) {
				continue
			}
			child := p.child(parent, EventSubsetCollapse, fmt.Sprintf("%s proper subset of %s", g, f))
			if err := falsifyAll(p, diff, child); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// anyActive reports whether set holds a claim that is still Active. A
// difference made only of decided claims (a true claim stays in its facts;
// a false one may not yet be detached from all of them) has nothing left
// to eliminate.
func (p *Puzzle) anyActive(set *gridset.BackedSet) bool {
	found := false
	set.ForEach(func(i int) bool {
		found = p.claims[i].state == Active
		return !found
	})
	return found
}

func falsifyAll(p *Puzzle, set *gridset.BackedSet, event *Event) error {
	for _, idx := range set.ToSlice() {
		claim := p.claims[idx]
		if claim.state != Active {
			continue
		}
		if err := claim.AssertFalse(event); err != nil {
			return err
		}
	}
	return nil
}

// BackedClaimSet pairs a gridset.BackedSet of claim indices with the
// puzzle that owns them, so callers can resolve members back to Claims
// without threading the puzzle reference everywhere.
type BackedClaimSet struct {
	set    *gridset.BackedSet
	puzzle *Puzzle
}

// Set returns the underlying index set.
func (b *BackedClaimSet) Set() *gridset.BackedSet { return b.set }

// Claims resolves the set's member indices back to Claims.
func (b *BackedClaimSet) Claims() []*Claim {
	idxs := b.set.ToSlice()
	out := make([]*Claim, len(idxs))
	for i, idx := range idxs {
		out[i] = b.puzzle.claims[idx]
	}
	return out
}

// Has reports whether claim c is a member.
func (b *BackedClaimSet) Has(c *Claim) bool { return b.set.Has(c.Index) }
