package core

// Clone returns an independent deep copy of the puzzle: same universes,
// claim states, and fact membership, but no shared mutable state. Used
// by the color-chain and what-if engines to simulate the consequences of
// a hypothetical assumption without mutating the real puzzle (spec.md
// §4.3, §4.4) — the hypothetical reasoning they both need is "assert
// true and let the existing auto-resolution machinery propagate", which
// only needs a scratch copy of the graph to run safely.
func (p *Puzzle) Clone() *Puzzle {
	np := &Puzzle{
		M:             p.M,
		N:             p.N,
		Givens:        append([]int(nil), p.Givens...),
		claimUniverse: p.claimUniverse,
		factUniverse:  p.factUniverse,
		cellBase:      p.cellBase,
		rowBase:       p.rowBase,
		colBase:       p.colBase,
		boxBase:       p.boxBase,
	}

	np.claims = make([]*Claim, len(p.claims))
	for i, c := range p.claims {
		np.claims[i] = &Claim{Index: c.Index, X: c.X, Y: c.Y, Z: c.Z, state: c.state, puzzle: np}
	}

	np.facts = make([]*Fact, len(p.facts))
	for i, f := range p.facts {
		np.facts[i] = &Fact{
			Index:   f.Index,
			Species: f.Species,
			A:       f.A, B: f.B, C: f.C,
			puzzle:  np,
			members: f.members.Clone(),
		}
	}

	for _, nf := range np.facts {
		nf.members.ForEach(func(i int) bool {
			np.claims[i].facts = append(np.claims[i].facts, nf)
			return true
		})
	}

	return np
}
