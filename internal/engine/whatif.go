package engine

import (
	"fmt"

	"sledgehammer-sudoku/internal/core"
	"sledgehammer-sudoku/internal/gridset"
)

// WhatIf is one hypothetical branch: claim Assumption asserted true on a
// private clone of the puzzle, propagated to a fixed point by the same
// auto-resolution machinery the real solve uses (spec.md §4.4).
type WhatIf struct {
	Assumption    int
	Contradiction bool
	falseSet      *gridset.BackedSet
}

// NewWhatIf builds the hypothetical branch of asserting claim index
// claimIdx true.
func NewWhatIf(p *core.Puzzle, claimIdx int) (*WhatIf, error) {
	sim := p.Clone()
	root := sim.NewEventTree()
	event := sim.NewTechniqueEvent(root, fmt.Sprintf("what-if assume %s true", sim.ClaimByIndex(claimIdx)))

	if err := sim.ClaimByIndex(claimIdx).AssertTrue(event); err != nil {
		if core.IsContradiction(err) {
			return &WhatIf{Assumption: claimIdx, Contradiction: true}, nil
		}
		return nil, err
	}

	out := sim.ClaimUniverse().Empty()
	for _, c := range sim.Claims() {
		if c.State() == core.False {
			out.Add(c.Index)
		}
	}
	return &WhatIf{Assumption: claimIdx, falseSet: out}, nil
}

// RunWhatIf picks an unsolved fact as seed and tries it, and if nothing
// is found refines by going one fact deeper, up to maxDepth times
// (spec.md §4.4's explore_depth).
func RunWhatIf(p *core.Puzzle, root *core.Event, maxDepth int) (*core.Event, error) {
	seed := pickSeedFact(p)
	if seed == nil {
		return nil, nil
	}
	return exploreFact(p, root, seed, maxDepth)
}

// pickSeedFact returns the smallest unsolved fact, breaking ties by
// index — smaller facts keep the branching factor of each WhatIf down.
func pickSeedFact(p *core.Puzzle) *core.Fact {
	var best *core.Fact
	for _, f := range p.Facts() {
		if f.Size() < 2 {
			continue
		}
		if best == nil || f.Size() < best.Size() {
			best = f
		}
	}
	return best
}

// exploreFact creates one WhatIf per active member of f — mutually
// exclusive assumptions, since exactly one member of f is eventually
// true — and falsifies the intersection of their consequence sets, the
// claims forced false no matter which member of f turns out true.
func exploreFact(p *core.Puzzle, root *core.Event, f *core.Fact, depth int) (*core.Event, error) {
	members := f.Members()
	var branches []*WhatIf
	for _, c := range members {
		wi, err := NewWhatIf(p, c.Index)
		if err != nil {
			return nil, err
		}
		if !wi.Contradiction {
			branches = append(branches, wi)
		}
	}

	if len(branches) == 0 {
		return nil, &core.Contradiction{Reason: fmt.Sprintf("%s has no viable assumption", f)}
	}
	if len(branches) == 1 {
		claim := p.ClaimByIndex(branches[0].Assumption)
		event := p.NewTechniqueEvent(root, fmt.Sprintf("what-if: every other member of %s contradicts, %s forced true", f, claim))
		if err := claim.AssertTrue(event); err != nil {
			return nil, err
		}
		return event, nil
	}

	inter := branches[0].falseSet.Clone()
	for _, wi := range branches[1:] {
		inter.IntersectInPlace(wi.falseSet)
	}
	toFalsify := activeMembers(p, inter)

	if len(toFalsify) == 0 {
		if depth > 0 {
			if next := pickDeeperSeedFact(p, f); next != nil {
				return exploreFact(p, root, next, depth-1)
			}
		}
		return nil, nil
	}

	event := p.NewTechniqueEvent(root, fmt.Sprintf("what-if over %s falsifies %d claims", f, len(toFalsify)))
	for _, idx := range toFalsify {
		if err := p.ClaimByIndex(idx).AssertFalse(event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// pickDeeperSeedFact returns the next-smallest unsolved fact other than
// exclude, used to refine a what-if search one level deeper when the
// first seed fact produced no falsification.
func pickDeeperSeedFact(p *core.Puzzle, exclude *core.Fact) *core.Fact {
	var best *core.Fact
	for _, f := range p.Facts() {
		if f.Index == exclude.Index || f.Size() < 2 {
			continue
		}
		if best == nil || f.Size() < best.Size() {
			best = f
		}
	}
	return best
}
