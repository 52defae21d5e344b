package engine

import (
	"fmt"

	"sledgehammer-sudoku/internal/core"
	"sledgehammer-sudoku/internal/gridset"
)

// component is one connected component of the color graph: its vertices
// split into two mutually exclusive color classes by BFS parity.
type component struct {
	positive *gridset.BackedSet
	negative *gridset.BackedSet
}

// RunColorChain finds one color-chain or XY-chain falsification, if any,
// and applies it as a single new event under root (spec.md §4.3).
func RunColorChain(p *core.Puzzle, root *core.Event) (*core.Event, error) {
	components := buildComponents(p)

	for _, comp := range components {
		event, err := visibleColorContradiction(p, root, comp)
		if err != nil || event != nil {
			return event, err
		}
	}
	for _, comp := range components {
		event, err := xyChainFalsify(p, root, comp)
		if err != nil || event != nil {
			return event, err
		}
	}
	return nil, nil
}

// buildComponents builds the color graph: vertices are claims that
// belong to some size-2 (xor) fact; edges connect two vertices that
// share any fact at all. Each component is two-colored by BFS parity
// from its lowest-indexed vertex.
func buildComponents(p *core.Puzzle) []component {
	vertices := p.ClaimUniverse().Empty()
	for _, f := range p.Facts() {
		if f.Size() == 2 {
			vertices.UnionInPlace(f.MemberSet())
		}
	}

	visited := p.ClaimUniverse().Empty()
	var comps []component
	for _, start := range vertices.ToSlice() {
		if visited.Has(start) {
			continue
		}
		pos := p.ClaimUniverse().Empty()
		neg := p.ClaimUniverse().Empty()
		depth := map[int]int{start: 0}
		queue := []int{start}
		visited.Add(start)
		pos.Add(start)

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			neighbors := p.ClaimByIndex(cur).Visible().Set().Intersect(vertices)
			for _, nb := range neighbors.ToSlice() {
				if visited.Has(nb) {
					continue
				}
				visited.Add(nb)
				d := depth[cur] + 1
				depth[nb] = d
				if d%2 == 0 {
					pos.Add(nb)
				} else {
					neg.Add(nb)
				}
				queue = append(queue, nb)
			}
		}

		if pos.Count()+neg.Count() >= 2 {
			comps = append(comps, component{positive: pos, negative: neg})
		}
	}
	return comps
}

// visibleColorContradiction falsifies every active claim visible to both
// colors of comp — such a claim is false regardless of which color turns
// out true (spec.md §4.3).
func visibleColorContradiction(p *core.Puzzle, root *core.Event, comp component) (*core.Event, error) {
	posVisible := unionVisible(p, comp.positive)
	negVisible := unionVisible(p, comp.negative)
	both := posVisible.Intersect(negVisible)
	both.SubtractInPlace(comp.positive)
	both.SubtractInPlace(comp.negative)

	toFalsify := activeMembers(p, both)
	if len(toFalsify) == 0 {
		return nil, nil
	}
	event := p.NewTechniqueEvent(root, fmt.Sprintf("color-chain: %d claims visible to both colors", len(toFalsify)))
	for _, idx := range toFalsify {
		if err := p.ClaimByIndex(idx).AssertFalse(event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// xyChainFalsify is the XY-chain generalization (spec.md §4.3): for each
// color state, simulate asserting every claim of that color true at once
// and propagating to a fixed point on a scratch copy of the puzzle. If
// one state contradicts, the other color is forced true on the real
// puzzle. Otherwise any claim false under both simulated states can never
// be true and is falsified for real.
func xyChainFalsify(p *core.Puzzle, root *core.Event, comp component) (*core.Event, error) {
	posFalse, posContra, err := simulateAssumeAllTrue(p, comp.positive)
	if err != nil {
		return nil, err
	}
	negFalse, negContra, err := simulateAssumeAllTrue(p, comp.negative)
	if err != nil {
		return nil, err
	}

	if posContra && negContra {
		return nil, &core.Contradiction{Reason: "both color states of a color-chain component contradict"}
	}
	if posContra {
		event := p.NewTechniqueEvent(root, "color-chain: positive state contradicts, negative color forced true")
		if err := assertAllTrue(p, event, comp.negative); err != nil {
			return nil, err
		}
		return event, nil
	}
	if negContra {
		event := p.NewTechniqueEvent(root, "color-chain: negative state contradicts, positive color forced true")
		if err := assertAllTrue(p, event, comp.positive); err != nil {
			return nil, err
		}
		return event, nil
	}

	inter := posFalse.Intersect(negFalse)
	toFalsify := activeMembers(p, inter)
	if len(toFalsify) == 0 {
		return nil, nil
	}
	event := p.NewTechniqueEvent(root, fmt.Sprintf("xy-chain: %d claims false under both color states", len(toFalsify)))
	for _, idx := range toFalsify {
		if err := p.ClaimByIndex(idx).AssertFalse(event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func unionVisible(p *core.Puzzle, set *gridset.BackedSet) *gridset.BackedSet {
	out := p.ClaimUniverse().Empty()
	set.ForEach(func(i int) bool {
		out.UnionInPlace(p.ClaimByIndex(i).Visible().Set())
		return true
	})
	return out
}

func activeMembers(p *core.Puzzle, set *gridset.BackedSet) []int {
	var out []int
	set.ForEach(func(i int) bool {
		if p.ClaimByIndex(i).State() == core.Active {
			out = append(out, i)
		}
		return true
	})
	return out
}

// simulateAssumeAllTrue asserts every claim in set true, in turn, on a
// clone of p and lets the existing auto-resolution machinery propagate
// to a fixed point. Returns the set of claims false in the simulation,
// or contradiction=true if the assumption is impossible.
func simulateAssumeAllTrue(p *core.Puzzle, set *gridset.BackedSet) (falseSet *gridset.BackedSet, contradiction bool, err error) {
	sim := p.Clone()
	root := sim.NewEventTree()
	event := sim.NewTechniqueEvent(root, "color-chain simulation")

	var assertErr error
	set.ForEach(func(i int) bool {
		c := sim.ClaimByIndex(i)
		if c.State() == core.Active {
			if e := c.AssertTrue(event); e != nil {
				assertErr = e
				return false
			}
		}
		return true
	})
	if assertErr != nil {
		if core.IsContradiction(assertErr) {
			return nil, true, nil
		}
		return nil, false, assertErr
	}

	out := sim.ClaimUniverse().Empty()
	for _, c := range sim.Claims() {
		if c.State() == core.False {
			out.Add(c.Index)
		}
	}
	return out, false, nil
}

func assertAllTrue(p *core.Puzzle, event *core.Event, set *gridset.BackedSet) error {
	var err error
	set.ForEach(func(i int) bool {
		c := p.ClaimByIndex(i)
		if c.State() == core.Active {
			if e := c.AssertTrue(event); e != nil {
				err = e
				return false
			}
		}
		return true
	})
	return err
}
