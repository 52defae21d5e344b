package core

import "fmt"

// State is the lifecycle state of a Claim. A claim starts Active and
// transitions to exactly one terminal state, never back (P2).
type State int

const (
	Active State = iota
	True
	False
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Claim is the atomic truth-assertion "cell at (x,y) takes value z".
type Claim struct {
	Index   int
	X, Y, Z int

	state  State
	puzzle *Puzzle
	facts  []*Fact // facts currently containing this claim
}

// State returns the claim's current lifecycle state.
func (c *Claim) State() State {
	return c.state
}

// Facts returns the facts currently containing this claim, a snapshot
// safe to range over even if the caller goes on to mutate the graph.
func (c *Claim) Facts() []*Fact {
	out := make([]*Fact, len(c.facts))
	copy(out, c.facts)
	return out
}

// Visible returns the claims that share any fact with c, excluding c.
func (c *Claim) Visible() *BackedClaimSet {
	out := c.puzzle.claimUniverse.Empty()
	for _, f := range c.facts {
		out.UnionInPlace(f.members)
	}
	out.Remove(c.Index)
	return &BackedClaimSet{set: out, puzzle: c.puzzle}
}

func (c *Claim) detach(f *Fact) {
	for i, g := range c.facts {
		if g.Index == f.Index {
			c.facts = append(c.facts[:i], c.facts[i+1:]...)
			return
		}
	}
}

func (c *Claim) String() string {
	return fmt.Sprintf("claim(%d,%d,%d)", c.X, c.Y, c.Z)
}

// AssertTrue drives c to the True terminal state as part of event parent.
// Re-entrant-safe: a no-op if c is already True. Every other claim in
// every fact containing c is then asserted false, recorded in the same
// event (spec.md §4.1).
func (c *Claim) AssertTrue(parent *Event) error {
	if c.state == True {
		return nil
	}
	if c.state == False {
		return &Contradiction{Reason: fmt.Sprintf("%s driven true after already false", c)}
	}
	c.state = True
	parent.AssertedTrue = c.Index

	facts := c.Facts()
	for _, f := range facts {
		for _, idx := range f.members.ToSlice() {
			if idx == c.Index {
				continue
			}
			other := c.puzzle.claims[idx]
			if err := other.AssertFalse(parent); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssertFalse drives c to the False terminal state as part of event
// parent, then removes c from every fact it belongs to, which may
// trigger singleton- or subset-collapse cascades recorded as children
// of parent (I3, I4).
func (c *Claim) AssertFalse(parent *Event) error {
	if c.state == False {
		return nil
	}
	if c.state == True {
		return &Contradiction{Reason: fmt.Sprintf("%s driven false after already true", c)}
	}
	c.state = False
	parent.Falsified = append(parent.Falsified, c.Index)

	facts := c.Facts()
	for _, f := range facts {
		if err := f.remove(c, parent); err != nil {
			return err
		}
	}
	return nil
}
