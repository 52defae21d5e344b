// Package engine implements the solver's techniques (sledgehammer,
// color-chain, what-if) and the driver that sequences them to a fixed
// point over a core.Puzzle.
package engine

import (
	"fmt"

	"sledgehammer-sudoku/internal/core"
)

// Initialize converts a loaded puzzle's given values into AssertTrue
// calls, one per non-zero given, each its own child of root. All cascade
// work — singleton- and subset-collapse — is the claim/fact graph's own
// job, triggered as a side effect of AssertTrue; the initializer knows
// nothing about it (spec.md §9 Open Question resolution).
func Initialize(p *core.Puzzle, root *core.Event) error {
	n := p.N
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := p.Givens[x+y*n]
			if v == 0 {
				continue
			}
			claim := p.Claim(x, y, v-1)
			if claim.State() == core.True {
				continue
			}
			event := p.NewInitializerEvent(root, fmt.Sprintf("given (%d,%d)=%d", x, y, v))
			if err := claim.AssertTrue(event); err != nil {
				return err
			}
		}
	}
	return nil
}
