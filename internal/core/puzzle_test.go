package core

import "testing"

func solvedGrid9() []int {
	return []int{
		5, 3, 4, 6, 7, 8, 9, 1, 2,
		6, 7, 2, 1, 9, 5, 3, 4, 8,
		1, 9, 8, 3, 4, 2, 5, 6, 7,
		8, 5, 9, 7, 6, 1, 4, 2, 3,
		4, 2, 6, 8, 5, 3, 7, 9, 1,
		7, 1, 3, 9, 2, 4, 8, 5, 6,
		9, 6, 1, 5, 3, 7, 2, 8, 4,
		2, 8, 7, 4, 1, 9, 6, 3, 5,
		3, 4, 5, 2, 8, 6, 1, 7, 9,
	}
}

func emptyGivens9WithOne(x, y, v int) []int {
	g := make([]int, 81)
	g[x+y*9] = v
	return g
}

func TestNewPuzzleValidation(t *testing.T) {
	if _, err := NewPuzzle(0, nil); err == nil {
		t.Fatal("expected error for magnitude 0")
	}
	if _, err := NewPuzzle(3, make([]int, 80)); err == nil {
		t.Fatal("expected error for wrong length")
	}
	vals := make([]int, 81)
	vals[10] = 99
	if _, err := NewPuzzle(3, vals); err == nil {
		t.Fatal("expected error for out-of-range value")
	}
}

func TestNewPuzzleRejectsDuplicateGivens(t *testing.T) {
	vals := make([]int, 81)
	vals[0] = 5 // R0C0 = 5
	vals[1] = 5 // R0C1 = 5, same row
	if _, err := NewPuzzle(3, vals); err == nil {
		t.Fatal("expected LoaderError for duplicate given in row")
	} else if _, ok := err.(*LoaderError); !ok {
		t.Fatalf("expected *LoaderError, got %T", err)
	}
}

// TestAssertTrueCascadeScenario1 reproduces spec.md §8 scenario 1: a
// single given at (0,0)=5 on an otherwise empty 9x9 puzzle. The row,
// column and box cascades together falsify exactly 20 distinct claims
// (8 row, 8 column, 4 box-only — the box's other 4 neighbors duplicate
// the row/column cascades); the cell-fact cascade falsifies a further
// 8 claims at (0,0) for the other digits, for 28 falsified in total.
// cell(0,0) ends at size 1 with claim (0,0,5) true.
func TestAssertTrueCascadeScenario1(t *testing.T) {
	p, err := NewPuzzle(3, emptyGivens9WithOne(0, 0, 5))
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	root := p.NewEventTree()
	event := p.NewInitializerEvent(root, "given (0,0)=5")
	claim := p.Claim(0, 0, 4) // digit 5 is z-index 4
	if err := claim.AssertTrue(event); err != nil {
		t.Fatalf("AssertTrue: %v", err)
	}

	all := event.AllFalsified()
	if len(all) != 28 {
		t.Fatalf("expected 28 falsified claims, got %d: %v", len(all), all)
	}
	seen := make(map[int]bool)
	for _, idx := range all {
		if seen[idx] {
			t.Fatalf("claim %d falsified twice", idx)
		}
		seen[idx] = true
	}

	if claim.State() != True {
		t.Fatal("claim (0,0,5) should be true")
	}
	if got := p.CellFact(0, 0).Size(); got != 1 {
		t.Fatalf("cell(0,0) should have size 1, got %d", got)
	}
}

// TestSolvedGridStaysConsistent asserts true every claim of an already
// solved grid and checks the puzzle reports solved with no contradiction.
func TestSolvedGridStaysConsistent(t *testing.T) {
	p, err := NewPuzzle(3, solvedGrid9())
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	root := p.NewEventTree()
	grid := solvedGrid9()
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			v := grid[x+y*9]
			c := p.Claim(x, y, v-1)
			if c.State() == True {
				continue
			}
			event := p.NewInitializerEvent(root, "given")
			if err := c.AssertTrue(event); err != nil {
				t.Fatalf("AssertTrue(%d,%d,%d): %v", x, y, v, err)
			}
		}
	}
	if !p.Solved() {
		t.Fatal("expected puzzle solved")
	}
}

// TestAssertContradiction verifies driving a claim to both terminal
// states is reported as a Contradiction, and re-asserting the same
// terminal state is a no-op (re-entrant safety, spec.md §4.1).
func TestAssertContradiction(t *testing.T) {
	p, err := NewPuzzle(3, make([]int, 81))
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	root := p.NewEventTree()
	c := p.Claim(0, 0, 0)

	e1 := p.NewInitializerEvent(root, "assert true")
	if err := c.AssertTrue(e1); err != nil {
		t.Fatalf("AssertTrue: %v", err)
	}
	e2 := p.NewInitializerEvent(root, "assert true again")
	if err := c.AssertTrue(e2); err != nil {
		t.Fatalf("re-asserting true should be a no-op, got %v", err)
	}
	e3 := p.NewInitializerEvent(root, "assert false after true")
	if err := c.AssertFalse(e3); !IsContradiction(err) {
		t.Fatalf("expected contradiction, got %v", err)
	}
}
