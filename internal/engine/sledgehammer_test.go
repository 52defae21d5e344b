package engine

import (
	"testing"

	"sledgehammer-sudoku/internal/core"
)

// TestRunSledgehammerNoOpOnFreshPuzzle checks that an empty puzzle (every
// fact still full) has no sledgehammer pattern to find.
func TestRunSledgehammerNoOpOnFreshPuzzle(t *testing.T) {
	p, err := core.NewPuzzle(3, make([]int, 81))
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	root := p.NewEventTree()
	event, err := RunSledgehammer(p, root)
	if err != nil {
		t.Fatalf("RunSledgehammer: %v", err)
	}
	if event != nil {
		t.Fatalf("expected no sledgehammer pattern on a fresh puzzle, got %s", event.Description)
	}
}

// TestDistinctFactsDedupesEqualMembership builds two facts with identical
// membership (by shrinking one down to match a smaller one) and checks
// distinctFacts keeps only one representative.
func TestDistinctFactsDedupesEqualMembership(t *testing.T) {
	p, err := core.NewPuzzle(3, make([]int, 81))
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	facts := distinctFacts(p.Facts())
	if len(facts) != len(p.Facts()) {
		t.Fatalf("expected all %d fresh facts to be distinct, got %d", len(p.Facts()), len(facts))
	}

	// Confining digit 1 in row 0 to columns 0 and 1 makes row(0,0) a
	// proper subset of box(0,0,0); subset-collapse shrinks the box down
	// to the same two claims, so the pair must now count once.
	root := p.NewEventTree()
	setup := p.NewInitializerEvent(root, "confine digit 1 in row 0 to columns 0 and 1")
	for x := 2; x < 9; x++ {
		if err := p.Claim(x, 0, 0).AssertFalse(setup); err != nil {
			t.Fatalf("AssertFalse(%d,0,1): %v", x, err)
		}
	}
	if !p.RowFact(0, 0).MemberSet().Equals(p.BoxFact(0, 0, 0).MemberSet()) {
		t.Fatal("expected row(0,0) and box(0,0,0) to have identical membership")
	}
	if got, want := len(distinctFacts(p.Facts())), len(p.Facts())-1; got != want {
		t.Fatalf("expected %d distinct facts after the collapse, got %d", want, got)
	}
}

// TestMinSourceSizeDefaultsToFactSize checks that a fact with no
// small covering combination reports its own size.
func TestMinSourceSizeDefaultsToFactSize(t *testing.T) {
	p, err := core.NewPuzzle(3, make([]int, 81))
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	f := p.CellFact(0, 0)
	got := minSourceSize(f)
	if got != f.Size() {
		t.Fatalf("minSourceSize(%s) = %d, want its own size %d", f, got, f.Size())
	}
}

// TestRunSledgehammerFindsThreeByThreePattern builds a genuine k=3
// sledgehammer: digit 0 (value 1) is confined, in rows 0, 3 and 6, to
// columns 0, 3 and 6 (one row per box-band, one column per box-band, so
// no single box is ever fully depleted). The three row facts become the
// sources (9 claims total) and columns 0, 3 and 6 — still untouched and
// full — are the recipients (27 claims), so the claims accounting for
// digit 0 in the other six rows of those three columns can never be
// true and must be falsified in one pass.
func TestRunSledgehammerFindsThreeByThreePattern(t *testing.T) {
	p, err := core.NewPuzzle(3, make([]int, 81))
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	root := p.NewEventTree()
	setup := p.NewInitializerEvent(root, "confine digit 1 in rows 0/3/6 to columns 0/3/6")
	confinedRows := []int{0, 3, 6}
	confinedCols := map[int]bool{0: true, 3: true, 6: true}
	for _, y := range confinedRows {
		for x := 0; x < 9; x++ {
			if confinedCols[x] {
				continue
			}
			if err := p.Claim(x, y, 0).AssertFalse(setup); err != nil {
				t.Fatalf("AssertFalse(%d,%d,1): %v", x, y, err)
			}
		}
	}

	event, err := RunSledgehammer(p, root)
	if err != nil {
		t.Fatalf("RunSledgehammer: %v", err)
	}
	if event == nil {
		t.Fatal("expected a sledgehammer pattern, got nil")
	}
	if got, want := event.Description, "sledgehammer: 3 sources / 3 recipients falsify 18 claims"; got != want {
		t.Fatalf("event description = %q, want %q", got, want)
	}

	notConfined := map[int]bool{0: true, 3: true, 6: true}
	for y := 0; y < 9; y++ {
		if notConfined[y] {
			continue // rows 0, 3, 6 hold the sources' own claims, which stay active
		}
		for x := range confinedCols {
			if got := p.Claim(x, y, 0).State(); got != core.False {
				t.Fatalf("claim (%d,%d,1) = %s, want False", x, y, got)
			}
		}
	}
}
