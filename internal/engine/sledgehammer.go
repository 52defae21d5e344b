package engine

import (
	"fmt"

	"sledgehammer-sudoku/internal/core"
	"sledgehammer-sudoku/internal/gridset"
)

// RunSledgehammer looks for one generalized-subset (sledgehammer) pattern
// (spec.md §4.2) and, if found, falsifies it as a single new event under
// root. Returns (nil, nil) if no pattern is found at any size it tries.
//
// k sources S (pairwise disjoint facts) and k recipients R (each visible
// to at least two members of S) are a sledgehammer when ⋃S is a proper
// subset of ⋃R: every claim ⋃S accounts for, some recipient also
// accounts for, so X = (⋃R) \ (⋃S) can never be true and is falsified in
// one event.
func RunSledgehammer(p *core.Puzzle, root *core.Event) (*core.Event, error) {
	facts := distinctFacts(p.Facts())

	type eligible struct {
		fact    *core.Fact
		minSize int
	}
	var sources []eligible
	for _, f := range facts {
		if f.Size() < 2 {
			continue // singletons are auto-resolved, never sources
		}
		sources = append(sources, eligible{fact: f, minSize: minSourceSize(f)})
	}

	maxK := p.N / 2
	if maxK < 3 {
		maxK = 3
	}

	for k := 3; k <= maxK; k++ {
		var pool []*core.Fact
		for _, s := range sources {
			if s.minSize <= k {
				pool = append(pool, s.fact)
			}
		}
		if len(pool) < k {
			continue
		}
		event, err := searchSledgehammerAtSize(p, root, pool, k)
		if err != nil {
			return nil, err
		}
		if event != nil {
			return event, nil
		}
	}
	return nil, nil
}

// distinctFacts collapses facts with identical current membership to one
// representative, since such pairs always have the exact same visibility
// and would otherwise be explored twice for no benefit.
func distinctFacts(facts []*core.Fact) []*core.Fact {
	var out []*core.Fact
	for _, f := range facts {
		dup := false
		for _, g := range out {
			if f.MemberSet().Equals(g.MemberSet()) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, f)
		}
	}
	return out
}

// minSourceSize is the smallest number of f's visible facts whose union
// already contains f, if smaller than f.Size() itself — the smallest k
// at which f may participate as a sledgehammer source (spec.md §4.2).
// The search is capped at a small combination width for tractability;
// this is a practical bound, not a claim of exhaustive search.
func minSourceSize(f *core.Fact) int {
	target := f.MemberSet()
	visible := f.VisibleFacts()
	maxJ := f.Size() - 1
	if maxJ > 5 {
		maxJ = 5
	}
	for j := 2; j <= maxJ; j++ {
		if combinationCoversUnion(visible, j, target) {
			return j
		}
	}
	return f.Size()
}

func combinationCoversUnion(candidates []*core.Fact, j int, target *gridset.BackedSet) bool {
	n := len(candidates)
	if j > n {
		return false
	}
	combo := make([]int, 0, j)
	var rec func(start int, union *gridset.BackedSet) bool
	rec = func(start int, union *gridset.BackedSet) bool {
		if len(combo) == j {
			return target.IsSubsetOf(union)
		}
		remaining := j - len(combo)
		for i := start; i <= n-remaining; i++ {
			combo = append(combo, i)
			next := union.Union(candidates[i].MemberSet())
			if rec(i+1, next) {
				return true
			}
			combo = combo[:len(combo)-1]
		}
		return false
	}
	return rec(0, target.Universe().Empty())
}

// searchSledgehammerAtSize grows source combinations of exactly size k by
// seed, per spec.md §4.2's "growth by seed" strategy: direct neighbors of
// any chosen source are rejected (sources must be pairwise disjoint, so
// two facts sharing a claim can never both be sources); candidates two
// hops away are tried next.
func searchSledgehammerAtSize(p *core.Puzzle, root *core.Event, pool []*core.Fact, k int) (*core.Event, error) {
	inPool := make(map[int]bool, len(pool))
	for _, f := range pool {
		inPool[f.Index] = true
	}
	for _, seed := range pool {
		event, err := growSources(p, root, pool, inPool, []*core.Fact{seed}, k)
		if err != nil {
			return nil, err
		}
		if event != nil {
			return event, nil
		}
	}
	return nil, nil
}

func growSources(p *core.Puzzle, root *core.Event, pool []*core.Fact, inPool map[int]bool, combo []*core.Fact, k int) (*core.Event, error) {
	if len(combo) == k {
		return trySledgehammerRecipients(p, root, combo)
	}

	visCloud := visibleFactIndices(combo)
	frontier := visibleFactIndices(indicesToFacts(p, visCloud))
	for _, f := range combo {
		delete(frontier, f.Index)
	}
	for idx := range visCloud {
		delete(frontier, idx)
	}

	for idx := range frontier {
		if !inPool[idx] || inCombo(combo, idx) {
			continue
		}
		cand := p.Facts()[idx]
		next := append(append([]*core.Fact{}, combo...), cand)
		event, err := growSources(p, root, pool, inPool, next, k)
		if err != nil || event != nil {
			return event, err
		}
	}
	return nil, nil
}

func visibleFactIndices(facts []*core.Fact) map[int]*core.Fact {
	out := map[int]*core.Fact{}
	for _, f := range facts {
		for _, g := range f.VisibleFacts() {
			out[g.Index] = g
		}
	}
	return out
}

func indicesToFacts(p *core.Puzzle, m map[int]*core.Fact) []*core.Fact {
	out := make([]*core.Fact, 0, len(m))
	for _, f := range m {
		out = append(out, f)
	}
	_ = p
	return out
}

func inCombo(combo []*core.Fact, idx int) bool {
	for _, f := range combo {
		if f.Index == idx {
			return true
		}
	}
	return false
}

func trySledgehammerRecipients(p *core.Puzzle, root *core.Event, sources []*core.Fact) (*core.Event, error) {
	k := len(sources)
	count := map[int]int{}
	byIdx := map[int]*core.Fact{}
	for _, s := range sources {
		for _, g := range s.VisibleFacts() {
			if inCombo(sources, g.Index) {
				continue
			}
			count[g.Index]++
			byIdx[g.Index] = g
		}
	}
	var candidates []*core.Fact
	for idx, c := range count {
		if c >= 2 {
			candidates = append(candidates, byIdx[idx])
		}
	}
	if len(candidates) < k {
		return nil, nil
	}

	unionSources := unionMembers(sources)
	return searchRecipientCombos(p, root, sources, unionSources, candidates, k)
}

func unionMembers(facts []*core.Fact) *gridset.BackedSet {
	out := facts[0].MemberSet().Clone()
	for _, f := range facts[1:] {
		out.UnionInPlace(f.MemberSet())
	}
	return out
}

func searchRecipientCombos(p *core.Puzzle, root *core.Event, sources []*core.Fact, unionSources *gridset.BackedSet, candidates []*core.Fact, k int) (*core.Event, error) {
	n := len(candidates)
	combo := make([]int, 0, k)

	var event *core.Event
	var rerr error
	var rec func(start int)
	rec = func(start int) {
		if event != nil || rerr != nil {
			return
		}
		if len(combo) == k {
			picked := make([]*core.Fact, k)
			for i, idx := range combo {
				picked[i] = candidates[idx]
			}
			e, err := evaluateRecipients(p, root, sources, unionSources, picked)
			if err != nil {
				rerr = err
				return
			}
			if e != nil {
				event = e
			}
			return
		}
		remaining := k - len(combo)
		for i := start; i <= n-remaining; i++ {
			combo = append(combo, i)
			rec(i + 1)
			combo = combo[:len(combo)-1]
			if event != nil || rerr != nil {
				return
			}
		}
	}
	rec(0)
	return event, rerr
}

func evaluateRecipients(p *core.Puzzle, root *core.Event, sources []*core.Fact, unionSources *gridset.BackedSet, recipients []*core.Fact) (*core.Event, error) {
	unionRecipients := unionMembers(recipients)
	if !unionSources.IsProperSubsetOf(unionRecipients) {
		return nil, nil
	}
	for _, s := range sources {
		shared := 0
		for _, r := range recipients {
			if s.MemberSet().Intersects(r.MemberSet()) {
				shared++
			}
		}
		if shared < 2 {
			return nil, nil
		}
	}
	for _, r := range recipients {
		shared := 0
		for _, s := range sources {
			if r.MemberSet().Intersects(s.MemberSet()) {
				shared++
			}
		}
		if shared < 2 {
			return nil, nil
		}
	}

	diff := unionRecipients.Difference(unionSources)
	var toFalsify []int
	diff.ForEach(func(i int) bool {
		if p.ClaimByIndex(i).State() == core.Active {
			toFalsify = append(toFalsify, i)
		}
		return true
	})
	if len(toFalsify) == 0 {
		return nil, nil // the recipients add nothing new to falsify
	}

	event := p.NewTechniqueEvent(root, fmt.Sprintf("sledgehammer: %d sources / %d recipients falsify %d claims",
		len(sources), len(recipients), len(toFalsify)))
	for _, idx := range toFalsify {
		if err := p.ClaimByIndex(idx).AssertFalse(event); err != nil {
			return nil, err
		}
	}
	return event, nil
}
