package gridset

import "math/bits"

// BackedSet is a subset of a Universe represented as a bitmask split
// across 64-bit words. Membership and single-index mutation are O(1);
// union, intersection and difference are O(w) in the number of words.
// Iteration visits indices in universe order.
type BackedSet struct {
	universe Universe
	words    []uint64
}

// Universe returns the universe this set is backed by.
func (s *BackedSet) Universe() Universe {
	return s.universe
}

// Has reports whether index i is a member of the set.
func (s *BackedSet) Has(i int) bool {
	if i < 0 || i >= s.universe.size {
		return false
	}
	return s.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// Add inserts index i into the set. Idempotent.
func (s *BackedSet) Add(i int) {
	if i < 0 || i >= s.universe.size {
		return
	}
	s.words[i/wordBits] |= uint64(1) << uint(i%wordBits)
}

// Remove deletes index i from the set. Idempotent.
func (s *BackedSet) Remove(i int) {
	if i < 0 || i >= s.universe.size {
		return
	}
	s.words[i/wordBits] &^= uint64(1) << uint(i%wordBits)
}

// Count returns the number of members.
func (s *BackedSet) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s *BackedSet) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s *BackedSet) Clone() *BackedSet {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &BackedSet{universe: s.universe, words: words}
}

func (s *BackedSet) sameUniverse(other *BackedSet) bool {
	return s.universe.size == other.universe.size
}

// Union returns a new set containing members of either set.
func (s *BackedSet) Union(other *BackedSet) *BackedSet {
	out := s.Clone()
	out.UnionInPlace(other)
	return out
}

// UnionInPlace mutates s to contain members of both s and other.
func (s *BackedSet) UnionInPlace(other *BackedSet) {
	if !s.sameUniverse(other) {
		return
	}
	for i, w := range other.words {
		s.words[i] |= w
	}
}

// Intersect returns a new set containing members present in both sets.
func (s *BackedSet) Intersect(other *BackedSet) *BackedSet {
	out := s.Clone()
	out.IntersectInPlace(other)
	return out
}

// IntersectInPlace mutates s to the intersection of s and other.
func (s *BackedSet) IntersectInPlace(other *BackedSet) {
	if !s.sameUniverse(other) {
		for i := range s.words {
			s.words[i] = 0
		}
		return
	}
	for i, w := range other.words {
		s.words[i] &= w
	}
}

// Difference returns a new set containing members of s not in other.
func (s *BackedSet) Difference(other *BackedSet) *BackedSet {
	out := s.Clone()
	out.SubtractInPlace(other)
	return out
}

// SubtractInPlace mutates s to remove every member also in other.
func (s *BackedSet) SubtractInPlace(other *BackedSet) {
	if !s.sameUniverse(other) {
		return
	}
	for i, w := range other.words {
		s.words[i] &^= w
	}
}

// IsSubsetOf reports whether every member of s is also a member of other.
func (s *BackedSet) IsSubsetOf(other *BackedSet) bool {
	if !s.sameUniverse(other) {
		return false
	}
	for i, w := range s.words {
		if w&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// IsProperSubsetOf reports whether s is a subset of other and strictly smaller.
func (s *BackedSet) IsProperSubsetOf(other *BackedSet) bool {
	return s.IsSubsetOf(other) && s.Count() < other.Count()
}

// Equals reports whether s and other have identical membership.
func (s *BackedSet) Equals(other *BackedSet) bool {
	if !s.sameUniverse(other) {
		return false
	}
	for i, w := range s.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether s and other share at least one member.
func (s *BackedSet) Intersects(other *BackedSet) bool {
	if !s.sameUniverse(other) {
		return false
	}
	for i, w := range s.words {
		if w&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// IntersectionCount returns the number of members s and other have in
// common, without allocating an intermediate set.
func (s *BackedSet) IntersectionCount(other *BackedSet) int {
	if !s.sameUniverse(other) {
		return 0
	}
	n := 0
	for i, w := range s.words {
		n += bits.OnesCount64(w & other.words[i])
	}
	return n
}

// ForEach calls fn for every member in ascending universe order, stopping
// early if fn returns false.
func (s *BackedSet) ForEach(fn func(i int) bool) {
	for wi, w := range s.words {
		base := wi * wordBits
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			if !fn(base + tz) {
				return
			}
			w &= w - 1
		}
	}
}

// ToSlice returns the members as a sorted slice.
func (s *BackedSet) ToSlice() []int {
	out := make([]int, 0, s.Count())
	s.ForEach(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Only returns the single member if the set has exactly one, else (0, false).
func (s *BackedSet) Only() (int, bool) {
	if s.Count() != 1 {
		return 0, false
	}
	var found int
	s.ForEach(func(i int) bool {
		found = i
		return false
	})
	return found, true
}
