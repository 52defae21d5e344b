// Package puzzles implements the loaders that turn a puzzle's on-disk or
// in-memory representation into the (magnitude, values) pair
// core.NewPuzzle expects, plus the fixed puzzle-of-the-day (DailyPuzzle)
// used by the HTTP transport's daily endpoint.
package puzzles

// Loader produces a puzzle's magnitude and row-major given values.
// Validation of the returned pair (range, length, duplicate givens) is
// core.NewPuzzle's job, not the loader's — a loader only has to parse
// its format correctly.
type Loader interface {
	Load() (m int, values []int, err error)
}
