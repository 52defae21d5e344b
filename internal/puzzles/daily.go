package puzzles

import (
	"fmt"
	"hash/fnv"
	"time"

	"sledgehammer-sudoku/pkg/constants"
)

// boardSide is the side length of dailyBase. The daily rotation is a
// fixed 9x9 feature regardless of what magnitude the generic solver core
// can otherwise handle.
const boardSide = 9

// dailyBase is a single well-known 9x9 puzzle (the worked example widely
// used to introduce sudoku solving by hand). GET /api/daily doesn't need
// a curated library of distinct grids to be a real rotation: the same
// grid under a transform that preserves every row/column/box constraint
// is a different puzzle to solve, so the day picks among the grid, its
// transpose, and its digit complement.
const dailyBase = "003020600900305001001806400008102900700000008006708200002609500800203009005010300"

// DailyVariant names one of the symmetry-preserving transforms applied
// to dailyBase to produce a given day's puzzle.
type DailyVariant int

const (
	VariantIdentity DailyVariant = iota
	VariantTranspose
	VariantComplement
	variantCount
)

func (v DailyVariant) String() string {
	switch v {
	case VariantIdentity:
		return "identity"
	case VariantTranspose:
		return "transpose"
	case VariantComplement:
		return "complement"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// DailyPuzzle picks the day's variant deterministically from date
// (FNV-1a over its DateFormat rendering), echoing the teacher's own
// GetTodayPuzzle hashing idea without its per-difficulty JSON bank, and
// returns a Loader ready to hand to core.NewPuzzle.
func DailyPuzzle(date time.Time) (Loader, DailyVariant) {
	h := fnv.New32a()
	h.Write([]byte(date.Format(constants.DateFormat)))
	variant := DailyVariant(h.Sum32() % uint32(variantCount))
	return NewStringLoader(applyVariant(dailyBase, variant)), variant
}

func applyVariant(s string, v DailyVariant) string {
	switch v {
	case VariantTranspose:
		return transposeSquare(s)
	case VariantComplement:
		return complementDigits(s)
	default:
		return s
	}
}

// transposeSquare swaps rows and columns of a boardSide x boardSide
// digit string. Transposing a valid sudoku grid yields another valid
// grid: rows and columns swap roles, and the 3x3 box partition is
// symmetric under transpose, so box constraints swap onto each other
// too.
func transposeSquare(s string) string {
	out := make([]byte, len(s))
	for y := 0; y < boardSide; y++ {
		for x := 0; x < boardSide; x++ {
			out[x*boardSide+y] = s[y*boardSide+x]
		}
	}
	return string(out)
}

// complementDigits maps every given digit d to 10-d (1<->9, 2<->8, ...,
// 5 fixed), leaving empty cells alone. This is just a relabeling of the
// digit alphabet, so it preserves every uniqueness constraint the
// original grid satisfied.
func complementDigits(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '0' {
			out[i] = '0'
		} else {
			out[i] = byte('0' + (10 - int(c-'0')))
		}
	}
	return string(out)
}
