package puzzles

import "fmt"

// StringLoader wraps a single already-in-memory digit string — the
// teacher's own HTTP wire format (81 characters, '0' for empty),
// generalized here to any side length N so internal/transport/http can
// keep accepting the same shape of request body without inventing a new
// parser.
type StringLoader struct {
	s string
}

// NewStringLoader wraps s as a StringLoader.
func NewStringLoader(s string) *StringLoader {
	return &StringLoader{s: s}
}

// Load implements Loader.
func (l *StringLoader) Load() (int, []int, error) {
	n := isqrt(len(l.s))
	if n == 0 {
		return 0, nil, fmt.Errorf("string loader: length %d is not a perfect square", len(l.s))
	}
	m := isqrt(n)
	if m == 0 {
		return 0, nil, fmt.Errorf("string loader: length %d does not correspond to a valid magnitude", len(l.s))
	}

	values := make([]int, n*n)
	for i := 0; i < len(l.s); i++ {
		v, err := charToValue(l.s[i], n)
		if err != nil {
			return 0, nil, fmt.Errorf("string loader: position %d: %w", i, err)
		}
		values[i] = v
	}
	return m, values, nil
}
