package puzzles

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SadmanLoader reads the Sadman Software puzzle text format: a header
// line "[Puzzle]" followed by m² lines of m² characters each (spec.md
// §6.1). Magnitude is inferred from the number of data lines.
type SadmanLoader struct {
	r io.Reader
}

// NewSadmanLoader wraps r as a SadmanLoader.
func NewSadmanLoader(r io.Reader) *SadmanLoader {
	return &SadmanLoader{r: r}
}

// Load implements Loader.
func (l *SadmanLoader) Load() (int, []int, error) {
	scanner := bufio.NewScanner(l.r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("sadman loader: %w", err)
	}
	if len(lines) == 0 {
		return 0, nil, fmt.Errorf("sadman loader: empty input")
	}
	if strings.EqualFold(lines[0], "[Puzzle]") {
		lines = lines[1:]
	}

	n := len(lines)
	m := isqrt(n)
	if m == 0 || m*m != n {
		return 0, nil, fmt.Errorf("sadman loader: %d data lines is not a perfect square magnitude", n)
	}

	values := make([]int, n*n)
	for y, line := range lines {
		if len(line) != n {
			return 0, nil, fmt.Errorf("sadman loader: line %d has %d characters, want %d", y, len(line), n)
		}
		for x := 0; x < n; x++ {
			v, err := charToValue(line[x], n)
			if err != nil {
				return 0, nil, fmt.Errorf("sadman loader: row %d: %w", y, err)
			}
			values[x+y*n] = v
		}
	}
	return m, values, nil
}

// isqrt returns the integer square root of n, or 0 if n is not a
// perfect square.
func isqrt(n int) int {
	if n < 0 {
		return 0
	}
	r := 0
	for r*r < n {
		r++
	}
	if r*r == n {
		return r
	}
	return 0
}
