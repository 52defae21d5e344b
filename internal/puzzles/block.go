package puzzles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// BlockLoader reads either of two plain formats (spec.md §6.1):
//
//   - m⁴ whitespace-separated base-10 integers, one puzzle's values in
//     row-major order, 0 for empty; or
//   - m² lines of m² characters each, same alphabet as SadmanLoader.
//
// Load sniffs the first non-blank line to tell them apart: if it parses
// as whitespace-separated integers, the whole input is read as the
// integer form; otherwise it is read line-by-line like SadmanLoader.
type BlockLoader struct {
	r io.Reader
}

// NewBlockLoader wraps r as a BlockLoader.
func NewBlockLoader(r io.Reader) *BlockLoader {
	return &BlockLoader{r: r}
}

// Load implements Loader.
func (l *BlockLoader) Load() (int, []int, error) {
	scanner := bufio.NewScanner(l.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("block loader: %w", err)
	}
	if len(lines) == 0 {
		return 0, nil, fmt.Errorf("block loader: empty input")
	}

	if looksLikeIntegerBlock(lines[0]) {
		return l.loadIntegerBlock(lines)
	}
	return l.loadDigitLines(lines)
}

func looksLikeIntegerBlock(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return len(fields) > 1
}

func (l *BlockLoader) loadIntegerBlock(lines []string) (int, []int, error) {
	var tokens []string
	for _, line := range lines {
		tokens = append(tokens, strings.Fields(line)...)
	}
	count := len(tokens)
	n := isqrt(count)
	if n == 0 {
		return 0, nil, fmt.Errorf("block loader: %d integers is not a perfect square count", count)
	}
	m := isqrt(n)
	if m == 0 {
		return 0, nil, fmt.Errorf("block loader: %d values does not correspond to a valid magnitude", count)
	}

	values := make([]int, count)
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, nil, fmt.Errorf("block loader: token %d: %w", i, err)
		}
		if v < 0 || v > n {
			return 0, nil, fmt.Errorf("block loader: value %d at position %d out of range [0,%d]", v, i, n)
		}
		values[i] = v
	}
	return m, values, nil
}

func (l *BlockLoader) loadDigitLines(lines []string) (int, []int, error) {
	n := len(lines)
	m := isqrt(n)
	if m == 0 || m*m != n {
		return 0, nil, fmt.Errorf("block loader: %d data lines is not a perfect square magnitude", n)
	}

	values := make([]int, n*n)
	for y, line := range lines {
		if len(line) != n {
			return 0, nil, fmt.Errorf("block loader: line %d has %d characters, want %d", y, len(line), n)
		}
		for x := 0; x < n; x++ {
			v, err := charToValue(line[x], n)
			if err != nil {
				return 0, nil, fmt.Errorf("block loader: row %d: %w", y, err)
			}
			values[x+y*n] = v
		}
	}
	return m, values, nil
}
