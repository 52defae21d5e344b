package puzzles

import "fmt"

// charToValue decodes one puzzle-text cell character into a value in
// [0, n]: '.' or '0' means empty; '1'-'9' then 'A'-'Z' cover values up
// to 35, enough for any magnitude this engine can realistically solve.
func charToValue(c byte, n int) (int, error) {
	var v int
	switch {
	case c == '.':
		v = 0
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	default:
		return 0, fmt.Errorf("invalid puzzle character %q", c)
	}
	if v > n {
		return 0, fmt.Errorf("value %d exceeds magnitude bound %d", v, n)
	}
	return v, nil
}

func valueToChar(v int) byte {
	if v == 0 {
		return '.'
	}
	if v <= 9 {
		return byte('0' + v)
	}
	return byte('A' + (v - 10))
}
