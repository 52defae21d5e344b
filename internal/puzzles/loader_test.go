package puzzles

import (
	"strings"
	"testing"
)

func solvedGrid9String() string {
	return "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
}

func TestStringLoaderValidGrid(t *testing.T) {
	l := NewStringLoader(solvedGrid9String())
	m, values, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m != 3 {
		t.Fatalf("expected magnitude 3, got %d", m)
	}
	if len(values) != 81 {
		t.Fatalf("expected 81 values, got %d", len(values))
	}
}

func TestStringLoaderEmptyCells(t *testing.T) {
	s := strings.Repeat("0", 81)
	l := NewStringLoader(s)
	m, values, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m != 3 {
		t.Fatalf("expected magnitude 3, got %d", m)
	}
	for i, v := range values {
		if v != 0 {
			t.Fatalf("expected all-empty grid, got %d at %d", v, i)
		}
	}
}

func TestStringLoaderBadLength(t *testing.T) {
	l := NewStringLoader("1234567")
	if _, _, err := l.Load(); err == nil {
		t.Fatal("expected error for non-square length")
	}
}

func TestSadmanLoaderWithHeader(t *testing.T) {
	input := "[Puzzle]\n" + gridToLines(solvedGrid9String(), 9)
	l := NewSadmanLoader(strings.NewReader(input))
	m, values, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m != 3 {
		t.Fatalf("expected magnitude 3, got %d", m)
	}
	if len(values) != 81 {
		t.Fatalf("expected 81 values, got %d", len(values))
	}
}

func TestSadmanLoaderRejectsBadLineLength(t *testing.T) {
	input := "[Puzzle]\n123\n456\n789\n"
	l := NewSadmanLoader(strings.NewReader(input))
	if _, _, err := l.Load(); err == nil {
		t.Fatal("expected error for non-square magnitude")
	}
}

func TestBlockLoaderDigitLines(t *testing.T) {
	input := gridToLines(solvedGrid9String(), 9)
	l := NewBlockLoader(strings.NewReader(input))
	m, values, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m != 3 || len(values) != 81 {
		t.Fatalf("unexpected result: m=%d len=%d", m, len(values))
	}
}

func TestBlockLoaderIntegerTokens(t *testing.T) {
	var sb strings.Builder
	grid := solvedGrid9String()
	for i, c := range grid {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(c))
	}
	l := NewBlockLoader(strings.NewReader(sb.String()))
	m, values, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m != 3 || len(values) != 81 {
		t.Fatalf("unexpected result: m=%d len=%d", m, len(values))
	}
}

func gridToLines(grid string, n int) string {
	var sb strings.Builder
	for y := 0; y < n; y++ {
		sb.WriteString(grid[y*n : y*n+n])
		sb.WriteByte('\n')
	}
	return sb.String()
}
