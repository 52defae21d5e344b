package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sledgehammer-sudoku/internal/core"
	"sledgehammer-sudoku/internal/engine"
	"sledgehammer-sudoku/internal/puzzles"
)

var (
	format      string
	whatIf      bool
	whatIfDepth int
	rootCmd     = &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve a sudoku-family puzzle file",
		Long: `solve reads a puzzle in one of three text formats and runs it
through the sledgehammer/color-chain/what-if solver, printing the
resulting event tree and final grid.`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}
)

func init() {
	rootCmd.Flags().StringVar(&format, "format", "", "puzzle format: sadman, block, or string (default: autodetect)")
	rootCmd.Flags().BoolVar(&whatIf, "whatif", false, "enable the hypothetical-reasoning technique")
	rootCmd.Flags().IntVar(&whatIfDepth, "whatif-depth", 2, "max refinement depth for the what-if technique")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ldr, err := resolveLoader(path, f)
	if err != nil {
		return err
	}

	m, values, err := ldr.Load()
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	p, err := core.NewPuzzle(m, values)
	if err != nil {
		return fmt.Errorf("build puzzle: %w", err)
	}

	result, err := engine.Solve(p, engine.Options{
		WhatIf:         whatIf,
		WhatIfMaxDepth: whatIfDepth,
	})
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	printEvent(cmd.OutOrStdout(), result.Root, 0)
	fmt.Fprintln(cmd.OutOrStdout())
	printGrid(cmd.OutOrStdout(), p)

	if result.Solved {
		fmt.Fprintln(cmd.OutOrStdout(), "\nsolved")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "\nnot solved")
	}
	return nil
}

// resolveLoader picks a concrete puzzles.Loader: an explicit --format
// flag wins, otherwise it sniffs the first line the way
// puzzles.BlockLoader does internally.
func resolveLoader(path string, f *os.File) (puzzles.Loader, error) {
	switch format {
	case "sadman":
		return puzzles.NewSadmanLoader(f), nil
	case "block":
		return puzzles.NewBlockLoader(f), nil
	case "string":
		return stringLoaderFromFile(f)
	case "":
		return puzzles.NewBlockLoader(f), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want sadman, block, or string)", format)
	}
}

func stringLoaderFromFile(f *os.File) (puzzles.Loader, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return puzzles.NewStringLoader(strings.TrimSpace(string(data))), nil
}

func printEvent(w io.Writer, e *core.Event, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s[%s] %s\n", indent, e.Kind, e.Description)
	for _, child := range e.Children {
		printEvent(w, child, depth+1)
	}
}

func printGrid(w interface{ Write([]byte) (int, error) }, p *core.Puzzle) {
	grid := p.Grid()
	n := p.N
	for y := 0; y < n; y++ {
		row := grid[y*n : y*n+n]
		for _, v := range row {
			if v == 0 {
				fmt.Fprint(w, ". ")
			} else {
				fmt.Fprintf(w, "%d ", v)
			}
		}
		fmt.Fprintln(w)
	}
}
