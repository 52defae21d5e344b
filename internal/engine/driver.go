package engine

import (
	"github.com/google/uuid"

	"sledgehammer-sudoku/internal/core"
	"sledgehammer-sudoku/internal/observer"
)

// Options configures one Solve call.
type Options struct {
	// Observer, if set, is notified of the initializer's root event and
	// every technique event the driver produces.
	Observer observer.Observer

	// Cancel, if set, stops the driver before its next pass once closed.
	Cancel <-chan struct{}

	// WhatIf enables the hypothetical-reasoning technique (spec.md §4.4).
	// It is the most expensive technique and is tried last each pass.
	WhatIf bool

	// WhatIfMaxDepth bounds how many levels deep RunWhatIf refines its
	// search when a seed fact produces no falsification.
	WhatIfMaxDepth int
}

// Result is what Solve returns once no technique makes further progress,
// the puzzle is solved, or the caller cancels. ID stamps the run so a
// caller (the HTTP transport, in particular) has a stable handle to
// refer back to this solve by, the way the teacher stamps each session
// with an identifier at issuance time.
type Result struct {
	ID     uuid.UUID
	Puzzle *core.Puzzle
	Root   *core.Event
	Solved bool
}

// Solve initializes p's givens and repeatedly applies sledgehammer,
// color-chain and (if enabled) what-if until none of them can make
// progress, per spec.md §4.5's driver loop.
func Solve(p *core.Puzzle, opts Options) (*Result, error) {
	root := p.NewEventTree()
	id := uuid.New()

	if err := Initialize(p, root); err != nil {
		if core.IsContradiction(err) {
			return &Result{ID: id, Puzzle: p, Root: root, Solved: false}, nil
		}
		return nil, err
	}
	notify(opts.Observer, root)

	for {
		if cancelled(opts.Cancel) {
			return &Result{ID: id, Puzzle: p, Root: root, Solved: p.Solved()}, nil
		}
		if p.Solved() {
			return &Result{ID: id, Puzzle: p, Root: root, Solved: true}, nil
		}

		progressed, err := runPass(p, root, opts)
		if err != nil {
			if core.IsContradiction(err) {
				return &Result{ID: id, Puzzle: p, Root: root, Solved: false}, nil
			}
			return nil, err
		}
		if !progressed {
			return &Result{ID: id, Puzzle: p, Root: root, Solved: p.Solved()}, nil
		}
	}
}

// runPass tries each technique in turn, in increasing order of cost, and
// stops at the first one that makes progress — spec.md §4.5 leaves the
// ordering to the driver; cheapest-first keeps expensive what-if
// branches off the hot path whenever a cheaper technique still applies.
func runPass(p *core.Puzzle, root *core.Event, opts Options) (bool, error) {
	if event, err := RunSledgehammer(p, root); err != nil {
		return false, err
	} else if event != nil {
		notify(opts.Observer, event)
		return true, nil
	}

	if event, err := RunColorChain(p, root); err != nil {
		return false, err
	} else if event != nil {
		notify(opts.Observer, event)
		return true, nil
	}

	if opts.WhatIf {
		if event, err := RunWhatIf(p, root, opts.WhatIfMaxDepth); err != nil {
			return false, err
		} else if event != nil {
			notify(opts.Observer, event)
			return true, nil
		}
	}

	return false, nil
}

func notify(o observer.Observer, e *core.Event) {
	if o != nil {
		o.OnEvent(e)
	}
}

func cancelled(c <-chan struct{}) bool {
	if c == nil {
		return false
	}
	select {
	case <-c:
		return true
	default:
		return false
	}
}
