// Package observer defines the read-only hook the solver driver notifies
// as it produces events, so callers (HTTP handlers, CLI progress output,
// tests) can watch a solve unfold without coupling to internal/engine.
package observer

import "sledgehammer-sudoku/internal/core"

// Observer receives each event the driver produces, in the order they
// complete: the initializer's root, then one per technique application.
// Implementations must not mutate anything reachable from e.
type Observer interface {
	OnEvent(e *core.Event)
}

// Func adapts a plain function to the Observer interface.
type Func func(e *core.Event)

// OnEvent implements Observer.
func (f Func) OnEvent(e *core.Event) { f(e) }
