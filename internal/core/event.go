package core

// EventKind classifies who produced an Event.
type EventKind int

const (
	// EventRoot is the single opaque root of a solve's event tree.
	EventRoot EventKind = iota
	// EventTechnique is a top-level falsification produced by one of the
	// driver's techniques (sledgehammer, color-chain, what-if, ...).
	EventTechnique
	// EventSingletonCollapse is the auto-resolution rule: a fact shrank
	// to one active member, which was then asserted true.
	EventSingletonCollapse
	// EventSubsetCollapse is the auto-resolution rule: a fact became a
	// proper subset of a visible fact (or vice versa), eliminating the
	// difference.
	EventSubsetCollapse
	// EventInitializer marks a claim asserted true directly from the
	// loader's given values, before any technique runs.
	EventInitializer
)

func (k EventKind) String() string {
	switch k {
	case EventRoot:
		return "root"
	case EventTechnique:
		return "technique"
	case EventSingletonCollapse:
		return "singleton-collapse"
	case EventSubsetCollapse:
		return "subset-collapse"
	case EventInitializer:
		return "initializer"
	default:
		return "unknown"
	}
}

// Event is a node in the solve-time tree. Every falsification belongs to
// exactly one Event; cascades triggered by that falsification are
// recorded as its children, recursively (I6). The tree is append-only:
// there is no parent-pointer cursor for playback, unlike the teacher
// this engine descends from — that cursor is an animation concern
// outside this core (spec.md §9).
type Event struct {
	ID          int
	Kind        EventKind
	Description string

	// Falsified holds the claim indices this event drove to false,
	// directly (not counting cascades, which live in Children).
	Falsified []int

	// AssertedTrue is the claim index this event drove to true, or -1.
	AssertedTrue int

	Children []*Event
}

// newEventTree returns a fresh root event for one solve.
func newEventTree() *Event {
	return &Event{ID: 0, Kind: EventRoot, Description: "root", AssertedTrue: -1}
}

// newChild appends and returns a new child event under e.
func (e *Event) newChild(seq *int, kind EventKind, description string) *Event {
	*seq++
	child := &Event{
		ID:           *seq,
		Kind:         kind,
		Description:  description,
		AssertedTrue: -1,
	}
	e.Children = append(e.Children, child)
	return child
}

// AllFalsified returns every claim index falsified by e or any of its
// descendants, in traversal order. Read-only — observers use this; they
// must never mutate the puzzle through it.
func (e *Event) AllFalsified() []int {
	var out []int
	var walk func(n *Event)
	walk = func(n *Event) {
		out = append(out, n.Falsified...)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(e)
	return out
}

// IsLeaf reports whether e has no cascade children.
func (e *Event) IsLeaf() bool {
	return len(e.Children) == 0
}
