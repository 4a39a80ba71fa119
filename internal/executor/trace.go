package executor

import "github.com/cbegin/musiccoder-go/internal/token"

// Snapshot is the per-step state handed to a Tracer, mirroring exactly
// the fields the original interpreter's --debug mode printed: program
// counter, the token about to execute, the pointer, the cell it
// currently points at, and the previous-note register.
type Snapshot struct {
	PC      int
	Kind    token.Kind
	Ptr     int
	Cell    byte
	PrevVal int
}

// Tracer observes each step before it executes. Implementations may
// block (an interactive single-stepper waiting on a keypress); the
// executor is single-threaded and makes no progress while Step blocks.
type Tracer interface {
	Step(s Snapshot)
}

// TracerFunc adapts a plain function to a Tracer.
type TracerFunc func(Snapshot)

func (f TracerFunc) Step(s Snapshot) { f(s) }
