// Package musiccoder compiles and runs MusicCoder programs: sheet-music
// notation interpreted as a byte-tape esolang, driven through a lexer,
// a loop resolver, and a tape executor in sequence.
package musiccoder

import (
	"github.com/cbegin/musiccoder-go/internal/executor"
)

// Interpreter holds the I/O and tape configuration a Run call executes
// against. It carries no per-program state, so one Interpreter can run
// any number of Programs, including concurrently from different
// goroutines (each Run allocates its own tape and loop-state copy).
type Interpreter struct {
	cfg config
}

// New builds an Interpreter from options, defaulting to a 30,000-cell
// tape reading legato input from os.Stdin and writing staccato output to
// os.Stdout.
func New(opts ...Option) *Interpreter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Interpreter{cfg: cfg}
}

// Result is the tape and pointer state left behind by a clean Run.
type Result struct {
	Tape []byte
	Ptr  int
}

// Run executes a compiled Program to completion (MusicCoder has no
// explicit halt instruction; a program ends when its token sequence
// runs out or an Infinite loop never yields control back).
func (in *Interpreter) Run(prog *Program) (*Result, error) {
	res, err := executor.Run(prog.Tokens, prog.LoopMap, prog.LoopInfo, executor.Config{
		TapeSize: in.cfg.tapeSize,
		Stdin:    in.cfg.stdin,
		Stdout:   in.cfg.stdout,
		Tracer:   in.cfg.tracer,
	})
	if err != nil {
		return nil, wrapStageError(err)
	}
	return &Result{Tape: res.Tape, Ptr: res.Ptr}, nil
}

// RunSource compiles and runs source in one step, the common case for
// callers that don't need the intermediate Program (a host that only
// ever executes, never inspects the token stream).
func (in *Interpreter) RunSource(source string) (*Result, error) {
	prog, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return in.Run(prog)
}
