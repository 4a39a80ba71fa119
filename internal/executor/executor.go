// Package executor interprets a resolved MusicCoder token sequence
// against a byte tape. It is the PC-driven heart of the runtime: it
// advances the program counter, maintains the previous-note register,
// performs interval arithmetic, honors staccato/legato I/O, and drives
// the four loop modes according to the resolver's classification.
package executor

import (
	"fmt"
	"io"

	clone "github.com/huandu/go-clone/generic"

	"github.com/cbegin/musiccoder-go/internal/resolver"
	"github.com/cbegin/musiccoder-go/internal/token"
)

// Error reports a fatal runtime fault: the pointer was decremented below
// zero. It is the only error class PointerUnderflow-checked code raises;
// a staccato write failure instead surfaces the host writer's own error
// unwrapped, and legato I/O failures degrade to writing 0 rather than
// failing at all.
type Error struct {
	TokenIndex int
}

func (e *Error) Error() string {
	return fmt.Sprintf("PointerUnderflow at token %d", e.TokenIndex)
}

// Config bundles the executor's external resources and knobs.
type Config struct {
	TapeSize int
	Stdin    io.Reader
	Stdout   io.Writer
	Tracer   Tracer // optional; nil means no tracing
}

// Result is the tape/pointer state after a clean run, useful for tests
// and for embedding hosts that want to inspect memory post-execution.
type Result struct {
	Tape []byte
	Ptr  int
}

// Run executes tokens against a fresh tape built from cfg, using loopMap
// and loopInfo from the resolver. loopInfo is deep-cloned into the
// executor's own map before execution begins so repeated runs over the
// same resolved program never share mutable state (SkipCount is written
// into this copy for TapeDriven loops; the resolver's own InfoTable is
// never mutated).
func Run(tokens []token.Token, loopMap resolver.LoopMap, loopInfo resolver.InfoTable, cfg Config) (*Result, error) {
	tape := NewTape(cfg.TapeSize)
	ptr := 0
	prevVal := 0

	info := clone.Clone(loopInfo)
	activeLoops := make(map[int]int)

	for pc := 0; pc < len(tokens); pc++ {
		tok := tokens[pc]

		if cfg.Tracer != nil {
			cfg.Tracer.Step(Snapshot{PC: pc, Kind: tok.Kind, Ptr: ptr, Cell: tape.Get(ptr), PrevVal: prevVal})
		}

		switch tok.Kind {
		case token.RestLeft:
			ptr--
			prevVal = 0
			if ptr < 0 {
				return nil, &Error{TokenIndex: pc}
			}

		case token.RestRight:
			ptr++
			prevVal = 0
			tape.GrowTo(ptr + 1)

		case token.LoopStart:
			pc = execLoopStart(pc, loopMap, info, activeLoops, tape, ptr, tokens)

		case token.LoopEnd:
			pc = execLoopEnd(pc, loopMap, info, activeLoops, tape, ptr)

		case token.Note:
			var err error
			prevVal, pc, err = execNote(tok, pc, tape, ptr, prevVal, cfg, tokens)
			if err != nil {
				return nil, err
			}
		}
	}

	return &Result{Tape: tape.Bytes(), Ptr: ptr}, nil
}

// execLoopStart applies the LoopStart rule and returns the (possibly
// jumped) program counter. For Brainfuck loops it jumps past the body
// when the current cell is zero. For the other three modes it seeds
// activeLoops on first encounter, computing a TapeDriven loop's counter
// from either a run of trailing unsuffixed notes or the next cell.
func execLoopStart(pc int, loopMap resolver.LoopMap, info resolver.InfoTable, activeLoops map[int]int, tape *Tape, ptr int, tokens []token.Token) int {
	li := info[pc]

	if li.Mode == token.Brainfuck {
		if tape.Get(ptr) == 0 {
			return loopMap[pc]
		}
		return pc
	}

	if _, seen := activeLoops[pc]; seen {
		return pc
	}

	switch li.Mode {
	case token.Infinite:
		activeLoops[pc] = -1
	case token.TapeDriven:
		endPC := loopMap[pc]
		lookahead := endPC + 1
		localPrev := 0
		sum := 0
		found := false
		for lookahead < len(tokens) && tokens[lookahead].Kind == token.Note {
			note := tokens[lookahead]
			if note.Staccato || note.Legato {
				break
			}
			found = true
			switch {
			case note.MIDI > localPrev:
				sum += note.MIDI
			case note.MIDI < localPrev:
				sum -= note.MIDI
			}
			localPrev = note.MIDI
			lookahead++
		}
		if found {
			activeLoops[pc] = sum
			li.SkipCount = lookahead - (endPC + 1)
			info[pc] = li
		} else {
			activeLoops[pc] = int(tape.Get(ptr + 1))
		}
	default: // Fixed
		activeLoops[pc] = li.Count
	}
	return pc
}

// execLoopEnd applies the LoopEnd rule and returns the (possibly jumped)
// program counter.
func execLoopEnd(pc int, loopMap resolver.LoopMap, info resolver.InfoTable, activeLoops map[int]int, tape *Tape, ptr int) int {
	start := loopMap[pc]
	li := info[start]

	if li.Mode == token.Brainfuck {
		if tape.Get(ptr) != 0 {
			return start
		}
		return pc
	}

	remaining, ok := activeLoops[start]
	if !ok {
		return pc
	}
	if remaining == -1 {
		return start
	}

	remaining--
	if remaining > 0 {
		activeLoops[start] = remaining
		return start
	}
	delete(activeLoops, start)
	return pc + li.SkipCount
}

// execNote applies interval arithmetic for a single note, including the
// equal-interval look-ahead that may consume and execute the following
// note's I/O before returning. It returns the updated previous-note
// register and program counter (advanced by one extra when a note was
// consumed, so the dispatch loop's own +1 skips past it entirely).
func execNote(tok token.Token, pc int, tape *Tape, ptr int, prevVal int, cfg Config, tokens []token.Token) (int, int, error) {
	c := tok.MIDI
	effective := c

	switch {
	case c > prevVal:
		tape.Set(ptr, mod256(int(tape.Get(ptr))+c))
	case c < prevVal:
		tape.Set(ptr, mod256(int(tape.Get(ptr))-c))
	default:
		if pc+1 < len(tokens) && tokens[pc+1].Kind == token.Note {
			next := tokens[pc+1]
			delta := next.MIDI - c
			tape.Set(ptr, mod256(int(tape.Get(ptr))+delta))

			if err := performIO(next, tape, ptr, cfg); err != nil {
				return effective, pc, err
			}
			pc++
			effective = next.MIDI
		}
	}

	if err := performIO(tok, tape, ptr, cfg); err != nil {
		return effective, pc, err
	}
	return effective, pc, nil
}

// performIO fires a note's articulation I/O against the current cell:
// staccato writes the cell, legato reads a byte into it (EOF or a read
// error both degrade to storing 0, never a fatal error). A staccato
// write failure is the one I/O fault the executor propagates, since
// unlike a legato EOF it has no sensible degrade-to-default behavior.
func performIO(tok token.Token, tape *Tape, ptr int, cfg Config) error {
	if tok.Staccato && cfg.Stdout != nil {
		if _, err := cfg.Stdout.Write([]byte{tape.Get(ptr)}); err != nil {
			return err
		}
	}
	if tok.Legato {
		var buf [1]byte
		n := 0
		if cfg.Stdin != nil {
			n, _ = cfg.Stdin.Read(buf[:])
		}
		if n > 0 {
			tape.Set(ptr, buf[0])
		} else {
			tape.Set(ptr, 0)
		}
	}
	return nil
}
