package musiccoder

import (
	"errors"
	"fmt"

	"github.com/cbegin/musiccoder-go/internal/executor"
	"github.com/cbegin/musiccoder-go/internal/lexer"
	"github.com/cbegin/musiccoder-go/internal/resolver"
)

// ErrorKind classifies a RuntimeError by which of the three pipeline
// stages raised it.
type ErrorKind int

const (
	InvalidNote ErrorKind = iota
	UnmatchedOpen
	UnmatchedClose
	PointerUnderflow
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidNote:
		return "InvalidNote"
	case UnmatchedOpen:
		return "UnmatchedOpen"
	case UnmatchedClose:
		return "UnmatchedClose"
	case PointerUnderflow:
		return "PointerUnderflow"
	default:
		return "Unknown"
	}
}

// RuntimeError is the error type Compile and Run return for every
// lexing, resolution and pointer fault, unifying the three internal
// packages' distinct error structs behind one Kind so a host never needs
// to know the pipeline's stage layout. A failed staccato write is the
// one error Run returns as is (see wrapStageError).
type RuntimeError struct {
	Kind       ErrorKind
	TokenIndex int
	Lexeme     string
	msg        string
}

func (e *RuntimeError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("%s at token %d: %s", e.Kind, e.TokenIndex, e.msg)
	}
	return fmt.Sprintf("%s at token %d", e.Kind, e.TokenIndex)
}

// wrapStageError converts a pipeline-internal error into a RuntimeError.
// An error it doesn't recognize — a staccato write failing against a
// host-supplied io.Writer is the only such case — passes through
// unwrapped rather than being forced into the Kind taxonomy.
func wrapStageError(err error) error {
	if err == nil {
		return nil
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &RuntimeError{Kind: InvalidNote, TokenIndex: lexErr.TokenIndex, Lexeme: lexErr.Lexeme, msg: lexErr.Reason}
	}

	var resErr *resolver.Error
	if errors.As(err, &resErr) {
		kind := UnmatchedOpen
		if resErr.Kind == "UnmatchedClose" {
			kind = UnmatchedClose
		}
		return &RuntimeError{Kind: kind, TokenIndex: resErr.TokenIndex}
	}

	var execErr *executor.Error
	if errors.As(err, &execErr) {
		return &RuntimeError{Kind: PointerUnderflow, TokenIndex: execErr.TokenIndex}
	}

	return err
}
