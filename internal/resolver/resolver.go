// Package resolver performs the single linear sweep that pairs LoopStart
// and LoopEnd tokens and classifies each loop's mode. It is pure and
// total over a well-nested token sequence: its output depends only on
// the token sequence handed to Resolve.
package resolver

import (
	"fmt"

	"github.com/cbegin/musiccoder-go/internal/token"
)

// LoopMap is a bijective index pairing: LoopMap[s] is a LoopEnd index for
// LoopStart index s and vice versa.
type LoopMap map[int]int

// Info holds the metadata resolved for one loop, keyed by its LoopStart
// index. SkipCount is always zero here; the executor populates it at run
// time for TapeDriven loops that consume trailing notes as their
// counter (see spec.md §9's note on mutable execution state).
type Info struct {
	Mode        token.LoopMode
	Count       int
	Infinite    bool
	UseNextCell bool
	SkipCount   int
}

// InfoTable maps a LoopStart index to its resolved Info.
type InfoTable map[int]Info

// Error reports a loop-nesting failure: an unmatched ":|" or "|:".
type Error struct {
	Kind       string // "UnmatchedClose" or "UnmatchedOpen"
	TokenIndex int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at token %d", e.Kind, e.TokenIndex)
}

// Resolve walks tokens once with a stack of open LoopStart indices,
// pairing each LoopEnd with the most recent unmatched LoopStart.
func Resolve(tokens []token.Token) (LoopMap, InfoTable, error) {
	loopMap := make(LoopMap)
	info := make(InfoTable)
	var stack []int

	for i, tok := range tokens {
		switch tok.Kind {
		case token.LoopStart:
			stack = append(stack, i)
		case token.LoopEnd:
			if len(stack) == 0 {
				return nil, nil, &Error{Kind: "UnmatchedClose", TokenIndex: i}
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			loopMap[start] = i
			loopMap[i] = start
			info[start] = Info{
				Mode:        tok.Mode,
				Count:       tok.Count,
				Infinite:    tok.Infinite,
				UseNextCell: tok.UseNextCell,
			}
		}
	}

	if len(stack) > 0 {
		return nil, nil, &Error{Kind: "UnmatchedOpen", TokenIndex: stack[0]}
	}
	return loopMap, info, nil
}
