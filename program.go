package musiccoder

import (
	"github.com/cbegin/musiccoder-go/internal/lexer"
	"github.com/cbegin/musiccoder-go/internal/resolver"
	"github.com/cbegin/musiccoder-go/internal/token"
)

// Program is the stable output of static analysis: a lexed and
// loop-resolved token sequence, ready to run or to hand to a peripheral
// tool (a MusicXML converter, a visualizer) that only needs the token
// schema and never touches the executor.
type Program struct {
	Tokens    []token.Token
	LoopMap   resolver.LoopMap
	LoopInfo  resolver.InfoTable
	SourceLen int
}

// Compile lexes and resolves source, returning a Program ready for Run.
// It performs no execution and has no side effects; calling it twice on
// the same source yields equal Programs.
func Compile(source string) (*Program, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, wrapStageError(err)
	}

	loopMap, loopInfo, err := resolver.Resolve(tokens)
	if err != nil {
		return nil, wrapStageError(err)
	}

	return &Program{
		Tokens:    tokens,
		LoopMap:   loopMap,
		LoopInfo:  loopInfo,
		SourceLen: len(source),
	}, nil
}
