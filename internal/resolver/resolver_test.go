package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbegin/musiccoder-go/internal/token"
)

func TestResolvePairsNestedLoops(t *testing.T) {
	tokens := []token.Token{
		token.NewLoopStart(),            // 0
		token.NewNote(60, false, false), // 1
		token.NewLoopStart(),            // 2
		token.NewNote(62, false, false), // 3
		token.NewLoopEnd(token.Fixed, 2, false, false), // 4
		token.NewLoopEnd(token.Brainfuck, 0, false, false), // 5
	}
	loopMap, info, err := Resolve(tokens)
	require.NoError(t, err)
	require.Equal(t, 4, loopMap[2])
	require.Equal(t, 2, loopMap[4])
	require.Equal(t, 5, loopMap[0])
	require.Equal(t, 0, loopMap[5])
	require.Equal(t, Info{Mode: token.Fixed, Count: 2}, info[2])
	require.Equal(t, Info{Mode: token.Brainfuck}, info[0])
}

func TestResolveUnmatchedClose(t *testing.T) {
	tokens := []token.Token{
		token.NewNote(60, false, false),
		token.NewLoopEnd(token.Brainfuck, 0, false, false),
	}
	_, _, err := Resolve(tokens)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "UnmatchedClose", rerr.Kind)
	require.Equal(t, 1, rerr.TokenIndex)
}

func TestResolveUnmatchedOpen(t *testing.T) {
	tokens := []token.Token{
		token.NewLoopStart(),
		token.NewNote(60, false, false),
	}
	_, _, err := Resolve(tokens)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "UnmatchedOpen", rerr.Kind)
	require.Equal(t, 0, rerr.TokenIndex)
}

func TestResolveEmptyProgram(t *testing.T) {
	loopMap, info, err := Resolve(nil)
	require.NoError(t, err)
	require.Empty(t, loopMap)
	require.Empty(t, info)
}
