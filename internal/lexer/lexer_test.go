package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbegin/musiccoder-go/internal/token"
)

func TestLexNotes(t *testing.T) {
	toks, err := Lex("C4 G9 C-1")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, 60, toks[0].MIDI)
	require.Equal(t, 127, toks[1].MIDI)
	require.Equal(t, 0, toks[2].MIDI)
}

func TestLexDefaultOctave(t *testing.T) {
	toks, err := Lex("C")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, 60, toks[0].MIDI, "octave-less note defaults to octave 4")
}

func TestLexAccidentals(t *testing.T) {
	toks, err := Lex("C#4 Db4 Bb4")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, toks[0].MIDI, toks[1].MIDI, "C#4 and Db4 are enharmonic")
	require.Equal(t, 70, toks[2].MIDI)
}

func TestLexArticulations(t *testing.T) {
	toks, err := Lex("C5. C5_ C5._")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.True(t, toks[0].Staccato)
	require.False(t, toks[0].Legato)
	require.False(t, toks[1].Staccato)
	require.True(t, toks[1].Legato)
	require.True(t, toks[2].Staccato)
	require.True(t, toks[2].Legato)
}

func TestLexRests(t *testing.T) {
	toks, err := Lex("R4 R2")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.RestRight, token.RestLeft}, []token.Kind{toks[0].Kind, toks[1].Kind})
}

func TestLexBarLineIsDiscarded(t *testing.T) {
	toks, err := Lex("C4 | D4")
	require.NoError(t, err)
	require.Len(t, toks, 2)
}

func TestLexCommentIsStripped(t *testing.T) {
	toks, err := Lex("C4 <!-- this whole run, including a | and a C5, is commented out --> D4")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	require.Equal(t, 60, toks[0].MIDI)
	require.Equal(t, 62, toks[1].MIDI)
}

func TestLexLoopEndModes(t *testing.T) {
	toks, err := Lex("|: C4 :| |: C4 :|x3 |: C4 :|x00 |: C4 :|R4")
	require.NoError(t, err)

	var ends []token.Token
	for _, tk := range toks {
		if tk.Kind == token.LoopEnd {
			ends = append(ends, tk)
		}
	}
	require.Len(t, ends, 4)
	require.Equal(t, token.Brainfuck, ends[0].Mode)
	require.Equal(t, token.Fixed, ends[1].Mode)
	require.Equal(t, 3, ends[1].Count)
	require.Equal(t, token.Infinite, ends[2].Mode)
	require.True(t, ends[2].Infinite)
	require.Equal(t, token.TapeDriven, ends[3].Mode)
	require.True(t, ends[3].UseNextCell)
}

func TestLexInvalidNoteOutOfRange(t *testing.T) {
	// B9 = base 11 + (9+1)*12 = 131, past the 0..127 MIDI ceiling.
	_, err := Lex("B9")
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, 0, lexErr.TokenIndex)
}

func TestLexMalformedLoopSuffixFallsOutAsStray(t *testing.T) {
	// "xYZ" is never captured by the grammar's (?:x\d+|R4) group, so the
	// loop end lexes as a bare Brainfuck token and "xYZ" is simply
	// unmatched text the tokenizer skips. (A suffix made of note letters,
	// such as "xAB", would instead lex its letters as a note.)
	toks, err := Lex("|: C4 :|xYZ")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, token.Brainfuck, toks[2].Mode)
}

func TestLexCaseInsensitive(t *testing.T) {
	toks, err := Lex("c4 r4")
	require.NoError(t, err)
	require.Equal(t, 60, toks[0].MIDI)
	require.Equal(t, token.RestRight, toks[1].Kind)
}
