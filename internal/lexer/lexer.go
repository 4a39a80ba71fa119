// Package lexer turns MusicCoder source text into a flat token sequence.
// It is the first of three cooperating stages (lexer -> resolver ->
// executor) and knows nothing about loop pairing or tape execution.
package lexer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cbegin/musiccoder-go/internal/token"
)

// commentPattern matches <!-- ... > comments. The body is "anything but
// '>'", which already stops at the first '>' without needing a
// non-greedy quantifier, and matches newlines since a negated character
// class excludes only the characters named.
var commentPattern = regexp.MustCompile(`<!--[^>]*>`)

// tokenPattern enumerates every recognized lexeme in priority order: loop
// start, loop end (with optional suffix), the two rests, the cosmetic bar
// line, then a note. Go's regexp package, like Perl, prefers the first
// alternative that allows the overall match to succeed, so this ordering
// is load-bearing: "|:" must be tried before a bare "|" would swallow it,
// and ":|" with its optional suffix before a suffix-less R4/R2 would
// otherwise consume half of it.
var tokenPattern = regexp.MustCompile(`(?i)\|:|:\|(?:\s*(?:x\d+|R4))?|R4|R2|\||[A-G](?:#|b)?-?\d?(?:[._]+)?`)

// noteShapePattern splits a matched note lexeme into pitch class, octave
// digits, and articulation suffix.
var noteShapePattern = regexp.MustCompile(`^([A-G](?:#|B)?)(-?\d?)([._]*)$`)

// pitchClassBase maps a canonical, uppercased pitch class name to its
// base MIDI offset within an octave, per the spec's note table.
var pitchClassBase = map[string]int{
	"C": 0, "C#": 1, "DB": 1,
	"D": 2, "D#": 3, "EB": 3,
	"E": 4,
	"F": 5, "F#": 6, "GB": 6,
	"G": 7, "G#": 8, "AB": 8,
	"A": 9, "A#": 10, "BB": 10,
	"B": 11,
}

// Error reports a lexing failure: an invalid note. TokenIndex is the
// index the offending token would have occupied in the output sequence.
type Error struct {
	TokenIndex int
	Lexeme     string
	Reason     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("InvalidNote at token %d (%q): %s", e.TokenIndex, e.Lexeme, e.Reason)
}

// Lex strips comments and tokenizes source, returning tokens in source
// order. Unmatched text (including malformed xN suffixes, which the
// grammar never captures as part of a LoopEnd) is silently skipped.
func Lex(source string) ([]token.Token, error) {
	clean := commentPattern.ReplaceAllString(source, "")
	raw := tokenPattern.FindAllString(clean, -1)

	tokens := make([]token.Token, 0, len(raw))
	for _, lexeme := range raw {
		upper := strings.ToUpper(lexeme)
		switch {
		case upper == "|:":
			tokens = append(tokens, token.NewLoopStart())
		case strings.HasPrefix(upper, ":|"):
			tokens = append(tokens, lexLoopEnd(upper))
		case upper == "R4":
			tokens = append(tokens, token.NewRestRight())
		case upper == "R2":
			tokens = append(tokens, token.NewRestLeft())
		case upper == "|":
			// Cosmetic bar line; discarded.
		default:
			tok, err := lexNote(upper, len(tokens))
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// lexLoopEnd classifies a ":|"-prefixed lexeme into its loop mode. The
// suffix shape is already constrained by tokenPattern, so an "x" suffix
// is always followed by one or more decimal digits; a suffix that failed
// to parse as an integer would mean the regex grammar let something
// through it shouldn't have, so this falls back to Brainfuck defensively
// rather than panicking.
func lexLoopEnd(upper string) token.Token {
	switch {
	case strings.Contains(upper, "R4"):
		return token.NewLoopEnd(token.TapeDriven, 0, false, true)
	case strings.Contains(upper, "X"):
		parts := strings.SplitN(upper, "X", 2)
		if len(parts) == 2 {
			if parts[1] == "00" {
				return token.NewLoopEnd(token.Infinite, 0, true, false)
			}
			if n, err := strconv.Atoi(parts[1]); err == nil && n >= 1 {
				return token.NewLoopEnd(token.Fixed, n, false, false)
			}
		}
	}
	return token.NewLoopEnd(token.Brainfuck, 0, false, false)
}

// lexNote resolves a matched note lexeme to a MIDI value via the pitch
// class table, defaulting the octave to 4 and failing with InvalidNote
// when the class is unrecognized or the resulting value escapes 0..127.
func lexNote(upper string, index int) (token.Token, error) {
	m := noteShapePattern.FindStringSubmatch(upper)
	if m == nil {
		return token.Token{}, &Error{TokenIndex: index, Lexeme: upper, Reason: "unrecognized note shape"}
	}
	pitchClass, octaveStr, suffix := m[1], m[2], m[3]

	base, ok := pitchClassBase[pitchClass]
	if !ok {
		return token.Token{}, &Error{TokenIndex: index, Lexeme: upper, Reason: "unrecognized pitch class"}
	}

	octave := 4
	if octaveStr != "" {
		v, err := strconv.Atoi(octaveStr)
		if err != nil {
			return token.Token{}, &Error{TokenIndex: index, Lexeme: upper, Reason: "malformed octave"}
		}
		octave = v
	}

	midi := base + (octave+1)*12
	if midi < 0 || midi > 127 {
		return token.Token{}, &Error{TokenIndex: index, Lexeme: upper, Reason: fmt.Sprintf("computed MIDI value %d outside 0..127", midi)}
	}

	return token.NewNote(midi, strings.Contains(suffix, "."), strings.Contains(suffix, "_")), nil
}
