package token

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{LoopStart, "LoopStart"},
		{LoopEnd, "LoopEnd"},
		{RestLeft, "RestLeft"},
		{RestRight, "RestRight"},
		{Note, "Note"},
		{Kind(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}

func TestLoopModeString(t *testing.T) {
	cases := []struct {
		m    LoopMode
		want string
	}{
		{Brainfuck, "Brainfuck"},
		{Fixed, "Fixed"},
		{Infinite, "Infinite"},
		{TapeDriven, "TapeDriven"},
		{LoopMode(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Errorf("LoopMode(%d).String() = %q, want %q", c.m, got, c.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	if tok := NewLoopStart(); tok.Kind != LoopStart {
		t.Errorf("NewLoopStart() Kind = %v, want LoopStart", tok.Kind)
	}
	if tok := NewRestLeft(); tok.Kind != RestLeft {
		t.Errorf("NewRestLeft() Kind = %v, want RestLeft", tok.Kind)
	}
	if tok := NewRestRight(); tok.Kind != RestRight {
		t.Errorf("NewRestRight() Kind = %v, want RestRight", tok.Kind)
	}
	note := NewNote(60, true, false)
	if note.Kind != Note || note.MIDI != 60 || !note.Staccato || note.Legato {
		t.Errorf("NewNote(60, true, false) = %+v, unexpected fields", note)
	}
	end := NewLoopEnd(Fixed, 3, false, false)
	if end.Kind != LoopEnd || end.Mode != Fixed || end.Count != 3 {
		t.Errorf("NewLoopEnd(Fixed, 3, ...) = %+v, unexpected fields", end)
	}
}
