package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(2, 3, '@')
	if got := s.Get(2, 3); got != '@' {
		t.Errorf("Get(2, 3) = %q, expected '@'", got)
	}

	s.SetColored(4, 1, '*', ColorBrightYellow)
	cell := s.GetCell(4, 1)
	if cell.Rune != '*' || cell.Color != ColorBrightYellow {
		t.Errorf("GetCell(4, 1) = %+v, expected colored '*'", cell)
	}

	// Out-of-bounds writes are silently ignored, reads return empty cells.
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, expected space", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, '#', ColorRed)
	s.Clear()

	cell := s.GetCell(1, 1)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("cell after Clear = %+v, expected empty", cell)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(2, 2, 'A')
	s.Set(5, 3, 'B')

	s.Resize(4, 3)
	if got := s.Get(2, 2); got != 'A' {
		t.Errorf("content inside new bounds lost: Get(2,2) = %q", got)
	}

	s.Resize(8, 6)
	if got := s.Get(2, 2); got != 'A' {
		t.Errorf("content lost on grow: Get(2,2) = %q", got)
	}
	// 'B' was clipped by the shrink and stays gone.
	if got := s.Get(5, 3); got != ' ' {
		t.Errorf("clipped content reappeared: Get(5,3) = %q", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(7, 1, "hello") // Clips at the right edge

	if got := s.Row(1)[7:]; got != "hel" {
		t.Errorf("Row(1)[7:] = %q, expected %q", got, "hel")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	if got := strings.TrimSpace(s.Row(0)); got != "abc" {
		t.Errorf("centered text = %q", got)
	}
	if s.Get(4, 0) != 'a' {
		t.Errorf("centered text starts at %q, expected 'a' at x=4", s.Get(4, 0))
	}
}

func TestScreenDrawTextMultibyteRunes(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(2, 0, "█░█") // 3 runes, 9 bytes

	want := []rune{'█', '░', '█'}
	for i, r := range want {
		if got := s.Get(2+i, 0); got != r {
			t.Errorf("Get(%d,0) = %q, expected %q", 2+i, got, r)
		}
	}
	if got := s.Get(5, 0); got != ' ' {
		t.Errorf("Get(5,0) = %q, expected blank after 3-rune text", got)
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "███") // Centering counts runes, not bytes

	if s.Get(4, 0) != '█' {
		t.Errorf("centered text starts at %q, expected '█' at x=4", s.Get(4, 0))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	expected := "a  \n  b"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4))

	if s.Get(0, 0) != '┌' || s.Get(4, 0) != '┐' || s.Get(0, 3) != '└' || s.Get(4, 3) != '┘' {
		t.Error("box corners not drawn")
	}
	if s.Get(2, 0) != '─' || s.Get(0, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.Get(2, 2) != ' ' {
		t.Error("box interior not empty")
	}
}
