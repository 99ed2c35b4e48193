package core

import (
	"strings"
	"testing"
)

// rows splits the plain screen text into lines.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    " {
		t.Errorf("String() = %q", got)
	}
	if s.GetCell(3, 1) != blankCell {
		t.Errorf("new cell = %+v, want blank", s.GetCell(3, 1))
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	s.SetColor(-1, 0, 'x', ColorRed)
	s.SetColor(3, 0, 'x', ColorRed)
	s.SetColor(0, 1, 'x', ColorRed)
	if got := s.String(); got != "   " {
		t.Errorf("out of bounds writes landed: %q", got)
	}
	if s.GetCell(5, 5) != blankCell {
		t.Error("out of bounds GetCell should return a blank cell")
	}

	// Labels hanging off either edge keep their visible part.
	s.DrawTextColor(-2, 0, "score", ColorBrightWhite)
	if got := s.String(); got != "ore" {
		t.Errorf("clipped text = %q, want %q", got, "ore")
	}
	if s.GetCell(0, 0).Color != ColorBrightWhite {
		t.Errorf("text color = %v", s.GetCell(0, 0).Color)
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	s.Resize(2, 3)
	if got := rows(s); strings.Join(got, "|") != "ab|de|  " {
		t.Errorf("after shrink/grow rows = %q", got)
	}
	s.Resize(2, 3)
	if s.GetCell(1, 1).Rune != 'e' {
		t.Error("same-size Resize should keep content")
	}
}

func TestScreenObstacleAndButton(t *testing.T) {
	s := NewScreen(8, 5)
	s.DrawRectColor(Rect{X: 1, Y: 0, W: 2, H: 5}, '█', ColorGreen)
	s.DrawBox(Rect{X: 4, Y: 1, W: 4, H: 3})
	s.Clear()
	if strings.TrimSpace(s.String()) != "" {
		t.Fatal("Clear left content behind")
	}

	s.DrawRectColor(Rect{X: 1, Y: 0, W: 2, H: 5}, '█', ColorGreen)
	s.DrawBox(Rect{X: 4, Y: 1, W: 4, H: 3})
	s.DrawText(5, 2, "go")

	want := []string{
		" ██     ",
		" ██ ┌──┐",
		" ██ │go│",
		" ██ └──┘",
		" ██     ",
	}
	got := rows(s)
	for y := range want {
		if got[y] != want[y] {
			t.Errorf("row %d = %q, want %q", y, got[y], want[y])
		}
	}
	if s.GetCell(2, 4).Color != ColorGreen || s.GetCell(4, 1).Color != ColorDefault {
		t.Error("rect color or box color wrong")
	}
}

func TestScreenShiftRows(t *testing.T) {
	tests := []struct {
		dx   int
		want string
	}{
		{0, "abcde"},
		{2, "  abc"},
		{-2, "cde  "},
		{7, "     "},
	}
	for _, tt := range tests {
		s := NewScreen(5, 2)
		s.DrawTextColor(0, 0, "abcde", ColorYellow)
		s.DrawText(0, 1, "abcde")

		s.ShiftRows(tt.dx)
		got := rows(s)
		if got[0] != tt.want || got[1] != tt.want {
			t.Errorf("ShiftRows(%d) = %q, want %q on every row", tt.dx, got, tt.want)
		}
		if tt.dx == 2 && s.GetCell(2, 0).Color != ColorYellow {
			t.Errorf("ShiftRows(2) lost the color: %+v", s.GetCell(2, 0))
		}
	}
}

func TestScreenTint(t *testing.T) {
	s := NewScreen(3, 1)
	s.SetColor(0, 0, 'a', ColorRed)
	s.Set(2, 0, 'b')

	s.Tint(ColorBrightWhite)
	if s.GetCell(0, 0).Color != ColorBrightWhite || s.GetCell(2, 0).Color != ColorBrightWhite {
		t.Errorf("Tint should recolor drawn cells, got %+v %+v", s.GetCell(0, 0), s.GetCell(2, 0))
	}
	if s.GetCell(1, 0).Color != ColorDefault {
		t.Errorf("Tint should leave blank cells alone, got %+v", s.GetCell(1, 0))
	}
	if got := s.String(); got != "a b" {
		t.Errorf("Tint changed runes: %q", got)
	}
}
