package termview

import (
	"strings"
	"testing"

	"github.com/Faultbox/globe/pkg/globe"
)

func TestRows(t *testing.T) {
	tests := []struct{ pixels, rows int }{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {48, 24},
	}
	for _, tt := range tests {
		if got := Rows(tt.pixels); got != tt.rows {
			t.Errorf("Rows(%d) = %d, want %d", tt.pixels, got, tt.rows)
		}
	}
	if got := PixelRows(24); got != 48 {
		t.Errorf("PixelRows(24) = %d, want 48", got)
	}
	if got := PixelRows(-1); got != 0 {
		t.Errorf("PixelRows(-1) = %d, want 0", got)
	}
}

func TestEncodeHalfBlocks(t *testing.T) {
	buf := globe.NewPixelBuffer(1, 2)
	buf.Pix[0] = globe.RGB{R: 255, G: 10, B: 0}
	buf.Pix[1] = globe.RGB{R: 0, G: 0, B: 200}

	out := Encode(buf)

	want := "\x1b[1;1H\x1b[0;38;2;255;10;0;48;2;0;0;200m▀\x1b[0m"
	if out != want {
		t.Errorf("Encode = %q, want %q", out, want)
	}
}

func TestEncodeOddHeightPadsBlack(t *testing.T) {
	buf := globe.NewPixelBuffer(2, 3)
	buf.Fill(globe.RGB{R: 9, G: 9, B: 9})

	out := Encode(buf)

	if n := strings.Count(out, string(UpperHalf)); n != 4 {
		t.Errorf("expected 4 cells, got %d", n)
	}
	if !strings.Contains(out, "\x1b[2;1H") {
		t.Error("expected second terminal row")
	}
	if !strings.Contains(out, "38;2;9;9;9;48;2;0;0;0m") {
		t.Error("last row should have a black bottom half")
	}
}

func TestEncodeEmpty(t *testing.T) {
	if out := Encode(globe.NewPixelBuffer(0, 0)); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestScreenDiff(t *testing.T) {
	buf := globe.NewPixelBuffer(3, 4)
	s := NewScreen(3, 2)

	first := s.Frame(buf)
	if n := strings.Count(first, string(UpperHalf)); n != 6 {
		t.Fatalf("first frame should draw every cell, drew %d", n)
	}

	if out := s.Frame(buf); out != "" {
		t.Errorf("unchanged frame should be empty, got %q", out)
	}

	// Change the bottom pixel of cell (2, 1).
	buf.Pix[3*3+2] = globe.RGB{G: 255}
	out := s.Frame(buf)
	if n := strings.Count(out, string(UpperHalf)); n != 1 {
		t.Errorf("expected 1 changed cell, got %d", n)
	}
	if !strings.HasPrefix(out, "\x1b[2;3H") {
		t.Errorf("expected cursor move to row 2 col 3, got %q", out)
	}
	if !strings.Contains(out, "48;2;0;255;0m") {
		t.Errorf("expected green background, got %q", out)
	}
}

func TestScreenConsecutiveCellsSkipCursorMoves(t *testing.T) {
	buf := globe.NewPixelBuffer(4, 2)
	s := NewScreen(4, 1)

	out := s.Frame(buf)
	if n := strings.Count(out, "H"); n != 1 {
		t.Errorf("expected a single cursor move for one row, got %d", n)
	}
}

func TestScreenResizeRedraws(t *testing.T) {
	buf := globe.NewPixelBuffer(2, 2)
	s := NewScreen(2, 1)
	s.Frame(buf)

	s.Resize(1, 1)
	out := s.Frame(buf)
	if n := strings.Count(out, string(UpperHalf)); n != 1 {
		t.Errorf("expected full redraw of 1 cell after resize, got %d", n)
	}
}

func TestControlSequences(t *testing.T) {
	tests := []struct {
		name, got, want string
	}{
		{"move", MoveTo(3, 7), "\x1b[3;7H"},
		{"clear", ClearScreen(), "\x1b[2J"},
		{"hide", HideCursor(), "\x1b[?25l"},
		{"show", ShowCursor(), "\x1b[?25h"},
		{"alt on", EnableAltScreen(), "\x1b[?1049h"},
		{"alt off", DisableAltScreen(), "\x1b[?1049l"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
