// Package termview draws pixel buffers on 24-bit color terminals.
//
// Each character cell shows two vertically stacked pixels using the upper
// half block: the foreground is the top pixel, the background the bottom.
// A buffer of W x H pixels therefore needs W columns and ceil(H/2) rows.
package termview

import (
	"strings"

	"github.com/Faultbox/globe/pkg/globe"
)

// cell is one terminal character: two stacked pixels.
type cell struct {
	top, bottom globe.RGB
}

// sentinel never matches a real cell, forcing a full redraw.
var sentinel = cell{top: globe.RGB{R: 1, G: 2, B: 3}, bottom: globe.RGB{R: 3, G: 2, B: 1}}

// Rows returns the terminal rows needed for a buffer of pixelHeight rows.
func Rows(pixelHeight int) int {
	return (pixelHeight + 1) / 2
}

// PixelRows returns the pixel height that fills termRows terminal rows.
func PixelRows(termRows int) int {
	if termRows <= 0 {
		return 0
	}
	return termRows * 2
}

// cellAt pairs pixel rows 2*row and 2*row+1; a missing bottom row is black.
func cellAt(buf *globe.PixelBuffer, col, row int) cell {
	return cell{top: buf.At(col, 2*row), bottom: buf.At(col, 2*row+1)}
}

// Encode returns a full frame for buf starting at the top-left corner.
func Encode(buf *globe.PixelBuffer) string {
	var sb strings.Builder
	rows := Rows(buf.Height)
	sb.Grow(rows * buf.Width * 40)

	for row := 0; row < rows; row++ {
		sb.WriteString(MoveTo(row+1, 1))
		for col := 0; col < buf.Width; col++ {
			writeCell(&sb, cellAt(buf, col, row))
		}
	}
	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}
	return sb.String()
}

// Screen is a per-session double buffer that emits only changed cells.
type Screen struct {
	width, height int
	current       []cell
	next          []cell
	firstFrame    bool
}

// NewScreen creates a screen of width columns and height terminal rows.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Resize adjusts the screen and forces the next frame to redraw everything.
func (s *Screen) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.current = make([]cell, s.width*s.height)
	for i := range s.current {
		s.current[i] = sentinel
	}
	s.next = make([]cell, s.width*s.height)
	s.firstFrame = true
}

// Frame returns the ANSI output that turns the previous frame into buf.
// Pixels beyond the screen are clipped; uncovered cells are black.
func (s *Screen) Frame(buf *globe.PixelBuffer) string {
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			s.next[row*s.width+col] = cellAt(buf, col, row)
		}
	}

	var sb strings.Builder
	sb.Grow(4096)

	lastRow, lastCol := -1, -1
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			i := row*s.width + col
			nc := s.next[i]
			if !s.firstFrame && nc == s.current[i] {
				continue
			}
			if row != lastRow || col != lastCol {
				sb.WriteString(MoveTo(row+1, col+1))
			}
			writeCell(&sb, nc)
			lastRow = row
			lastCol = col + 1
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	s.current, s.next = s.next, s.current
	s.firstFrame = false
	return sb.String()
}
