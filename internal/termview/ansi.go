package termview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/globe/pkg/globe"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// UpperHalf draws the top pixel in the foreground and the bottom in the background.
	UpperHalf = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// writeCell writes one half-block cell with a combined SGR so no color
// state leaks between cells.
func writeCell(sb *strings.Builder, c cell) {
	sb.WriteString("\x1b[0;38;2;")
	writeRGB(sb, c.top)
	sb.WriteString(";48;2;")
	writeRGB(sb, c.bottom)
	sb.WriteByte('m')
	sb.WriteRune(UpperHalf)
}

func writeRGB(sb *strings.Builder, c globe.RGB) {
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
}
