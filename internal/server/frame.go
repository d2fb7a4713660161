package server

import (
	"fmt"
	"strings"

	"github.com/Faultbox/globe/internal/termview"
	"github.com/Faultbox/globe/pkg/globe"
)

// frame renders globe views sized to a terminal. The last terminal row is
// reserved for the status line.
type frame struct {
	renderer *globe.Renderer
	world    globe.Heightmap
	cm       globe.ColorMap
	bg       globe.RGB

	buf    *globe.PixelBuffer
	screen *termview.Screen
	cols   int
	rows   int
	status string
}

func newFrame(r *globe.Renderer, world globe.Heightmap, cm globe.ColorMap, bg globe.RGB) *frame {
	return &frame{renderer: r, world: world, cm: cm, bg: bg}
}

// resize reallocates buffers for a cols x rows terminal.
func (f *frame) resize(cols, rows int) {
	f.cols, f.rows = cols, rows
	f.status = ""

	globeRows := max(rows-1, 0)
	f.screen = termview.NewScreen(cols, globeRows)
	f.buf = nil
	if cols > 0 && globeRows > 0 {
		f.buf = globe.NewPixelBuffer(cols, termview.PixelRows(globeRows))
	}
}

// draw renders the camera view and returns the ANSI update.
func (f *frame) draw(cam *camera) (string, error) {
	if f.buf == nil {
		return "", nil
	}

	f.buf.Fill(f.bg)
	vp := globe.Viewport{Width: f.buf.Width, Height: f.buf.Height}
	if err := f.renderer.Render(vp, cam.rotation(), f.world, f.cm, f.buf); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(f.screen.Frame(f.buf))

	status := statusLine(cam, f.cols)
	if status != f.status {
		sb.WriteString(termview.MoveTo(f.rows, 1))
		sb.WriteString(termview.Reset)
		sb.WriteString(status)
		f.status = status
	}
	return sb.String(), nil
}

// statusLine is padded to width so a shorter line overwrites a longer one.
func statusLine(cam *camera, width int) string {
	spin := "off"
	if cam.spinning {
		spin = "on"
	}
	s := fmt.Sprintf(" lon %4d  lat %3d  spin %-3s  arrows/wasd rotate  space spin  r reset  q quit",
		cam.lon, cam.lat, spin)
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
