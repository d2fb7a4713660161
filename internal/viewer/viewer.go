// Package viewer shows a globe in an SDL2 window and lets the user turn it.
//
// The globe is rasterized on the CPU by package globe; OpenGL only copies
// the finished pixels to the screen. Run must be called from the main
// goroutine.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/export"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/pkg/globe"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds viewer settings.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool

	StepDeg    int     // degrees per key press
	SpinDegSec float64 // automatic spin, 0 starts paused
	Workers    int
	Home       globe.Rotation
	Background globe.RGB

	ScreenshotDir string // P saves the current frame here
}

// Run opens the window and blocks until the user quits.
func Run(cfg Config, world globe.Heightmap, cm globe.ColorMap) error {
	if err := world.Validate(); err != nil {
		return err
	}
	log := logger.Named("viewer")

	win, err := newWindow(cfg, log)
	if err != nil {
		return err
	}
	defer win.close()

	blit := newBlitter()
	defer blit.destroy()

	renderer := &globe.Renderer{Workers: cfg.Workers}
	cam := newView(cfg.Home, cfg.StepDeg, cfg.SpinDegSec)

	var buf *globe.PixelBuffer
	var last globe.Rotation
	dirty := true
	prev := time.Now()
	frames := 0
	fpsStart := prev

	for {
		ev := pollEvents(cam)
		if ev.quit {
			return nil
		}

		now := time.Now()
		cam.advance(now.Sub(prev))
		prev = now

		w, h := win.drawableSize()
		if ev.resized || buf == nil || buf.Width != w || buf.Height != h {
			if w <= 0 || h <= 0 {
				sdl.Delay(16)
				continue
			}
			buf = globe.NewPixelBuffer(w, h)
			if err := blit.resize(w, h); err != nil {
				return err
			}
			log.Debug("viewport resized", zap.Int("width", w), zap.Int("height", h))
			dirty = true
		}

		rot := cam.rotation()
		if dirty || rot != last {
			buf.Fill(cfg.Background)
			if err := renderer.Render(globe.Viewport{Width: w, Height: h}, rot, world, cm, buf); err != nil {
				return fmt.Errorf("rendering globe: %w", err)
			}
			blit.upload(buf)
			last = rot
			dirty = false
		}

		if ev.screenshot {
			path := screenshotPath(cfg.ScreenshotDir, now)
			if err := saveScreenshot(path, buf); err != nil {
				log.Warn("screenshot failed", zap.Error(err))
			} else {
				log.Info("screenshot saved", zap.String("path", path))
			}
		}

		gl.Viewport(0, 0, int32(w), int32(h))
		blit.draw()
		win.swap()

		frames++
		if elapsed := now.Sub(fpsStart); elapsed >= time.Second {
			win.setTitle(fmt.Sprintf("%s  lon %d  lat %d  %.0f fps",
				cfg.Title, rot.LonDeg, rot.LatDeg, float64(frames)/elapsed.Seconds()))
			frames = 0
			fpsStart = now
		}

		if !cfg.VSync {
			sdl.Delay(1)
		}
	}
}

type events struct {
	quit       bool
	resized    bool
	screenshot bool
}

// pollEvents drains the SDL queue into cam.
func pollEvents(cam *view) events {
	var ev events
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			ev.quit = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				ev.resized = true
			}
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if e.Keysym.Scancode == sdl.SCANCODE_P {
				ev.screenshot = true
			} else if cam.key(e.Keysym.Scancode) {
				ev.quit = true
			}
		}
	}
	return ev
}

// screenshotPath names a PNG in dir after the capture time.
func screenshotPath(dir string, t time.Time) string {
	name := fmt.Sprintf("globe_%s.png", t.Format("2006-01-02_15-04-05.000"))
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func saveScreenshot(path string, buf *globe.PixelBuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating screenshot dir: %w", err)
		}
	}
	return export.WriteFile(path, buf, 1)
}
