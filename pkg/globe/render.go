package globe

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker oversubscribes the row split so that workers handed the
// short rows near the poles pick up more bands.
const bandsPerWorker = 4

// Renderer draws globes. The zero value is ready to use.
type Renderer struct {
	// Workers caps the number of goroutines. 0 means GOMAXPROCS; 1 renders
	// on the calling goroutine.
	Workers int
}

func (r *Renderer) workers() int {
	if r == nil || r.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return r.Workers
}

// Render draws the globe seen through vp at rot into buf.
//
// All arguments are validated before anything is written. On success exactly
// the on-screen pixels inside the disc are overwritten; everything else keeps
// its previous value.
func (r *Renderer) Render(vp Viewport, rot Rotation, hm Heightmap, cm ColorMap, buf *PixelBuffer) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	if err := hm.Validate(); err != nil {
		return err
	}
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrBufferLength)
	}
	if buf.Width != vp.Width || buf.Height != vp.Height {
		return fmt.Errorf("%w: buffer is %dx%d, viewport is %dx%d",
			ErrBufferLength, buf.Width, buf.Height, vp.Width, vp.Height)
	}
	if err := buf.Validate(); err != nil {
		return err
	}
	if cm.Color == nil {
		cm.Color = DefaultGradient
	}

	view := NewView(vp, rot)
	if view.Radius < 1 {
		return nil
	}

	workers := r.workers()
	bands := partitionRows(-view.Radius, view.Radius, workers*bandsPerWorker)
	if workers == 1 || len(bands) == 1 {
		for _, band := range bands {
			renderBand(view, hm, cm, buf, band)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, band := range bands {
		band := band
		g.Go(func() error {
			renderBand(view, hm, cm, buf, band)
			return nil
		})
	}
	return g.Wait()
}

// renderBand writes the disc pixels of one band. Bands never share screen
// rows, so concurrent calls touch disjoint parts of buf.Pix.
func renderBand(view View, hm Heightmap, cm ColorMap, buf *PixelBuffer, band rowBand) {
	for dy := band.lo; dy <= band.hi; dy++ {
		sy := view.CenterY + dy
		if sy < 0 || sy >= buf.Height {
			continue
		}
		row := buf.Pix[sy*buf.Width : (sy+1)*buf.Width]

		for dx := -view.Radius; dx <= view.Radius; dx++ {
			sx := view.CenterX + dx
			if sx < 0 || sx >= buf.Width {
				continue
			}
			lon, lat, ok := view.Unproject(dx, dy)
			if !ok {
				continue
			}
			row[sx] = cm.Shade(hm.Sample(lon, lat))
		}
	}
}

// RenderGlobe is the flat-argument form of Renderer.Render using all
// available CPUs. out must hold viewportWidth*viewportHeight pixels.
func RenderGlobe(
	viewportWidth, viewportHeight int,
	rotationLonDeg, rotationLatDeg int,
	worldWidth, worldHeight int,
	altitudes []int32,
	maxLandHeight int,
	out []RGB,
) error {
	vp := Viewport{Width: viewportWidth, Height: viewportHeight}
	if err := vp.Validate(); err != nil {
		return err
	}
	if len(out) != viewportWidth*viewportHeight {
		return fmt.Errorf("%w: have %d, want %dx%d=%d",
			ErrBufferLength, len(out), viewportWidth, viewportHeight, viewportWidth*viewportHeight)
	}

	var r Renderer
	return r.Render(
		vp,
		Rotation{LonDeg: rotationLonDeg, LatDeg: rotationLatDeg},
		Heightmap{Width: worldWidth, Height: worldHeight, Altitudes: altitudes},
		ColorMap{MaxLandHeight: maxLandHeight},
		&PixelBuffer{Width: viewportWidth, Height: viewportHeight, Pix: out},
	)
}
