package fractal

import (
	"fmt"
	"runtime"
	"time"

	"mandelview/internal/render"

	"golang.org/x/sync/errgroup"
)

// Renderer paints the escape-time image of a Viewport into an RGBA buffer.
// A Renderer has no mutable state and may be shared.
type Renderer struct {
	radius  float64
	workers int
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithWorkers sets the number of row bands rendered concurrently.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		r.workers = n
	}
}

// WithEscapeRadius overrides the divergence threshold.
func WithEscapeRadius(radius float64) RendererOption {
	return func(r *Renderer) {
		r.radius = radius
	}
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{radius: DefaultEscapeRadius}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if !positiveFinite(r.radius) {
		panic(fmt.Sprintf("fractal: invalid escape radius %g", r.radius))
	}
	return r
}

func (r *Renderer) Workers() int { return r.workers }

// Render overwrites every pixel of buf with (v, v, v, 255), v being the
// intensity of the pixel's plane coordinate. It blocks until all bands are
// done. Mis-sized buffers and non-positive dimensions or scale panic.
func (r *Renderer) Render(view Viewport, width, height, maxIterations int, buf []byte) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("fractal: invalid render size %dx%d", width, height))
	}
	if len(buf) != width*height*4 {
		panic(fmt.Sprintf("fractal: buffer holds %d bytes, want %d", len(buf), width*height*4))
	}
	if !positiveFinite(view.Scale) {
		panic(fmt.Sprintf("fractal: invalid scale %g", view.Scale))
	}

	start := time.Now()
	bands := r.workers
	if bands > height {
		bands = height
	}
	rowsPerBand := (height + bands - 1) / bands
	stride := width * 4

	var g errgroup.Group
	for y0 := 0; y0 < height; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, height)
		band := buf[y0*stride : y1*stride]
		y0 := y0 // per-iteration copy (go 1.22+ loop semantics under go 1.21)
		g.Go(func() error {
			r.renderBand(view, width, height, maxIterations, y0, band)
			return nil
		})
	}
	_ = g.Wait()

	Logger().Debug("frame rendered",
		"width", width,
		"height", height,
		"bands", bands,
		"scale", view.Scale,
		"elapsed", time.Since(start),
	)
}

// RenderFrame renders view into fb using the viewport's own iteration cap.
func (r *Renderer) RenderFrame(view Viewport, fb *render.FrameBuffer) {
	r.Render(view, fb.W, fb.H, view.MaxIterations, fb.Pixels)
}

// renderBand fills rows starting at y0; band holds exactly those rows.
func (r *Renderer) renderBand(view Viewport, width, height, maxIterations, y0 int, band []byte) {
	halfW := float64(width) / 2
	halfH := float64(height) / 2
	rows := len(band) / (width * 4)
	for row := 0; row < rows; row++ {
		y := float64(y0 + row)
		off := row * width * 4
		for x := 0; x < width; x++ {
			re, im := view.PlaneCoord(float64(x), y, halfW, halfH)
			c := Intensity(re, im, maxIterations, r.radius)
			px := band[off+x*4 : off+x*4+4 : off+x*4+4]
			px[0] = c
			px[1] = c
			px[2] = c
			px[3] = 255
		}
	}
}
