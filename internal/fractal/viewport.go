package fractal

// Viewport is the visible window into the complex plane. It is mutated only
// between renders; the renderer reads a copy.
type Viewport struct {
	Scale         float64
	OffsetX       float64
	OffsetY       float64
	MaxIterations int

	ZoomInFactor  float64
	ZoomOutFactor float64
	MinScale      float64
	MaxScale      float64

	initialScale float64
}

func NewViewport(cfg Config) Viewport {
	return Viewport{
		Scale:         cfg.InitialScale,
		MaxIterations: cfg.MaxIterations,
		ZoomInFactor:  cfg.ZoomInFactor,
		ZoomOutFactor: cfg.ZoomOutFactor,
		MinScale:      cfg.MinScale,
		MaxScale:      cfg.MaxScale,
		initialScale:  cfg.InitialScale,
	}
}

// ApplyZoom grows the scale on a positive delta and shrinks it on a negative
// one. Only the sign of delta matters. A step that would leave the scale
// non-positive or non-finite is dropped.
func (v *Viewport) ApplyZoom(delta float64) {
	var next float64
	switch {
	case delta > 0:
		next = v.Scale * v.ZoomInFactor
	case delta < 0:
		next = v.Scale * v.ZoomOutFactor
	default:
		return
	}
	if v.MinScale > 0 && next < v.MinScale {
		next = v.MinScale
	}
	if v.MaxScale > 0 && next > v.MaxScale {
		next = v.MaxScale
	}
	if !positiveFinite(next) {
		return
	}
	v.Scale = next
}

// ApplyPan moves the offset against a pixel drag. The plane distance covered
// shrinks as the scale grows, so content stays under the cursor.
func (v *Viewport) ApplyPan(dx, dy, halfW, halfH float64) {
	v.OffsetX -= dx / halfW / v.Scale
	v.OffsetY -= dy / halfH / v.Scale
}

// PlaneCoord maps a pixel position to its complex-plane coordinate.
func (v Viewport) PlaneCoord(x, y, halfW, halfH float64) (re, im float64) {
	inv := 1 / v.Scale
	re = x/(halfW*v.Scale) + v.OffsetX - inv
	im = y/(halfH*v.Scale) + v.OffsetY - inv
	return re, im
}

func (v *Viewport) Reset() {
	v.Scale = v.initialScale
	v.OffsetX = 0
	v.OffsetY = 0
}
