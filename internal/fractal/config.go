package fractal

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultWidth         = 1024
	DefaultHeight        = 1024
	DefaultMaxIterations = 255
	DefaultEscapeRadius  = 64.0
	DefaultZoomIn        = 1.1
	DefaultZoomOut       = 0.9
	DefaultScale         = 0.5
)

var (
	ErrInvalidSize        = errors.New("fractal: width and height must be positive")
	ErrInvalidIterations  = errors.New("fractal: max iterations must be positive")
	ErrInvalidZoomFactor  = errors.New("fractal: zoom factors must be positive and finite")
	ErrInvalidRadius      = errors.New("fractal: escape radius must be positive and finite")
	ErrInvalidScale       = errors.New("fractal: scale must be positive and finite")
	ErrInvalidScaleBounds = errors.New("fractal: scale bounds are inconsistent")
)

// Config holds the tunables of the viewer. Zero MinScale/MaxScale mean the
// scale is unbounded.
type Config struct {
	Width         int
	Height        int
	MaxIterations int
	EscapeRadius  float64
	ZoomInFactor  float64
	ZoomOutFactor float64
	InitialScale  float64
	MinScale      float64
	MaxScale      float64
	Workers       int
}

func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		MaxIterations: DefaultMaxIterations,
		EscapeRadius:  DefaultEscapeRadius,
		ZoomInFactor:  DefaultZoomIn,
		ZoomOutFactor: DefaultZoomOut,
		InitialScale:  DefaultScale,
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%d: %w", c.MaxIterations, ErrInvalidIterations)
	}
	if !positiveFinite(c.EscapeRadius) {
		return fmt.Errorf("%g: %w", c.EscapeRadius, ErrInvalidRadius)
	}
	if !positiveFinite(c.ZoomInFactor) || !positiveFinite(c.ZoomOutFactor) {
		return fmt.Errorf("in=%g out=%g: %w", c.ZoomInFactor, c.ZoomOutFactor, ErrInvalidZoomFactor)
	}
	if !positiveFinite(c.InitialScale) {
		return fmt.Errorf("%g: %w", c.InitialScale, ErrInvalidScale)
	}
	if c.MinScale < 0 || c.MaxScale < 0 || math.IsNaN(c.MinScale) || math.IsNaN(c.MaxScale) {
		return fmt.Errorf("min=%g max=%g: %w", c.MinScale, c.MaxScale, ErrInvalidScaleBounds)
	}
	if c.MinScale > 0 && c.MaxScale > 0 && c.MinScale > c.MaxScale {
		return fmt.Errorf("min=%g max=%g: %w", c.MinScale, c.MaxScale, ErrInvalidScaleBounds)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
