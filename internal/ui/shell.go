package ui

import (
	"fmt"

	"mandelview/internal/fractal"
	"mandelview/internal/render"
)

type Layout struct {
	StatusY  int
	StatusH  int
	TextX    int
	TextY    int
	CenterX  int
	CenterY  int
	CrossLen int
}

func ComputeLayout(w, h int, theme Theme, scale float32) Layout {
	if scale <= 0 {
		scale = 1
	}

	dp := func(v int) int { return int(float32(v) * scale) }

	statusH := dp(theme.StatusHeightDp)
	if statusH > h {
		statusH = h
	}
	statusY := h - statusH

	return Layout{
		StatusY:  statusY,
		StatusH:  statusH,
		TextX:    dp(theme.TextInsetDp),
		TextY:    h - statusH/3,
		CenterX:  w / 2,
		CenterY:  h / 2,
		CrossLen: dp(theme.CrosshairDp),
	}
}

// DrawHUD paints the status bar and a crosshair on the view center over an
// already rendered frame. Text is drawn by the presentation layer.
func DrawHUD(fb *render.FrameBuffer, theme Theme, scale float32) Layout {
	layout := ComputeLayout(fb.W, fb.H, theme, scale)

	fb.FillRect(0, layout.StatusY, fb.W, layout.StatusH, theme.StatusBar)
	fb.StrokeRect(0, layout.StatusY, fb.W, layout.StatusH, 1, theme.Border)

	n := layout.CrossLen
	fb.FillRect(layout.CenterX-n, layout.CenterY, 2*n+1, 1, theme.Crosshair)
	fb.FillRect(layout.CenterX, layout.CenterY-n, 1, 2*n+1, theme.Crosshair)
	return layout
}

// StatusLine summarizes the view for the status bar.
func StatusLine(view fractal.Viewport, w, h int, status string) string {
	re, im := view.PlaneCoord(float64(w)/2, float64(h)/2, float64(w)/2, float64(h)/2)
	line := fmt.Sprintf("[ Center %.6f, %.6f ] [ Scale %.4g ] [ Iter %d ]", re, im, view.Scale, view.MaxIterations)
	if status != "" {
		line += " [ " + status + " ]"
	}
	return line
}
