package session

import (
	"fmt"

	"mandelview/internal/fractal"
	"mandelview/internal/input"
)

const defaultMaxHistory = 200

// State owns the viewport between renders plus the trail of earlier views.
type State struct {
	View fractal.Viewport

	history    []fractal.Viewport
	maxHistory int
}

func NewState(cfg fractal.Config) *State {
	return &State{
		View:       fractal.NewViewport(cfg),
		history:    make([]fractal.Viewport, 0, 64),
		maxHistory: defaultMaxHistory,
	}
}

func (s *State) HistoryLen() int { return len(s.history) }

// Apply folds an intent into the viewport. halfW and halfH are half the
// buffer size in pixels. At most one history entry is recorded per call.
// It reports whether the view changed.
func (s *State) Apply(in input.Intent, halfW, halfH float64) bool {
	if in.Back {
		return s.back()
	}
	if !in.ChangesView() {
		return false
	}

	before := s.View
	if in.Reset {
		s.View.Reset()
	}
	s.View.ApplyZoom(in.Zoom)
	if in.PanX != 0 || in.PanY != 0 {
		s.View.ApplyPan(in.PanX, in.PanY, halfW, halfH)
	}
	if s.View == before {
		return false
	}
	s.pushHistory(before)
	return true
}

func (s *State) pushHistory(v fractal.Viewport) {
	s.history = append(s.history, v)
	if len(s.history) > s.maxHistory {
		s.history = append(s.history[:0], s.history[1:]...)
	}
}

func (s *State) back() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.View = last
	return true
}

// Describe formats the center and scale of the view for the clipboard.
func (s *State) Describe(halfW, halfH float64) string {
	re, im := s.View.PlaneCoord(halfW, halfH, halfW, halfH)
	return fmt.Sprintf("center=(%.17g, %.17g) scale=%.17g iterations=%d", re, im, s.View.Scale, s.View.MaxIterations)
}
