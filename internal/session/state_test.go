package session

import (
	"math"
	"strings"
	"testing"

	"mandelview/internal/fractal"
	"mandelview/internal/input"
)

func TestApplyZoomAndPan(t *testing.T) {
	s := NewState(fractal.DefaultConfig())
	if !s.Apply(input.Intent{Zoom: 1, PanX: 512, PanY: -256}, 512, 512) {
		t.Fatalf("expected view change")
	}
	if math.Abs(s.View.Scale-0.55) > 1e-12 {
		t.Fatalf("unexpected scale: %v", s.View.Scale)
	}
	// Pan uses the zoomed scale: 512/512/0.55.
	if math.Abs(s.View.OffsetX+1/0.55) > 1e-12 || math.Abs(s.View.OffsetY-0.5/0.55) > 1e-12 {
		t.Fatalf("unexpected offset: (%v,%v)", s.View.OffsetX, s.View.OffsetY)
	}
	if s.HistoryLen() != 1 {
		t.Fatalf("expected 1 history entry, got %d", s.HistoryLen())
	}
}

func TestApplyIgnoresIdleBatch(t *testing.T) {
	s := NewState(fractal.DefaultConfig())
	if s.Apply(input.Intent{}, 512, 512) {
		t.Fatalf("expected no change")
	}
	if s.HistoryLen() != 0 {
		t.Fatalf("expected empty history, got %d", s.HistoryLen())
	}
}

func TestBackRestoresPreviousView(t *testing.T) {
	s := NewState(fractal.DefaultConfig())
	s.Apply(input.Intent{Zoom: 1}, 512, 512)
	s.Apply(input.Intent{PanX: 20}, 512, 512)
	if !s.Apply(input.Intent{Back: true}, 512, 512) {
		t.Fatalf("expected back to change view")
	}
	if s.View.OffsetX != 0 || math.Abs(s.View.Scale-0.55) > 1e-12 {
		t.Fatalf("unexpected view after back: %+v", s.View)
	}
	s.Apply(input.Intent{Back: true}, 512, 512)
	if s.View.Scale != 0.5 {
		t.Fatalf("expected initial scale, got %v", s.View.Scale)
	}
	if s.Apply(input.Intent{Back: true}, 512, 512) {
		t.Fatalf("expected no change with empty history")
	}
}

func TestResetIsUndoable(t *testing.T) {
	s := NewState(fractal.DefaultConfig())
	s.Apply(input.Intent{Zoom: 1, PanX: 10}, 512, 512)
	zoomed := s.View
	s.Apply(input.Intent{Reset: true}, 512, 512)
	if s.View.Scale != 0.5 || s.View.OffsetX != 0 {
		t.Fatalf("unexpected view after reset: %+v", s.View)
	}
	s.Apply(input.Intent{Back: true}, 512, 512)
	if s.View != zoomed {
		t.Fatalf("expected zoomed view back, got %+v", s.View)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	s := NewState(fractal.DefaultConfig())
	for i := 0; i < defaultMaxHistory+25; i++ {
		s.Apply(input.Intent{PanX: 1}, 512, 512)
	}
	if s.HistoryLen() != defaultMaxHistory {
		t.Fatalf("expected %d history entries, got %d", defaultMaxHistory, s.HistoryLen())
	}
}

func TestDescribeReportsCenter(t *testing.T) {
	s := NewState(fractal.DefaultConfig())
	got := s.Describe(512, 512)
	if !strings.HasPrefix(got, "center=(0, 0) scale=0.5") {
		t.Fatalf("unexpected description: %q", got)
	}
}
