// Package headless is a window backend without a display. Events come from a
// script queued up front; presented frames are copied for later inspection.
package headless

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mandelview/internal/platform"
	"mandelview/internal/render"
)

var ErrBadScript = errors.New("headless: malformed script")

type Backend struct {
	script [][]platform.Event
}

// New returns a backend whose windows replay script, one batch per poll.
func New(script [][]platform.Event) *Backend { return &Backend{script: script} }

func (b *Backend) Name() string { return "headless" }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	batches := make([][]platform.Event, len(b.script))
	copy(batches, b.script)
	return &Window{
		title:   cfg.Title,
		w:       cfg.WidthPx,
		h:       cfg.HeightPx,
		batches: batches,
	}, nil
}

type Window struct {
	title   string
	w       int
	h       int
	batches [][]platform.Event
	frames  int
	last    *render.FrameBuffer
	closed  bool
}

// PollEvents hands out the next scripted batch. Once the script is drained
// the window reports a close.
func (w *Window) PollEvents() []platform.Event {
	if w.closed || len(w.batches) == 0 {
		return []platform.Event{{Type: platform.EventClose}}
	}
	next := w.batches[0]
	w.batches = w.batches[1:]
	for _, ev := range next {
		if ev.Type == platform.EventResize {
			w.w, w.h = ev.Width, ev.Height
		}
	}
	return next
}

func (w *Window) SizePx() (int, int) { return w.w, w.h }
func (w *Window) Title() string      { return w.title }
func (w *Window) SetTitle(title string) {
	w.title = title
}

func (w *Window) Present(fb *render.FrameBuffer) error {
	if w.closed {
		return errors.New("headless: present on closed window")
	}
	if w.last == nil || w.last.W != fb.W || w.last.H != fb.H {
		w.last = render.NewFrameBuffer(fb.W, fb.H)
	}
	copy(w.last.Pixels, fb.Pixels)
	w.frames++
	return nil
}

// LastFrame is a copy of the most recently presented frame, or nil.
func (w *Window) LastFrame() *render.FrameBuffer { return w.last }
func (w *Window) Frames() int                    { return w.frames }
func (w *Window) Close()                         { w.closed = true }

// ParseScript reads a comma-separated list of steps, each becoming one
// event batch:
//
//	zoom:+1      scroll up (zoom in); zoom:-1 scrolls down
//	pan:DX:DY    drag by DX,DY pixels
//	key:NAME     key press, e.g. key:r or key:ctrl+backspace
//	frame        empty batch, just redraw
func ParseScript(s string) ([][]platform.Event, error) {
	var out [][]platform.Event
	for _, raw := range strings.Split(s, ",") {
		step := strings.TrimSpace(raw)
		if step == "" {
			continue
		}
		parts := strings.Split(step, ":")
		switch parts[0] {
		case "frame":
			out = append(out, nil)
		case "zoom":
			if len(parts) != 2 {
				return nil, fmt.Errorf("%q: %w", step, ErrBadScript)
			}
			d, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", step, ErrBadScript)
			}
			out = append(out, []platform.Event{{Type: platform.EventMouseWheel, Wheel: d}})
		case "pan":
			if len(parts) != 3 {
				return nil, fmt.Errorf("%q: %w", step, ErrBadScript)
			}
			dx, errX := strconv.Atoi(parts[1])
			dy, errY := strconv.Atoi(parts[2])
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("%q: %w", step, ErrBadScript)
			}
			out = append(out, []platform.Event{{Type: platform.EventMouseDrag, DeltaX: dx, DeltaY: dy}})
		case "key":
			if len(parts) != 2 || parts[1] == "" {
				return nil, fmt.Errorf("%q: %w", step, ErrBadScript)
			}
			out = append(out, []platform.Event{keyEvent(parts[1])})
		default:
			return nil, fmt.Errorf("%q: %w", step, ErrBadScript)
		}
	}
	return out, nil
}

func keyEvent(name string) platform.Event {
	ev := platform.Event{Type: platform.EventKeyDown}
	for _, tok := range strings.Split(strings.ToLower(name), "+") {
		switch tok {
		case "ctrl":
			ev.Ctrl = true
		case "shift":
			ev.Shift = true
		default:
			ev.Key = tok
		}
	}
	return ev
}
