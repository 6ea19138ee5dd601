package platform

import "mandelview/internal/render"

type WindowConfig struct {
	Title    string
	WidthPx  int
	HeightPx int
}

type EventType int

const (
	EventUnknown EventType = iota
	EventClose
	EventResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
)

// Event is one raw input occurrence. Drag deltas are in buffer pixels and
// only reported while the primary button is held.
type Event struct {
	Type   EventType
	Width  int
	Height int
	Key    string
	Ctrl   bool
	Shift  bool
	DeltaX int
	DeltaY int
	Wheel  float64
}

type Platform interface {
	Name() string
	CreateWindow(cfg WindowConfig) (Window, error)
}

type Window interface {
	PollEvents() []Event
	SizePx() (int, int)
	Present(fb *render.FrameBuffer) error
	SetTitle(title string)
	Close()
}
