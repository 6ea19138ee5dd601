// Package input turns a batch of raw window events into the view changes
// they request. It does not touch any viewer state.
package input

import "mandelview/internal/platform"

// Key names shared by the backends.
const (
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyReset     = "r"
	KeyHUD       = "h"
	KeySave      = "s"
	KeyCopy      = "c"
)

// Intent is everything one event batch asks for.
type Intent struct {
	Zoom float64
	PanX float64
	PanY float64

	Reset     bool
	Back      bool
	Export    bool
	CopyView  bool
	CopyImage bool
	ToggleHUD bool
	Quit      bool

	Resized bool
	Width   int
	Height  int
}

// ChangesView reports whether applying the intent can move the viewport.
func (in Intent) ChangesView() bool {
	return in.Zoom != 0 || in.PanX != 0 || in.PanY != 0 || in.Reset || in.Back
}

func Collect(events []platform.Event) Intent {
	var in Intent
	for _, ev := range events {
		switch ev.Type {
		case platform.EventClose:
			in.Quit = true
		case platform.EventResize:
			in.Resized = true
			in.Width = ev.Width
			in.Height = ev.Height
		case platform.EventMouseWheel:
			in.Zoom += ev.Wheel
		case platform.EventMouseDrag:
			in.PanX += float64(ev.DeltaX)
			in.PanY += float64(ev.DeltaY)
		case platform.EventKeyDown:
			collectKey(&in, ev)
		}
	}
	return in
}

func collectKey(in *Intent, ev platform.Event) {
	switch {
	case ev.Key == KeyEscape:
		in.Quit = true
	case ev.Key == KeyBackspace:
		in.Back = true
	case ev.Key == KeyReset && !ev.Ctrl:
		in.Reset = true
	case ev.Key == KeyHUD && !ev.Ctrl:
		in.ToggleHUD = true
	case ev.Key == KeySave && ev.Ctrl:
		in.Export = true
	case ev.Key == KeyCopy && ev.Ctrl && ev.Shift:
		in.CopyImage = true
	case ev.Key == KeyCopy && ev.Ctrl:
		in.CopyView = true
	}
}
