package viewer

import (
	"fmt"

	"mandelview/internal/platform"
)

// Run drives the viewer against a polling window until it asks to close.
// Every batch is followed by a present, even when nothing was repainted.
// The current view is rendered before Run returns, even if the first batch
// already quits.
func (v *Viewer) Run(win platform.Window) error {
	defer win.Close()
	for {
		events := win.PollEvents()
		if v.Step(events) {
			v.redraw()
			return nil
		}
		if err := win.Present(v.composite); err != nil {
			return fmt.Errorf("present frame %d: %w", v.frames, err)
		}
		v.log.Debug("frame presented", "frame", v.frames, "digest", v.frame.Digest())
	}
}
