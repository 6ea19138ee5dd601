package input

// DragTracker turns raw cursor samples into drag deltas. Deltas are only
// produced between a button press and its release.
type DragTracker struct {
	active bool
	lastX  int
	lastY  int
}

// Update feeds one cursor sample. ok is false when the sample carries no
// movement or no drag is in progress.
func (d *DragTracker) Update(x, y int, pressed, justPressed, justReleased bool) (dx, dy int, ok bool) {
	if justPressed {
		d.active = true
		d.lastX, d.lastY = x, y
	}
	if d.active && pressed {
		dx, dy = x-d.lastX, y-d.lastY
		d.lastX, d.lastY = x, y
		ok = dx != 0 || dy != 0
	}
	if justReleased || !pressed {
		d.active = false
	}
	return dx, dy, ok
}

func (d *DragTracker) Active() bool { return d.active }
