// Package viewer runs one redraw cycle of the fractal viewer: it turns
// polled events into an intent, applies the intent to the session, and
// repaints the frame. Backends only feed events in and present frames out.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mandelview/internal/fractal"
	"mandelview/internal/input"
	"mandelview/internal/platform"
	"mandelview/internal/render"
	"mandelview/internal/session"
	"mandelview/internal/ui"
)

var ErrActionUnavailable = errors.New("viewer: action not available on this backend")

// Actions are the side effects a backend may offer. Nil entries are
// reported as unavailable.
type Actions struct {
	SavePath  func() (string, error)
	CopyText  func(text string) error
	CopyImage func(png []byte) error
}

type Option func(*Viewer)

func WithActions(a Actions) Option {
	return func(v *Viewer) { v.actions = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.log = l
		}
	}
}

func WithHUD(show bool) Option {
	return func(v *Viewer) { v.showHUD = show }
}

type Viewer struct {
	cfg      fractal.Config
	theme    ui.Theme
	state    *session.State
	renderer *fractal.Renderer
	actions  Actions
	log      *slog.Logger

	frame     *render.FrameBuffer
	composite *render.FrameBuffer
	hudLayout ui.Layout
	showHUD   bool
	hudScale  float32
	dirty     bool
	status    string
	frames    int
}

func New(cfg fractal.Config, opts ...Option) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("viewer config: %w", err)
	}
	v := &Viewer{
		cfg:      cfg,
		theme:    ui.DefaultTheme(),
		state:    session.NewState(cfg),
		log:      fractal.Logger(),
		showHUD:  true,
		hudScale: 1,
		dirty:    true,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.renderer = fractal.NewRenderer(
		fractal.WithWorkers(cfg.Workers),
		fractal.WithEscapeRadius(cfg.EscapeRadius),
	)
	v.frame = render.NewFrameBuffer(cfg.Width, cfg.Height)
	v.composite = render.NewFrameBuffer(cfg.Width, cfg.Height)
	v.log.Debug("viewer ready", "width", cfg.Width, "height", cfg.Height, "workers", v.renderer.Workers())
	return v, nil
}

func (v *Viewer) State() *session.State          { return v.state }
func (v *Viewer) Frame() *render.FrameBuffer     { return v.frame }
func (v *Viewer) Composite() *render.FrameBuffer { return v.composite }
func (v *Viewer) HUDLayout() ui.Layout           { return v.hudLayout }
func (v *Viewer) HUDVisible() bool               { return v.showHUD }
func (v *Viewer) Status() string                 { return v.status }
func (v *Viewer) Frames() int                    { return v.frames }
func (v *Viewer) StatusLine() string {
	return ui.StatusLine(v.state.View, v.cfg.Width, v.cfg.Height, v.status)
}

func (v *Viewer) half() (float64, float64) {
	return float64(v.cfg.Width) / 2, float64(v.cfg.Height) / 2
}

// Step processes one batch of events and repaints if anything changed.
// It returns true once the batch asked to quit.
func (v *Viewer) Step(events []platform.Event) bool {
	in := input.Collect(events)
	if in.Quit {
		v.log.Info("quit requested")
		return true
	}
	if in.Resized {
		v.log.Debug("window resized", "width", in.Width, "height", in.Height)
	}

	halfW, halfH := v.half()
	if v.state.Apply(in, halfW, halfH) {
		v.dirty = true
		v.status = ""
	}
	if in.ToggleHUD {
		v.showHUD = !v.showHUD
		if !v.dirty {
			v.compose()
		}
	}

	v.redraw()
	v.runActions(in)
	return false
}

func (v *Viewer) redraw() {
	if !v.dirty {
		return
	}
	v.renderer.RenderFrame(v.state.View, v.frame)
	v.frames++
	v.compose()
	v.dirty = false
}

func (v *Viewer) compose() {
	copy(v.composite.Pixels, v.frame.Pixels)
	if v.showHUD {
		v.hudLayout = ui.DrawHUD(v.composite, v.theme, v.hudScale)
	}
}

func (v *Viewer) runActions(in input.Intent) {
	if in.Export {
		v.report("export", v.exportFrame())
	}
	if in.CopyView {
		v.report("copy view", v.copyView())
	}
	if in.CopyImage {
		v.report("copy image", v.copyImage())
	}
}

func (v *Viewer) report(action string, err error) {
	if err == nil {
		return
	}
	v.log.Warn(action+" failed", "err", err)
	v.status = action + " failed: " + err.Error()
}

func (v *Viewer) exportFrame() error {
	if v.actions.SavePath == nil {
		return ErrActionUnavailable
	}
	path, err := v.actions.SavePath()
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("no file selected")
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	if err := v.WriteFramePNG(path); err != nil {
		return err
	}
	v.status = "Saved " + filepath.Base(path)
	return nil
}

func (v *Viewer) copyView() error {
	if v.actions.CopyText == nil {
		return ErrActionUnavailable
	}
	halfW, halfH := v.half()
	if err := v.actions.CopyText(v.state.Describe(halfW, halfH)); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	v.status = "Copied view"
	return nil
}

func (v *Viewer) copyImage() error {
	if v.actions.CopyImage == nil {
		return ErrActionUnavailable
	}
	data, err := v.frame.PNG()
	if err != nil {
		return err
	}
	if err := v.actions.CopyImage(data); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	v.status = "Copied image"
	return nil
}

// WriteFramePNG saves the fractal frame, without HUD, to path.
func (v *Viewer) WriteFramePNG(path string) error {
	v.redraw()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := v.frame.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	v.log.Info("frame written", "path", path, "digest", v.frame.Digest())
	return nil
}
