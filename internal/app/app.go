package app

import (
	"fmt"
	"image/color"
	"log/slog"

	"mandelview/internal/fractal"
	"mandelview/internal/input"
	"mandelview/internal/platform"
	"mandelview/internal/ui"
	"mandelview/internal/viewer"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// App is the ebiten front end. It polls devices into platform events and
// hands them to the viewer once per tick.
type App struct {
	cfg    fractal.Config
	viewer *viewer.Viewer
	log    *slog.Logger
	theme  ui.Theme

	canvas     *ebiten.Image
	statusFace font.Face

	drag     input.DragTracker
	outsideW int
	outsideH int
	resized  bool
}

func New(cfg fractal.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = fractal.Logger()
	}
	v, err := viewer.New(cfg, viewer.WithLogger(log), viewer.WithActions(desktopActions(log)))
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:        cfg,
		viewer:     v,
		log:        log,
		theme:      ui.DefaultTheme(),
		statusFace: newStatusFace(11),
	}, nil
}

func newStatusFace(size float64) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func (a *App) Run() error {
	ebiten.SetWindowTitle("Mandelbrot")
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(a.cfg.Width/4, a.cfg.Height/4, -1, -1)
	ebiten.SetWindowClosingHandled(true)
	a.log.Info("window opened", "width", a.cfg.Width, "height", a.cfg.Height)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) Update() error {
	if a.viewer.Step(a.pollEvents()) {
		return ebiten.Termination
	}
	return nil
}

func (a *App) pollEvents() []platform.Event {
	events := make([]platform.Event, 0, 4)
	if ebiten.IsWindowBeingClosed() {
		events = append(events, platform.Event{Type: platform.EventClose})
	}
	if a.resized {
		events = append(events, platform.Event{Type: platform.EventResize, Width: a.outsideW, Height: a.outsideH})
		a.resized = false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		events = append(events, platform.Event{Type: platform.EventMouseWheel, Wheel: wheelY})
	}

	x, y := ebiten.CursorPosition()
	if dx, dy, ok := a.drag.Update(x, y,
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	); ok {
		events = append(events, platform.Event{Type: platform.EventMouseDrag, DeltaX: dx, DeltaY: dy})
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	keys := []struct {
		key  ebiten.Key
		name string
	}{
		{ebiten.KeyEscape, input.KeyEscape},
		{ebiten.KeyBackspace, input.KeyBackspace},
		{ebiten.KeyR, input.KeyReset},
		{ebiten.KeyH, input.KeyHUD},
		{ebiten.KeyS, input.KeySave},
		{ebiten.KeyC, input.KeyCopy},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			events = append(events, platform.Event{Type: platform.EventKeyDown, Key: k.name, Ctrl: ctrl, Shift: shift})
		}
	}
	return events
}

func (a *App) Draw(screen *ebiten.Image) {
	fb := a.viewer.Composite()
	if a.canvas == nil || a.canvas.Bounds().Dx() != fb.W || a.canvas.Bounds().Dy() != fb.H {
		a.canvas = ebiten.NewImage(fb.W, fb.H)
	}
	a.canvas.WritePixels(fb.Pixels)
	screen.DrawImage(a.canvas, nil)

	if !a.viewer.HUDVisible() {
		return
	}
	layout := a.viewer.HUDLayout()
	text.Draw(screen, a.viewer.StatusLine(), a.statusFace, layout.TextX, layout.TextY, a.theme.Text)
	if a.viewer.State().HistoryLen() > 0 {
		hint := "Backspace: previous view"
		w := font.MeasureString(a.statusFace, hint).Round()
		text.Draw(screen, hint, a.statusFace, fb.W-w-layout.TextX, layout.TextY, color.RGBA{R: 0x9A, G: 0xA4, B: 0xB4, A: 0xFF})
	}
}

// Layout pins the logical screen to the frame size; ebiten scales the
// window around it so drag deltas stay in buffer pixels.
func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != a.outsideW || outsideHeight != a.outsideH {
		a.outsideW, a.outsideH = outsideWidth, outsideHeight
		a.resized = true
	}
	return a.cfg.Width, a.cfg.Height
}
