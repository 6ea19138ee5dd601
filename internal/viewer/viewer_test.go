package viewer

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mandelview/internal/fractal"
	"mandelview/internal/input"
	"mandelview/internal/platform"
	"mandelview/internal/platform/headless"
)

func smallConfig() fractal.Config {
	cfg := fractal.DefaultConfig()
	cfg.Width = 64
	cfg.Height = 48
	cfg.Workers = 3
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Height = 0
	if _, err := New(cfg); !errors.Is(err, fractal.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestStepRendersOnlyWhenDirty(t *testing.T) {
	v, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	v.Step(nil)
	if v.Frames() != 1 {
		t.Fatalf("expected first frame, got %d", v.Frames())
	}
	v.Step(nil)
	if v.Frames() != 1 {
		t.Fatalf("idle batch must not repaint, got %d frames", v.Frames())
	}
	v.Step([]platform.Event{{Type: platform.EventMouseWheel, Wheel: 1}})
	if v.Frames() != 2 {
		t.Fatalf("zoom must repaint, got %d frames", v.Frames())
	}
	if math.Abs(v.State().View.Scale-0.55) > 1e-12 {
		t.Fatalf("unexpected scale: %v", v.State().View.Scale)
	}
}

func TestStepQuit(t *testing.T) {
	v, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeyEscape}}) {
		t.Fatalf("expected quit")
	}
}

func TestHUDOnlyInComposite(t *testing.T) {
	v, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	v.Step(nil)
	layout := v.HUDLayout()
	y := layout.StatusY + layout.StatusH/2
	if v.Composite().At(10, y) == v.Frame().At(10, y) {
		t.Fatalf("expected status bar in composite")
	}

	v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeyHUD}})
	if v.HUDVisible() {
		t.Fatalf("expected HUD hidden")
	}
	if v.Composite().Digest() != v.Frame().Digest() {
		t.Fatalf("hidden HUD must leave composite equal to frame")
	}
	if v.Frames() != 1 {
		t.Fatalf("toggling the HUD must not re-render, got %d frames", v.Frames())
	}
}

func TestActionsUnavailable(t *testing.T) {
	v, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeySave, Ctrl: true}})
	if !strings.Contains(v.Status(), ErrActionUnavailable.Error()) {
		t.Fatalf("expected unavailable status, got %q", v.Status())
	}
}

func TestExportAndCopyActions(t *testing.T) {
	dir := t.TempDir()
	var copied string
	var image []byte
	v, err := New(smallConfig(), WithActions(Actions{
		SavePath:  func() (string, error) { return filepath.Join(dir, "view"), nil },
		CopyText:  func(s string) error { copied = s; return nil },
		CopyImage: func(b []byte) error { image = b; return nil },
	}))
	if err != nil {
		t.Fatal(err)
	}

	v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeySave, Ctrl: true}})
	if v.Status() != "Saved view.png" {
		t.Fatalf("unexpected status: %q", v.Status())
	}
	f, err := os.Open(filepath.Join(dir, "view.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("unexpected export size: %v", b)
	}

	v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeyCopy, Ctrl: true}})
	if !strings.HasPrefix(copied, "center=(") {
		t.Fatalf("unexpected copied text: %q", copied)
	}
	v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeyCopy, Ctrl: true, Shift: true}})
	if len(image) < 8 || string(image[1:4]) != "PNG" {
		t.Fatalf("expected PNG bytes on the clipboard")
	}
}

func TestCopyFailureIsReported(t *testing.T) {
	v, err := New(smallConfig(), WithActions(Actions{
		CopyText: func(string) error { return errors.New("no display") },
	}))
	if err != nil {
		t.Fatal(err)
	}
	if v.Step([]platform.Event{{Type: platform.EventKeyDown, Key: input.KeyCopy, Ctrl: true}}) {
		t.Fatalf("a failed action must not quit")
	}
	if !strings.Contains(v.Status(), "no display") {
		t.Fatalf("expected failure in status, got %q", v.Status())
	}
}

func TestRunHeadlessScript(t *testing.T) {
	script, err := headless.ParseScript("frame,zoom:+1,pan:8:-4,key:backspace,key:r")
	if err != nil {
		t.Fatal(err)
	}
	cfg := smallConfig()
	win, err := headless.New(script).CreateWindow(platform.WindowConfig{Title: "test", WidthPx: cfg.Width, HeightPx: cfg.Height})
	if err != nil {
		t.Fatal(err)
	}
	v, err := New(cfg, WithHUD(false))
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Run(win); err != nil {
		t.Fatal(err)
	}

	hw := win.(*headless.Window)
	if hw.Frames() != 5 {
		t.Fatalf("expected 5 presents, got %d", hw.Frames())
	}
	// Every step moves the view, so each one repaints.
	if v.Frames() != 5 {
		t.Fatalf("expected 5 renders, got %d", v.Frames())
	}
	if hw.LastFrame().Digest() != v.Frame().Digest() {
		t.Fatalf("presented frame differs from rendered frame")
	}
	view := v.State().View
	if view.Scale != 0.5 || view.OffsetX != 0 || view.OffsetY != 0 {
		t.Fatalf("expected reset view, got %+v", view)
	}
}

func TestRunRendersBeforeEarlyQuit(t *testing.T) {
	for _, src := range []string{"", "key:escape"} {
		script, err := headless.ParseScript(src)
		if err != nil {
			t.Fatal(err)
		}
		cfg := smallConfig()
		win, err := headless.New(script).CreateWindow(platform.WindowConfig{Title: "test", WidthPx: cfg.Width, HeightPx: cfg.Height})
		if err != nil {
			t.Fatal(err)
		}
		v, err := New(cfg, WithHUD(false))
		if err != nil {
			t.Fatal(err)
		}
		if err := v.Run(win); err != nil {
			t.Fatal(err)
		}
		if v.Frames() != 1 {
			t.Fatalf("script %q: expected 1 render, got %d", src, v.Frames())
		}
		px := v.Frame().Pixels
		for i := 3; i < len(px); i += 4 {
			if px[i] != 255 {
				t.Fatalf("script %q: pixel %d has alpha %d", src, i/4, px[i])
			}
		}
	}
}

func TestWriteFramePNGRendersPendingView(t *testing.T) {
	v, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "first.png")
	if err := v.WriteFramePNG(path); err != nil {
		t.Fatal(err)
	}
	if v.Frames() != 1 {
		t.Fatalf("expected the pending view to be rendered, got %d frames", v.Frames())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0xffff {
		t.Fatalf("expected opaque pixel, got alpha %d", a)
	}
}
