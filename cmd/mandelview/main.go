package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"mandelview/internal/app"
	"mandelview/internal/fractal"
	"mandelview/internal/platform"
	"mandelview/internal/platform/headless"
	"mandelview/internal/viewer"
)

type options struct {
	cfg      fractal.Config
	headless bool
	out      string
	script   string
	logLevel string
}

func parseFlags(args []string) (options, error) {
	opts := options{cfg: fractal.DefaultConfig()}
	fs := flag.NewFlagSet("mandelview", flag.ContinueOnError)
	fs.IntVar(&opts.cfg.Width, "width", opts.cfg.Width, "frame width in pixels")
	fs.IntVar(&opts.cfg.Height, "height", opts.cfg.Height, "frame height in pixels")
	fs.IntVar(&opts.cfg.MaxIterations, "max-iterations", opts.cfg.MaxIterations, "escape-time iteration cap")
	fs.Float64Var(&opts.cfg.EscapeRadius, "escape-radius", opts.cfg.EscapeRadius, "divergence threshold")
	fs.Float64Var(&opts.cfg.ZoomInFactor, "zoom-in", opts.cfg.ZoomInFactor, "scale multiplier per scroll up")
	fs.Float64Var(&opts.cfg.ZoomOutFactor, "zoom-out", opts.cfg.ZoomOutFactor, "scale multiplier per scroll down")
	fs.Float64Var(&opts.cfg.InitialScale, "scale", opts.cfg.InitialScale, "initial zoom scale")
	fs.Float64Var(&opts.cfg.MinScale, "min-scale", 0, "lower scale bound, 0 for none")
	fs.Float64Var(&opts.cfg.MaxScale, "max-scale", 0, "upper scale bound, 0 for none")
	fs.IntVar(&opts.cfg.Workers, "workers", 0, "render workers, 0 for GOMAXPROCS")
	fs.BoolVar(&opts.headless, "headless", false, "render without a window")
	fs.StringVar(&opts.out, "out", "mandelbrot.png", "headless output PNG")
	fs.StringVar(&opts.script, "script", "frame", "headless event script, e.g. zoom:+1,pan:10:-4,key:r")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if err := opts.cfg.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func runHeadless(opts options, log *slog.Logger) error {
	script, err := headless.ParseScript(opts.script)
	if err != nil {
		return err
	}
	var backend platform.Platform = headless.New(script)
	log.Info("starting", "backend", backend.Name(), "steps", len(script))
	win, err := backend.CreateWindow(platform.WindowConfig{
		Title:    "Mandelbrot",
		WidthPx:  opts.cfg.Width,
		HeightPx: opts.cfg.Height,
	})
	if err != nil {
		return err
	}
	v, err := viewer.New(opts.cfg, viewer.WithLogger(log), viewer.WithHUD(false))
	if err != nil {
		return err
	}
	if err := v.Run(win); err != nil {
		return err
	}
	return v.WriteFramePNG(opts.out)
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	log, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	fractal.SetLogger(log)

	if opts.headless {
		return runHeadless(opts, log)
	}
	application, err := app.New(opts.cfg, log)
	if err != nil {
		return err
	}
	return application.Run()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mandelview failed: %v\n", err)
		os.Exit(1)
	}
}
