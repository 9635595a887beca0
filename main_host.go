package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"facet/app"
	"facet/hal"
	"facet/hud"
	"facet/internal/buildinfo"
	"facet/internal/log"
	"facet/mesh"
)

type options struct {
	config string

	window        bool
	scale         int
	headless      bool
	hz            int
	ticks         uint64
	snapshot      string
	snapshotEvery uint64
	stream        string
	term          bool
	listMeshes    bool

	// config overrides, applied only when the flag is set
	width, height int
	fov           float64
	tick          time.Duration
	mesh          string
	mode          string
	logLevel      string
	console       bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var o options
	flag.StringVar(&o.config, "config", "", "YAML config file.")
	flag.BoolVar(&o.window, "window", true, "Open a desktop window.")
	flag.IntVar(&o.scale, "scale", 1, "Window and snapshot scale factor.")
	flag.BoolVar(&o.headless, "headless", false, "Run without a window.")
	flag.IntVar(&o.hz, "hz", 60, "Pull rate in headless mode.")
	flag.Uint64Var(&o.ticks, "ticks", 0, "Stop after N pulls in headless mode (0 = run forever).")
	flag.StringVar(&o.snapshot, "snapshot", "", "Directory for PNG snapshots in headless mode.")
	flag.Uint64Var(&o.snapshotEvery, "snapshot-every", 0, "Snapshot every N pulls (0 = last pull only).")
	flag.StringVar(&o.stream, "stream", "", "Serve a websocket frame stream on this address, e.g. :8080.")
	flag.BoolVar(&o.term, "term", false, "Draw frames in the terminal.")
	flag.BoolVar(&o.listMeshes, "list-meshes", false, "Print the built-in meshes and exit.")
	flag.IntVar(&o.width, "width", 0, "Render width.")
	flag.IntVar(&o.height, "height", 0, "Render height.")
	flag.Float64Var(&o.fov, "fov", 0, "Vertical field of view in degrees.")
	flag.DurationVar(&o.tick, "tick", 0, "Producer tick period.")
	flag.StringVar(&o.mesh, "mesh", "", "OBJ file or builtin:<name>.")
	flag.StringVar(&o.mode, "mode", "", "solid|wireframe.")
	flag.StringVar(&o.logLevel, "log-level", "", "debug|info|warn|error.")
	flag.BoolVar(&o.console, "console", false, "Show the on-screen log console.")
	flag.Parse()

	if o.listMeshes {
		for _, name := range mesh.Builtins() {
			fmt.Println(mesh.BuiltinPrefix + name)
		}
		return nil
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	console := hud.NewConsole(max(min(cfg.Width-8, 360), 32), min(6, max((cfg.Height-8)/hud.LineHeight, 1))*hud.LineHeight)
	logger, err := log.New(cfg.Log, os.Stderr, console)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("facet starting", buildinfo.Fields()...)

	model, err := app.BuildModel(cfg)
	if err != nil {
		logger.Error("mesh rejected", zap.String("mesh", cfg.Mesh), zap.Error(err))
		return err
	}
	p := app.NewProducer(cfg, model, logger, console)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(gctx) })

	if o.stream != "" {
		s := hal.NewStreamServer(p.Frames(), hal.StreamConfig{Log: logger.Named("stream")})
		g.Go(func() error { return s.ListenAndServe(gctx, o.stream) })
	}
	if o.term {
		g.Go(func() error { return hal.RunTerminal(gctx, p.Frames(), hal.TerminalConfig{}) })
	}

	switch {
	case o.headless:
		g.Go(func() error {
			err := hal.RunHeadless(gctx, p.Frames(), hal.HeadlessConfig{
				Hz:            o.hz,
				Ticks:         o.ticks,
				SnapshotDir:   o.snapshot,
				SnapshotEvery: o.snapshotEvery,
				Scale:         o.scale,
				Log:           logger.Named("headless"),
			})
			cancel()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	case o.window:
		err := hal.RunWindow(gctx, p.Frames(), hal.WindowConfig{
			Title: "facet (" + buildinfo.Short() + ")",
			Scale: o.scale,
			OnKey: p.HandleKey,
		})
		cancel()
		if err := windowDone(err, g.Wait); err != nil {
			return err
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("facet stopped", zap.Uint64("ticks", p.Ticks()))
	return nil
}

// windowDone reports a window failure together with whatever the producer
// and sinks returned while shutting down.
func windowDone(windowErr error, wait func() error) error {
	if windowErr == nil {
		return nil
	}
	return errors.Join(windowErr, wait())
}

// loadConfig reads the config file, then applies flags given on the command
// line on top of it.
func loadConfig(o options) (app.Config, error) {
	cfg := app.DefaultConfig()
	if o.config != "" {
		f, err := os.Open(o.config)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg, err = app.LoadConfig(f); err != nil {
			return cfg, fmt.Errorf("%s: %w", o.config, err)
		}
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = o.width
		case "height":
			cfg.Height = o.height
		case "fov":
			cfg.FOV = float32(o.fov)
		case "tick":
			cfg.Tick = o.tick
		case "mesh":
			cfg.Mesh = o.mesh
		case "mode":
			err = errors.Join(err, cfg.Mode.UnmarshalText([]byte(strings.ToLower(o.mode))))
		case "log-level":
			cfg.Log.Level = o.logLevel
		case "console":
			cfg.Console = o.console
		}
	})
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
