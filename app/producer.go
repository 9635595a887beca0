package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"facet/facetgl"
	"facet/hal"
	"facet/hud"
	"facet/internal/buildinfo"
	"facet/mesh"
)

var ErrPanic = errors.New("frame panicked")

// BuildModel loads the configured mesh and colors it. A face that refers to
// a missing vertex fails the whole build.
func BuildModel(cfg Config) (*facetgl.Model, error) {
	m, err := mesh.Load(cfg.Mesh)
	if err != nil {
		return nil, err
	}
	if cfg.Normalize {
		m.Normalize()
	}
	tris, err := m.Triangles()
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", m.Name, err)
	}
	tr := facetgl.Transform{Position: cfg.Position, Direction: facetgl.V3(cfg.Yaw, cfg.Pitch, 0)}
	return facetgl.NewModel(mesh.Colorize(tris, cfg.Palette), tr), nil
}

// Producer renders the model into a FrameBuffer once per tick.
//
// Tick and Run must be called from a single goroutine. HandleKey may be
// called from any goroutine.
type Producer struct {
	cfg     Config
	log     *zap.Logger
	model   *facetgl.Model
	rast    *facetgl.Rasterizer
	frames  *hal.FrameBuffer
	console *hud.Console
	tris    []facetgl.ColoredTriangle

	mode        atomic.Uint32
	hud         atomic.Bool
	showConsole atomic.Bool
	paused      atomic.Bool

	ticks uint64
	last  facetgl.DrawStats
	fps   float64

	windowStart time.Time
	windowTicks int
	windowDraw  time.Duration
}

// NewProducer prepares a producer for model. console may be nil.
func NewProducer(cfg Config, model *facetgl.Model, logger *zap.Logger, console *hud.Console) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Producer{
		cfg:     cfg,
		log:     logger,
		model:   model,
		rast:    facetgl.NewRasterizer(cfg.Width, cfg.Height, cfg.FOV),
		frames:  hal.NewFrameBuffer(cfg.Width, cfg.Height),
		console: console,
		tris:    make([]facetgl.ColoredTriangle, 0, model.Len()),
	}
	p.mode.Store(uint32(cfg.Mode))
	p.hud.Store(cfg.HUD)
	p.showConsole.Store(cfg.Console && console != nil)
	return p
}

// Frames is the source every presentation sink reads from.
func (p *Producer) Frames() *hal.FrameBuffer { return p.frames }

// Ticks returns the number of completed ticks.
func (p *Producer) Ticks() uint64 { return p.ticks }

// HandleKey applies interactive toggles.
func (p *Producer) HandleKey(k hal.KeyCode) {
	switch k {
	case hal.KeyWireframe:
		if facetgl.RenderMode(p.mode.Load()) == facetgl.RenderWireframe {
			p.mode.Store(uint32(facetgl.RenderSolid))
		} else {
			p.mode.Store(uint32(facetgl.RenderWireframe))
		}
	case hal.KeyHUD:
		p.hud.Store(!p.hud.Load())
	case hal.KeyConsole:
		if p.console != nil {
			p.showConsole.Store(!p.showConsole.Load())
		}
	case hal.KeyPause:
		p.paused.Store(!p.paused.Load())
	default:
		return
	}
	p.log.Debug("key", zap.Stringer("key", k))
}

// Run ticks every cfg.Tick until ctx is done or a tick fails.
func (p *Producer) Run(ctx context.Context) error {
	p.log.Info("producer started",
		zap.Int("width", p.cfg.Width),
		zap.Int("height", p.cfg.Height),
		zap.Float32("fov", p.cfg.FOV),
		zap.Duration("tick", p.cfg.Tick),
		zap.Int("triangles", p.model.Len()),
	)

	t := time.NewTicker(p.cfg.Tick)
	defer t.Stop()
	for {
		if err := p.Tick(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			p.log.Info("producer stopped", zap.Uint64("ticks", p.ticks))
			return nil
		case <-t.C:
		}
	}
}

// Tick renders and publishes one frame, then advances the rotation.
//
// A panic while rendering is returned as an error after a panic screen has
// been published in place of the frame.
func (p *Producer) Tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = p.fail(r)
		}
	}()

	start := time.Now()
	back := p.frames.Back()
	back.Clear(p.cfg.Background)

	p.rast.SetRenderMode(facetgl.RenderMode(p.mode.Load()))
	p.tris = p.model.Transformed(p.tris)
	p.last = p.rast.Draw(back, p.tris)
	draw := time.Since(start)

	p.overlay(back)
	if ce := p.log.Check(zapcore.DebugLevel, "frame"); ce != nil {
		ce.Write(zap.Uint64("seq", p.frames.Seq()+1), zap.String("digest", fmt.Sprintf("%016x", back.Digest())))
	}
	p.frames.Publish()

	if !p.paused.Load() {
		p.model.Rotate(p.cfg.YawStep, p.cfg.PitchStep)
	}
	p.ticks++
	p.report(start, draw)
	return nil
}

func (p *Producer) overlay(f *facetgl.Frame) {
	if p.hud.Load() {
		dir := p.model.Transform.Direction
		lines := []string{
			"facet " + buildinfo.Short(),
			fmt.Sprintf("%.0f fps  %s", p.fps, facetgl.RenderMode(p.mode.Load())),
			fmt.Sprintf("tris %d drawn %d", p.last.Triangles, p.last.Drawn),
			fmt.Sprintf("culled %d behind %d", p.last.Culled, p.last.Behind),
			fmt.Sprintf("yaw %.2f pitch %.2f", dir.X, dir.Y),
		}
		if p.paused.Load() {
			lines = append(lines, "paused")
		}
		hud.DrawPanel(f, 4, 4, lines, facetgl.RGB(0xE0, 0xE8, 0xFF))
	}
	if p.showConsole.Load() {
		_, h := p.console.Size()
		p.console.Overlay(f, 4, f.H-h-4)
	}
}

func (p *Producer) report(start time.Time, draw time.Duration) {
	if p.windowStart.IsZero() {
		p.windowStart = start
	}
	p.windowTicks++
	p.windowDraw += draw

	every := p.cfg.StatsEvery
	if every <= 0 || p.windowTicks < every {
		return
	}
	elapsed := time.Since(p.windowStart)
	if elapsed > 0 {
		p.fps = float64(p.windowTicks) / elapsed.Seconds()
	}
	p.log.Info("frame stats",
		zap.Uint64("tick", p.ticks),
		zap.Float64("fps", p.fps),
		zap.Duration("draw_avg", p.windowDraw/time.Duration(p.windowTicks)),
		zap.Int("triangles", p.last.Triangles),
		zap.Int("drawn", p.last.Drawn),
		zap.Int("culled", p.last.Culled),
		zap.Int("behind", p.last.Behind),
		zap.Int("pixels", p.last.Pixels),
	)
	p.windowStart = time.Time{}
	p.windowTicks = 0
	p.windowDraw = 0
}

func (p *Producer) fail(r any) error {
	var err error
	if e, ok := r.(error); ok {
		err = fmt.Errorf("%w in tick %d: %w", ErrPanic, p.ticks, e)
	} else {
		err = fmt.Errorf("%w in tick %d: %v", ErrPanic, p.ticks, r)
	}

	stack := string(debug.Stack())
	p.log.Error("frame panicked", zap.Error(err), zap.String("stack", stack))

	// Drop the runtime frames above the panicking call.
	if i := strings.Index(stack, "panic("); i >= 0 {
		stack = stack[i:]
	}
	hud.PanicScreen(p.frames.Back(), "facet panic", err.Error()+"\n"+stack)
	p.frames.Publish()
	return err
}
