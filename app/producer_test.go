package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"facet/facetgl"
	"facet/hal"
	"facet/hud"
	"facet/mesh"
)

var (
	testBG  = facetgl.RGB(0, 0, 0x20)
	testRed = facetgl.RGB(0xFF, 0, 0)
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 48
	cfg.Tick = time.Millisecond
	cfg.Background = testBG
	cfg.HUD = false
	cfg.StatsEvery = 0
	cfg.Position = facetgl.V3(0, 0, -3)
	return cfg
}

func testModel(cfg Config) *facetgl.Model {
	tri := facetgl.Triangle{A: facetgl.V3(-1, -1, 0), B: facetgl.V3(1, -1, 0), C: facetgl.V3(0, 1, 0)}
	return facetgl.NewModel([]facetgl.ColoredTriangle{{Tri: tri, Color: testRed}},
		facetgl.Transform{Position: cfg.Position})
}

func pull(p *Producer) (*facetgl.Frame, uint64) {
	f := facetgl.NewFrame(p.Frames().Width(), p.Frames().Height())
	seq := p.Frames().PullFrame(f)
	return f, seq
}

func TestTickPublishesThenRotates(t *testing.T) {
	cfg := testConfig()
	cfg.YawStep, cfg.PitchStep = 0.25, 0.125
	model := testModel(cfg)
	p := NewProducer(cfg, model, nil, nil)

	// The published frame shows the scene before the rotation step.
	want := facetgl.NewFrame(cfg.Width, cfg.Height)
	want.Clear(testBG)
	facetgl.NewRasterizer(cfg.Width, cfg.Height, cfg.FOV).Draw(want, model.Transformed(nil))

	require.NoError(t, p.Tick())
	got, seq := pull(p)
	assert.EqualValues(t, 1, seq)
	assert.Equal(t, want.Digest(), got.Digest())
	assert.Positive(t, got.Count(testRed))

	assert.Equal(t, facetgl.V3(0.25, 0.125, 0), model.Transform.Direction)
	assert.EqualValues(t, 1, p.Ticks())

	require.NoError(t, p.Tick())
	_, seq = pull(p)
	assert.EqualValues(t, 2, seq)
	assert.Equal(t, facetgl.V3(0.5, 0.25, 0), model.Transform.Direction)
}

func TestTickInvalidFOVBecomesError(t *testing.T) {
	for _, fov := range []float32{0, -10} {
		cfg := testConfig()
		cfg.FOV = fov
		core, logs := observer.New(zapcore.ErrorLevel)
		p := NewProducer(cfg, testModel(cfg), zap.New(core), nil)

		err := p.Tick()
		require.ErrorIs(t, err, facetgl.ErrInvalidFOV)
		require.ErrorIs(t, err, ErrPanic)
		assert.Equal(t, 1, logs.FilterMessage("frame panicked").Len())

		// A panic screen replaces the frame and no rotation happens.
		got, seq := pull(p)
		assert.EqualValues(t, 1, seq)
		assert.Zero(t, got.Count(testRed))
		assert.Positive(t, got.Count(facetgl.RGB(0x40, 0, 0)))
		assert.Zero(t, p.Ticks())
	}
}

func TestRunReturnsTickError(t *testing.T) {
	cfg := testConfig()
	cfg.FOV = 0
	p := NewProducer(cfg, testModel(cfg), nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, p.Run(ctx), facetgl.ErrInvalidFOV)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	p := NewProducer(cfg, testModel(cfg), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool { return p.Frames().Seq() >= 3 }, 5*time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.EqualValues(t, p.Frames().Seq(), p.Ticks())
}

func TestHandleKey(t *testing.T) {
	cfg := testConfig()
	model := testModel(cfg)
	p := NewProducer(cfg, model, nil, nil)

	require.NoError(t, p.Tick())
	solid, _ := pull(p)

	p.HandleKey(hal.KeyPause)
	p.HandleKey(hal.KeyWireframe)
	dir := model.Transform.Direction
	require.NoError(t, p.Tick())
	wire, _ := pull(p)
	assert.Less(t, wire.Count(testRed), solid.Count(testRed))
	assert.Positive(t, wire.Count(testRed))
	assert.Equal(t, dir, model.Transform.Direction, "paused")

	p.HandleKey(hal.KeyWireframe)
	p.HandleKey(hal.KeyHUD)
	require.NoError(t, p.Tick())
	withHUD, _ := pull(p)
	assert.NotEqual(t, solid.Digest(), withHUD.Digest())

	// Without a console the toggle does nothing.
	p.HandleKey(hal.KeyConsole)
	assert.False(t, p.showConsole.Load())
	p.HandleKey(hal.KeyUnknown)
}

func TestConsoleOverlayIsDrawn(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 160, 120
	cfg.Console = true
	console := hud.NewConsole(100, 2*hud.LineHeight)
	p := NewProducer(cfg, testModel(cfg), nil, console)
	p.HandleKey(hal.KeyPause)

	require.NoError(t, p.Tick())
	before, _ := pull(p)

	_, err := console.Write([]byte("mesh loaded\n"))
	require.NoError(t, err)
	require.NoError(t, p.Tick())
	after, _ := pull(p)
	assert.NotEqual(t, before.Digest(), after.Digest())
}

func TestStatsAreLogged(t *testing.T) {
	cfg := testConfig()
	cfg.StatsEvery = 2
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewProducer(cfg, testModel(cfg), zap.New(core), nil)

	for n := 0; n < 4; n++ {
		require.NoError(t, p.Tick())
	}
	stats := logs.FilterMessage("frame stats").All()
	require.Len(t, stats, 2)
	fields := stats[1].ContextMap()
	assert.EqualValues(t, 4, fields["tick"])
	assert.EqualValues(t, 1, fields["triangles"])
	assert.EqualValues(t, 1, fields["drawn"])

	frames := logs.FilterMessage("frame").All()
	require.Len(t, frames, 4)
	assert.Len(t, frames[0].ContextMap()["digest"], 16)
}

func TestBuildModel(t *testing.T) {
	cfg := testConfig()
	cfg.Mesh = mesh.BuiltinPrefix + "tetra"
	cfg.Yaw = 0.5
	model, err := BuildModel(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, model.Len())
	assert.Equal(t, facetgl.V3(0.5, 0, 0), model.Transform.Direction)
	assert.Equal(t, cfg.Position, model.Transform.Position)
}

func TestBuildModelBadFaceIndexAborts(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.obj")
	require.NoError(t, os.WriteFile(p, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"), 0o644))

	cfg := testConfig()
	cfg.Mesh = p
	_, err := BuildModel(cfg)
	require.ErrorIs(t, err, mesh.ErrFaceIndex)
}

func TestTickNarrowFrameWithHUD(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 3, 64
	cfg.HUD = true
	require.NoError(t, cfg.Validate())

	p := NewProducer(cfg, testModel(cfg), nil, nil)
	require.NoError(t, p.Tick())
	_, seq := pull(p)
	assert.EqualValues(t, 1, seq)
}
