//go:build cgo

package hal

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window sink.
type WindowConfig struct {
	Title string
	// Scale is the initial window size as a multiple of the frame size.
	Scale int
	// TPS is how often the window polls input and pulls a frame.
	TPS   int
	OnKey KeyHandler
}

// RunWindow shows src in a resizable desktop window until the window is
// closed, Escape is pressed or ctx is done. It must run on the main goroutine.
func RunWindow(ctx context.Context, src Source, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	g := &hostGame{ctx: ctx, src: src, onKey: cfg.OnKey, pix: frameBytes(src)}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(src.Width()*cfg.Scale, src.Height()*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyW, KeyWireframe},
	{ebiten.KeyH, KeyHUD},
	{ebiten.KeyC, KeyConsole},
	{ebiten.KeyF11, KeyFullscreen},
	{ebiten.KeySpace, KeyPause},
}

type hostGame struct {
	ctx   context.Context
	src   Source
	onKey KeyHandler

	pix   []byte
	seq   uint64
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for _, k := range windowKeys {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		if g.onKey != nil {
			g.onKey(k.code)
		}
		switch k.code {
		case KeyEscape:
			return ebiten.Termination
		case KeyFullscreen:
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.src.Width(), g.src.Height())
	}
	if seq := g.src.Pull(g.pix); seq != g.seq {
		g.seq = seq
		g.fbImg.WritePixels(g.pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

// Layout pins the logical screen to the render resolution; ebiten scales it
// to whatever size the window has.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.src.Width(), g.src.Height()
}
