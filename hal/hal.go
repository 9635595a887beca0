// Package hal connects the frame producer to the outside world.
//
// The producer renders into a FrameBuffer and publishes whole frames. Sinks
// (window, headless runner, websocket stream, terminal, display panel) only
// see the narrow Source interface and never block the producer.
package hal

// Source is the presentation boundary.
//
// Pull copies the latest published frame into dst and returns its sequence
// number (0 until the first publish). dst uses the facetgl.Frame layout:
// Width*Height*4 bytes, row-major RGBA. A shorter dst receives a prefix.
type Source interface {
	Width() int
	Height() int
	Pull(dst []byte) uint64
}

// KeyCode is a key a sink forwards to the application.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyWireframe
	KeyHUD
	KeyConsole
	KeyFullscreen
	KeyPause
)

func (k KeyCode) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyWireframe:
		return "wireframe"
	case KeyHUD:
		return "hud"
	case KeyConsole:
		return "console"
	case KeyFullscreen:
		return "fullscreen"
	case KeyPause:
		return "pause"
	default:
		return "unknown"
	}
}

// KeyHandler receives key presses from interactive sinks.
type KeyHandler func(KeyCode)

func frameBytes(src Source) []byte {
	return make([]byte, src.Width()*src.Height()*4)
}
