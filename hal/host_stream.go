package hal

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamHeaderSize is the length of the header in front of every frame
// message: width and height as little-endian uint32, then the uint64
// sequence number. The RGBA pixels follow.
const StreamHeaderSize = 16

// StreamConfig controls the websocket frame stream.
type StreamConfig struct {
	// Hz caps how often a client is sent a frame.
	Hz  int
	Log *zap.Logger
}

// StreamServer pushes published frames to websocket clients as binary
// messages. Frames whose content did not change since the last send to that
// client are skipped.
type StreamServer struct {
	src      Source
	cfg      StreamConfig
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*websocket.Conn
}

func NewStreamServer(src Source, cfg StreamConfig) *StreamServer {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &StreamServer{
		src: src,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		clients: make(map[uuid.UUID]*websocket.Conn),
	}
}

// Handler serves a small viewer page on "/" and the stream on "/ws".
func (s *StreamServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(viewerPage))
	})
	mux.Handle("/ws", s)
	return mux
}

// Clients returns the number of connected clients.
func (s *StreamServer) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves the stream on addr until ctx is done.
func (s *StreamServer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.cfg.Log.Info("stream listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *StreamServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.Log.Warn("stream upgrade failed", zap.Error(err))
		return
	}

	id := uuid.New()
	s.mu.Lock()
	s.clients[id] = conn
	s.mu.Unlock()

	log := s.cfg.Log.With(zap.Stringer("client", id), zap.String("remote", conn.RemoteAddr().String()))
	log.Info("stream client connected")

	defer func() {
		s.mu.Lock()
		delete(s.clients, id)
		s.mu.Unlock()
		conn.Close()
		log.Info("stream client disconnected")
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain control frames so a client close is noticed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.stream(ctx, conn); err != nil && ctx.Err() == nil {
		log.Warn("stream write failed", zap.Error(err))
	}
}

func (s *StreamServer) stream(ctx context.Context, conn *websocket.Conn) error {
	w, h := s.src.Width(), s.src.Height()
	msg := make([]byte, StreamHeaderSize+w*h*4)
	binary.LittleEndian.PutUint32(msg[0:], uint32(w))
	binary.LittleEndian.PutUint32(msg[4:], uint32(h))
	pix := msg[StreamHeaderSize:]

	t := time.NewTicker(time.Second / time.Duration(s.cfg.Hz))
	defer t.Stop()

	var lastSeq, lastDigest uint64
	sent := false
	for {
		seq := s.src.Pull(pix)
		if seq != 0 && seq != lastSeq {
			lastSeq = seq
			if d := xxhash.Sum64(pix); !sent || d != lastDigest {
				lastDigest, sent = d, true
				binary.LittleEndian.PutUint64(msg[8:], seq)
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
					return err
				}
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (s *StreamServer) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
			time.Now().Add(time.Second))
	}
}

const viewerPage = `<!doctype html>
<html><head><title>facet</title>
<style>body{margin:0;background:#111}canvas{image-rendering:pixelated;width:100vmin}</style>
</head><body><canvas id="c"></canvas><script>
const c = document.getElementById("c"), g = c.getContext("2d");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "arraybuffer";
ws.onmessage = (e) => {
  const v = new DataView(e.data), w = v.getUint32(0, true), h = v.getUint32(4, true);
  if (c.width !== w || c.height !== h) { c.width = w; c.height = h; }
  g.putImageData(new ImageData(new Uint8ClampedArray(e.data, 16), w, h), 0, 0);
};
</script></body></html>
`
