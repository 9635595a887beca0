package hal

import (
	"sync"
	"sync/atomic"

	"facet/facetgl"
)

type slot struct {
	frame *facetgl.Frame
	seq   uint64
}

// FrameBuffer hands finished frames from one producer to any number of
// consumers without a frame queue.
//
// It holds three frames. The producer owns back, consumers own front, and
// ready sits between them behind an atomic pointer. Publish and Pull move
// frames by swapping that pointer, so a frame is never written and read at
// the same time and the producer never waits on a consumer.
type FrameBuffer struct {
	w, h int

	// producer side
	back *slot
	seq  uint64

	ready     atomic.Pointer[slot]
	published atomic.Uint64

	// consumer side
	mu    sync.Mutex
	front *slot
}

var _ Source = (*FrameBuffer)(nil)

// NewFrameBuffer allocates the three w x h frames.
func NewFrameBuffer(w, h int) *FrameBuffer {
	b := &FrameBuffer{
		w:     w,
		h:     h,
		back:  &slot{frame: facetgl.NewFrame(w, h)},
		front: &slot{frame: facetgl.NewFrame(w, h)},
	}
	b.ready.Store(&slot{frame: facetgl.NewFrame(w, h)})
	return b
}

func (b *FrameBuffer) Width() int  { return b.w }
func (b *FrameBuffer) Height() int { return b.h }

// Back returns the frame the producer draws into. It stays valid until the
// next Publish. Only the producer goroutine may call Back and Publish.
func (b *FrameBuffer) Back() *facetgl.Frame { return b.back.frame }

// Publish makes the back frame visible to consumers and returns its sequence
// number. The producer receives a stale frame as its new back frame.
func (b *FrameBuffer) Publish() uint64 {
	b.seq++
	b.back.seq = b.seq
	b.back = b.ready.Swap(b.back)
	b.published.Store(b.seq)
	return b.seq
}

// Seq returns the sequence number of the newest published frame.
func (b *FrameBuffer) Seq() uint64 { return b.published.Load() }

// Pull copies the newest published frame into dst. Repeated calls without a
// Publish in between return the same frame and sequence number.
func (b *FrameBuffer) Pull(dst []byte) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.published.Load() > b.front.seq {
		b.front = b.ready.Swap(b.front)
	}
	copy(dst, b.front.frame.Pix)
	return b.front.seq
}

// PullFrame is Pull into a frame of the same size.
func (b *FrameBuffer) PullFrame(dst *facetgl.Frame) uint64 {
	return b.Pull(dst.Pix)
}
