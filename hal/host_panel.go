package hal

import (
	"context"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
)

// PanelSink copies frames to a display driver, such as an SPI LCD, scaling
// with nearest-neighbor sampling when the sizes differ.
type PanelSink struct {
	src Source
	dev drivers.Displayer
	pix []byte
	seq uint64
}

func NewPanelSink(src Source, dev drivers.Displayer) *PanelSink {
	return &PanelSink{src: src, dev: dev, pix: frameBytes(src)}
}

// Flush pushes the latest frame to the device. It returns false when there
// was nothing new to show.
func (p *PanelSink) Flush() (bool, error) {
	seq := p.src.Pull(p.pix)
	if seq == 0 || seq == p.seq {
		return false, nil
	}
	p.seq = seq

	sw, sh := p.src.Width(), p.src.Height()
	dw, dh := p.dev.Size()
	for y := 0; y < int(dh); y++ {
		sy := y * sh / int(dh)
		for x := 0; x < int(dw); x++ {
			off := (sy*sw + x*sw/int(dw)) * 4
			px := p.pix[off : off+4 : off+4]
			p.dev.SetPixel(int16(x), int16(y), color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
		}
	}
	return true, p.dev.Display()
}

// Run flushes at hz until ctx is done or the device fails.
func (p *PanelSink) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		hz = 30
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := p.Flush(); err != nil {
				return err
			}
		}
	}
}
