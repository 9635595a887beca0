package hal

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz int
	// Ticks stops the runner after that many pulls; 0 runs until ctx is done.
	Ticks uint64
	// SnapshotDir receives PNG snapshots when set.
	SnapshotDir string
	// SnapshotEvery writes a snapshot every n ticks. With 0 only the final
	// tick is written.
	SnapshotEvery uint64
	// Scale enlarges snapshots by an integer factor.
	Scale int
	Log   *zap.Logger
}

// RunHeadless pulls frames from src at a fixed rate without opening a window.
func RunHeadless(ctx context.Context, src Source, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
			return fmt.Errorf("headless: %w", err)
		}
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	pix := frameBytes(src)
	var tick, last uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		tick++
		seq := src.Pull(pix)

		final := cfg.Ticks > 0 && tick >= cfg.Ticks
		due := final || (cfg.SnapshotEvery > 0 && tick%cfg.SnapshotEvery == 0)
		if cfg.SnapshotDir != "" && due && seq > 0 && seq != last {
			last = seq
			path := filepath.Join(cfg.SnapshotDir, fmt.Sprintf("frame-%06d.png", seq))
			if err := WritePNG(path, pix, src.Width(), src.Height(), cfg.Scale); err != nil {
				return err
			}
			cfg.Log.Debug("snapshot", zap.String("path", path), zap.Uint64("seq", seq))
		}
		if final {
			cfg.Log.Info("headless run finished", zap.Uint64("ticks", tick), zap.Uint64("seq", seq))
			return nil
		}
	}
}

// WritePNG encodes an RGBA pixel buffer as a PNG file, scaled up by an
// integer factor with nearest-neighbor sampling.
func WritePNG(path string, pix []byte, w, h, scale int) error {
	var img image.Image = &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
