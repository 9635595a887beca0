package hal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"
)

// TerminalConfig controls the ANSI terminal sink.
type TerminalConfig struct {
	Hz  int
	Out io.Writer
	// Fd is queried for the terminal size. Cols and Rows override it.
	Fd         int
	Cols, Rows int
}

// RunTerminal draws src into a truecolor terminal using upper half blocks,
// two pixel rows per text row, until ctx is done.
func RunTerminal(ctx context.Context, src Source, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 15
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
		cfg.Fd = int(os.Stdout.Fd())
	}

	if _, err := io.WriteString(cfg.Out, "\x1b[?25l\x1b[2J"); err != nil {
		return err
	}
	defer io.WriteString(cfg.Out, "\x1b[0m\x1b[?25h\n")

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	pix := frameBytes(src)
	var buf bytes.Buffer
	var last uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
		seq := src.Pull(pix)
		if seq == 0 || seq == last {
			continue
		}
		last = seq

		cols, rows := terminalSize(cfg)
		buf.Reset()
		buf.WriteString("\x1b[H")
		RenderANSI(&buf, pix, src.Width(), src.Height(), cols, rows)
		if _, err := cfg.Out.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
	}
}

func terminalSize(cfg TerminalConfig) (cols, rows int) {
	cols, rows = cfg.Cols, cfg.Rows
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	if term.IsTerminal(cfg.Fd) {
		if w, h, err := term.GetSize(cfg.Fd); err == nil {
			// Keep the last row free so the terminal does not scroll.
			return w, h - 1
		}
	}
	return 80, 24
}

// RenderANSI samples an RGBA pixel buffer down to cols x rows character
// cells and writes it as truecolor escape sequences.
func RenderANSI(buf *bytes.Buffer, pix []byte, w, h, cols, rows int) {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return
	}
	// Terminal cells are about twice as tall as wide; keep the aspect ratio.
	if c := rows * 2 * w / h; c < cols {
		cols = c
	} else if r := cols * h / w / 2; r < rows {
		rows = r
	}
	if cols <= 0 || rows <= 0 {
		return
	}

	at := func(cx, py int) []byte {
		x := cx * w / cols
		y := py * h / (rows * 2)
		off := (y*w + x) * 4
		return pix[off : off+3]
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			top, bot := at(c, 2*r), at(c, 2*r+1)
			buf.WriteString("\x1b[38;2;")
			writeRGB(buf, top)
			buf.WriteString(";48;2;")
			writeRGB(buf, bot)
			buf.WriteString("m▀")
		}
		buf.WriteString("\x1b[0m\r\n")
	}
}

func writeRGB(buf *bytes.Buffer, p []byte) {
	var tmp [3]byte
	buf.Write(strconv.AppendUint(tmp[:0], uint64(p[0]), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendUint(tmp[:0], uint64(p[1]), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendUint(tmp[:0], uint64(p[2]), 10))
}
