// Package log builds the process logger.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrFormat = errors.New("log: unknown format")

type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrFormat, c.Format)
	}
}

// New returns a logger writing cfg.Format records to out (stderr when nil).
// Each extra writer gets a compact console rendering of the same records.
// Every record carries a "run" field that identifies this process.
func New(cfg Config, out io.Writer, extra ...io.Writer) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)
	if out == nil {
		out = os.Stderr
	}

	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(out), level)}
	for _, w := range extra {
		short := zapcore.EncoderConfig{
			MessageKey:       "msg",
			LevelKey:         "level",
			TimeKey:          "ts",
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeDuration:   zapcore.StringDurationEncoder,
			ConsoleSeparator: " ",
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(short), zapcore.AddSync(w), level))
	}

	return zap.New(zapcore.NewTee(cores...)).With(zap.String("run", uuid.NewString())), nil
}
