//go:build !cgo

package hal

import (
	"context"
	"errors"
)

type WindowConfig struct {
	Title string
	Scale int
	TPS   int
	OnKey KeyHandler
}

func RunWindow(_ context.Context, _ Source, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
