package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"facet/facetgl"
	"facet/internal/log"
	"facet/mesh"
)

var ErrConfig = errors.New("invalid config")

// Config is everything the producer needs, loadable from YAML.
//
// Angles (yaw, pitch and their per-tick steps) are radians. FOV is the
// vertical field of view in degrees.
type Config struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FOV    float32 `yaml:"fov"`

	Tick      time.Duration `yaml:"tick"`
	YawStep   float32       `yaml:"yaw_step"`
	PitchStep float32       `yaml:"pitch_step"`

	Position facetgl.Vec3 `yaml:"position"`
	Yaw      float32      `yaml:"yaw"`
	Pitch    float32      `yaml:"pitch"`

	Background facetgl.Color   `yaml:"background"`
	Palette    []facetgl.Color `yaml:"palette"`

	// Mesh is an OBJ file path or "builtin:<name>".
	Mesh      string             `yaml:"mesh"`
	Normalize bool               `yaml:"normalize"`
	Mode      facetgl.RenderMode `yaml:"mode"`

	HUD        bool `yaml:"hud"`
	Console    bool `yaml:"console"`
	StatsEvery int  `yaml:"stats_every"`

	Log log.Config `yaml:"log"`
}

func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     480,
		FOV:        60,
		Tick:       16 * time.Millisecond,
		YawStep:    0.02,
		PitchStep:  0.007,
		Position:   facetgl.V3(0, 0, -4),
		Background: facetgl.RGB(0x10, 0x14, 0x18),
		Mesh:       mesh.BuiltinPrefix + "cube",
		Normalize:  true,
		Mode:       facetgl.RenderSolid,
		HUD:        true,
		StatsEvery: 120,
		Log:        log.DefaultConfig(),
	}
}

// LoadConfig reads YAML on top of DefaultConfig and validates the result.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []string
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Sprintf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Width > 8192 || c.Height > 8192 {
		errs = append(errs, fmt.Sprintf("size %dx%d exceeds 8192", c.Width, c.Height))
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		errs = append(errs, fmt.Sprintf("fov %v must be in (0, 180)", c.FOV))
	}
	if c.Tick <= 0 {
		errs = append(errs, fmt.Sprintf("tick %v must be positive", c.Tick))
	}
	if c.StatsEvery < 0 {
		errs = append(errs, "stats_every must not be negative")
	}
	if c.Mesh == "" {
		errs = append(errs, "mesh is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrConfig, strings.Join(errs, "; "))
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}
