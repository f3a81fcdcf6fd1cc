package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/spawn"
)

const (
	DefaultWidth       = 1920
	DefaultHeight      = 1080
	DefaultCellSize    = 12
	DefaultNumBalls    = 20000
	DefaultRandomTypes = 10000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Width    float32        `yaml:"width"`
	Height   float32        `yaml:"height"`
	CellSize float32        `yaml:"cell_size"`
	NumBalls int            `yaml:"num_balls"`
	Seed     int64          `yaml:"seed"`
	Gravity  string         `yaml:"gravity"`
	Renderer string         `yaml:"renderer"`
	Physics  physics.Params `yaml:"physics"`
	Stepper  sim.Stepper    `yaml:"stepper"`
	Spawn    SpawnConfig    `yaml:"spawn"`
}

type SpawnConfig struct {
	Layout string `yaml:"layout"`
	// RandomTypes is the number of generated resting types appended to Types.
	RandomTypes int          `yaml:"random_types"`
	Types       []spawn.Type `yaml:"types"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		CellSize: DefaultCellSize,
		NumBalls: DefaultNumBalls,
		Seed:     1,
		Gravity:  physics.GravityNone.String(),
		Renderer: render.ModeBase.String(),
		Physics:  physics.DefaultParams(),
		Stepper:  sim.DefaultStepper(),
		Spawn: SpawnConfig{
			Layout:      spawn.LayoutUniform.String(),
			RandomTypes: DefaultRandomTypes,
			Types:       spawn.DefaultTypes(),
		},
	}
}

// Load overlays the YAML file at path on DefaultConfig and validates the
// result.
func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads the YAML file at path over a copy of base, so fields the
// file leaves out keep base's values. base is not modified.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Spawn.Types = append([]spawn.Type(nil), base.Spawn.Types...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: bounds %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	if !(c.CellSize > 0) {
		return fmt.Errorf("%w: cell size %g", ErrInvalidConfig, c.CellSize)
	}
	if c.NumBalls < 0 {
		return fmt.Errorf("%w: num_balls %d", ErrInvalidConfig, c.NumBalls)
	}
	if c.Spawn.RandomTypes < 0 {
		return fmt.Errorf("%w: random_types %d", ErrInvalidConfig, c.Spawn.RandomTypes)
	}
	if len(c.Spawn.Types) == 0 && c.Spawn.RandomTypes == 0 && c.NumBalls > 0 {
		return fmt.Errorf("%w: empty spawn table", ErrInvalidConfig)
	}
	if len(c.Spawn.Types) > 0 {
		if _, err := spawn.NewTable(c.Spawn.Types); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if _, err := c.GravityMode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.RendererMode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Layout(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Stepper.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) GravityMode() (physics.Gravity, error) { return physics.ParseGravity(c.Gravity) }
func (c *Config) RendererMode() (render.Mode, error)    { return render.ParseMode(c.Renderer) }
func (c *Config) Layout() (spawn.Layout, error)         { return spawn.ParseLayout(c.Spawn.Layout) }
