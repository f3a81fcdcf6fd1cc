package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/spawn"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NumBalls != 20000 {
		t.Errorf("expected 20000 balls, got %d", cfg.NumBalls)
	}
	if cfg.CellSize != 12 {
		t.Errorf("expected cell size 12, got %f", cfg.CellSize)
	}
	if cfg.Stepper.MaxSteps != 6 || cfg.Stepper.MaxDelta != 1 {
		t.Errorf("unexpected stepper %+v", cfg.Stepper)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative cell", func(c *Config) { c.CellSize = -1 }},
		{"negative balls", func(c *Config) { c.NumBalls = -1 }},
		{"unknown gravity", func(c *Config) { c.Gravity = "sideways" }},
		{"unknown renderer", func(c *Config) { c.Renderer = "sepia" }},
		{"unknown layout", func(c *Config) { c.Spawn.Layout = "spiral" }},
		{"negative friction", func(c *Config) { c.Physics.Friction = -1 }},
		{"zero max steps", func(c *Config) { c.Stepper.MaxSteps = 0 }},
		{"bad spawn weight", func(c *Config) { c.Spawn.Types[0].Weight = 0 }},
		{"empty table", func(c *Config) {
			c.Spawn.Types = nil
			c.Spawn.RandomTypes = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballpit.yaml")
	data := []byte("num_balls: 500\ngravity: down\nphysics:\n  friction: 0.5\nspawn:\n  layout: noise\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.NumBalls != 500 || cfg.Width != DefaultWidth {
		t.Errorf("expected overlay on defaults, got %d balls, width %f", cfg.NumBalls, cfg.Width)
	}
	if g, _ := cfg.GravityMode(); g != physics.GravityDown {
		t.Errorf("expected gravity down, got %v", g)
	}
	if cfg.Physics.Friction != 0.5 || cfg.Physics.Gravity != physics.DefaultGravity {
		t.Errorf("unexpected physics %+v", cfg.Physics)
	}
	if l, _ := cfg.Layout(); l != spawn.LayoutNoise {
		t.Errorf("expected noise layout, got %v", l)
	}
	if len(cfg.Spawn.Types) != len(spawn.DefaultTypes()) {
		t.Errorf("expected default spawn types kept, got %d", len(cfg.Spawn.Types))
	}
}

func TestOverlayKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballpit.yaml")
	if err := os.WriteFile(path, []byte("num_balls: 300\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("small")
	cfg, err := Overlay(path, base)
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if cfg.NumBalls != 300 {
		t.Errorf("expected file to set 300 balls, got %d", cfg.NumBalls)
	}
	if cfg.Width != 640 || cfg.Height != 360 || cfg.Spawn.RandomTypes != 100 {
		t.Errorf("expected preset fields kept, got %gx%g with %d random types",
			cfg.Width, cfg.Height, cfg.Spawn.RandomTypes)
	}
	if base.NumBalls != 1500 {
		t.Errorf("base modified: %d balls", base.NumBalls)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("cell_size: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("rain")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Gravity != cfg.Gravity || loaded.Spawn.Types[1].Color != cfg.Spawn.Types[1].Color {
		t.Errorf("round trip changed config: %+v", loaded)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	if GetPreset("sparse").NumBalls != 2000 {
		t.Error("sparse preset should spawn 2000 balls")
	}
	if DefaultConfig().NumBalls != DefaultNumBalls {
		t.Error("presets must not mutate the defaults")
	}
	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}
