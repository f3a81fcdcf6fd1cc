package config

import (
	"slices"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/spawn"
)

// Presets are named adjustments applied on top of DefaultConfig.
var Presets = map[string]func(c *Config){
	"default": func(c *Config) {},
	"classic": func(c *Config) {
		c.Spawn.RandomTypes = 0
	},
	"sparse": func(c *Config) {
		c.NumBalls = 2000
		c.Spawn.RandomTypes = 0
	},
	"dense": func(c *Config) {
		c.NumBalls = 40000
		c.CellSize = 8
	},
	"rain": func(c *Config) {
		c.Gravity = physics.GravityDown.String()
		c.Physics.Friction = 0
		c.Spawn.RandomTypes = 0
	},
	"clusters": func(c *Config) {
		c.Spawn.Layout = spawn.LayoutNoise.String()
	},
	"frictionless": func(c *Config) {
		c.Physics = physics.Params{}
		c.Spawn.RandomTypes = 0
	},
	"small": func(c *Config) {
		c.Width, c.Height = 640, 360
		c.NumBalls = 1500
		c.Spawn.RandomTypes = 100
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
