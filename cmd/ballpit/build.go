package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/spawn"
)

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ballpit",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// resolveConfig layers the preset, then the config file, then any flags the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("balls") {
		cfg.NumBalls = numBalls
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("cell") {
		cfg.CellSize = cellSize
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("renderer") {
		cfg.Renderer = renderer
	}
	if flags.Changed("layout") {
		cfg.Spawn.Layout = layout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSimulator spawns the configured population with the given seed and
// wraps it in a simulator. cfg must already be validated.
func buildSimulator(cfg *config.Config, seed int64, logger *log.Logger, opts ...sim.Option) (*sim.Simulator, error) {
	types := append([]spawn.Type(nil), cfg.Spawn.Types...)
	if cfg.Spawn.RandomTypes > 0 {
		rng := rand.New(rand.NewSource(seed ^ 0x5eed))
		types = append(types, spawn.RandomTypes(rng, cfg.Spawn.RandomTypes)...)
	}
	table, err := spawn.NewTable(types)
	if err != nil {
		return nil, err
	}

	lay, _ := cfg.Layout()
	g, _ := cfg.GravityMode()

	world, err := spawn.NewWorld(table, spawn.Options{
		Count:  cfg.NumBalls,
		Width:  cfg.Width,
		Height: cfg.Height,
		Layout: lay,
		Seed:   seed,
	}, cfg.CellSize)
	if err != nil {
		return nil, err
	}
	engine, err := physics.NewEngine(cfg.Physics)
	if err != nil {
		return nil, err
	}
	logger.Debug("world ready", "bodies", len(world.Bodies), "types", table.Len(),
		"cells", world.Grid.Len(), "layout", lay, "seed", seed)

	base := []sim.Option{
		sim.WithStepper(cfg.Stepper),
		sim.WithGravity(g),
		sim.WithLogger(logger),
	}
	return sim.New(world, engine, append(base, opts...)...)
}
