package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/gui"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	numBalls   int
	seed       int64
	width      float32
	height     float32
	cellSize   float32
	gravity    string
	renderer   string
	layout     string
	verbose    bool
	// gui and tui
	scale float32
	theme string
	// run and bench
	frames     int
	frameDelta float32
	live       bool
	save       bool
	svgPath    string
	scriptFile string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	frameRate  int
	ensemble   int
)

// main registers the ballpit commands and runs the GUI when no subcommand is
// given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ballpit",
		Short:         "real-time 2d ball physics",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".ballpit", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&numBalls, "balls", config.DefaultNumBalls, "number of balls")
	pf.Int64Var(&seed, "seed", 1, "random seed")
	pf.Float32Var(&width, "width", config.DefaultWidth, "world width")
	pf.Float32Var(&height, "height", config.DefaultHeight, "world height")
	pf.Float32Var(&cellSize, "cell", config.DefaultCellSize, "grid cell size")
	pf.StringVar(&gravity, "gravity", "none", "initial gravity (none, left, right, up, down)")
	pf.StringVar(&renderer, "renderer", "base", "color mode (base, momentum, velocity, pulsing)")
	pf.StringVar(&layout, "layout", "uniform", "spawn layout (uniform, noise)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().Float32Var(&scale, "scale", 1, "pixels per world unit")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().Float32Var(&scale, "scale", 1, "pixels per world unit")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "default", "terminal theme (default, retro, minimal, ocean, sunset)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	runCmd.Flags().Float32Var(&frameDelta, "delta", 1, "frame length in 60Hz frames")
	runCmd.Flags().BoolVar(&live, "live", false, "draw frames to the terminal")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "live view frame rate")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run report in the data directory")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "scenario file of scripted input (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the energy plot as svg")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one simulation per parameter value",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "friction", "parameter to sweep (friction, gravity, balls)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", 300, "frames per run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame times",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 300, "frames to time")
	benchCmd.Flags().IntVar(&ensemble, "ensemble", 0, "also run N seeded simulations concurrently")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-14s %6d balls  %s gravity  %s layout\n", name, cfg.NumBalls, cfg.Gravity, cfg.Spawn.Layout)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, benchCmd, sweepCmd, listCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mode, _ := cfg.RendererMode()
	logger := newLogger()

	app := gui.NewApp(gui.Options{Scale: scale, Mode: mode}, logger)
	s, err := buildSimulator(cfg, cfg.Seed, logger, sim.WithInput(app), sim.WithRenderer(app))
	if err != nil {
		return err
	}
	app.Attach(s)
	return app.Run()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mode, _ := cfg.RendererMode()
	th, err := tui.ParseTheme(theme)
	if err != nil {
		return err
	}

	in := tui.NewInput()
	s, err := buildSimulator(cfg, cfg.Seed, newLogger(), sim.WithInput(in.Source()), sim.WithRenderer(in.Sink()))
	if err != nil {
		return err
	}
	return tui.Run(s, in, mode, th)
}
