package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/storage"
	"github.com/san-kum/ballpit/internal/tui"
)

// frameBudget is the wall-clock time one rendered frame may take.
const frameBudget = 16 * time.Millisecond

var heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	var opts []sim.Option
	var script *automation.Script
	if scriptFile != "" {
		sc, err := automation.LoadScenario(scriptFile)
		if err != nil {
			return err
		}
		script, err = automation.NewScript(sc)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", scriptFile, err)
		}
		logger.Info("scenario loaded", "name", sc.Name, "steps", len(sc.Steps))
		opts = append(opts, sim.WithInput(script))
	}
	var view *tui.LiveRenderer
	if live {
		mode, _ := cfg.RendererMode()
		view = tui.NewLiveRenderer(os.Stdout, tui.Viewport{Width: cfg.Width, Height: cfg.Height}, 100, 30, frameRate, mode)
		opts = append(opts, sim.WithRenderer(view))
	}

	s, err := buildSimulator(cfg, cfg.Seed, logger, opts...)
	if err != nil {
		return err
	}
	addMetrics(s, cfg)
	energy := metrics.NewSeries(frames, metrics.TotalKineticEnergy)
	s.AddObserver(energy)
	recorder := &storage.Recorder{}
	if save {
		s.AddObserver(recorder)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if view != nil {
		view.Start()
	}
	start := time.Now()
	result, err := s.Run(ctx, sim.Config{Frames: frames, FrameDelta: frameDelta})
	if view != nil {
		view.Stop()
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil && result == nil {
		return err
	}
	if script != nil && !script.Done() {
		logger.Warn("run ended before the scenario finished", "script", scriptFile, "frames", result.Frames)
	}

	fmt.Println(heading.Render(fmt.Sprintf("ballpit  %d balls  %d frames", cfg.NumBalls, result.Frames)))
	fmt.Println()
	if err := printResult(result, time.Since(start)); err != nil {
		return err
	}

	if values := energy.Values(); len(values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total kinetic energy per frame"),
		))
	}

	if svgPath != "" {
		mode, _ := cfg.RendererMode()
		if werr := writeSVG(svgPath, func(w io.Writer) error {
			return export.FrameToSVG(w, &sim.Frame{Time: result.Time, Bodies: s.World().Bodies}, cfg.Width, cfg.Height, mode)
		}); werr != nil {
			return werr
		}
		logger.Info("snapshot written", "path", svgPath)
	}

	if save {
		meta := storage.RunMetadata{
			Preset:   preset,
			Seed:     cfg.Seed,
			Balls:    cfg.NumBalls,
			Width:    cfg.Width,
			Height:   cfg.Height,
			CellSize: cfg.CellSize,
			Gravity:  cfg.Gravity,
		}
		meta.FromResult(result)
		runID, saveErr := storage.New(dataDir).Save(meta, recorder.Samples)
		if saveErr != nil {
			return saveErr
		}
		logger.Info("run saved", "id", runID, "dir", dataDir)
	}
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBALLS\tFRAMES\tGRAVITY\tCOLLISIONS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Balls,
			run.Frames,
			run.Gravity,
			run.Collisions,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", runID)
	}

	energy := make([]float64, len(samples))
	collisions := make([]float64, len(samples))
	for i, smp := range samples {
		energy[i] = smp.Energy
		collisions[i] = float64(smp.Collisions)
	}

	fmt.Println(heading.Render(fmt.Sprintf("%s  %d balls  seed %d", meta.ID, meta.Balls, meta.Seed)))
	fmt.Println()
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(collisions,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("collisions per frame"),
	))

	if svgPath != "" {
		return writeSVG(svgPath, func(w io.Writer) error {
			_, err := io.WriteString(w, export.SeriesToSVG(energy, 800, 300, "#56d6c2"))
			return err
		})
	}
	return nil
}

func writeSVG(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	apply, err := sweepSetter(sweepParam)
	if err != nil {
		return err
	}
	factory := func(v float64) (*sim.Simulator, error) {
		c := *cfg
		apply(&c, v)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return buildSimulator(&c, c.Seed, logger)
	}

	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Frames:    frames,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, factory, logger)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCOLLISIONS\tFINAL ENERGY\tMAX SPEED\tDROPPED\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%.2f\t%.2f\t%.1f\n", r.ParamValue, r.Collisions, r.FinalEnergy, r.MaxSpeed, r.Dropped)
	}
	return w.Flush()
}

func sweepSetter(name string) (func(c *config.Config, v float64), error) {
	switch name {
	case "friction":
		return func(c *config.Config, v float64) { c.Physics.Friction = float32(v) }, nil
	case "gravity":
		return func(c *config.Config, v float64) { c.Physics.Gravity = float32(v) }, nil
	case "balls":
		return func(c *config.Config, v float64) { c.NumBalls = int(v) }, nil
	default:
		return nil, fmt.Errorf("unknown sweep parameter: %s (friction, gravity, balls)", name)
	}
}

func addMetrics(s *sim.Simulator, cfg *config.Config) {
	s.AddMetric(metrics.NewKineticEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewMomentum())
	s.AddMetric(metrics.NewMaxSpeed())
	s.AddMetric(metrics.NewCollisionRate())
	s.AddMetric(metrics.NewStability(float64(cfg.CellSize)))
	s.AddMetric(metrics.NewBudget())
}

func printResult(r *sim.Result, wall time.Duration) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", r.Frames)
	fmt.Fprintf(w, "sub-steps\t%d\n", r.Steps)
	fmt.Fprintf(w, "dropped\t%.2f frames\n", r.Dropped)
	fmt.Fprintf(w, "sim time\t%.1f frames\n", r.Time)
	fmt.Fprintf(w, "wall time\t%s\n", wall.Round(time.Millisecond))
	fmt.Fprintf(w, "candidates\t%d\n", r.Stats.Candidates)
	fmt.Fprintf(w, "collisions\t%d\n", r.Stats.Collisions)
	fmt.Fprintf(w, "wall hits\t%d\n", r.Stats.WallHits)
	fmt.Fprintf(w, "cell transfers\t%d\n", r.Stats.Transfers)

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, r.Metrics[name])
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	s, err := buildSimulator(cfg, cfg.Seed, newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d balls, cell %.0f, %d frames\n\n", cfg.NumBalls, cfg.CellSize, frames)

	times := make([]float64, 0, frames)
	var over int
	for i := 0; i < frames; i++ {
		start := time.Now()
		if _, err := s.Step(1); err != nil {
			return err
		}
		d := time.Since(start)
		if d > frameBudget {
			over++
		}
		times = append(times, float64(d.Microseconds())/1000)
	}

	sorted := slices.Clone(times)
	slices.Sort(sorted)
	var total float64
	for _, t := range times {
		total += t
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALLS\tFRAMES\tMEAN\tP50\tP95\tMAX\tOVER 16MS")
	fmt.Fprintf(w, "%d\t%d\t%.2fms\t%.2fms\t%.2fms\t%.2fms\t%d\n",
		cfg.NumBalls, frames,
		total/float64(len(times)),
		percentile(sorted, 0.5),
		percentile(sorted, 0.95),
		sorted[len(sorted)-1],
		over,
	)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(times,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame time (ms)"),
	))

	if ensemble > 0 {
		return benchEnsemble(cmd.Context(), cfg)
	}
	return nil
}

// benchEnsemble runs independent simulations with consecutive seeds in
// parallel and reports each run's totals.
func benchEnsemble(ctx context.Context, cfg *config.Config) error {
	quiet := newLogger()
	quiet.SetLevel(log.WarnLevel)

	factory := func(seed int64) (*sim.Simulator, error) {
		return buildSimulator(cfg, seed, quiet)
	}

	start := time.Now()
	results, err := sim.NewEnsemble(factory, ensemble, cfg.Seed).Run(ctx, sim.Config{Frames: frames, FrameDelta: 1})
	if err != nil {
		return err
	}
	wall := time.Since(start)

	fmt.Printf("\nensemble of %d runs in %s\n\n", ensemble, wall.Round(time.Millisecond))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tSTEPS\tCOLLISIONS\tWALL HITS\tTRANSFERS")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\n",
			cfg.Seed+int64(i), r.Frames, r.Steps, r.Stats.Collisions, r.Stats.WallHits, r.Stats.Transfers)
	}
	return w.Flush()
}

// percentile reads the p-quantile from ascending samples.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(p * float64(len(sorted)-1))
	return sorted[i]
}
