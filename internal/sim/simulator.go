package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ballpit/internal/physics"
)

type Simulator struct {
	world       *physics.World
	engine      *physics.Engine
	interaction *physics.Interaction
	gravity     physics.Gravity
	stepper     Stepper

	input     InputSource
	renderer  Renderer
	pending   []Event
	metrics   []Metric
	observers []Observer
	logger    *log.Logger

	frame int
	time  float64
}

type Option func(*Simulator)

func WithInput(src InputSource) Option     { return func(s *Simulator) { s.input = src } }
func WithRenderer(r Renderer) Option       { return func(s *Simulator) { s.renderer = r } }
func WithStepper(st Stepper) Option        { return func(s *Simulator) { s.stepper = st } }
func WithGravity(g physics.Gravity) Option { return func(s *Simulator) { s.gravity = g } }
func WithLogger(l *log.Logger) Option      { return func(s *Simulator) { s.logger = l } }

func New(world *physics.World, engine *physics.Engine, opts ...Option) (*Simulator, error) {
	if world == nil || world.Grid == nil {
		return nil, fmt.Errorf("simulator needs a world with a grid")
	}
	if engine == nil {
		return nil, fmt.Errorf("simulator needs an engine")
	}
	s := &Simulator{
		world:       world,
		engine:      engine,
		interaction: physics.NewInteraction(),
		stepper:     DefaultStepper(),
		pending:     make([]Event, 0, 16),
		metrics:     make([]Metric, 0),
		observers:   make([]Observer, 0),
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.stepper.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() *physics.World             { return s.world }
func (s *Simulator) Gravity() physics.Gravity          { return s.gravity }
func (s *Simulator) Interaction() *physics.Interaction { return s.interaction }

// Push queues events for the next frame, after anything already queued.
func (s *Simulator) Push(events ...Event) {
	s.pending = append(s.pending, events...)
}

// Step runs one rendered frame covering delta frames of simulated time:
// queued and polled events first, then the sub-steps, then metrics,
// observers and the renderer.
func (s *Simulator) Step(delta float32) (*Frame, error) {
	if s.input != nil {
		s.pending = s.input.Poll(s.pending)
	}
	for _, ev := range s.pending {
		ev.apply(s)
	}
	clear(s.pending)
	s.pending = s.pending[:0]

	f := &Frame{Index: s.frame, Gravity: s.gravity}
	f.Steps, f.Dropped = s.stepper.Split(delta, func(dt float32) {
		s.engine.Step(s.world, s.interaction, s.gravity, dt)
		f.Stats.Add(s.engine.Stats())
		s.time += float64(dt)
	})
	if f.Dropped > 0 {
		s.logger.Debug("frame over step budget", "frame", s.frame, "steps", f.Steps, "dropped", f.Dropped)
	}
	f.Time = s.time
	f.Bodies = s.world.Bodies
	s.frame++

	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	if s.renderer != nil {
		if err := s.renderer.Render(f); err != nil {
			return f, fmt.Errorf("render frame %d: %w", f.Index, err)
		}
	}
	return f, nil
}

// Run simulates cfg.Frames frames of cfg.FrameDelta each, stopping early if
// ctx is canceled.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		f, err := s.Step(cfg.FrameDelta)
		if err != nil {
			s.collect(result)
			return result, err
		}
		result.Frames++
		result.Steps += f.Steps
		result.Dropped += f.Dropped
		result.Stats.Add(f.Stats)
	}

	s.collect(result)
	s.logger.Info("run complete", "frames", result.Frames, "steps", result.Steps, "collisions", result.Stats.Collisions)
	return result, nil
}

func (s *Simulator) collect(r *Result) {
	r.Time = s.time
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if !(cfg.FrameDelta > 0) {
		return fmt.Errorf("frame delta must be positive, got %f", cfg.FrameDelta)
	}
	return nil
}
