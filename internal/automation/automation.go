// Package automation scripts simulator input and sweeps engine parameters
// for headless runs.
package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

// Scenario is a scripted timeline of input events.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep fires one event at the start of the given frame.
type ScenarioStep struct {
	Frame int `yaml:"frame"`
	// Action is one of press, move, release or gravity.
	Action  string  `yaml:"action"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Gravity string  `yaml:"gravity"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) event() (sim.Event, error) {
	switch s.Action {
	case "press":
		return sim.PointerDown{X: s.X, Y: s.Y}, nil
	case "move":
		return sim.PointerMove{X: s.X, Y: s.Y}, nil
	case "release":
		return sim.PointerUp{}, nil
	case "gravity":
		g, err := physics.ParseGravity(s.Gravity)
		if err != nil {
			return nil, err
		}
		return sim.SetGravity{Mode: g}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", s.Action)
	}
}

type timedEvent struct {
	frame int
	event sim.Event
}

// Script is a sim.InputSource replaying a scenario. It counts frames by
// Poll calls, so it must be polled exactly once per frame.
type Script struct {
	events []timedEvent
	next   int
	frame  int
}

// NewScript validates every step and orders them by frame. Steps sharing a
// frame keep their file order.
func NewScript(sc *Scenario) (*Script, error) {
	events := make([]timedEvent, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		if step.Frame < 0 {
			return nil, fmt.Errorf("step %d: negative frame %d", i+1, step.Frame)
		}
		ev, err := step.event()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		events = append(events, timedEvent{frame: step.Frame, event: ev})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].frame < events[j].frame })
	return &Script{events: events}, nil
}

func (s *Script) Poll(dst []sim.Event) []sim.Event {
	for s.next < len(s.events) && s.events[s.next].frame <= s.frame {
		dst = append(dst, s.events[s.next].event)
		s.next++
	}
	s.frame++
	return dst
}

// Done reports whether every scripted event has been delivered.
func (s *Script) Done() bool { return s.next == len(s.events) }

// ParameterSweep runs one headless simulation per parameter value.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	Collisions  int
	FinalEnergy float64
	MaxSpeed    float64
	Dropped     float32
}

// Factory builds a simulator for one parameter value.
type Factory func(value float64) (*sim.Simulator, error)

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, factory Factory, logger *log.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		s, err := factory(paramVal)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, paramVal, err)
		}
		energy := metrics.NewKineticEnergy()
		speed := metrics.NewMaxSpeed()
		s.AddMetric(energy)
		s.AddMetric(speed)

		result, err := s.Run(ctx, sim.Config{Frames: sweep.Frames, FrameDelta: 1})
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			Collisions:  result.Stats.Collisions,
			FinalEnergy: energy.Last(),
			MaxSpeed:    speed.Value(),
			Dropped:     result.Dropped,
		})

		logger.Info("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
