package automation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/grid"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/vec"
)

const scenarioYAML = `
name: drag
description: grab a ball and drop it with gravity on
steps:
  - frame: 3
    action: release
  - frame: 1
    action: press
    x: 50
    y: 50
  - frame: 2
    action: move
    x: 80
    y: 50
  - frame: 0
    action: gravity
    gravity: down
`

func loadTestScenario(t *testing.T, content string) *Scenario {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return sc
}

func TestScriptOrdersByFrame(t *testing.T) {
	sc := loadTestScenario(t, scenarioYAML)
	if sc.Name != "drag" || len(sc.Steps) != 4 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	script, err := NewScript(sc)
	if err != nil {
		t.Fatalf("script: %v", err)
	}

	want := []sim.Event{
		sim.SetGravity{Mode: physics.GravityDown},
		sim.PointerDown{X: 50, Y: 50},
		sim.PointerMove{X: 80, Y: 50},
		sim.PointerUp{},
	}
	for frame, ev := range want {
		got := script.Poll(nil)
		if len(got) != 1 || got[0] != ev {
			t.Errorf("frame %d: expected %v, got %v", frame, ev, got)
		}
	}
	if !script.Done() {
		t.Error("expected script done")
	}
	if got := script.Poll(nil); len(got) != 0 {
		t.Errorf("expected no events after the end, got %v", got)
	}
}

func TestScriptRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name string
		step ScenarioStep
	}{
		{"unknown action", ScenarioStep{Action: "jump"}},
		{"bad gravity", ScenarioStep{Action: "gravity", Gravity: "sideways"}},
		{"negative frame", ScenarioStep{Frame: -1, Action: "release"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScript(&Scenario{Steps: []ScenarioStep{tt.step}}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptDrivesSimulator(t *testing.T) {
	g, _ := grid.New(200, 200, 12)
	arena := body.NewArena(1)
	b, _ := body.New(5, 1, vec.New(50, 50), vec.Vec2{}, body.Color{})
	id, _ := arena.Add(b)
	g.Add(arena.Bodies(), id)
	w := &physics.World{Bodies: arena.Bodies(), Grid: g, Width: 200, Height: 200}

	script, err := NewScript(loadTestScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	engine, _ := physics.NewEngine(physics.Params{Gravity: 0.1})
	s, err := sim.New(w, engine, sim.WithInput(script))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Step(1); err != nil {
			t.Fatal(err)
		}
	}
	if s.Gravity() != physics.GravityDown {
		t.Errorf("expected gravity down, got %v", s.Gravity())
	}
	if got := w.Bodies[0].Position.X; got < 79.9 || got > 80.1 {
		t.Errorf("expected dragged ball at x=80, got %f", got)
	}
	if _, held := s.Interaction().Grabbed(); !held {
		t.Error("expected ball still held before release frame")
	}

	if _, err := s.Step(1); err != nil {
		t.Fatal(err)
	}
	if _, held := s.Interaction().Grabbed(); held {
		t.Error("expected release on frame 3")
	}
}

func TestRunSweep(t *testing.T) {
	factory := func(v float64) (*sim.Simulator, error) {
		g, _ := grid.New(100, 100, 10)
		arena := body.NewArena(1)
		b, _ := body.New(2, 1, vec.New(50, 50), vec.New(1, 0), body.Color{})
		id, _ := arena.Add(b)
		g.Add(arena.Bodies(), id)
		engine, err := physics.NewEngine(physics.Params{Friction: float32(v)})
		if err != nil {
			return nil, err
		}
		return sim.New(&physics.World{Bodies: arena.Bodies(), Grid: g, Width: 100, Height: 100}, engine)
	}

	sweep := &ParameterSweep{ParamName: "friction", ParamMin: 0, ParamMax: 2, NumSteps: 3, Frames: 5}
	results, err := RunSweep(context.Background(), sweep, factory, log.New(io.Discard))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].ParamValue != 1 {
		t.Errorf("expected midpoint 1, got %f", results[1].ParamValue)
	}
	if results[0].FinalEnergy <= 0 {
		t.Error("frictionless ball should keep moving")
	}
	if results[2].FinalEnergy != 0 {
		t.Errorf("high friction should stop the ball, energy %f", results[2].FinalEnergy)
	}

	if _, err := RunSweep(context.Background(), &ParameterSweep{}, factory, log.New(io.Discard)); err == nil {
		t.Error("expected error for zero steps")
	}
}
