// Package gui runs the simulation in a raylib window. The App is both the
// simulator's input source and its renderer.
package gui

import (
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

// Theme Colors
var (
	ColBg  = rl.NewColor(0, 0, 0, 255)
	ColFPS = rl.NewColor(255, 0, 0, 255)
	ColHUD = rl.NewColor(140, 140, 140, 255)
)

// Options configure the window.
type Options struct {
	Title string
	// Scale converts world units to pixels.
	Scale     float32
	TargetFPS int32
	Mode      render.Mode
}

type App struct {
	sim    *sim.Simulator
	logger *log.Logger
	opts   Options

	width, height int32
	mode          render.Mode
	dragging      bool
	last          rl.Vector2
}

// NewApp sizes a window to the simulator's world. The window is opened by
// Run, so NewApp is safe to call without a display.
func NewApp(opts Options, logger *log.Logger) *App {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = int32(sim.DefaultFPS)
	}
	if opts.Title == "" {
		opts.Title = "ballpit"
	}
	return &App{opts: opts, logger: logger, mode: opts.Mode}
}

// Attach binds the simulator the app drives. It must be built with the app
// as its input source and renderer.
func (a *App) Attach(s *sim.Simulator) {
	w := s.World()
	a.sim = s
	a.width = int32(w.Width * a.opts.Scale)
	a.height = int32(w.Height * a.opts.Scale)
}

func initWindow(w, h int32, title string, fps int32) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(w, h, title)
	rl.SetTargetFPS(fps)
}

// Run blocks until the window is closed or Escape is pressed.
func (a *App) Run() error {
	initWindow(a.width, a.height, a.opts.Title, a.opts.TargetFPS)
	defer rl.CloseWindow()
	a.logger.Info("window open", "width", a.width, "height", a.height, "bodies", len(a.sim.World().Bodies))

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyOne) {
			a.mode = a.mode.Next()
			a.logger.Debug("renderer", "mode", a.mode)
		}
		if _, err := a.sim.Step(rl.GetFrameTime() * sim.DefaultFPS); err != nil {
			return err
		}
	}
	return nil
}

// Poll translates this frame's mouse and keyboard state into events.
func (a *App) Poll(dst []sim.Event) []sim.Event {
	mouse := rl.GetMousePosition()
	x, y := a.toWorld(mouse)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		dst = append(dst, sim.PointerDown{X: x, Y: y})
		a.dragging = true
	} else if a.dragging && mouse != a.last {
		dst = append(dst, sim.PointerMove{X: x, Y: y})
	}
	if a.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		dst = append(dst, sim.PointerUp{})
		a.dragging = false
	}
	a.last = mouse

	for _, k := range gravityKeys {
		if rl.IsKeyDown(k.key) {
			dst = append(dst, sim.SetGravity{Mode: k.mode})
			break
		}
	}
	return dst
}

var gravityKeys = []struct {
	key  int32
	mode physics.Gravity
}{
	{rl.KeyLeft, physics.GravityLeft},
	{rl.KeyRight, physics.GravityRight},
	{rl.KeyUp, physics.GravityUp},
	{rl.KeyDown, physics.GravityDown},
	{rl.KeySpace, physics.GravityNone},
}

// toWorld maps a window pixel to world coordinates, flipping y.
func (a *App) toWorld(p rl.Vector2) (x, y float32) {
	return p.X / a.opts.Scale, float32(a.height)/a.opts.Scale - p.Y/a.opts.Scale
}
