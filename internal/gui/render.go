package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

// Render draws the frame's bodies and the HUD.
func (a *App) Render(f *sim.Frame) error {
	w := a.sim.World()
	ctx := render.Context{Width: w.Width, Height: w.Height, Time: f.Time}
	scale := a.opts.Scale
	h := float32(a.height)

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	for i := range f.Bodies {
		b := &f.Bodies[i]
		c := a.mode.Color(b, ctx)
		center := rl.NewVector2(b.Position.X*scale, h-b.Position.Y*scale)
		rl.DrawCircleV(center, b.Radius*scale, rl.NewColor(c.R, c.G, c.B, c.A))
	}

	if in := a.sim.Interaction(); in != nil {
		if _, held := in.Grabbed(); held {
			p := in.Pointer()
			rl.DrawCircleLines(int32(p.X*scale), int32(h-p.Y*scale), 8, ColHUD)
		}
	}

	a.drawHUD(f)
	rl.EndDrawing()
	return nil
}

func (a *App) drawHUD(f *sim.Frame) {
	rl.DrawText(fmt.Sprintf("%.1f", 1/max(rl.GetFrameTime(), 1e-6)), 8, 8, 32, ColFPS)
	status := fmt.Sprintf("gravity %s  render %s  steps %d  collisions %d",
		f.Gravity, a.mode, f.Steps, f.Stats.Collisions)
	rl.DrawText(status, 8, a.height-24, 16, ColHUD)
}
