package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a sim.Renderer that redraws a braille view of the world
// to w, at most frameRate times per second.
type LiveRenderer struct {
	out       io.Writer
	view      Viewport
	mode      render.Mode
	canvas    *Canvas
	frameRate int
	lastFrame time.Time
}

func NewLiveRenderer(out io.Writer, view Viewport, cols, rows, frameRate int, mode render.Mode) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		view:      view,
		mode:      mode,
		canvas:    NewCanvas(cols, rows),
		frameRate: frameRate,
	}
}

func (r *LiveRenderer) Render(f *sim.Frame) error {
	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return nil
	}
	r.lastFrame = time.Now()

	r.view.Draw(r.canvas, f, r.mode)

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  frame %d  t=%.1f  gravity %s  collisions %d\n", f.Index, f.Time, f.Gravity, f.Stats.Collisions)
	b.WriteString(colorize(r.canvas, DefaultTheme()))
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
