// Package tui runs the simulation in a terminal: a bubbletea program that
// draws a braille view of the world and turns keys and mouse input into
// simulator events.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

// header and footer rows around the canvas
const (
	headerRows = 3
	footerRows = 3
	leftMargin = 2
)

// queue is the sim.InputSource fed by the bubbletea update loop.
type queue struct {
	pending []sim.Event
}

func (q *queue) push(e sim.Event) { q.pending = append(q.pending, e) }

func (q *queue) Poll(dst []sim.Event) []sim.Event {
	dst = append(dst, q.pending...)
	q.pending = q.pending[:0]
	return dst
}

// frameSink forwards frames to the model, which rasterizes them before the
// body slice can change.
type frameSink struct {
	draw func(f *sim.Frame)
}

func (s *frameSink) Render(f *sim.Frame) error {
	if s.draw != nil {
		s.draw(f)
	}
	return nil
}

// frameInfo is the part of a frame the status line shows.
type frameInfo struct {
	index, steps, collisions int
}

type model struct {
	sim    *sim.Simulator
	input  *queue
	last   *frameInfo
	view   Viewport
	canvas *Canvas
	mode   render.Mode
	theme  Theme

	paused    bool
	dragging  bool
	lastFrame time.Time
	fps       float64
	err       error

	width  int
	height int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// NewModel wires s to a terminal view. The simulator must have been built
// with Input and Sink as its input source and renderer.
func NewModel(s *sim.Simulator, in *Input, mode render.Mode, theme Theme) tea.Model {
	w := s.World()
	m := &model{
		sim:    s,
		input:  in.q,
		view:   Viewport{Width: w.Width, Height: w.Height},
		canvas: NewCanvas(76, 20),
		mode:   mode,
		theme:  theme,
		width:  80,
		height: 26,
	}
	in.sink.draw = m.onFrame
	return m
}

func (m *model) onFrame(f *sim.Frame) {
	m.view.Draw(m.canvas, f, m.mode)
	m.last = &frameInfo{index: f.Index, steps: f.Steps, collisions: f.Stats.Collisions}
}

// Input bundles the input source and renderer a terminal session needs.
type Input struct {
	q    *queue
	sink *frameSink
}

func NewInput() *Input {
	return &Input{q: &queue{}, sink: &frameSink{}}
}

func (in *Input) Source() sim.InputSource { return in.q }
func (in *Input) Sink() sim.Renderer      { return in.sink }

// Run blocks until the user quits.
func Run(s *sim.Simulator, in *Input, mode render.Mode, theme Theme) error {
	p := tea.NewProgram(NewModel(s, in, mode, theme), tea.WithAltScreen(), tea.WithMouseCellMotion())
	m, err := p.Run()
	if err != nil {
		return err
	}
	if mm, ok := m.(*model); ok && mm.err != nil {
		return mm.err
	}
	return nil
}

func (m *model) Init() tea.Cmd { return tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		delta := float32(1)
		if !m.lastFrame.IsZero() {
			elapsed := now.Sub(m.lastFrame)
			if elapsed > 0 {
				m.fps = 1 / elapsed.Seconds()
			}
			delta = sim.FramesSince(elapsed, sim.DefaultFPS)
		}
		m.lastFrame = now
		if m.paused {
			delta = 0
		}
		if _, err := m.sim.Step(delta); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) resize() {
	cols := max(m.width-2*leftMargin, 20)
	rows := max(m.height-headerRows-footerRows, 6)
	m.canvas = NewCanvas(cols, rows)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return tea.Quit
	case "left":
		m.input.push(sim.SetGravity{Mode: physics.GravityLeft})
	case "right":
		m.input.push(sim.SetGravity{Mode: physics.GravityRight})
	case "up":
		m.input.push(sim.SetGravity{Mode: physics.GravityUp})
	case "down":
		m.input.push(sim.SetGravity{Mode: physics.GravityDown})
	case " ":
		m.input.push(sim.SetGravity{Mode: physics.GravityNone})
	case "1":
		m.mode = m.mode.Next()
	case "t":
		m.theme = m.theme.Next()
	case "p":
		m.paused = !m.paused
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-leftMargin, msg.Y-headerRows
	x, y := m.view.ToWorld(m.canvas, col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.input.push(sim.PointerDown{X: x, Y: y})
			m.dragging = true
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.input.push(sim.PointerMove{X: x, Y: y})
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.input.push(sim.PointerUp{})
			m.dragging = false
		}
	}
}

func (m *model) View() string {
	var b strings.Builder
	th := m.theme

	status := th.running().Render("● running")
	if m.paused {
		status = th.paused().Render("○ paused")
	}
	pad := strings.Repeat(" ", leftMargin)
	fmt.Fprintf(&b, "\n%s%s %s  %s\n", pad, th.title().Render("ballpit"), status,
		th.text().Render(fmt.Sprintf("%.0ffps  gravity %s  render %s", m.fps, m.sim.Gravity(), m.mode)))
	b.WriteString(th.muted().Render(pad+strings.Repeat("─", m.canvas.Width)) + "\n")

	for _, line := range strings.Split(strings.TrimSuffix(colorize(m.canvas, th), "\n"), "\n") {
		b.WriteString(pad + line + "\n")
	}

	b.WriteString(th.muted().Render(pad+strings.Repeat("─", m.canvas.Width)) + "\n")
	var stats string
	if f := m.last; f != nil {
		stats = fmt.Sprintf("frame %d  steps %d  collisions %d  ", f.index, f.steps, f.collisions)
	}
	b.WriteString(pad + th.text().Render(stats+"←↑↓→ gravity  space none  1 render  t theme  drag balls  p pause  q quit"))

	return b.String()
}
