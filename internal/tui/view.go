package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

// Viewport maps world coordinates onto a canvas. World y grows upward, the
// canvas grows downward.
type Viewport struct {
	Width, Height float32
}

// Draw rasterizes every body center onto c, colored by mode.
func (v Viewport) Draw(c *Canvas, f *sim.Frame, mode render.Mode) {
	c.Clear()
	sx := float32(c.SubWidth()) / v.Width
	sy := float32(c.SubHeight()) / v.Height
	ctx := render.Context{Width: v.Width, Height: v.Height, Time: f.Time}

	for i := range f.Bodies {
		b := &f.Bodies[i]
		x := min(int(b.Position.X*sx), c.SubWidth()-1)
		y := min(int((v.Height-b.Position.Y)*sy), c.SubHeight()-1)
		c.Set(x, y, mode.Color(b, ctx))
	}
}

// ToWorld converts a canvas character cell to the world point at its center.
func (v Viewport) ToWorld(c *Canvas, col, row int) (x, y float32) {
	x = (float32(col) + 0.5) / float32(c.Width) * v.Width
	y = v.Height - (float32(row)+0.5)/float32(c.Height)*v.Height
	return x, y
}

// colorize renders the canvas with one foreground color per run of equally
// colored cells. Empty cells take the theme's muted color.
func colorize(c *Canvas, th Theme) string {
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && c.Colors[r][i] == c.Colors[r][start] {
				continue
			}
			b.WriteString(style(c.Colors[r][start], th).Render(string(row[start:i])))
			start = i
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func style(col body.Color, th Theme) lipgloss.Style {
	if col.A == 0 {
		return th.muted()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)))
}
