package tui

import (
	"strings"

	"github.com/san-kum/ballpit/internal/body"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot raster with one color per character cell. The last
// dot set in a cell decides its color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]body.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]body.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]body.Color, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas spans (Width*2) x
// (Height*4) sub-pixels; anything outside is ignored.
func (c *Canvas) Set(x, y int, col body.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}

	c.Grid[cy][cx] |= pixelMap[y%4][x%2]
	c.Colors[cy][cx] = col
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = body.Color{}
		}
	}
}

// SubWidth and SubHeight are the canvas dimensions in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
