package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette of the terminal chrome. Ball colors come from the
// render mode, not the theme.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

var themes = []Theme{
	{Name: "default", Title: "86", Text: "242", Muted: "238", Running: "82", Paused: "220"},
	{Name: "retro", Title: "#00ff00", Text: "#00cc00", Muted: "#005500", Running: "#88ff88", Paused: "#ffff00"},
	{Name: "minimal", Title: "#ffffff", Text: "#cccccc", Muted: "#888888", Running: "#ffffff", Paused: "#888888"},
	{Name: "ocean", Title: "#00a8cc", Text: "#e0f0ff", Muted: "#4488aa", Running: "#00ff88", Paused: "#ffcc00"},
	{Name: "sunset", Title: "#ff6b6b", Text: "#feca57", Muted: "#8b6b8c", Running: "#5fd068", Paused: "#ffc048"},
}

// DefaultTheme is the palette used when none is named.
func DefaultTheme() Theme { return themes[0] }

// ThemeNames lists the built-in themes in cycling order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ParseTheme looks a theme up by name. The empty name selects the default.
func ParseTheme(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i := range themes {
		if themes[i].Name == t.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return DefaultTheme()
}

func (t Theme) title() lipgloss.Style   { return lipgloss.NewStyle().Foreground(t.Title) }
func (t Theme) text() lipgloss.Style    { return lipgloss.NewStyle().Foreground(t.Text) }
func (t Theme) muted() lipgloss.Style   { return lipgloss.NewStyle().Foreground(t.Muted) }
func (t Theme) running() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Running) }
func (t Theme) paused() lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Paused) }
