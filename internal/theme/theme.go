// Package theme holds the colour schemes shared by the terminal UI and the
// raster renderers.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines a colour scheme. All colours are #rrggbb hex strings so
// they can be used by lipgloss and parsed for raster output alike.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Trace      lipgloss.Color
	Stator     lipgloss.Color
	Rotor      lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Panel      lipgloss.Color
}

var (
	Dark = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#0a0a0a"),
		Trace:      lipgloss.Color("#00c8ff"),
		Stator:     lipgloss.Color("#5a5a5a"),
		Rotor:      lipgloss.Color("#b4b4b4"),
		Accent:     lipgloss.Color("#ff3d7f"),
		Text:       lipgloss.Color("#e6e6e6"),
		Muted:      lipgloss.Color("#666666"),
		Panel:      lipgloss.Color("#1a1a1a"),
	}

	Light = Theme{
		Name:       "light",
		Background: lipgloss.Color("#fafaf7"),
		Trace:      lipgloss.Color("#1d3fbb"),
		Stator:     lipgloss.Color("#a0a0a0"),
		Rotor:      lipgloss.Color("#505050"),
		Accent:     lipgloss.Color("#d81b60"),
		Text:       lipgloss.Color("#202020"),
		Muted:      lipgloss.Color("#8a8a8a"),
		Panel:      lipgloss.Color("#ececec"),
	}

	Blueprint = Theme{
		Name:       "blueprint",
		Background: lipgloss.Color("#0b2a4a"),
		Trace:      lipgloss.Color("#ffffff"),
		Stator:     lipgloss.Color("#4f7cab"),
		Rotor:      lipgloss.Color("#9fc3e8"),
		Accent:     lipgloss.Color("#ffd166"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#6f95bd"),
		Panel:      lipgloss.Color("#0f355c"),
	}

	Themes = []Theme{Dark, Light, Blueprint}
)

// Get returns a theme by name, defaulting to Dark.
func Get(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Dark
}

// Next cycles to the theme after name.
func Next(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
