package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/obliquity/internal/scene"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color

	// Scene palette.
	Orbit     lipgloss.Color
	Equator   lipgloss.Color
	Lines     lipgloss.Color
	Planet    lipgloss.Color
	Sun       lipgloss.Color
	SolarNoon lipgloss.Color
	ClockNoon lipgloss.Color
	Arc       lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#00ffff"), // Cyan
		Accent:    lipgloss.Color("#ffff00"), // Yellow
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Warning:   lipgloss.Color("#ff8800"),
		Orbit:     lipgloss.Color("#00ffff"),
		Equator:   lipgloss.Color("#ff00ff"),
		Lines:     lipgloss.Color("#444466"),
		Planet:    lipgloss.Color("#4d9fff"),
		Sun:       lipgloss.Color("#ffff00"),
		SolarNoon: lipgloss.Color("#ff8800"),
		ClockNoon: lipgloss.Color("#0088ff"),
		Arc:       lipgloss.Color("#ff0044"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
		Orbit:     lipgloss.Color("#00cc00"),
		Equator:   lipgloss.Color("#00ff00"),
		Lines:     lipgloss.Color("#005500"),
		Planet:    lipgloss.Color("#88ff88"),
		Sun:       lipgloss.Color("#ccffcc"),
		SolarNoon: lipgloss.Color("#ffff00"),
		ClockNoon: lipgloss.Color("#88ff88"),
		Arc:       lipgloss.Color("#ffffff"),
	}

	// ThemeClassic keeps the scene colours mostly untouched.
	ThemeClassic = Theme{
		Name:      "classic",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#ffcc33"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Warning:   lipgloss.Color("#ffaa00"),
		Orbit:     lipgloss.Color("#cccccc"),
		Equator:   lipgloss.Color("#666666"),
		Lines:     lipgloss.Color("#555555"),
		Planet:    lipgloss.Color("#4d9fff"),
		Sun:       lipgloss.Color("#ffcc33"),
		SolarNoon: lipgloss.Color("#ff8800"),
		ClockNoon: lipgloss.Color("#0088ff"),
		Arc:       lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"), // Ocean blue
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Warning:   lipgloss.Color("#ffcc00"),
		Orbit:     lipgloss.Color("#00a8cc"),
		Equator:   lipgloss.Color("#0077be"),
		Lines:     lipgloss.Color("#224466"),
		Planet:    lipgloss.Color("#00ff88"),
		Sun:       lipgloss.Color("#ffd700"),
		SolarNoon: lipgloss.Color("#ffcc00"),
		ClockNoon: lipgloss.Color("#e0f0ff"),
		Arc:       lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Warning:   lipgloss.Color("#ffc048"),
		Orbit:     lipgloss.Color("#feca57"),
		Equator:   lipgloss.Color("#ff9ff3"),
		Lines:     lipgloss.Color("#5a3b5c"),
		Planet:    lipgloss.Color("#5fd068"),
		Sun:       lipgloss.Color("#ffc048"),
		SolarNoon: lipgloss.Color("#ff6b6b"),
		ClockNoon: lipgloss.Color("#48dbfb"),
		Arc:       lipgloss.Color("#ff4757"),
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeClassic,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// SceneColor maps a scene colour onto the theme palette. Colours the palette
// does not know are used as-is.
func (t Theme) SceneColor(c scene.Color) lipgloss.Color {
	switch c {
	case scene.ColorOrbit:
		return t.Orbit
	case scene.ColorEquator, scene.ColorEquatorFill:
		return t.Equator
	case scene.ColorOrbitLine, scene.ColorTiltLine:
		return t.Lines
	case scene.ColorPlanet:
		return t.Planet
	case scene.ColorSun:
		return t.Sun
	case scene.ColorSolarNoon:
		return t.SolarNoon
	case scene.ColorClockNoon:
		return t.ClockNoon
	case scene.ColorArc:
		return t.Arc
	}
	return lipgloss.Color(fmt.Sprintf("#%06x", uint32(c)&0xffffff))
}
