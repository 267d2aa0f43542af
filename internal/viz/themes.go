package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme for the plot layers and the side panel.
type Theme struct {
	Name       string
	Axis       lipgloss.Color
	Range      lipgloss.Color
	Reference  lipgloss.Color
	TrailFaint lipgloss.Color
	TrailMid   lipgloss.Color
	Trail      lipgloss.Color
	Projectile lipgloss.Color
	Vector     lipgloss.Color
	Landing    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Axis:       lipgloss.Color("#444466"),
		Range:      lipgloss.Color("#7878a0"),
		Reference:  lipgloss.Color("#00ffff"),
		TrailFaint: lipgloss.Color("#4d004d"),
		TrailMid:   lipgloss.Color("#a000a0"),
		Trail:      lipgloss.Color("#ff00ff"),
		Projectile: lipgloss.Color("#ffff00"),
		Vector:     lipgloss.Color("#ff8800"),
		Landing:    lipgloss.Color("#00ff00"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ff8800"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Axis:       lipgloss.Color("#005500"),
		Range:      lipgloss.Color("#338833"),
		Reference:  lipgloss.Color("#00cc00"),
		TrailFaint: lipgloss.Color("#1f5f1f"),
		TrailMid:   lipgloss.Color("#4fa34f"),
		Trail:      lipgloss.Color("#88ff88"),
		Projectile: lipgloss.Color("#ffffff"),
		Vector:     lipgloss.Color("#ffff00"),
		Landing:    lipgloss.Color("#00ff00"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Axis:       lipgloss.Color("#888888"),
		Range:      lipgloss.Color("#aaaaaa"),
		Reference:  lipgloss.Color("#cccccc"),
		TrailFaint: lipgloss.Color("#1a3a66"),
		TrailMid:   lipgloss.Color("#2f66b3"),
		Trail:      lipgloss.Color("#0088ff"),
		Projectile: lipgloss.Color("#ffffff"),
		Vector:     lipgloss.Color("#ffaa00"),
		Landing:    lipgloss.Color("#00ff00"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// InkStyles maps plot layers to foreground styles for Canvas.Render.
func (t Theme) InkStyles() map[Ink]lipgloss.Style {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return map[Ink]lipgloss.Style{
		InkAxis:       fg(t.Axis),
		InkRange:      fg(t.Range),
		InkReference:  fg(t.Reference),
		InkTrailFaint: fg(t.TrailFaint),
		InkTrailMid:   fg(t.TrailMid),
		InkTrail:      fg(t.Trail),
		InkProjectile: fg(t.Projectile).Bold(true),
		InkVector:     fg(t.Vector),
		InkLanding:    fg(t.Landing),
	}
}
