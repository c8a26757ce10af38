package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dltview/internal/dlt"
)

// Theme is a named palette. Log level colors come from it via LevelColor.
type Theme struct {
	Name string

	Background string // list and pane background
	Surface    string // header, command and status bars
	SurfaceAlt string // detail pane
	HitBg      string // rows matching the active search
	Selection  string // selected row background
	Selected   string // selected row text
	Border     string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Fatal   string
	Info    string

	Highlight string // background of pattern matches inside a row
}

// LevelColor returns the color for level, or "" for levels outside the
// six defined ones.
func (t Theme) LevelColor(level dlt.LogLevel) string {
	switch level {
	case dlt.LevelFatal:
		return t.Fatal
	case dlt.LevelError:
		return t.Danger
	case dlt.LevelWarning:
		return t.Warning
	case dlt.LevelInfo:
		return t.Success
	case dlt.LevelDebug:
		return t.Info
	case dlt.LevelVerbose:
		return t.Faint
	}
	return ""
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Selection)).
			Foreground(lipgloss.Color(t.Selected)),

		Hit: lipgloss.NewStyle().
			Background(lipgloss.Color(t.HitBg)),

		Match: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Highlight)).
			Foreground(lipgloss.Color(t.Background)),

		theme: t,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	SurfaceAlt lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Hit      lipgloss.Style
	Match    lipgloss.Style

	theme Theme
}

// LevelStyle returns the foreground style for a log level. Messages
// without an extended header pass ok=false and get the muted color.
func (s Styles) LevelStyle(level dlt.LogLevel, ok bool) lipgloss.Style {
	color := s.theme.LevelColor(level)
	if !ok || color == "" {
		color = s.theme.Muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// WithBackground returns a copy of s whose text and bar styles paint bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// Palettes: Nightfox (EdenEast/nightfox.nvim), Kanagawa (rebelot/kanagawa.nvim)
// and Tailwind slate/sky.
var themes = map[string]Theme{
	"Nightfox": {
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		SurfaceAlt: "#212e3f",
		HitBg:      "#29394f",
		Selection:  "#2b3b51",
		Selected:   "#cdcecf",
		Border:     "#39506d",
		Text:       "#cdcecf",
		Muted:      "#738091",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Success:    "#81b29a",
		Warning:    "#dbc074",
		Danger:     "#c94f6d",
		Fatal:      "#d16983",
		Info:       "#63cdcf",
		Highlight:  "#f4a261",
	},
	"Kanagawa": {
		Name:       "Kanagawa",
		Background: "#16161D",
		Surface:    "#1F1F28",
		SurfaceAlt: "#2A2A37",
		HitBg:      "#363646",
		Selection:  "#2D4F67",
		Selected:   "#DCD7BA",
		Border:     "#54546D",
		Text:       "#DCD7BA",
		Muted:      "#C8C093",
		Faint:      "#727169",
		Accent:     "#7E9CD8",
		Success:    "#98BB6C",
		Warning:    "#E6C384",
		Danger:     "#E46876",
		Fatal:      "#FF5D62",
		Info:       "#7FB4CA",
		Highlight:  "#FFA066",
	},
	"Slate": {
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		SurfaceAlt: "#1e293b",
		HitBg:      "#283548",
		Selection:  "#0284c7",
		Selected:   "#f8fafc",
		Border:     "#334155",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Fatal:      "#dc2626",
		Info:       "#06b6d4",
		Highlight:  "#fbbf24",
	},
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return themeOrder
}
