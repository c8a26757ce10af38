package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// BgStyle renders text segments onto a bar with a solid background.
// Lipgloss resets styling between segments, so every space between words
// has to carry the background explicitly or the bar shows gaps.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a new background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style, keeping the background under spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	out := make([]string, len(words))
	for i, w := range words {
		if w != "" {
			out[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(out, b.space)
}

// Pair renders a "label value" segment, e.g. "Messages: 1200".
func (b BgStyle) Pair(label string, labelStyle lipgloss.Style, value string, valueStyle lipgloss.Style) string {
	return b.Render(label, labelStyle) + b.space + b.Render(value, valueStyle)
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Join joins non-empty parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, b.Sep(sep))
}

// FillLine clips rendered content to width and pads it with the
// background color.
func (b BgStyle) FillLine(content string, width int) string {
	return fillWidth(lipgloss.NewStyle().Background(b.bg), content, width)
}

// fillWidth renders content as exactly one line of width cells.
func fillWidth(style lipgloss.Style, content string, width int) string {
	return style.Width(width).MaxWidth(width).Render(ansi.Truncate(content, width, ""))
}
