package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// renderHeader renders the file and filter summary bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	v := m.session.View()

	parts := []string{bg.Render("dltview", styles.Logo)}

	if !v.HasFile() {
		parts = append(parts, m.loaderSegment(styles, bg))
		return bg.FillLine(styles.Header.Render(bg.Join(parts, "  ")), m.width)
	}

	file := v.File()
	name := truncateMiddle(file.Name, ternaryInt(compact, 24, 48))
	if len(v.Files) > 1 {
		name = fmt.Sprintf("%s [%d/%d]", name, v.Current+1, len(v.Files))
	}
	parts = append(parts, bg.Render(name, styles.Text.Bold(true)))

	size := humanize.Bytes(uint64(file.Size))
	if file.Compression != "none" {
		size = fmt.Sprintf("%s %s→%s", file.Compression, humanize.Bytes(uint64(file.SourceSize)), size)
	}
	parts = append(parts, bg.Render(size, styles.MutedText))

	parts = append(parts, bg.Pair("Messages:", styles.MutedText, humanize.Comma(int64(file.Messages)), styles.Text))

	shown := humanize.Comma(int64(v.Matches))
	if v.Filtering {
		shown = "…"
	}
	parts = append(parts, bg.Pair("Shown:", styles.MutedText, shown, styles.AccentText))

	if v.Skipped > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d bad", v.Skipped), styles.DangerText))
	}
	if !compact && file.IndexCached {
		parts = append(parts, bg.Render("index cached", styles.FaintText))
	}
	parts = append(parts, m.loaderSegment(styles, bg))

	return bg.FillLine(styles.Header.Render(bg.Join(parts, "  ")), m.width)
}

// loaderSegment describes background loading progress, or "" when idle.
func (m Model) loaderSegment(styles Styles, bg BgStyle) string {
	snap := m.loader
	switch {
	case snap.Busy():
		label := fmt.Sprintf("Loading %d", snap.Pending)
		if snap.Current != "" {
			label = "Loading " + truncateMiddle(snap.Current, 32)
		}
		return bg.Render(label+"...", styles.WarningText.Bold(true))
	case snap.Failed > 0:
		return bg.Render(fmt.Sprintf("%d failed", snap.Failed), styles.DangerText)
	}
	return ""
}

// renderCommandBar renders the active filter, the search state and key
// hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	v := m.session.View()
	colon := bg.Sep(":")

	var segments []string

	filterText := v.Criteria
	if filterText == "" {
		filterText = "none"
	}
	segments = append(segments, bg.Pair("Filter", styles.MutedText, truncate(filterText, 40), styles.AccentText))

	if v.Search != nil {
		label := fmt.Sprintf("/%s", truncate(v.Search.Pattern, 24))
		count := "0/0"
		if v.Search.Hits > 0 {
			count = fmt.Sprintf("%d/%d", v.Search.Cursor+1, v.Search.Hits)
		}
		segments = append(segments, bg.Render(label, styles.AccentText)+bg.Spaces(1)+bg.Render(count, styles.Text))
	}
	caseLabel := "Aa"
	if !v.CaseSensitive {
		caseLabel = "aa"
	}
	segments = append(segments, bg.Render(caseLabel, styles.FaintText))

	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		segments = append(segments, bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	line := strings.Join(segments, bg.Spaces(2))
	return bg.FillLine(styles.Header.Render(line), m.width)
}

// renderStatus renders the bottom line: the input prompt while editing,
// otherwise the session status.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.inputActive() {
		return fillWidth(lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface)), m.input.View(), m.width)
	}

	status := m.session.Status()
	style := styles.MutedText
	switch {
	case strings.HasPrefix(status, "Invalid"), strings.HasPrefix(status, "Failed"), strings.Contains(status, "failed"):
		style = styles.DangerText
	case strings.HasPrefix(status, "No matches"):
		style = styles.WarningText
	case strings.HasPrefix(status, "Found"), strings.HasPrefix(status, "Loaded"):
		style = styles.SuccessText
	}
	return bg.FillLine(styles.Footer.Render(bg.Render(truncate(status, m.width-2), style)), m.width)
}

func ternaryInt(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
