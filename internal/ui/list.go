package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/search"
	"github.com/five82/dltview/internal/session"
)

// listHeight is the number of lines available to the list, including its
// column header.
func (m Model) listHeight() int {
	return max(m.height-chromeLines-m.detailHeight(), minListLines)
}

// visibleRows is the number of message rows that fit in the list.
func (m Model) visibleRows() int {
	return max(m.listHeight()-1, 1)
}

// scrollToSelection moves the list window so the selection is visible.
func (m *Model) scrollToSelection() {
	rows := m.visibleRows()
	sel := m.session.Selected()
	total := len(m.session.Result())
	switch {
	case sel < m.offset:
		m.offset = sel
	case sel >= m.offset+rows:
		m.offset = sel - rows + 1
	}
	if m.offset > total-rows {
		m.offset = total - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

type listColumns struct {
	time   int
	layout string
	typ    int
	text   int
}

func (m Model) columns() listColumns {
	c := listColumns{time: colTimeWidth, layout: timeLayout}
	if m.width < LayoutCompactWidth {
		c.time, c.layout = colTimeShortWidth, timeShortLayout
	}
	if m.width >= LayoutTypeWidth {
		c.typ = colTypeWidth
	}
	fixed := colIndexWidth + c.time + 3*colIDWidth + colLevelWidth + c.typ
	gaps := 6
	if c.typ > 0 {
		gaps++
	}
	c.text = max(m.width-fixed-gaps, 10)
	return c
}

// renderList renders the column header and the visible slice of the
// filter result.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	height := m.listHeight()
	base := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Foreground(lipgloss.Color(m.theme.Text))

	lines := make([]string, 0, height)
	lines = append(lines, m.renderColumnHeader(styles))

	if empty := m.emptyListMessage(); empty != "" {
		lines = append(lines, fillWidth(base, styles.MutedText.Render(" "+empty), m.width))
	} else {
		var pattern *search.Pattern
		if st := m.session.SearchState(); st != nil {
			pattern = st.Pattern()
		}
		cols := m.columns()
		for _, row := range m.session.Rows(m.offset, m.visibleRows()) {
			lines = append(lines, m.renderRow(row, cols, pattern, styles))
		}
	}

	for len(lines) < height {
		lines = append(lines, fillWidth(base, "", m.width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) emptyListMessage() string {
	v := m.session
	switch {
	case v.FileCount() == 0 && m.loader.Busy():
		return "Loading " + m.loader.Current + "..."
	case v.FileCount() == 0:
		return "No file open. Pass DLT files on the command line."
	case v.CurrentFile().Count() == 0:
		return "File contains no messages."
	case len(v.Result()) == 0:
		return "No messages match the filter."
	}
	return ""
}

func (m Model) renderColumnHeader(styles Styles) string {
	cols := m.columns()
	cells := []string{
		fit("#", colIndexWidth),
		fit("Time", cols.time),
		fit("ECU", colIDWidth),
		fit("App", colIDWidth),
		fit("Ctx", colIDWidth),
		fit("Lvl", colLevelWidth),
	}
	if cols.typ > 0 {
		cells = append(cells, fit("Type", cols.typ))
	}
	cells = append(cells, "Payload")
	header := styles.SurfaceAlt.Bold(true).Foreground(lipgloss.Color(m.theme.Muted))
	return fillWidth(header, strings.Join(cells, " "), m.width)
}

// renderRow renders one message row. Search matches inside the payload
// are highlighted when a pattern is active.
func (m Model) renderRow(row session.Row, cols listColumns, pattern *search.Pattern, styles Styles) string {
	base := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Foreground(lipgloss.Color(m.theme.Text))
	switch {
	case row.Selected:
		base = styles.Selected
	case row.Hit:
		base = styles.Hit.Foreground(lipgloss.Color(m.theme.Text))
	}
	cell := func(s string, st lipgloss.Style) string {
		return st.Inherit(base).Render(s)
	}
	sp := base.Render(" ")

	var b strings.Builder
	b.WriteString(cell(fit(strconv.Itoa(row.Index), colIndexWidth), styles.FaintText))
	b.WriteString(sp)

	if row.Err != nil {
		b.WriteString(cell(truncate(fmt.Sprintf("unparseable: %v", row.Err), m.width-colIndexWidth-1), styles.DangerText))
		return fillWidth(base, b.String(), m.width)
	}

	msg := row.Message
	app, _ := msg.AppID()
	ctx, _ := msg.ContextID()
	level, hasLevel := msg.LogLevel()
	levelText := "-"
	if hasLevel {
		levelText = level.Abbrev()
	}

	b.WriteString(cell(fit(msg.Timestamp().Format(cols.layout), cols.time), styles.MutedText))
	b.WriteString(sp)
	b.WriteString(cell(fit(msg.ECUID(), colIDWidth), styles.InfoText))
	b.WriteString(sp)
	b.WriteString(cell(fit(app, colIDWidth), styles.AccentText))
	b.WriteString(sp)
	b.WriteString(cell(fit(ctx, colIDWidth), styles.AccentText))
	b.WriteString(sp)
	b.WriteString(cell(fit(levelText, colLevelWidth), styles.LevelStyle(level, hasLevel).Bold(hasLevel && level <= dlt.LevelError)))
	b.WriteString(sp)
	if cols.typ > 0 {
		b.WriteString(cell(fit(msg.MessageType().String(), cols.typ), styles.FaintText))
		b.WriteString(sp)
	}

	text := truncate(singleLine(msg.Text()), cols.text)
	b.WriteString(highlight(text, pattern, base, styles.Match))

	return fillWidth(base, b.String(), m.width)
}

// highlight renders text with every match of pattern in matchStyle.
func highlight(text string, pattern *search.Pattern, base, matchStyle lipgloss.Style) string {
	if pattern == nil || text == "" {
		return base.Render(text)
	}
	spans := pattern.Locate(text)
	if len(spans) == 0 {
		return base.Render(text)
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		if start == end {
			continue
		}
		if start > last {
			b.WriteString(base.Render(text[last:start]))
		}
		b.WriteString(matchStyle.Render(text[start:end]))
		last = end
	}
	if last < len(text) {
		b.WriteString(base.Render(text[last:]))
	}
	return b.String()
}
