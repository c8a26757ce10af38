package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/dltview/internal/dlt"
	"github.com/five82/dltview/internal/session"
)

// detailHeight is the height of the detail pane including its border
// line, or zero when the pane is hidden.
func (m Model) detailHeight() int {
	if !m.showDetail {
		return 0
	}
	return max(m.height/3, detailMinLines)
}

func (m *Model) initDetailViewport() {
	m.detail = viewport.New(m.width, max(m.detailHeight()-1, 1))
}

// updateDetailViewport refreshes the detail pane for the selected row.
func (m *Model) updateDetailViewport() {
	if !m.showDetail {
		return
	}
	m.detail.Width = m.width
	m.detail.Height = max(m.detailHeight()-1, 1)

	row, ok := m.session.SelectedRow()
	if !ok {
		m.detail.SetContent(m.theme.Styles().MutedText.Render("No message selected."))
		m.detailIndex = -1
		return
	}
	if row.Index != m.detailIndex {
		m.detail.GotoTop()
	}
	m.detailIndex = row.Index
	m.detail.SetContent(m.renderDetailContent(row))
}

func (m Model) renderDetailContent(row session.Row) string {
	styles := m.theme.Styles()
	label := styles.MutedText.Width(10)

	var b strings.Builder
	field := func(name, value string) {
		b.WriteString(label.Render(name))
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}

	field("Index", fmt.Sprintf("%d", row.Index))
	if f := m.session.CurrentFile(); f != nil && row.Index < len(f.Offsets()) {
		field("Offset", fmt.Sprintf("%d (0x%x)", f.Offsets()[row.Index], f.Offsets()[row.Index]))
	}
	if row.Err != nil {
		b.WriteString(styles.DangerText.Render(row.Err.Error()))
		return b.String()
	}

	msg := row.Message
	field("Time", msg.Timestamp().Format(timeLayout)+" UTC")
	field("ECU", msg.ECUID())
	field("Type", msg.MessageType().String())
	field("Version", fmt.Sprintf("%d", msg.Standard.Version()))
	field("Counter", fmt.Sprintf("%d", msg.Standard.Counter))
	field("Length", fmt.Sprintf("%d", msg.Standard.Length))
	if msg.HasExtended() {
		app, _ := msg.AppID()
		ctx, _ := msg.ContextID()
		level, _ := msg.LogLevel()
		field("App", app)
		field("Context", ctx)
		b.WriteString(label.Render("Level"))
		b.WriteString(styles.LevelStyle(level, true).Render(level.String()))
		b.WriteString("\n")
		field("Args", fmt.Sprintf("%d", msg.Extended.ArgumentCount))
	} else {
		field("Extended", "none")
	}
	field("Payload", humanize.Bytes(uint64(len(msg.Payload))))

	b.WriteString("\n")
	if text, ok := msg.PayloadText(); ok {
		b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 10)).Render(text))
	} else {
		b.WriteString(styles.FaintText.Render(dlt.HexDump(msg.Payload)))
	}
	return b.String()
}

// renderDetail renders the detail pane with a title rule.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	title := " Message "
	if m.detailIndex >= 0 {
		title = fmt.Sprintf(" Message %d ", m.detailIndex)
	}
	rule := styles.AccentText.Bold(true).Render(title) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border)).
			Render(strings.Repeat("─", max(m.width-lipgloss.Width(title), 0)))
	body := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Width(m.width).
		Height(m.detail.Height).
		MaxHeight(m.detail.Height).
		Render(m.detail.View())
	return rule + "\n" + body
}
