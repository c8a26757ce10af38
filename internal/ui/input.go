package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/dltview/internal/filter"
	"github.com/five82/dltview/internal/session"
)

func (m *Model) initInput() {
	in := textinput.New()
	in.CharLimit = 512
	m.input = in
	m.styleInput()
}

func (m *Model) styleInput() {
	m.input.PromptStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Accent)).
		Background(lipgloss.Color(m.theme.Surface)).
		Bold(true)
	m.input.TextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.Surface))
	m.input.Width = max(m.width-12, 10)
}

func (m Model) inputActive() bool {
	return m.session.Mode() != session.ModeNormal
}

// beginInput switches to search or filter entry, prefilled with the
// active pattern or query.
func (m *Model) beginInput(mode session.Mode) tea.Cmd {
	m.session.SetMode(mode)
	switch mode {
	case session.ModeSearch:
		m.input.Prompt = "/"
		m.input.Placeholder = "regex"
		value := ""
		if st := m.session.SearchState(); st != nil {
			value = st.Pattern().Source()
		}
		m.input.SetValue(value)
	case session.ModeFilter:
		m.input.Prompt = "filter: "
		m.input.Placeholder = "app:APP ctx:CTX ecu:ECU level:warn type:log from:TIME to:TIME text"
		m.input.SetValue(m.session.Criteria().String())
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.session.SetMode(session.ModeNormal)
	m.input.Blur()
	m.input.Reset()
}

// handleInputKey processes keys while the search or filter prompt is open.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.endInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		mode := m.session.Mode()
		value := m.input.Value()
		m.endInput()
		if mode == session.ModeFilter {
			return m, m.submitFilter(value)
		}
		m.submitSearch(value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitSearch(pattern string) {
	if err := m.session.Search(pattern, m.session.CaseSensitive()); err != nil {
		m.logger.Debug("search rejected", zap.String("pattern", pattern), zap.Error(err))
	}
	m.afterMove()
}

// submitFilter parses query and starts filtering in the background. A
// query that does not parse leaves the installed filter alone.
func (m *Model) submitFilter(query string) tea.Cmd {
	c, err := filter.ParseQuery(query)
	if err != nil {
		m.session.SetStatus("Invalid filter: " + err.Error())
		return nil
	}
	return m.startFilter(c)
}
