package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/dltview/internal/filter"
	"github.com/five82/dltview/internal/prefs"
	"github.com/five82/dltview/internal/session"
	"github.com/five82/dltview/internal/state"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Session *session.Session
	// Store delivers files opened in the background; nil means every file
	// was added to Session before Run.
	Store    *state.Store
	TickRate time.Duration
	// InitialSearch runs once the first file is on display.
	InitialSearch string
	Prefs         prefs.Prefs
	PrefsPath     string // empty disables saving preferences
	Logger        *zap.Logger
}

// Model is the root application state for Bubble Tea. It is the only
// owner of the session.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *session.Session
	store     *state.Store
	logger    *zap.Logger
	prefs     prefs.Prefs
	prefsPath string
	tickRate  time.Duration
	keys      keyMap

	// UI state
	theme      Theme
	width      int
	height     int
	ready      bool
	showHelp   bool
	showDetail bool

	// List state
	offset int

	// Detail state
	detail      viewport.Model
	detailIndex int

	// Loader state
	loader        state.Snapshot
	pendingSearch string

	// Prompt for search and filter entry
	input textinput.Model

	cancelFilter context.CancelFunc
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Options{Logger: logger})
	}

	m := Model{
		ctx:           ctx,
		session:       sess,
		store:         opts.Store,
		logger:        logger,
		prefs:         opts.Prefs,
		prefsPath:     opts.PrefsPath,
		tickRate:      tickRate,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(opts.Prefs.Theme),
		detailIndex:   -1,
		pendingSearch: opts.InitialSearch,
	}
	m.initInput()
	if m.pendingSearch != "" && sess.FileCount() > 0 {
		m.runPendingSearch()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.store != nil {
		cmds = append(cmds, tickCmd(m.tickRate))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
		}
		m.ready = true
		m.styleInput()
		m.afterMove()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case filterDoneMsg:
		if m.session.InstallFilter(msg.job, msg.result, msg.err) {
			m.offset = 0
			m.afterMove()
			m.logger.Debug("filter installed",
				zap.Stringer("criteria", msg.job.Criteria()),
				zap.Int("matches", len(msg.result.Positions)))
		}
		return m, nil
	}

	if m.inputActive() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	if m.showDetail {
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.inputActive() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancelFilter != nil {
			m.cancelFilter()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styleInput()
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.NextFile):
		m.session.NextFile()
		m.offset = 0
		m.afterMove()

	case key.Matches(msg, m.keys.PrevFile):
		m.session.PrevFile()
		m.offset = 0
		m.afterMove()

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.showDetail:
			m.showDetail = false
		case m.session.SearchState() != nil:
			m.session.ClearSearch()
			m.session.SetStatus("")
		}
		m.afterMove()

	case key.Matches(msg, m.keys.Up):
		m.session.MoveUp()
		m.afterMove()
	case key.Matches(msg, m.keys.Down):
		m.session.MoveDown()
		m.afterMove()
	case key.Matches(msg, m.keys.Top):
		m.session.MoveTop()
		m.afterMove()
	case key.Matches(msg, m.keys.Bottom):
		m.session.MoveBottom()
		m.afterMove()
	case key.Matches(msg, m.keys.PageUp):
		m.session.PageUp(m.visibleRows())
		m.afterMove()
	case key.Matches(msg, m.keys.PageDown):
		m.session.PageDown(m.visibleRows())
		m.afterMove()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.session.PageUp(max(m.visibleRows()/2, 1))
		m.afterMove()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.session.PageDown(max(m.visibleRows()/2, 1))
		m.afterMove()

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.afterMove()
	case key.Matches(msg, m.keys.DetailDown):
		if m.showDetail {
			m.detail.LineDown(1)
		}
	case key.Matches(msg, m.keys.DetailUp):
		if m.showDetail {
			m.detail.LineUp(1)
		}

	case key.Matches(msg, m.keys.Search):
		return m, m.beginInput(session.ModeSearch)
	case key.Matches(msg, m.keys.NextMatch):
		m.session.NextMatch()
		m.afterMove()
	case key.Matches(msg, m.keys.PrevMatch):
		m.session.PrevMatch()
		m.afterMove()
	case key.Matches(msg, m.keys.ToggleCase):
		_ = m.session.ToggleCaseSensitivity()
		m.afterMove()

	case key.Matches(msg, m.keys.Filter):
		return m, m.beginInput(session.ModeFilter)
	case key.Matches(msg, m.keys.ClearFilter):
		return m, m.startFilter(filter.Criteria{})
	}

	return m, nil
}

// afterMove keeps the list window and the detail pane on the selection.
func (m *Model) afterMove() {
	m.scrollToSelection()
	m.updateDetailViewport()
}

// startFilter cancels any filter in flight and runs c in the background.
func (m *Model) startFilter(c filter.Criteria) tea.Cmd {
	if m.cancelFilter != nil {
		m.cancelFilter()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFilter = cancel
	job := m.session.BeginFilter(c)
	return func() tea.Msg {
		defer cancel()
		res, err := job.Run(ctx)
		return filterDoneMsg{job: job, result: res, err: err}
	}
}

// handleTick moves files opened in the background into the session.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	added := 0
	for _, r := range m.store.Take() {
		if r.Err != nil {
			m.session.SetStatus(fmt.Sprintf("Failed to open %s: %v", r.Path, r.Err))
			m.logger.Error("open failed", zap.String("path", r.Path), zap.Error(r.Err))
			continue
		}
		m.session.AddFile(r.File, r.Fields)
		m.prefs.AddRecentFile(r.File.Path())
		added++
	}
	m.loader = m.store.Snapshot()

	if added > 0 {
		m.savePrefs()
		if m.pendingSearch != "" {
			m.runPendingSearch()
		}
		m.afterMove()
	}
	return m, tickCmd(m.tickRate)
}

func (m *Model) runPendingSearch() {
	pattern := m.pendingSearch
	m.pendingSearch = ""
	_ = m.session.Search(pattern, m.session.CaseSensitive())
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save preferences", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// Messages

type tickMsg time.Time

type filterDoneMsg struct {
	job    session.FilterJob
	result filter.Result
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
