package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/realmboard/internal/logtail"
	"github.com/five82/realmboard/internal/sotah"
	"github.com/five82/realmboard/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewRealms View = iota
	ViewPricelists
	ViewLogs
)

// Actions are the user intents the dashboard can trigger.
type Actions interface {
	ChangeRegion(ctx context.Context, region sotah.Region) error
	ChangeRealm(ctx context.Context, realm sotah.Realm) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	RefreshPricelists(ctx context.Context)
	SelectList(list sotah.Pricelist)
	SetLoginDialogOpen(open bool)
	SetTheme(name string) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Actions   Actions
	PollTick  time.Duration
	ThemeName string
	LogPath   string // realmboard's own log file; empty hides the logs view
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	actions  Actions
	logger   *zap.Logger
	keys     keyMap
	pollTick time.Duration
	logPath  string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal
	errorMsg    string

	// Data state
	snapshot    *state.AppState
	lastUpdated time.Time

	// Widgets
	spinner    spinner.Model
	realmTable table.Model
	entries    viewport.Model

	// Pricelists state
	listRow int

	// Logs state
	logView    viewport.Model
	logEntries []logtail.Entry
	logErr     string
	logFollow  bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := GetTheme(opts.ThemeName)
	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		actions:     opts.Actions,
		logger:      logger,
		keys:        DefaultKeyMap(),
		pollTick:    pollTick,
		logPath:     strings.TrimSpace(opts.LogPath),
		theme:       theme,
		currentView: ViewRealms,
		snapshot:    state.Reduce(nil, nil),
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		realmTable:  newRealmTable(theme),
		entries:     viewport.New(0, 0),
		logView:     viewport.New(0, 0),
		logFollow:   true,
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
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
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.currentView == ViewLogs && m.logPath != "" {
			cmds = append(cmds, readLogsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot((*state.AppState)(msg))
		return m, nil

	case logLinesMsg:
		m.applyLogLines(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case regionPickedMsg:
		region := msg.region
		return m, m.runAction("change region", func(ctx context.Context) error {
			return m.actions.ChangeRegion(ctx, region)
		})

	case realmPickedMsg:
		realm := msg.realm
		return m, m.runAction("change realm", func(ctx context.Context) error {
			return m.actions.ChangeRealm(ctx, realm)
		})

	case loginSubmitMsg:
		if msg.register {
			return m, m.runAction("register", func(ctx context.Context) error {
				return m.actions.Register(ctx, msg.email, msg.password)
			})
		}
		return m, m.runAction("login", func(ctx context.Context) error {
			return m.actions.Login(ctx, msg.email, msg.password)
		})

	case actionDoneMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			m.logger.Warn("action failed", zap.String("action", msg.name), zap.Error(msg.err))
		} else {
			m.errorMsg = ""
		}
		if login, ok := m.modal.(*loginModal); ok {
			login.pending = false
			login.err = m.errorMsg
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil
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

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		if m.actions != nil {
			if err := m.actions.SetTheme(m.theme.Name); err != nil {
				m.logger.Warn("save theme", zap.Error(err))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewRealms), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewRealms
		return m, nil

	case key.Matches(msg, m.keys.ViewPricelists):
		m.currentView = ViewPricelists
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		if m.logPath == "" {
			return m, nil
		}
		return m, readLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.RegionPicker):
		if picker := newRegionPicker(m.snapshot); picker != nil {
			m.modal = picker
		}
		return m, nil

	case key.Matches(msg, m.keys.RealmPicker):
		if picker := newRealmPicker(m.snapshot); picker != nil {
			m.modal = picker
		}
		return m, nil

	case key.Matches(msg, m.keys.Login):
		if m.actions == nil {
			return m, nil
		}
		if m.snapshot.AuthLevel == state.AuthAuthenticated {
			return m, m.runAction("logout", m.actions.Logout)
		}
		m.actions.SetLoginDialogOpen(true)
		m.modal = newLoginModal()
		return m, textinputBlink()

	case key.Matches(msg, m.keys.Refresh):
		if m.actions != nil && m.currentView == ViewPricelists {
			m.actions.RefreshPricelists(m.ctx)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewRealms:
		return m.handleRealmsKey(msg)
	case ViewPricelists:
		return m.handlePricelistsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}

	return m, nil
}

// handleModalKey routes keys to the open modal and closes it when asked.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if !closed {
		m.modal = next
		return m, cmd
	}
	if _, ok := m.modal.(*loginModal); ok && m.actions != nil {
		m.actions.SetLoginDialogOpen(false)
	}
	m.modal = nil
	return m, cmd
}

// applySnapshot stores a new snapshot and syncs dependent widgets.
func (m *Model) applySnapshot(s *state.AppState) {
	if s == nil {
		return
	}
	m.snapshot = s
	m.lastUpdated = time.Now()

	// Login dialog state is owned by the store.
	if login, ok := m.modal.(*loginModal); ok && !s.IsLoginDialogOpen && !login.pending {
		m.modal = nil
	}

	m.updateRealmTable()
	m.updatePricelists()
}

// resize recomputes widget dimensions after a window change.
func (m *Model) resize() {
	contentHeight := max(m.height-2, 3) // header + command bar
	m.realmTable.SetWidth(max(m.width-2, 0))
	m.realmTable.SetHeight(max(contentHeight-3, 1)) // borders + column header
	m.updateRealmTable()

	m.entries.Width = max(m.width-m.listPaneWidth()-4, 0)
	m.entries.Height = max(contentHeight-2, 1)
	m.updatePricelists()

	m.logView.Width = max(m.width-2, 0)
	m.logView.Height = max(contentHeight-2, 1)
	m.updateLogViewport()
}

func (m *Model) applyTheme() {
	m.realmTable.SetStyles(tableStyles(m.theme))
	m.spinner.Style = m.theme.Styles().AccentText
}

// runAction executes fn off the update loop and reports its outcome.
func (m Model) runAction(name string, fn func(ctx context.Context) error) tea.Cmd {
	if m.actions == nil {
		return nil
	}
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, ActionTimeout)
		defer cancel()
		return actionDoneMsg{name: name, err: fn(ctx)}
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewRealms:
		return m.renderRealms()
	case ViewPricelists:
		return m.renderPricelists()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg *state.AppState

type actionDoneMsg struct {
	name string
	err  error
}

type regionPickedMsg struct{ region sotah.Region }

type realmPickedMsg struct{ realm sotah.Realm }

type loginSubmitMsg struct {
	email    string
	password string
	register bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
