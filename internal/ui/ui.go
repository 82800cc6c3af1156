package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/streamgrid/internal/formatter"
	"github.com/desertthunder/streamgrid/internal/metrics"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/tasks"
	"github.com/desertthunder/streamgrid/internal/view"
)

// ViewState represents the current input mode of the TUI.
type ViewState int

const (
	GridView ViewState = iota
	AddView
)

// Options contains the dependencies of a [Model].
type Options struct {
	Tracker         *tasks.Tracker
	RefreshInterval time.Duration // zero disables auto refresh
	Logger          *log.Logger

	// Clipboard and OpenURL default to the system clipboard and browser.
	Clipboard func(string) error
	OpenURL   func(string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	tracker  *tasks.Tracker
	interval time.Duration
	logger   *log.Logger

	clipboard func(string) error
	openURL   func(string) error

	width      int
	height     int
	items      []view.DisplayItem
	cursor     int
	expanded   map[string]bool
	refreshing bool
	notice     string
	err        error

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over the tracker in opts.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	input := textinput.New()
	input.Placeholder = "channel name"
	input.CharLimit = 64

	m := &Model{
		ctx:       ctx,
		view:      GridView,
		tracker:   opts.Tracker,
		interval:  opts.RefreshInterval,
		logger:    opts.Logger,
		clipboard: opts.Clipboard,
		openURL:   opts.OpenURL,
		expanded:  make(map[string]bool),
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.sync()
	return m
}

// Init renders the loaded channels and starts the first refresh.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRefresh())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.view == AddView {
			return m.handleAddKeys(msg)
		}
		return m.handleGridKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgFetched:
		data := msg.data.(fetched)
		m.refreshing = false

		if data.err != nil {
			m.err = data.err
			m.logger.Error("refresh failed", "error", data.err)
			return m, m.scheduleTick()
		}

		summary := m.tracker.ApplyResults(data.results, data.elapsed)
		metrics.ObserveRefresh(summary.Duration.Seconds())
		m.logger.Info("refresh complete",
			"live", summary.Live,
			"offline", summary.Offline,
			"errors", summary.Errored,
			"duration", summary.Duration.Round(time.Millisecond),
		)

		m.err = nil
		m.sync()
		return m, m.scheduleTick()

	case MsgTick:
		return m, m.startRefresh()

	case MsgNotice:
		data := msg.data.(notice)
		m.notice = data.text
		m.err = data.err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.move(-columns(m.width))
	case key.Matches(msg, m.keys.down):
		m.move(columns(m.width))
	case key.Matches(msg, m.keys.left):
		m.move(-1)
	case key.Matches(msg, m.keys.right):
		m.move(1)
	case key.Matches(msg, m.keys.toggle):
		if it, ok := m.selected(); ok && it.Toggleable {
			m.expanded[it.Name] = !m.expanded[it.Name]
		}
	case key.Matches(msg, m.keys.filter):
		m.tracker.ToggleFilter()
		m.sync()
	case key.Matches(msg, m.keys.refresh):
		return m, m.startRefresh()
	case key.Matches(msg, m.keys.add):
		m.view = AddView
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.remove):
		if it, ok := m.selected(); ok && it.Removable {
			m.tracker.Remove(it.Name)
			delete(m.expanded, it.Name)
			m.logger.Info("channel removed", "name", it.Name)
			m.sync()
		}
	case key.Matches(msg, m.keys.export):
		return m, m.copyNames()
	case key.Matches(msg, m.keys.open):
		if it, ok := m.selected(); ok {
			return m, m.openProfile(it)
		}
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.view = GridView
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		m.view = GridView
		m.input.Blur()

		added := m.tracker.Add(m.input.Value())
		if len(added) == 0 {
			return m, nil
		}

		m.logger.Info("channel added", "name", added[0])
		m.sync()
		m.selectName(added[0])
		return m, m.startRefresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startRefresh fetches every tracked channel off the event loop. Results are
// applied when [MsgFetched] comes back, so at most one TUI refresh is in flight.
func (m *Model) startRefresh() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true

	return func() tea.Msg {
		start := time.Now()
		results, err := m.tracker.FetchAll(m.ctx, nil)
		return fetchedMsg(results, time.Since(start), err)
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg() })
}

func (m *Model) copyNames() tea.Cmd {
	names := m.tracker.Names()
	return func() tea.Msg {
		text, err := formatter.ExportNames(names, formatter.FormatText)
		if err == nil {
			err = m.clipboard(string(text))
		}
		if err != nil {
			return noticeMsg("", fmt.Errorf("failed to copy names: %w", err))
		}
		return noticeMsg(fmt.Sprintf("Copied %d channels to the clipboard", len(names)), nil)
	}
}

func (m *Model) openProfile(it view.DisplayItem) tea.Cmd {
	target := it.ProfileURL
	return func() tea.Msg {
		if target == "" {
			return noticeMsg(fmt.Sprintf("No profile link for %s", it.Name), nil)
		}
		if err := m.openURL(target); err != nil {
			return noticeMsg("", err)
		}
		return noticeMsg("Opened "+target, nil)
	}
}

// sync re-renders the tracker and keeps the cursor on a real item.
func (m *Model) sync() {
	selected, _ := m.selected()
	m.items = m.tracker.Items()
	if !m.selectName(selected.Name) {
		m.clamp()
	}
}

// channels returns the items that stand for tracked channels, in grid order.
func (m *Model) channels() []view.DisplayItem {
	return view.RealItems(m.items)
}

func (m *Model) selected() (view.DisplayItem, bool) {
	items := m.channels()
	if m.cursor < 0 || m.cursor >= len(items) {
		return view.DisplayItem{}, false
	}
	return items[m.cursor], true
}

func (m *Model) selectName(name string) bool {
	if name == "" {
		return false
	}
	for i, it := range m.channels() {
		if it.Name == name {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) clamp() {
	n := len(m.channels())
	m.cursor = max(0, min(m.cursor, n-1))
}

// View renders the grid, the status line and help.
func (m *Model) View() string {
	filter := "all channels"
	if m.tracker.Filter().OnlineOnly {
		filter = "online only"
	}
	title := styles.title.Render(fmt.Sprintf("streamgrid · %s · %s", m.tracker.Backend(), filter))

	var status string
	switch {
	case m.refreshing:
		status = m.spinner.View() + " refreshing..."
	case m.err != nil:
		status = styles.err.Render("Error: " + m.err.Error())
	case m.notice != "":
		status = styles.ok.Render(m.notice)
	default:
		if last, summary := m.tracker.LastRefresh(); !last.IsZero() {
			status = styles.help.Render(fmt.Sprintf("%d live, %d offline, %d errors · updated %s",
				summary.Live, summary.Offline, summary.Errored, last.Format(time.Kitchen)))
		}
	}

	var prompt string
	if m.view == AddView {
		prompt = "\n" + styles.warn.Render("Add channel: ") + m.input.View() + "\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.cancel})
	}

	selected, _ := m.selected()
	grid := renderGrid(m.items, selected.Name, m.expanded, m.width)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n%s", title, grid, status, prompt, m.help.View(m.keys))
}
