// Package ui is the Bubble Tea presentation layer for sawmill.
//
// The UI owns no parsing, filtering, or search logic: it issues commands to
// the runner, reads store snapshots, and renders the filter engine's and
// navigator's output. Data flows core → UI; commands flow UI → core.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlogan/sawmill/internal/config"
	"github.com/tlogan/sawmill/internal/filter"
	"github.com/tlogan/sawmill/internal/parse"
	"github.com/tlogan/sawmill/internal/search"
	"github.com/tlogan/sawmill/internal/store"
	"github.com/tlogan/sawmill/internal/tags"
	"github.com/tlogan/sawmill/internal/watch"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Runner     *parse.Runner
	Registry   *tags.Registry
	Config     config.Config
	ConfigPath string
	Path       string // log file to open on start; empty shows the empty state
}

// inputMode selects which text input, if any, owns the keyboard.
type inputMode int

const (
	modeTable inputMode = iota
	modeSearch
	modeJump
)

// Model is the root Bubble Tea state.
type Model struct {
	ctx        context.Context
	runner     *parse.Runner
	reg        *tags.Registry
	cfg        config.Config
	cfgPath    string
	path       string
	keys       keyMap
	theme      Theme
	styles     Styles

	width  int
	height int
	ready  bool

	// Data derived from the store snapshot.
	snapshot store.Snapshot
	filtered []int
	files    []string // distinct source files for the file filter

	// Predicate and search state.
	pred filter.Predicate
	nav  search.Navigator

	// Table state.
	cursor int // position within filtered

	// Inputs.
	mode        inputMode
	searchInput textinput.Model
	jumpInput   textinput.Model

	// Async parse state.
	progress <-chan parse.Progress
	parsing  bool
	status   string

	// Live mode.
	live        bool
	monitor     watch.Monitor
	watcher     *watch.Watcher
	watchCancel context.CancelFunc

	showHelp bool
}

// New builds the model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	si := textinput.New()
	si.Placeholder = "search term"
	si.CharLimit = 200
	si.Prompt = "/"

	ji := textinput.New()
	ji.Placeholder = "line number"
	ji.CharLimit = 10
	ji.Prompt = "jump: "

	theme := DefaultTheme()
	return Model{
		ctx:         ctx,
		runner:      opts.Runner,
		reg:         opts.Registry,
		cfg:         opts.Config,
		cfgPath:     opts.ConfigPath,
		path:        opts.Path,
		keys:        defaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		searchInput: si,
		jumpInput:   ji,
		status:      "no file loaded",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.path != "" {
		path := m.path
		cmds = append(cmds, func() tea.Msg { return openMsg{path: path} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case openMsg:
		return m.openFile(msg.path)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case progressMsg:
		return m.handleProgress(msg)

	case progressClosedMsg:
		if msg.ch == m.progress {
			m.progress = nil
		}
		return m, nil

	case watchMsg:
		return m.handleWatch()

	case watchClosedMsg:
		return m, nil
	}
	return m, nil
}

// Run starts the program and blocks until exit.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
