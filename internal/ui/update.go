package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlogan/sawmill/internal/config"
	"github.com/tlogan/sawmill/internal/entry"
	"github.com/tlogan/sawmill/internal/filter"
	"github.com/tlogan/sawmill/internal/parse"
	"github.com/tlogan/sawmill/internal/watch"
)

// openFile starts an asynchronous parse run over path. The previous run, if
// any, is cancelled by the runner's start policy.
func (m Model) openFile(path string) (tea.Model, tea.Cmd) {
	ch, err := m.runner.Start(path)
	if err != nil {
		m.status = fmt.Sprintf("cannot open %s: %v", path, err)
		return m, nil
	}

	m.path = path
	m.progress = ch
	m.parsing = true
	m.status = "parsing... 0%"
	m.snapshot = m.runner.Store().Snapshot()
	m.filtered = nil
	m.files = nil
	m.cursor = 0
	m.nav.Clear()

	m.cfg.RememberFile(path)
	m.saveConfig()
	return m, waitProgress(ch)
}

// handleProgress folds one scheduler notification into the view.
// Notifications from a replaced run are dropped without re-arming a reader,
// so the current channel never has two consumers and a closed previous run
// cannot flip the active run's state.
func (m Model) handleProgress(msg progressMsg) (tea.Model, tea.Cmd) {
	if msg.ch != m.progress {
		return m, nil
	}
	p := msg.p

	m.snapshot = m.runner.Store().Snapshot()
	m.recompute()

	if !p.Terminal {
		m.status = fmt.Sprintf("parsing... %d%% (%d lines)", p.Percent, p.Counts.Lines)
		return m, waitProgress(m.progress)
	}

	m.parsing = false
	switch p.Outcome {
	case parse.OutcomeCompleted:
		m.status = fmt.Sprintf("complete: %d entries from %d lines", p.Counts.Entries, p.Counts.Lines)
	case parse.OutcomeCancelled:
		m.status = fmt.Sprintf("cancelled: %d entries kept", p.Counts.Entries)
	case parse.OutcomeFailed:
		m.status = fmt.Sprintf("partial: %d entries (%v)", p.Counts.Entries, p.Err)
	}

	if err := m.monitor.Init(m.path, p.Counts.Lines); err != nil {
		log.Printf("monitor init: %v", err)
	}
	m.persistDiscoveredTags()
	return m, waitProgress(m.progress)
}

// handleWatch classifies a live-mode change notification and reacts:
// appended content is parsed incrementally, a replaced file reloads in full.
func (m Model) handleWatch() (tea.Model, tea.Cmd) {
	if !m.live || m.watcher == nil {
		return m, nil
	}
	rearm := waitWatch(m.watcher.Events())

	if m.parsing {
		return m, rearm
	}

	switch m.monitor.Classify() {
	case watch.NoChange:
		return m, rearm

	case watch.Appended:
		lines, err := m.runner.ParseAppend(m.path, m.monitor.AppendOffset(), m.monitor.NextOrdinal())
		if err != nil {
			log.Printf("append parse: %v", err)
			return m, rearm
		}
		if err := m.monitor.Advance(lines); err != nil {
			log.Printf("monitor advance: %v", err)
		}
		m.snapshot = m.runner.Store().Snapshot()
		m.recompute()
		m.persistDiscoveredTags()
		m.status = fmt.Sprintf("live: +%d lines (%d entries)", lines, m.snapshot.Counts.Entries)
		return m, rearm

	default: // Replaced
		model, cmd := m.openFile(m.path)
		return model, tea.Batch(cmd, rearm)
	}
}

// recompute rebuilds the filtered index sequence and the search match list
// from the current snapshot and predicate state, clamping the cursor.
func (m *Model) recompute() {
	m.filtered = filter.Apply(m.snapshot.Entries, m.pred)
	m.files = filter.SourceFiles(m.snapshot.Entries)
	m.nav.Build(m.snapshot.Entries, m.filtered, m.nav.Term())
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeJump:
		return m.handleJumpKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	keys := m.keys
	switch {
	case keyMatches(msg, keys.Quit):
		m.stopWatch()
		m.runner.Cancel()
		return m, tea.Quit

	case keyMatches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case keyMatches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil
	case keyMatches(msg, keys.Down):
		m.moveCursor(1)
		return m, nil
	case keyMatches(msg, keys.PageUp):
		m.moveCursor(-m.pageSize())
		return m, nil
	case keyMatches(msg, keys.PageDown):
		m.moveCursor(m.pageSize())
		return m, nil
	case keyMatches(msg, keys.Top):
		m.cursor = 0
		return m, nil
	case keyMatches(msg, keys.Bottom):
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
		return m, nil

	case keyMatches(msg, keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.nav.Term())
		m.searchInput.Focus()
		return m, nil

	case keyMatches(msg, keys.NextMatch):
		m.nav.Next()
		m.followMatch()
		return m, nil
	case keyMatches(msg, keys.PrevMatch):
		m.nav.Prev()
		m.followMatch()
		return m, nil

	case keyMatches(msg, keys.Clear):
		m.nav.Clear()
		return m, nil

	case keyMatches(msg, keys.Jump):
		m.mode = modeJump
		m.jumpInput.SetValue("")
		m.jumpInput.Focus()
		return m, nil

	case keyMatches(msg, keys.CycleFile):
		m.cycleFileFilter()
		return m, nil
	case keyMatches(msg, keys.ClearFile):
		m.pred.File = ""
		m.recompute()
		return m, nil

	case keyMatches(msg, keys.Counts):
		m.toggleTagCounts()
		return m, nil

	case keyMatches(msg, keys.Reload):
		if m.path != "" {
			return m.openFile(m.path)
		}
		return m, nil

	case keyMatches(msg, keys.Cancel):
		if m.parsing {
			m.runner.Cancel()
		}
		return m, nil

	case keyMatches(msg, keys.Live):
		return m.toggleLive()

	case keyMatches(msg, keys.Copy):
		m.copyRow()
		return m, nil
	}

	// Digits toggle the Nth visible tag in the filter bar.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		m.toggleLevel(int(s[0] - '1'))
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeTable
		m.searchInput.Blur()
		term := m.searchInput.Value()
		m.nav.Build(m.snapshot.Entries, m.filtered, term)
		m.followMatch()
		return m, nil
	case "esc":
		m.mode = modeTable
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeTable
		m.jumpInput.Blur()
		m.jumpToOrdinal(strings.TrimSpace(m.jumpInput.Value()))
		return m, nil
	case "esc":
		m.mode = modeTable
		m.jumpInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	return m, cmd
}

// jumpToOrdinal clears all predicates so the target row is visible, then
// moves the cursor to the entry with the given source-line ordinal.
func (m *Model) jumpToOrdinal(text string) {
	ordinal, err := strconv.Atoi(text)
	if err != nil || ordinal <= 0 {
		m.status = fmt.Sprintf("invalid line number %q", text)
		return
	}

	m.pred = filter.Predicate{}
	m.nav.Clear()
	m.recompute()

	for pos, idx := range m.filtered {
		if m.snapshot.Entries[idx].Ordinal == ordinal {
			m.cursor = pos
			m.status = fmt.Sprintf("jumped to line %d", ordinal)
			return
		}
	}
	m.status = fmt.Sprintf("line %d not found", ordinal)
}

// toggleLevel flips membership of the idx-th enabled tag in the level set.
func (m *Model) toggleLevel(idx int) {
	visible := m.visibleTags()
	if idx < 0 || idx >= len(visible) {
		return
	}
	name := visible[idx].Name
	names := make([]string, 0, len(m.pred.Levels)+1)
	found := false
	for n := range m.pred.Levels {
		if n == name {
			found = true
			continue
		}
		names = append(names, n)
	}
	if !found {
		names = append(names, name)
	}
	m.pred = m.pred.WithLevels(names...)
	m.recompute()
}

// toggleTagCounts flips the show-count attribute of every enabled tag and
// persists the change, so the filter bar gains or loses its per-tag entry
// counts in one keystroke.
func (m *Model) toggleTagCounts() {
	all := m.reg.All()
	target := false
	for _, t := range all {
		if t.Enabled {
			target = !t.ShowCount
			break
		}
	}
	for _, t := range all {
		if !t.Enabled {
			continue
		}
		t.ShowCount = target
		m.reg.Set(t)
	}
	m.cfg.SyncTags(m.reg)
	m.saveConfig()
}

// cycleFileFilter steps through All → file1 → file2 → ... → All.
func (m *Model) cycleFileFilter() {
	if len(m.files) == 0 {
		return
	}
	if m.pred.File == "" {
		m.pred.File = m.files[0]
	} else {
		next := ""
		for i, f := range m.files {
			if f == m.pred.File && i+1 < len(m.files) {
				next = m.files[i+1]
				break
			}
		}
		m.pred.File = next
	}
	m.recompute()
}

func (m Model) toggleLive() (tea.Model, tea.Cmd) {
	if m.live {
		m.stopWatch()
		m.live = false
		m.status = "live mode off"
		return m, nil
	}
	if m.path == "" {
		return m, nil
	}

	watcher, err := watch.NewWatcher(m.path)
	if err != nil {
		m.status = fmt.Sprintf("live mode unavailable: %v", err)
		return m, nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	go watcher.Run(ctx)

	m.watcher = watcher
	m.watchCancel = cancel
	m.live = true
	m.status = "live mode on"
	return m, waitWatch(watcher.Events())
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
		m.watcher = nil
	}
}

// copyRow places the selected entry's export text shape in the status line.
// Clipboard ownership stays outside the core formatter.
func (m *Model) copyRow() {
	e, ok := m.selectedEntry()
	if !ok {
		return
	}
	m.status = entry.ExportLine(e)
}

func (m Model) selectedEntry() (entry.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return entry.Entry{}, false
	}
	idx := m.filtered[m.cursor]
	if idx < 0 || idx >= len(m.snapshot.Entries) {
		return entry.Entry{}, false
	}
	return m.snapshot.Entries[idx], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
}

// followMatch moves the cursor to the current search match.
func (m *Model) followMatch() {
	if pos, ok := m.nav.Current(); ok {
		m.cursor = pos
	}
}

// visibleTags returns the tags shown in the filter bar, in display order.
func (m Model) visibleTags() []tagView {
	counts := filter.TagCounts(m.snapshot.Entries, m.nav.Term())
	all := m.reg.All()
	views := make([]tagView, 0, len(all))
	for _, t := range all {
		if !t.Enabled {
			continue
		}
		_, selected := m.pred.Levels[t.Name]
		views = append(views, tagView{
			Name:      t.Name,
			Color:     t.Color,
			ShowCount: t.ShowCount,
			Count:     counts[t.Name],
			Selected:  selected,
		})
	}
	return views
}

// persistDiscoveredTags writes tags auto-created during parsing back to the
// config file.
func (m *Model) persistDiscoveredTags() {
	if len(m.reg.Drain()) == 0 {
		return
	}
	m.cfg.SyncTags(m.reg)
	m.saveConfig()
}

func (m *Model) saveConfig() {
	if err := config.Save(m.cfgPath, m.cfg); err != nil {
		log.Printf("save config: %v", err)
	}
}

func (m Model) pageSize() int {
	if h := m.tableHeight(); h > 1 {
		return h - 1
	}
	return 10
}
