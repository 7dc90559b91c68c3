package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tlogan/sawmill/internal/search"
)

// tagView is one filter-bar cell.
type tagView struct {
	Name      string
	Color     string
	ShowCount bool
	Count     int
	Selected  bool
}

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

const (
	colOrdinal   = 7
	colTimestamp = 13
	colLevel     = 7
	colSource    = 26
)

// tableHeight is the number of entry rows that fit on screen after the
// header, filter bar, input line, and status line.
func (m Model) tableHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderTable())
	b.WriteString(m.renderFilterBar())
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.path
	if title == "" {
		title = "sawmill"
	}
	header := fmt.Sprintf("%*s %-*s %-*s %s",
		colOrdinal, "Line #",
		colTimestamp, "Timestamp",
		colLevel, "Level",
		"Message")
	return m.styles.Accent.Render(title) + "\n" + m.styles.Header.Render(header)
}

// renderTable renders the visible window of the filtered view, scrolling to
// keep the cursor on screen.
func (m Model) renderTable() string {
	height := m.tableHeight()

	// Window follows the cursor.
	offset := 0
	if m.cursor >= height {
		offset = m.cursor - height + 1
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		pos := offset + row
		if pos < len(m.filtered) {
			b.WriteString(m.renderRow(pos))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderRow(pos int) string {
	idx := m.filtered[pos]
	e := m.snapshot.Entries[idx]

	msgWidth := m.width - colOrdinal - colTimestamp - colLevel - colSource - 4
	if msgWidth < 10 {
		msgWidth = 10
	}

	line := fmt.Sprintf("%*d %-*s %-*s %-*s %s",
		colOrdinal, e.Ordinal,
		colTimestamp, truncate(e.Timestamp, colTimestamp),
		colLevel, truncate(e.Tag, colLevel),
		msgWidth, truncate(e.Message, msgWidth),
		truncate(e.SourceRef(), colSource))

	switch {
	case pos == m.cursor:
		return m.styles.Selected.Render(line)
	case m.nav.IsMatch(pos):
		return m.styles.MatchRow.Render(line)
	default:
		return TagStyle(m.reg.Color(e.Tag, "#FFFFFF")).Render(line)
	}
}

// renderFilterBar shows each enabled tag with its toggle index, selection
// mark, and optional entry count.
func (m Model) renderFilterBar() string {
	views := m.visibleTags()
	if len(views) == 0 {
		return m.styles.Muted.Render("no tags")
	}

	parts := make([]string, 0, len(views)+1)
	for i, v := range views {
		mark := " "
		if v.Selected {
			mark = "x"
		}
		label := fmt.Sprintf("%d:[%s]%s", i+1, mark, v.Name)
		if v.ShowCount {
			label += fmt.Sprintf("[%d]", v.Count)
		}
		parts = append(parts, TagStyle(v.Color).Render(label))
	}
	if m.pred.File != "" {
		parts = append(parts, m.styles.Warning.Render("file="+m.pred.File))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderStatus() string {
	switch m.mode {
	case modeSearch:
		return m.searchInput.View()
	case modeJump:
		return m.jumpInput.View()
	}

	shown := len(m.filtered)
	total := len(m.snapshot.Entries)
	parts := []string{fmt.Sprintf("%d/%d entries", shown, total)}

	if c := m.snapshot.Counts; c.Skipped > 0 || c.BadLines > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped, %d bad line nums", c.Skipped, c.BadLines))
	}
	if m.pred.Active() {
		parts = append(parts, "filtered")
	}
	if s := m.searchStatus(); s != "" {
		parts = append(parts, s)
	}
	if m.live {
		parts = append(parts, "live")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " | "))
}

func (m Model) searchStatus() string {
	switch m.nav.State() {
	case search.Idle:
		return ""
	case search.NoResults:
		return fmt.Sprintf("pattern not found: %s", m.nav.Term())
	default:
		return fmt.Sprintf("/%s %d/%d (n/N to navigate)", m.nav.Term(), m.nav.CursorOrdinal(), m.nav.Total())
	}
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"↑/k ↓/j", "move"},
		{"pgup/pgdn", "page"},
		{"g / G", "top / bottom"},
		{"/", "search (enter applies, esc cancels)"},
		{"n / N", "next / previous match"},
		{"esc", "clear search"},
		{"1-9", "toggle level filter"},
		{"f / F", "cycle / clear file filter"},
		{"J", "jump to source line number"},
		{"t", "toggle tag counts"},
		{"r", "reload file"},
		{"c", "cancel running parse"},
		{"L", "toggle live mode"},
		{"y", "copy row text shape"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("sawmill keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", r.key, r.desc))
	}
	b.WriteString("\n" + m.styles.Muted.Render("press any key to close"))
	return b.String()
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
