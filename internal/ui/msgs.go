package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tlogan/sawmill/internal/parse"
)

// openMsg requests (re)loading a log file.
type openMsg struct {
	path string
}

// progressMsg carries one scheduler notification, tagged with its source
// channel. A reload replaces the progress channel while a reader may still
// be in flight; the tag lets Update recognize and drop notifications from a
// replaced run.
type progressMsg struct {
	ch <-chan parse.Progress
	p  parse.Progress
}

// progressClosedMsg signals a progress channel closed (worker exited).
type progressClosedMsg struct {
	ch <-chan parse.Progress
}

// watchMsg signals a file-change notification in live mode.
type watchMsg struct{}

// watchClosedMsg signals the watcher shut down.
type watchClosedMsg struct{}

// waitProgress reads the next scheduler notification.
func waitProgress(ch <-chan parse.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return progressClosedMsg{ch: ch}
		}
		return progressMsg{ch: ch, p: p}
	}
}

// waitWatch reads the next file-change signal.
func waitWatch(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return watchMsg{}
	}
}
