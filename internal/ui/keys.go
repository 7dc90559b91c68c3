package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the application key bindings.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Jump      key.Binding
	CycleFile key.Binding
	ClearFile key.Binding
	Counts    key.Binding
	Reload    key.Binding
	Cancel    key.Binding
	Live      key.Binding
	Copy      key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		Jump:      key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "jump to line")),
		CycleFile: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle file filter")),
		ClearFile: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear file filter")),
		Counts:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle tag counts")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel parse")),
		Live:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "toggle live mode")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy row text")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
