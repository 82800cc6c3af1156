package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	toggle  key.Binding
	filter  key.Binding
	refresh key.Binding
	add     key.Binding
	remove  key.Binding
	export  key.Binding
	open    key.Binding
	help    key.Binding
	submit  key.Binding
	cancel  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		toggle:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		filter:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "online only")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		remove:  key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove")),
		export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "copy names")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.filter, k.refresh, k.add, k.remove, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.toggle, k.open, k.filter, k.refresh},
		{k.add, k.remove, k.export},
		{k.help, k.quit},
	}
}
