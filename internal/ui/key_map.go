package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	search  key.Binding
	tab     key.Binding
	create  key.Binding
	remove  key.Binding
	delete  key.Binding
	syncNow key.Binding
	pull    key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new collection")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove dance")),
		delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete collection")),
		syncNow: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "push")),
		pull:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pull")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.search, k.tab},
		{k.create, k.remove, k.delete},
		{k.syncNow, k.pull, k.quit},
	}
}
