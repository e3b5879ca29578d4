package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Tab       key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	NextField key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	CycleSort key.Binding
	FlipOrder key.Binding
	Reload    key.Binding
	Copy      key.Binding
	NewEntry  key.Binding
	Dismiss   key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply/select")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "blur field")),
	NextField: key.NewBinding(key.WithKeys("shift+tab", "ctrl+n"), key.WithHelp("ctrl+n", "next field")),
	NextPage:  key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←", "prev page")),
	CycleSort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
	FlipOrder: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
	NewEntry:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "allocate")),
	Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss message")),
}
