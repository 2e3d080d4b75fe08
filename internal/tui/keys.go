package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the transcript browser keybindings.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	CycleLimit   key.Binding
	CycleMode    key.Binding
	Expand       key.Binding
	Preview      key.Binding
	Retry        key.Binding
	Search       key.Binding
	Sidebar      key.Binding
	AddBenchmark key.Binding
	AddChat      key.Binding
	Cancel       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage:     key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next page")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "prev page")),
		FirstPage:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first page")),
		LastPage:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last page")),
		CycleLimit:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "page size")),
		CycleMode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "display mode")),
		Expand:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand follow-ups")),
		Preview:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "preview")),
		Retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sidebar:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		AddBenchmark: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "benchmark chunk")),
		AddChat:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "parallel chat")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
