package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"reposearch/internal/ui/input/types"
)

// KeyMap lists the bindings shown in the footer and in the help pager.
// Key handling itself lives in the input modes.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Open    key.Binding
	Search  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Pager   key.Binding
	Dismiss key.Binding
	Accept  key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybinding configuration
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("gg", "top")),
		Bottom:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Open:    key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "open")),
		Search:  key.NewBinding(key.WithKeys("/", "s"), key.WithHelp("/", "search")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace", "h"), key.WithHelp("esc", "back")),
		Pager:   key.NewBinding(key.WithKeys("enter", "o", "p"), key.WithHelp("o", "open in pager")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		Accept:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modeKeys adapts KeyMap to help.KeyMap for one input mode
type modeKeys struct {
	km   KeyMap
	mode types.Mode
}

func (k modeKeys) ShortHelp() []key.Binding {
	switch k.mode {
	case types.ModeSearch:
		return []key.Binding{k.km.Accept, k.km.Cancel}
	case types.ModeDetail:
		return []key.Binding{k.km.Up, k.km.Down, k.km.Pager, k.km.Back, k.km.Help}
	case types.ModeAlert:
		return []key.Binding{k.km.Dismiss}
	default:
		return []key.Binding{k.km.Up, k.km.Down, k.km.Open, k.km.Search, k.km.Refresh, k.km.Help, k.km.Quit}
	}
}

func (k modeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.km.Up, k.km.Down, k.km.Top, k.km.Bottom},
		{k.km.Open, k.km.Search, k.km.Refresh},
		{k.km.Pager, k.km.Back, k.km.Dismiss},
		{k.km.Help, k.km.Quit},
	}
}
