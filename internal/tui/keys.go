package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Root  key.Binding
	Home  key.Binding
	End   key.Binding

	// Content type tabs
	TabLive   key.Binding
	TabVOD    key.Binding
	TabSeries key.Binding
	TabRadio  key.Binding

	// Actions
	LoadMore key.Binding
	Info     key.Binding
	Refresh  key.Binding
	Filter   key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("h/←", "back"),
		),
		Root: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "root"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		TabLive: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "live"),
		),
		TabVOD: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "movies"),
		),
		TabSeries: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "series"),
		),
		TabRadio: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "radio"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "details"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh catalog"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
