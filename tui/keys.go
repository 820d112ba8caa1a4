package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Generate key.Binding
	Plan     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Retry    key.Binding
	New      key.Binding
	Save     key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Generate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "story generieren"),
	),
	Plan: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "7-Tage-Plan"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "shift+tab"),
		key.WithHelp("up", "feld hoch"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "tab"),
		key.WithHelp("down/tab", "feld runter"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("left", "vorheriger wert"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("right", "nächster wert"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "nochmal"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "neues formular"),
	),
	Save: key.NewBinding(
		key.WithKeys("t", "j", "c", "m", "h"),
		key.WithHelp("t/j/c/m/h", "speichern als txt/json/csv/md/html"),
	),
}

var saveFormats = map[string]string{"t": "txt", "j": "json", "c": "csv", "m": "md", "h": "html"}
