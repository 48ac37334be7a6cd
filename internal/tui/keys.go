package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the client bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Start   key.Binding
	Stop    key.Binding
	Quick15 key.Binding
	Quick30 key.Binding
	Quick60 key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Report  key.Binding
	Tab     key.Binding
	Quit    key.Binding
}

func binding(help string, keys ...string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], help),
	)
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      binding("previous category", "k", "up"),
		Down:    binding("next category", "j", "down"),
		Start:   binding("start", "enter", "s"),
		Stop:    binding("stop", "x"),
		Quick15: binding("log 15m", "1"),
		Quick30: binding("log 30m", "2"),
		Quick60: binding("log 60m", "3"),
		PrevDay: binding("previous day", "h", "left"),
		NextDay: binding("next day", "l", "right"),
		Report:  binding("report", "r"),
		Tab:     binding("switch view", "tab"),
		Quit:    binding("quit", "q", "ctrl+c"),
	}
}

// Help returns the bindings shown in the footer.
func (k KeyMap) Help() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Quick15, k.Quick30, k.Quick60, k.Report, k.Tab, k.Quit}
}
