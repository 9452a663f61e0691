package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the bindings for named keys. Everything else typed into
// the terminal is resolved as a character.
type KeyMap struct {
	Stop key.Binding

	Left, Right, Up, Down key.Binding

	Backspace, Delete key.Binding
	Enter, Tab        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Stop: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "commit and close")),

		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
	}
}

// events translates a terminal key message into session key events.
// Terminals deliver runes already shifted, so character events never carry
// Shift.
func (km KeyMap) events(msg tea.KeyMsg) []KeyEvent {
	bound := []struct {
		b key.Binding
		k Key
	}{
		{km.Stop, KeyEscape},
		{km.Left, KeyLeft},
		{km.Right, KeyRight},
		{km.Up, KeyUp},
		{km.Down, KeyDown},
		{km.Backspace, KeyBackspace},
		{km.Delete, KeyDelete},
		{km.Enter, KeyEnter},
		{km.Tab, KeyTab},
	}
	for _, e := range bound {
		if key.Matches(msg, e.b) {
			return []KeyEvent{{Key: e.k}}
		}
	}

	switch {
	case msg.Type == tea.KeySpace:
		return []KeyEvent{{Key: ' '}}
	case msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0:
		evs := make([]KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, KeyEvent{Key: Key(r)})
		}
		return evs
	}
	return []KeyEvent{{Key: KeyUnknown}}
}
