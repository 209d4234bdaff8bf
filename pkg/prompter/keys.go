package prompter

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// pickerKeyMap holds the picker key bindings.
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quick  key.Binding
	Back   key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑↓", "select"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Quick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "quick select"),
	),
	Back: key.NewBinding(
		key.WithKeys("left", "<"),
		key.WithHelp("←", "back"),
	),
	Skip: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "skip"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// helpText renders the bindings that carry help, in display order.
func (k pickerKeyMap) helpText() string {
	var parts []string
	for _, b := range []key.Binding{k.Up, k.Choose, k.Quick, k.Back, k.Skip, k.Quit} {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
