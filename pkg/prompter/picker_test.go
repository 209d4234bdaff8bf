package prompter

import (
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m pickerModel, keys ...tea.KeyMsg) pickerModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(pickerModel)
	}
	return m
}

func TestPickerModel(t *testing.T) {
	items := []pickerItem{{label: "aws", hint: "(+2 steps)"}, {label: "gcp"}, {label: "azure"}}
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	t.Run("moves and chooses", func(t *testing.T) {
		m := press(newPickerModel("Cloud?", items, 0), down, down, down, up, enter)
		assert.True(t, m.chosen)
		assert.Equal(t, 1, m.cursor)
	})

	t.Run("quick select", func(t *testing.T) {
		m := press(newPickerModel("Cloud?", items, 0), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
		assert.True(t, m.chosen)
		assert.Equal(t, 2, m.cursor)
	})

	t.Run("quick select out of range is ignored", func(t *testing.T) {
		m := press(newPickerModel("Cloud?", items, 0), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
		assert.False(t, m.chosen)
	})

	t.Run("escape skips", func(t *testing.T) {
		m := press(newPickerModel("Cloud?", items, 1), tea.KeyMsg{Type: tea.KeyEsc})
		assert.False(t, m.chosen)
		assert.Equal(t, domain.SignalNone, m.signal)
	})

	t.Run("ctrl+c exits and left goes back", func(t *testing.T) {
		m := press(newPickerModel("Cloud?", items, 0), tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.Equal(t, domain.SignalExit, m.signal)

		m = press(newPickerModel("Cloud?", items, 0), tea.KeyMsg{Type: tea.KeyLeft})
		assert.Equal(t, domain.SignalBack, m.signal)
	})

	t.Run("view shows the cursor and hints", func(t *testing.T) {
		view := newPickerModel("Cloud?", items, 0).View()
		assert.Contains(t, view, "Cloud?")
		assert.Contains(t, view, "▸")
		assert.Contains(t, view, "1. aws")
		assert.Contains(t, view, "(+2 steps)")
		assert.Contains(t, view, "  2. gcp")
	})
}

func TestPickerKeys_Help(t *testing.T) {
	assert.Equal(t, "↑↓ select  enter choose  1-9 quick select  ← back  esc skip  q quit", pickerKeys.helpText())
}
