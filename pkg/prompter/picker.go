package prompter

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("51")
	colorYellow = lipgloss.Color("214")
	colorDim    = lipgloss.Color("240")

	pickerTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickerCurrent = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	pickerHint    = lipgloss.NewStyle().Foreground(colorDim)
)

type pickerItem struct {
	label       string
	hint        string
	description string
}

// pickerModel is a cursor list. It ends with either a choice, a signal, or neither (a skip).
type pickerModel struct {
	title  string
	items  []pickerItem
	cursor int

	chosen bool
	signal domain.Signal
}

func newPickerModel(title string, items []pickerItem, cursor int) pickerModel {
	if cursor >= len(items) {
		cursor = 0
	}
	return pickerModel{title: title, items: items, cursor: cursor}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, pickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, pickerKeys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(km, pickerKeys.Choose):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(km, pickerKeys.Skip):
		return m, tea.Quit
	case key.Matches(km, pickerKeys.Back):
		m.signal = domain.SignalBack
		return m, tea.Quit
	case key.Matches(km, pickerKeys.Quit):
		m.signal = domain.SignalExit
		return m, tea.Quit
	case key.Matches(km, pickerKeys.Quick):
		idx := int(km.String()[0] - '1')
		if idx < len(m.items) {
			m.cursor = idx
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitle.Render(m.title))
	b.WriteString("\n\n")

	for i, it := range m.items {
		line := fmt.Sprintf("%d. %s", i+1, it.label)
		if i == m.cursor {
			line = pickerCurrent.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		if it.hint != "" {
			line += " " + pickerHint.Render(it.hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if d := m.items[m.cursor].description; d != "" {
		b.WriteString("\n")
		b.WriteString(pickerHint.Render(d))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickerHint.Render(pickerKeys.helpText()))
	b.WriteString("\n")
	return b.String()
}
