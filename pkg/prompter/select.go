package prompter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one option of a Select.
type Choice[T any] struct {
	Label       string
	Value       T
	Description string
}

// Choices builds string choices labelled by their value.
func Choices(values ...string) []Choice[string] {
	out := make([]Choice[string], len(values))
	for i, v := range values {
		out[i] = Choice[string]{Label: v, Value: v}
	}
	return out
}

// Select asks the user to pick one of a fixed set of choices. Each choice shows how many
// further steps picking it would add.
type Select[T comparable] struct {
	base[T]
	choices []Choice[T]
}

// NewSelect creates a single-choice question.
func NewSelect[T comparable](term *Terminal, message string, choices []Choice[T], opts ...Option) *Select[T] {
	return &Select[T]{base: newBase[T](term, message, opts), choices: choices}
}

func (p *Select[T]) Prompt(ctx context.Context) (domain.Response[T], error) {
	if len(p.choices) == 0 {
		return domain.Response[T]{}, errors.New("select: no choices")
	}
	if p.term.pickers {
		return p.pick(ctx)
	}

	p.header()
	selected := p.selectedIndex()
	for i, c := range p.choices {
		marker := "  "
		if i == selected {
			marker = "* "
		}
		line := fmt.Sprintf("%s%d) %s", marker, i+1, c.Label)
		if hint := p.preview(c.Value); hint != "" {
			line += " " + p.term.Faint(hint)
		}
		p.term.Println(line)
	}

	for {
		line, sig, err := p.term.Ask(ctx, "> ")
		if err != nil {
			return domain.Response[T]{}, err
		}
		if sig != domain.SignalNone {
			return domain.Control[T](sig), nil
		}

		idx := p.match(line, selected)
		if idx < 0 {
			p.term.Warn(fmt.Sprintf("pick a number between 1 and %d", len(p.choices)))
			continue
		}
		v := p.choices[idx].Value
		p.SetRecentItem(v)
		return domain.Answer(v), nil
	}
}

// match resolves an answer to a choice index: empty keeps the selection, then a 1-based
// number, then a case-insensitive label.
func (p *Select[T]) match(line string, selected int) int {
	if line == "" {
		return selected
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n >= 1 && n <= len(p.choices) {
			return n - 1
		}
		return -1
	}
	for i, c := range p.choices {
		if strings.EqualFold(c.Label, line) {
			return i
		}
	}
	return -1
}

func (p *Select[T]) selectedIndex() int {
	v, ok := p.RecentItem()
	if !ok {
		return -1
	}
	for i, c := range p.choices {
		if c.Value == v {
			return i
		}
	}
	return -1
}

// preview describes how many steps picking v would add.
func (p *Select[T]) preview(v T) string {
	if p.opts.Estimator == nil {
		return ""
	}
	switch n := p.opts.Estimator(v); {
	case n == 1:
		return "(+1 step)"
	case n > 1:
		return fmt.Sprintf("(+%d steps)", n)
	}
	return ""
}

func (p *Select[T]) pick(ctx context.Context) (domain.Response[T], error) {
	items := make([]pickerItem, len(p.choices))
	for i, c := range p.choices {
		items[i] = pickerItem{label: c.Label, hint: p.preview(c.Value), description: c.Description}
	}
	title := p.message
	if s := p.opts.Steps; s.Total > 0 {
		title = fmt.Sprintf("[%d/%d] %s", s.Current, s.Total, p.message)
	}

	// The line editor and the picker cannot share the terminal.
	if err := p.term.reader.Close(); err != nil {
		return domain.Response[T]{}, fmt.Errorf("release line editor: %w", err)
	}

	m := newPickerModel(title, items, max(0, p.selectedIndex()))
	final, err := tea.NewProgram(m,
		tea.WithInput(p.term.keys),
		tea.WithOutput(p.term.out),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		return domain.Response[T]{}, fmt.Errorf("run picker: %w", err)
	}

	res, _ := final.(pickerModel)
	switch {
	case res.signal != domain.SignalNone:
		return domain.Control[T](res.signal), nil
	case res.chosen:
		v := p.choices[res.cursor].Value
		p.SetRecentItem(v)
		return domain.Answer(v), nil
	}
	return domain.Skip[T](), nil
}
