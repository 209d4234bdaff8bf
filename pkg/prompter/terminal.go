package prompter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal is the shared console all prompters of a flow talk to.
type Terminal struct {
	reader  LineReader
	out     io.Writer
	styled  *termenv.Output
	render  func(string) (string, error)
	keys    io.Reader
	pickers bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithReader reads answers from r instead of the process terminal. Pickers are disabled.
func WithReader(r LineReader) TerminalOption {
	return func(t *Terminal) {
		t.reader = r
	}
}

// WithOutput writes prompts to w.
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.out = w
	}
}

// WithRenderer renders question descriptions (typically markdown) before printing.
func WithRenderer(render func(string) (string, error)) TerminalOption {
	return func(t *Terminal) {
		t.render = render
	}
}

// WithPickers toggles full-screen list pickers for select questions.
func WithPickers(enabled bool) TerminalOption {
	return func(t *Terminal) {
		t.pickers = enabled
	}
}

// NewTerminal creates a console on stdin/stdout. When stdin is a TTY, answers are read
// with a line editor and select questions use a picker.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{out: os.Stdout}
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	t.pickers = interactive

	for _, opt := range opts {
		opt(t)
	}

	if t.reader == nil {
		if interactive {
			t.reader = NewReadlineReader(t.out)
			t.keys = os.Stdin
		} else {
			t.reader = NewLineReader(os.Stdin, t.out)
		}
	}
	if t.keys == nil {
		t.pickers = false
	}
	t.styled = termenv.NewOutput(t.out)
	return t
}

// Close releases the line editor.
func (t *Terminal) Close() error {
	return t.reader.Close()
}

// Header prints "[current/total] message".
func (t *Terminal) Header(steps domain.StepDisplay, message string) {
	if steps.Total <= 0 {
		fmt.Fprintf(t.out, "\n%s\n", t.styled.String(message).Bold())
		return
	}
	counter := t.styled.String(fmt.Sprintf("[%d/%d]", steps.Current, steps.Total)).
		Foreground(t.styled.Color("#818cf8")).
		Bold()
	fmt.Fprintf(t.out, "\n%s %s\n", counter, t.styled.String(message).Bold())
}

// Describe prints a question description, rendered when a renderer is configured.
func (t *Terminal) Describe(text string) {
	if text == "" {
		return
	}
	if t.render != nil {
		if rendered, err := t.render(text); err == nil {
			text = rendered
		}
	}
	fmt.Fprintln(t.out, strings.TrimSpace(text))
}

// Println writes a plain line.
func (t *Terminal) Println(line string) {
	fmt.Fprintln(t.out, line)
}

// Warn prints a validation message.
func (t *Terminal) Warn(msg string) {
	fmt.Fprintln(t.out, t.styled.String("! "+msg).Foreground(t.styled.Color("#fb7185")))
}

// Faint styles a hint.
func (t *Terminal) Faint(s string) string {
	return t.styled.String(s).Faint().String()
}

// Ask reads one answer. Navigation commands and interrupts come back as a signal; the
// returned line is sanitized and trimmed.
func (t *Terminal) Ask(ctx context.Context, prompt string) (string, domain.Signal, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", domain.SignalNone, err
		}

		line, err := t.reader.ReadLine(prompt)
		switch {
		case errors.Is(err, ErrInterrupted):
			return "", domain.SignalExit, nil
		case errors.Is(err, io.EOF):
			return "", domain.SignalForceExit, nil
		case err != nil:
			return "", domain.SignalNone, fmt.Errorf("read input: %w", err)
		}

		line, err = SanitizeInput(line)
		if err != nil {
			t.Warn(err.Error())
			continue
		}
		line = strings.TrimSpace(line)
		if sig, ok := parseCommand(line); ok {
			return "", sig, nil
		}
		return line, domain.SignalNone, nil
	}
}

// parseCommand recognizes the navigation commands accepted at any prompt.
func parseCommand(line string) (domain.Signal, bool) {
	switch strings.ToLower(line) {
	case ":back", "<":
		return domain.SignalBack, true
	case ":exit", ":quit", ":q":
		return domain.SignalExit, true
	}
	return domain.SignalNone, false
}
