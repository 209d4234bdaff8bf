package prompter

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/ports"
)

// Option configures a prompter.
type Option func(*settings)

type settings struct {
	description string
	required    bool
	validate    func(string) error
}

// WithDescription shows text (markdown when the terminal renders) under the question.
func WithDescription(text string) Option {
	return func(s *settings) {
		s.description = text
	}
}

// WithRequired rejects empty answers when nothing is pre-selected.
func WithRequired() Option {
	return func(s *settings) {
		s.required = true
	}
}

// WithValidator checks the raw answer before it is accepted.
func WithValidator(fn func(string) error) Option {
	return func(s *settings) {
		s.validate = fn
	}
}

// base carries what every prompter shares: the terminal, the message, the options handed
// over by the wizard and the pre-selected item.
type base[T any] struct {
	term     *Terminal
	message  string
	settings settings
	opts     ports.PrompterOptions
	recent   *T
	disposed bool
}

func newBase[T any](term *Terminal, message string, opts []Option) base[T] {
	b := base[T]{term: term, message: message}
	for _, opt := range opts {
		opt(&b.settings)
	}
	return b
}

func (b *base[T]) Configure(opts ports.PrompterOptions) {
	b.opts = opts
}

func (b *base[T]) RecentItem() (T, bool) {
	if b.recent == nil {
		var zero T
		return zero, false
	}
	return *b.recent, true
}

func (b *base[T]) SetRecentItem(v T) {
	b.recent = &v
}

func (b *base[T]) TotalSteps() int {
	return 1
}

// Dispose marks the prompter as abandoned. Calling it again is harmless.
func (b *base[T]) Dispose() {
	b.disposed = true
}

// Disposed reports whether the wizard abandoned the prompter.
func (b *base[T]) Disposed() bool {
	return b.disposed
}

func (b *base[T]) header() {
	b.term.Header(b.opts.Steps, b.message)
	b.term.Describe(b.settings.description)
}

// input returns the prompt string, showing the pre-selected value if any.
func (b *base[T]) input() string {
	if v, ok := b.RecentItem(); ok {
		return b.term.Faint(fmt.Sprintf("(%v) ", v)) + "> "
	}
	return "> "
}

func (b *base[T]) check(raw string) error {
	if b.settings.validate == nil {
		return nil
	}
	return b.settings.validate(raw)
}
