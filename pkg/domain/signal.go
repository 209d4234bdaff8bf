package domain

// Signal is a navigational outcome of a step. It is not an error.
type Signal int

const (
	// SignalNone means the step produced an answer (or nothing to answer).
	SignalNone Signal = iota
	// SignalBack rewinds to the previous step.
	SignalBack
	// SignalRetry re-runs the current step without consuming progress.
	SignalRetry
	// SignalExit aborts the whole flow. A wizard with an exit prompter asks for confirmation first.
	SignalExit
	// SignalForceExit aborts the whole flow without asking for confirmation.
	SignalForceExit
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalBack:
		return "back"
	case SignalRetry:
		return "retry"
	case SignalExit:
		return "exit"
	case SignalForceExit:
		return "force_exit"
	default:
		return "unknown"
	}
}

// IsExit reports whether the signal aborts the flow.
func (s Signal) IsExit() bool {
	return s == SignalExit || s == SignalForceExit
}

// Response is what a single prompt resolves to: an answer, a skip, or a control signal.
// The zero value is a skip.
type Response[T any] struct {
	Value  T
	Signal Signal
	// Answered is true when Value holds a legitimate answer, even a zero one.
	Answered bool
}

// Answer wraps a value as a valid response.
func Answer[T any](v T) Response[T] {
	return Response[T]{Value: v, Answered: true}
}

// Control wraps a navigation signal.
func Control[T any](s Signal) Response[T] {
	return Response[T]{Signal: s}
}

// Skip is the response of a prompt the user dismissed without answering.
func Skip[T any]() Response[T] {
	return Response[T]{}
}

// Valid reports whether the response carries an answer.
func (r Response[T]) Valid() bool {
	return r.Answered && r.Signal == SignalNone
}

// Skipped reports whether the prompt was dismissed without answer or signal.
func (r Response[T]) Skipped() bool {
	return !r.Answered && r.Signal == SignalNone
}

// Effective returns the signal the engine acts on. A skip goes back one step.
func (r Response[T]) Effective() Signal {
	if r.Skipped() {
		return SignalBack
	}
	return r.Signal
}
