package prompter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInterrupted is returned by a LineReader when the user pressed Ctrl+C.
var ErrInterrupted = errors.New("input interrupted")

// LineReader reads one answer line at a time.
type LineReader interface {
	// ReadLine shows prompt and returns the line without its trailing newline.
	// It returns io.EOF when the input is exhausted.
	ReadLine(prompt string) (string, error)
	Close() error
}

// lineReader reads plain lines from any reader.
type lineReader struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineReader reads newline-terminated answers from r, echoing prompts to w.
func NewLineReader(r io.Reader, w io.Writer) LineReader {
	return &lineReader{reader: bufio.NewReader(r), writer: w}
}

func (l *lineReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(l.writer, prompt)
	text, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}

func (l *lineReader) Close() error {
	return nil
}

// jsonReader reads answers sent as JSON lines. A line holding a JSON string is unquoted;
// anything else is taken verbatim.
type jsonReader struct {
	reader  *bufio.Reader
	encoder *json.Encoder
}

// NewJSONReader drives prompts from JSON lines on r. Every prompt is announced on w as
// {"prompt": "..."} so a driving program knows when to answer.
func NewJSONReader(r io.Reader, w io.Writer) LineReader {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &jsonReader{reader: bufio.NewReader(r), encoder: enc}
}

func (j *jsonReader) ReadLine(prompt string) (string, error) {
	if err := j.encoder.Encode(map[string]string{"prompt": strings.TrimSpace(prompt)}); err != nil {
		return "", err
	}
	text, err := j.reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}

func (j *jsonReader) Close() error {
	return nil
}

// readlineReader is the interactive line editor used on a TTY. The editor is opened on first
// use and released by Close, so a full-screen picker can take over the terminal in between.
type readlineReader struct {
	out io.Writer
	rl  *readline.Instance
}

// NewReadlineReader edits answers on the process terminal, echoing to out.
func NewReadlineReader(out io.Writer) LineReader {
	return &readlineReader{out: out}
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	if r.rl == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			Stdout:          r.out,
			InterruptPrompt: "^C",
			EOFPrompt:       ":exit",
		})
		if err != nil {
			return "", fmt.Errorf("init readline: %w", err)
		}
		r.rl = rl
	}

	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

func (r *readlineReader) Close() error {
	if r.rl == nil {
		return nil
	}
	err := r.rl.Close()
	r.rl = nil
	return err
}
