// Package console renders the numbered-menu prompt over any line-oriented
// transport: standard input/output or a Telnet connection.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/arena/internal/game/prompt"
)

// Lines is a line-oriented duplex.
type Lines interface {
	// ReadLine returns the next line without its terminator. A final
	// unterminated line may come back together with io.EOF.
	ReadLine() (string, error)
	// WriteLine writes text followed by a line terminator.
	WriteLine(text string) error
	// WritePrompt writes text without a line terminator.
	WritePrompt(text string) error
}

// ErrInputClosed is returned by Choose when the input ends before a valid
// choice is made.
var ErrInputClosed = errors.New("console: input closed")

const (
	question    = "What do you do?"
	promptMark  = "> "
	notANumber  = "Not a valid choice; enter a number."
	outOfRangeF = "Not a valid choice; choose a choice from 1 to %d."
)

// Terminal implements prompt.Interface over Lines.
//
// The first write failure is kept and returned by the next Choose, since
// Write has no error return.
type Terminal struct {
	lines Lines
	err   error
}

var _ prompt.Interface = (*Terminal)(nil)

// New creates a Terminal over lines.
//
// Precondition: lines must be non-nil.
func New(lines Lines) *Terminal {
	return &Terminal{lines: lines}
}

// Write emits text, one WriteLine per embedded line.
func (t *Terminal) Write(text string) {
	if t.err != nil {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if err := t.lines.WriteLine(line); err != nil {
			t.err = fmt.Errorf("console: write: %w", err)
			return
		}
	}
}

// Err returns the first write failure, if any.
func (t *Terminal) Err() error { return t.err }

// Choose lists options as "N) description", asks "What do you do?", and reads
// answers after a "> " prompt until one is a number in [1, len(options)].
// Context cancellation is observed between lines.
//
// Postcondition: Returns a zero-based index, or an error on a prior write
// failure, a read failure (ErrInputClosed on EOF), or ctx cancellation.
func (t *Terminal) Choose(ctx context.Context, options []prompt.Choice) (int, error) {
	if len(options) == 0 {
		return -1, prompt.ErrNoOptions
	}
	for i, o := range options {
		t.Write(fmt.Sprintf("%d) %s", i+1, o.Describe()))
	}
	t.Write(question)

	for {
		if t.err != nil {
			return -1, t.err
		}
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if err := t.lines.WritePrompt(promptMark); err != nil {
			t.err = fmt.Errorf("console: write: %w", err)
			return -1, t.err
		}
		answer, err := t.readLine()
		if err != nil {
			return -1, err
		}

		n, err := strconv.ParseUint(strings.TrimSpace(answer), 10, 0)
		if err != nil {
			t.Write(notANumber)
			continue
		}
		if n < 1 || n > uint64(len(options)) {
			t.Write(fmt.Sprintf(outOfRangeF, len(options)))
			continue
		}
		return int(n - 1), nil
	}
}

// Ask writes question and returns the next line read after a "> " prompt,
// with surrounding whitespace trimmed.
//
// Postcondition: Returns the answer, or an error as for Choose.
func (t *Terminal) Ask(ctx context.Context, question string) (string, error) {
	t.Write(question)
	if t.err != nil {
		return "", t.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := t.lines.WritePrompt(promptMark); err != nil {
		t.err = fmt.Errorf("console: write: %w", err)
		return "", t.err
	}
	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// readLine reads one answer. A final unterminated line that arrives together
// with EOF is still an answer; EOF with no text is ErrInputClosed.
func (t *Terminal) readLine() (string, error) {
	answer, err := t.lines.ReadLine()
	switch {
	case err == nil:
		return answer, nil
	case errors.Is(err, io.EOF) && answer != "":
		return answer, nil
	case errors.Is(err, io.EOF):
		return "", ErrInputClosed
	default:
		return "", fmt.Errorf("console: read: %w", err)
	}
}

// Stdio adapts a reader and writer into Lines.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdio creates Lines over in and out, typically os.Stdin and os.Stdout.
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out}
}

// ReadLine reads up to and excluding the next "\n" or "\r\n". A final line
// without a terminator is returned; EOF is only reported with no data.
func (s *Stdio) ReadLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine writes text and "\n".
func (s *Stdio) WriteLine(text string) error {
	_, err := fmt.Fprintln(s.out, text)
	return err
}

// WritePrompt writes text as is.
func (s *Stdio) WritePrompt(text string) error {
	_, err := io.WriteString(s.out, text)
	return err
}
