// Package prompt defines the decision/output boundary the engine talks to:
// writing lines of narration and choosing one of an enumerated set of options.
package prompt

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoOptions is returned when a choice is requested from an empty option list.
var ErrNoOptions = errors.New("prompt: no options to choose from")

// Choice is anything that can be presented as an option. Selection is by
// position, never by the rendered text.
type Choice interface {
	Describe() string
}

// Interface is the engine's only I/O boundary.
type Interface interface {
	// Write emits one line of output. It must not block on input.
	Write(line string)
	// Choose presents options and blocks until exactly one is selected,
	// re-prompting on invalid input.
	//
	// Postcondition: Returns an index in [0, len(options)) or a non-nil error.
	Choose(ctx context.Context, options []Choice) (int, error)
}

// Select presents options through ui and returns the selected value.
//
// Postcondition: Returns one of options, or the zero T and a non-nil error.
func Select[T Choice](ctx context.Context, ui Interface, options []T) (T, error) {
	var zero T
	if len(options) == 0 {
		return zero, ErrNoOptions
	}
	choices := make([]Choice, len(options))
	for i, o := range options {
		choices[i] = o
	}
	idx, err := ui.Choose(ctx, choices)
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(options) {
		return zero, fmt.Errorf("prompt: interface returned index %d for %d options", idx, len(options))
	}
	return options[idx], nil
}

// Text is a Choice that describes itself with a fixed string.
type Text string

// Describe returns the string itself.
func (t Text) Describe() string { return string(t) }
