package prompt

import (
	"context"
	"fmt"
	"strings"
)

// Recorder is an Interface that records every written line and answers
// choices from a preset queue of zero-based indices. It is intended for tests
// and scripted replays.
type Recorder struct {
	lines   []string
	presets []int
	// Offered records the rendered option lists in the order they were presented.
	Offered [][]string
}

// NewRecorder returns a Recorder that will answer choices with presets in order.
func NewRecorder(presets ...int) *Recorder {
	return &Recorder{presets: presets}
}

// Write records line.
func (r *Recorder) Write(line string) {
	r.lines = append(r.lines, line)
}

// Choose pops the next preset index.
//
// Postcondition: Returns an error when the presets are exhausted or the next
// preset is out of range; the preset is consumed either way.
func (r *Recorder) Choose(ctx context.Context, options []Choice) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if len(options) == 0 {
		return -1, ErrNoOptions
	}
	described := make([]string, len(options))
	for i, o := range options {
		described[i] = o.Describe()
	}
	r.Offered = append(r.Offered, described)
	if len(r.presets) == 0 {
		return -1, fmt.Errorf("prompt: no preset choice left for %d options", len(options))
	}
	idx := r.presets[0]
	r.presets = r.presets[1:]
	if idx < 0 || idx >= len(options) {
		return -1, fmt.Errorf("prompt: preset choice %d out of range [0, %d)", idx, len(options))
	}
	return idx, nil
}

// Lines returns a copy of every recorded line.
func (r *Recorder) Lines() []string {
	cp := make([]string, len(r.lines))
	copy(cp, r.lines)
	return cp
}

// Transcript returns the recorded lines joined by newlines.
func (r *Recorder) Transcript() string {
	return strings.Join(r.lines, "\n")
}
