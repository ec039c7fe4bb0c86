// Package combat implements the turn engine: a fixed roster of characters
// acting in insertion order until at most one is left standing.
package combat

import "errors"

// State is the lifecycle state of a Frame.
type State int

const (
	Running State = iota
	Finished
)

// String returns "running" or "finished".
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyRoster is returned when a Frame is created without combatants.
	ErrEmptyRoster = errors.New("combat: roster must not be empty")
	// ErrDuplicateName is returned when two combatants share a name.
	ErrDuplicateName = errors.New("combat: duplicate combatant name")
)
