package combat

import (
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/character"
)

// Target refers to a combatant by name. It is resolved against the roster
// only when the action that carries it is resolved.
type Target struct {
	name string
}

// TargetNamed returns a Target for name.
func TargetNamed(name string) Target { return Target{name: name} }

// TargetCharacter returns a Target for c.
//
// Precondition: c must be non-nil.
func TargetCharacter(c *character.Character) Target { return Target{name: c.Name} }

// Name returns the targeted name.
func (t Target) Name() string { return t.name }

// String returns the targeted name.
func (t Target) String() string { return t.name }

// Action is one decision produced for a turn. The set of actions is closed:
// Attack and Idle are the only implementations.
type Action interface {
	// Describe renders the action as a menu option.
	Describe() string
	isAction()
}

// Attack deals 1 + the attacker's derived Strength to Target.
type Attack struct {
	Target Target
}

// Describe returns "Attack <name>".
func (a Attack) Describe() string { return fmt.Sprintf("Attack %s", a.Target) }

func (Attack) isAction() {}

// Idle does nothing.
type Idle struct{}

// Describe returns "Do nothing".
func (Idle) Describe() string { return "Do nothing" }

func (Idle) isAction() {}
