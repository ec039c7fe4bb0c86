package combat

import "github.com/cory-johannsen/arena/internal/game/character"

// Snapshot is a read-only copy of one combatant's state.
type Snapshot struct {
	Name       string
	HP         int
	MaxHP      int
	Controller character.Controller
}

// View is what an automatic policy sees at the start of a turn.
type View struct {
	// Self is the acting combatant's index into Combatants.
	Self       int
	Round      int
	Combatants []Snapshot
}

// Actor returns the acting combatant's snapshot.
func (v View) Actor() Snapshot { return v.Combatants[v.Self] }

// Policy selects actions for Automatic characters.
//
// Implementations must not block and must return exactly one Action; a nil
// return is treated as the baseline policy's choice.
type Policy interface {
	Choose(v View) Action
}

// PolicyFunc adapts a function into a Policy.
type PolicyFunc func(v View) Action

// Choose calls f.
func (f PolicyFunc) Choose(v View) Action { return f(v) }

// SelfTargetPolicy is the baseline automatic policy: every automatic
// character attacks itself. It is a placeholder, not a strategy.
type SelfTargetPolicy struct{}

// Choose returns Attack targeting the actor.
func (SelfTargetPolicy) Choose(v View) Action {
	return Attack{Target: TargetNamed(v.Actor().Name)}
}
