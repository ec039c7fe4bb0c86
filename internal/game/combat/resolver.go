package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/stat"
)

// AttackDamage returns the damage attacker deals with an unarmed attack.
//
// Postcondition: Returns 1 + attacker's derived Strength, always >= 1.
func AttackDamage(attacker *character.Character) int {
	return 1 + attacker.Stats.Value(stat.Strength)
}

// Event records what happened when one action was resolved.
type Event struct {
	Round     int
	ActorName string
	Action    Action
	// TargetIndex is the roster index the target resolved to, or -1.
	TargetIndex int
	Damage      int
	Narrative   string
}

// resolve applies action for the combatant at actor and returns the event.
//
// Precondition: 0 <= actor < len(f.roster); action must be non-nil.
// Postcondition: only the target's pool is mutated, and only by an Attack
// whose target resolves.
func (f *Frame) resolve(actor int, action Action) Event {
	attacker := f.roster[actor]
	ev := Event{
		Round:       f.round,
		ActorName:   attacker.Name,
		Action:      action,
		TargetIndex: -1,
	}

	switch a := action.(type) {
	case Attack:
		idx, ok := f.find(a.Target)
		if !ok {
			ev.Narrative = fmt.Sprintf("%s tried to attack something nonexistent.", attacker.Name)
			break
		}
		ev.TargetIndex = idx
		ev.Damage = AttackDamage(attacker)
		f.roster[idx].HitPoints().TakeDamage(ev.Damage)
		ev.Narrative = fmt.Sprintf("%s attacked %s for %d damage.", attacker.Name, a.Target, ev.Damage)
	case Idle:
		ev.Narrative = fmt.Sprintf("%s dawdles.", attacker.Name)
	default:
		panic(fmt.Sprintf("combat: unhandled action type %T", action))
	}

	f.logger.Debug("action resolved",
		zap.String("session", f.id),
		zap.Int("round", ev.Round),
		zap.String("actor", ev.ActorName),
		zap.String("action", action.Describe()),
		zap.Int("target_index", ev.TargetIndex),
		zap.Int("damage", ev.Damage),
	)
	return ev
}
