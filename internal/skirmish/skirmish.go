// Package skirmish runs one complete fight against a single prompt.Interface:
// greeting, the player's attributes, the combat itself, and the outcome.
package skirmish

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/prompt"
)

// Welcome is the first line of every skirmish.
const Welcome = "Welcome to the arena!"

// NobodyStanding closes a skirmish in which every combatant fell.
const NobodyStanding = "Nobody is left standing."

// Options configures Run. The zero value is usable.
type Options struct {
	// PlayerName renames the first human combatant when non-empty.
	PlayerName string
	// Policy decides for automatic combatants; nil uses the baseline.
	Policy combat.Policy
	Logger *zap.Logger
	// SessionID tags log lines; empty generates one.
	SessionID string
}

// Run fights chars to the end through ui.
//
// Precondition: chars is a valid roster for combat.NewFrame (after renaming).
// Postcondition: Returns the finished frame, or the frame and the error that
// interrupted it. Roster errors return a nil frame.
func Run(ctx context.Context, ui prompt.Interface, chars []*character.Character, opts Options) (*combat.Frame, error) {
	player := firstHuman(chars)
	if player != nil && opts.PlayerName != "" {
		player.Name = opts.PlayerName
	}

	frame, err := combat.NewFrame(chars,
		combat.WithPolicy(opts.Policy),
		combat.WithLogger(opts.Logger),
		combat.WithSessionID(opts.SessionID),
	)
	if err != nil {
		return nil, fmt.Errorf("skirmish: %w", err)
	}

	ui.Write(Welcome)
	if player != nil {
		ui.Write(fmt.Sprintf("You are %s.", player.Name))
		ui.Write(player.Stats.Table())
	}

	if err := frame.Run(ctx, ui); err != nil {
		return frame, fmt.Errorf("skirmish: %w", err)
	}
	ui.Write(Outcome(frame))
	return frame, nil
}

// Outcome describes a finished frame's result.
func Outcome(frame *combat.Frame) string {
	survivors := frame.Survivors()
	if len(survivors) == 0 {
		return NobodyStanding
	}
	return fmt.Sprintf("%s is the last one standing.", survivors[0])
}

func firstHuman(chars []*character.Character) *character.Character {
	for _, c := range chars {
		if c != nil && c.Controller == character.Human {
			return c
		}
	}
	return nil
}
