// Package character binds an attribute set and a health pool to a named
// combatant with a decision source.
package character

import (
	"strconv"

	"github.com/cory-johannsen/arena/internal/game/access"
	"github.com/cory-johannsen/arena/internal/game/hp"
	"github.com/cory-johannsen/arena/internal/game/stat"
)

// Controller is the decision source of a Character.
type Controller int

const (
	// Automatic characters pick actions without blocking.
	Automatic Controller = iota
	// Human characters block on the prompt interface for each action.
	Human
)

// String returns "automatic" or "human".
func (c Controller) String() string {
	switch c {
	case Automatic:
		return "automatic"
	case Human:
		return "human"
	default:
		return "unknown"
	}
}

// ParseController resolves "automatic"/"ai" and "human"/"player".
func ParseController(s string) (Controller, bool) {
	switch s {
	case "automatic", "ai", "":
		return Automatic, true
	case "human", "player":
		return Human, true
	default:
		return Automatic, false
	}
}

// Character is one combatant.
type Character struct {
	// Name identifies the character for targeting; it must be unique within a combat.
	Name       string
	Stats      stat.Block
	Controller Controller
	hitpoints  hp.HitPoints
}

// New creates an automatic character whose pool starts full at the block's max HP.
//
// Postcondition: HitPoints().State() == hp.Full.
func New(name string, stats stat.Block) *Character {
	return &Character{
		Name:       name,
		Stats:      stats,
		Controller: Automatic,
		hitpoints:  hp.New(stats.MaxHP()),
	}
}

// NewHuman creates a human-controlled character.
func NewHuman(name string, stats stat.Block) *Character {
	c := New(name, stats)
	c.Controller = Human
	return c
}

// HitPoints refreshes the pool's ceiling from the live Constitution and
// returns the pool for reading or mutation.
//
// Postcondition: HitPoints().Max() == max(1, Stats.MaxHP()).
func (c *Character) HitPoints() *hp.HitPoints {
	c.hitpoints.SetMax(c.Stats.MaxHP())
	return &c.hitpoints
}

// Standing reports whether the character's pool is not depleted.
func (c *Character) Standing() bool {
	return c.HitPoints().State() != hp.Depleted
}

var properties = func() *access.Accessor[*Character] {
	a := access.NewAccessor[*Character]()
	a.Register("name", func(c *Character) (string, bool) { return c.Name, true })
	a.Register("hp", func(c *Character) (string, bool) {
		return strconv.Itoa(c.HitPoints().Current()), true
	})
	a.Register("max_hp", func(c *Character) (string, bool) {
		return strconv.Itoa(c.HitPoints().Max()), true
	})
	a.Register("controller", func(c *Character) (string, bool) { return c.Controller.String(), true })
	return a
}()

// LookupLocal exposes name, hp, max_hp, and controller.
func (c *Character) LookupLocal(key string) (string, bool) {
	return properties.Lookup(key, c)
}

// Child exposes "stats", whose properties are derived values keyed by
// lower-case display name or ticker.
func (c *Character) Child(key string) (access.Accessible, bool) {
	if key == "stats" {
		return statsView{block: &c.Stats}, true
	}
	return nil, false
}

type statsView struct {
	block *stat.Block
}

func (v statsView) LookupLocal(key string) (string, bool) {
	k, err := stat.ParseKind(key)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(v.block.Value(k)), true
}

func (v statsView) Child(string) (access.Accessible, bool) { return nil, false }
