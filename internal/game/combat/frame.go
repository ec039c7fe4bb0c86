package combat

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/prompt"
	"github.com/cory-johannsen/arena/internal/game/table"
)

// Frame is one combat session. It holds the only handle to its roster for
// the duration of the session; membership and order never change.
//
// A Frame is not safe for concurrent use.
type Frame struct {
	id     string
	roster []*character.Character
	policy Policy
	logger *zap.Logger

	state State
	// round is 1-based once Run has started.
	round int
	// turn is the roster index of the next actor.
	turn     int
	resolved int
	events   []Event
}

// Option configures a Frame.
type Option func(*Frame)

// WithPolicy sets the policy used for Automatic characters.
func WithPolicy(p Policy) Option {
	return func(f *Frame) {
		if p != nil {
			f.policy = p
		}
	}
}

// WithLogger sets the operator logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Frame) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(f *Frame) {
		if id != "" {
			f.id = id
		}
	}
}

// NewFrame creates a Running frame over roster in the given order.
//
// Precondition: roster entries must be non-nil.
// Postcondition: Returns ErrEmptyRoster or ErrDuplicateName on invalid rosters;
// otherwise a Frame in state Running.
func NewFrame(roster []*character.Character, opts ...Option) (*Frame, error) {
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}
	seen := make(map[string]bool, len(roster))
	for _, c := range roster {
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = true
	}

	f := &Frame{
		id:     uuid.New().String(),
		roster: append([]*character.Character(nil), roster...),
		policy: SelfTargetPolicy{},
		logger: zap.NewNop(),
		state:  Running,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// ID returns the session id used in log lines.
func (f *Frame) ID() string { return f.id }

// State returns Running or Finished.
func (f *Frame) State() State { return f.state }

// Round returns the current round number; 0 before Run.
func (f *Frame) Round() int { return f.round }

// Resolved returns how many actions have been resolved.
func (f *Frame) Resolved() int { return f.resolved }

// Events returns a copy of every resolved event in order.
func (f *Frame) Events() []Event {
	cp := make([]Event, len(f.events))
	copy(cp, f.events)
	return cp
}

// Run drives turns in roster order, one per combatant per round, until the
// frame finishes. The finish check runs after every resolved action, so a
// round may end early.
//
// If a human decision fails (input closed, ctx cancelled) Run returns the
// error and the frame stays Running; calling Run again resumes with the same
// actor.
//
// Postcondition: Returns nil iff State() == Finished.
func (f *Frame) Run(ctx context.Context, ui prompt.Interface) error {
	if f.state == Finished {
		return nil
	}
	if f.round == 0 {
		f.round = 1
		f.logger.Info("combat started",
			zap.String("session", f.id),
			zap.Int("combatants", len(f.roster)),
		)
	}

	for {
		actor := f.roster[f.turn]
		ui.Write(f.StatusTable())

		action, err := f.decide(ctx, ui, f.turn)
		if err != nil {
			f.logger.Warn("combat interrupted",
				zap.String("session", f.id),
				zap.String("actor", actor.Name),
				zap.Error(err),
			)
			return fmt.Errorf("combat: deciding action for %q: %w", actor.Name, err)
		}

		ev := f.resolve(f.turn, action)
		f.events = append(f.events, ev)
		f.resolved++
		ui.Write(ev.Narrative)

		f.turn++
		if f.finished() {
			f.state = Finished
			f.logger.Info("combat finished",
				zap.String("session", f.id),
				zap.Int("rounds", f.round),
				zap.Int("resolved", f.resolved),
				zap.Strings("survivors", f.Survivors()),
			)
			return nil
		}
		if f.turn == len(f.roster) {
			f.turn = 0
			f.round++
		}
	}
}

// decide obtains the action for the combatant at idx from its decision source.
func (f *Frame) decide(ctx context.Context, ui prompt.Interface, idx int) (Action, error) {
	actor := f.roster[idx]
	switch actor.Controller {
	case character.Human:
		return prompt.Select(ctx, ui, f.options())
	case character.Automatic:
		if action := f.policy.Choose(f.view(idx)); action != nil {
			return action, nil
		}
		return SelfTargetPolicy{}.Choose(f.view(idx)), nil
	default:
		return nil, fmt.Errorf("unknown controller %d", actor.Controller)
	}
}

// options lists an attack on every combatant, self included, followed by Idle.
func (f *Frame) options() []Action {
	targets := f.ListTargets()
	options := make([]Action, 0, len(targets)+1)
	for _, t := range targets {
		options = append(options, Attack{Target: t})
	}
	return append(options, Idle{})
}

func (f *Frame) view(self int) View {
	v := View{Self: self, Round: f.round, Combatants: make([]Snapshot, len(f.roster))}
	for i, c := range f.roster {
		pool := c.HitPoints()
		v.Combatants[i] = Snapshot{
			Name:       c.Name,
			HP:         pool.Current(),
			MaxHP:      pool.Max(),
			Controller: c.Controller,
		}
	}
	return v
}

// finished reports whether at most one combatant is still standing.
func (f *Frame) finished() bool {
	return len(f.Survivors()) <= 1
}

// ListTargets returns a Target for every combatant in roster order.
func (f *Frame) ListTargets() []Target {
	targets := make([]Target, len(f.roster))
	for i, c := range f.roster {
		targets[i] = TargetCharacter(c)
	}
	return targets
}

// find resolves t to a roster index.
func (f *Frame) find(t Target) (int, bool) {
	for i, c := range f.roster {
		if c.Name == t.name {
			return i, true
		}
	}
	return -1, false
}

// Find returns the combatant t refers to, or nil.
func (f *Frame) Find(t Target) *character.Character {
	if i, ok := f.find(t); ok {
		return f.roster[i]
	}
	return nil
}

// Survivors returns the names of combatants whose pools are not depleted.
func (f *Frame) Survivors() []string {
	var names []string
	for _, c := range f.roster {
		if c.Standing() {
			names = append(names, c.Name)
		}
	}
	return names
}

// StatusTable renders every combatant's name, current HP, and max HP.
func (f *Frame) StatusTable() string {
	t := table.New(
		table.Column{Name: "Name", Align: table.Left},
		table.Column{Name: "HP", Align: table.Right},
		table.Column{Name: "Max HP", Align: table.Right},
	)
	for _, c := range f.roster {
		pool := c.HitPoints()
		t.AddRow(c.Name, strconv.Itoa(pool.Current()), strconv.Itoa(pool.Max()))
	}
	return t.Render()
}
