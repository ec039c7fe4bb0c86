// Package hp implements the clamped current/maximum health pool.
package hp

// State classifies a pool without storing anything.
type State int

const (
	Full State = iota
	Damaged
	Depleted
)

// String returns a lower-case label for s.
func (s State) String() string {
	switch s {
	case Full:
		return "full"
	case Damaged:
		return "damaged"
	case Depleted:
		return "depleted"
	default:
		return "unknown"
	}
}

// HitPoints is a health pool.
//
// Invariant: max >= 1; 0 <= current <= max.
type HitPoints struct {
	current int
	max     int
}

// New returns a full pool. A non-positive ceiling is clamped up to 1.
//
// Postcondition: Current() == Max() >= 1.
func New(ceiling int) HitPoints {
	if ceiling <= 0 {
		ceiling = 1
	}
	return HitPoints{current: ceiling, max: ceiling}
}

// Current returns the remaining health.
func (h *HitPoints) Current() int { return h.current }

// Max returns the health ceiling.
func (h *HitPoints) Max() int { return h.max }

// State reports Full when current equals max, Depleted at zero, and Damaged otherwise.
// A pool of max 1 at 1 is Full.
func (h *HitPoints) State() State {
	switch {
	case h.current == h.max:
		return Full
	case h.current == 0:
		return Depleted
	default:
		return Damaged
	}
}

// TakeDamage subtracts amount from current. Negative amounts are ignored.
//
// Postcondition: 0 <= Current() <= Max(); returns the resulting State.
func (h *HitPoints) TakeDamage(amount int) State {
	if amount < 0 {
		return h.State()
	}
	h.setCurrent(h.current - amount)
	return h.State()
}

// Heal adds amount to current. Negative healing models resistance decay and
// is applied, clamped at zero.
//
// Postcondition: 0 <= Current() <= Max(); returns the resulting State.
func (h *HitPoints) Heal(amount int) State {
	h.setCurrent(h.current + amount)
	return h.State()
}

// HealFully restores current to max.
//
// Postcondition: State() == Full.
func (h *HitPoints) HealFully() {
	h.current = h.max
}

// SetMax changes the ceiling, clamping it up to 1 and current down to it.
//
// Postcondition: Max() == max(newMax, 1); Current() <= Max().
func (h *HitPoints) SetMax(newMax int) {
	if newMax <= 0 {
		newMax = 1
	}
	h.max = newMax
	if h.current > h.max {
		h.current = h.max
	}
}

func (h *HitPoints) setCurrent(v int) {
	switch {
	case v < 0:
		h.current = 0
	case v > h.max:
		h.current = h.max
	default:
		h.current = v
	}
}
