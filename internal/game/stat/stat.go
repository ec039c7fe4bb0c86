package stat

import "fmt"

// Stat is one attribute's base value and accumulated progress.
//
// Invariant: 0 <= base <= MaxBaseValue; progress >= 0; threshold > 0.
type Stat struct {
	kind      Kind
	base      int
	progress  int
	threshold int
}

// NewStat returns kind at its minimum: base 0, no progress.
func NewStat(kind Kind) Stat {
	return Stat{kind: kind, threshold: initialThreshold}
}

// Kind returns the attribute this stat tracks.
func (s *Stat) Kind() Kind { return s.kind }

// BaseValue returns the raw value before transfers.
func (s *Stat) BaseValue() int { return s.base }

// Progress returns the progress accumulated towards the next level.
func (s *Stat) Progress() int { return s.progress }

// ProgressToNextLevel returns the progress required for the next increment.
func (s *Stat) ProgressToNextLevel() int { return s.threshold }

// SetBaseValue assigns the base value directly. Setup and test code only.
//
// Precondition: 0 <= v <= MaxBaseValue; otherwise SetBaseValue panics.
// Postcondition: BaseValue() == v; progress and threshold are unchanged.
func (s *Stat) SetBaseValue(v int) {
	if v < 0 || v > MaxBaseValue {
		panic(fmt.Sprintf("stat: %s base value %d out of range [0, %d]", s.kind, v, MaxBaseValue))
	}
	s.base = v
}

// Advance adds amount to progress and levels the stat while progress covers
// the threshold. Once the base value reaches MaxBaseValue the residual
// progress is kept but not applied. A negative amount lowers progress but
// never below zero and never lowers the base value.
//
// Postcondition: 0 <= BaseValue() <= MaxBaseValue; Progress() >= 0.
func (s *Stat) Advance(amount int) {
	s.progress += amount
	if s.progress < 0 {
		s.progress = 0
	}
	for s.progress >= s.threshold {
		if s.base >= MaxBaseValue {
			return
		}
		s.base++
		s.progress -= s.threshold
		s.threshold = ProgressForLevel(s.kind, s.base)
	}
}
