package stat

import "math"

// ProgressCheck describes a skill check that grants progress.
type ProgressCheck struct {
	// Required is the derived value needed to pass. It also caps the
	// multiplier applied to BaseProgress.
	Required int
	// BaseProgress is the progress granted per unit of multiplier.
	BaseProgress int
}

const (
	// dropoff controls how fast progress falls once a check is easy.
	dropoff = 0.05
	// idealOffset is where, relative to Required, progress peaks.
	idealOffset = -2
)

// ProgressGain returns the progress a check grants to an actor whose derived
// value is skill: floor(base * min(required, max(0, 1/(0.05*(skill+2-required))))).
// Checks far above the actor's skill hit the required cap; trivially easy
// checks decay towards zero.
//
// Postcondition: Returns >= 0.
func ProgressGain(check ProgressCheck, skill int) int {
	denominator := dropoff * float64(skill-idealOffset-check.Required)
	multiplier := math.Max(1/denominator, 0)
	multiplier = math.Min(multiplier, float64(check.Required))
	gain := int(math.Floor(float64(check.BaseProgress) * multiplier))
	if gain < 0 {
		return 0
	}
	return gain
}
