package stat

import "math"

// progressUnitsPerLevel scales the curve into progress units.
const progressUnitsPerLevel = 100

// Stretch constants slow the exponential curve. The minor curve is flatter,
// giving auxiliary attributes a higher soft cap.
const (
	majorStretch = 0.13
	minorStretch = 0.08
)

// initialThreshold is the progress needed to leave base value 0.
const initialThreshold = 100

func advancementCurve(point int, stretch float64) float64 {
	return math.Exp(float64(point) * stretch)
}

// ProgressForLevel returns the progress needed to advance kind from level to
// level+1: ceil(100 * e^((level-1) * stretch)).
//
// Postcondition: Returns a value >= 1 for every level >= 0.
func ProgressForLevel(kind Kind, level int) int {
	stretch := minorStretch
	if kind.IsMajor() {
		stretch = majorStretch
	}
	return int(math.Ceil(progressUnitsPerLevel * advancementCurve(level-1, stretch)))
}
