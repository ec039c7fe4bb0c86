// Package stat implements the seven-attribute ring: base values, cross-attribute
// transfer, exponential leveling curves, and skill checks.
package stat

import (
	"fmt"
	"strings"
)

// Kind identifies one attribute. The seven named kinds form a ring in
// declaration order; Agility wraps around to Strength.
type Kind int

const (
	Strength Kind = iota
	Endurance
	Constitution
	Will
	Intelligence
	Perception
	Agility
)

// KindCount is the number of named attributes held by a Block.
const KindCount = 7

// MaxBaseValue is the inclusive upper bound of a base value.
const MaxBaseValue = 30

// Kinds returns every named attribute in ring order.
//
// Postcondition: len(result) == KindCount.
func Kinds() []Kind {
	return []Kind{Strength, Endurance, Constitution, Will, Intelligence, Perception, Agility}
}

// IsMajor reports whether k is one of the seven named ring attributes.
// Any other value is an auxiliary attribute and levels on the minor curve.
func (k Kind) IsMajor() bool {
	return k >= Strength && k <= Agility
}

// Ticker returns the three-letter abbreviation of k.
func (k Kind) Ticker() string {
	switch k {
	case Strength:
		return "STR"
	case Endurance:
		return "END"
	case Constitution:
		return "CON"
	case Will:
		return "WIL"
	case Intelligence:
		return "INT"
	case Perception:
		return "PER"
	case Agility:
		return "AGI"
	default:
		return k.String()
	}
}

// String returns the display name of k.
func (k Kind) String() string {
	switch k {
	case Strength:
		return "Strength"
	case Endurance:
		return "Endurance"
	case Constitution:
		return "Constitution"
	case Will:
		return "Will"
	case Intelligence:
		return "Intelligence"
	case Perception:
		return "Perception"
	case Agility:
		return "Agility"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a display name or ticker, ignoring case.
//
// Postcondition: Returns the matching Kind, or an error if s names no attribute.
func ParseKind(s string) (Kind, error) {
	needle := strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(needle, k.String()) || strings.EqualFold(needle, k.Ticker()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", s)
}

// adjacent is the bleed weight between ring neighbours.
const adjacent = 0.2

// transferTable[target][source] is the fraction of source's base value that
// contributes to target's derived value. Rows and columns follow ring order.
var transferTable = [KindCount][KindCount]float64{
	Strength:     {0, adjacent, 0, 0, 0, 0, adjacent},
	Endurance:    {adjacent, 0, adjacent, 0, 0, 0, 0},
	Constitution: {0, adjacent, 0, adjacent, 0, 0, 0},
	Will:         {0, 0, adjacent, 0, adjacent, 0, 0},
	Intelligence: {0, 0, 0, adjacent, 0, adjacent, 0},
	Perception:   {0, 0, 0, 0, adjacent, 0, adjacent},
	Agility:      {adjacent, 0, 0, 0, 0, adjacent, 0},
}

// TransferFactor returns the weight by which source's base value bleeds into
// target's derived value.
//
// Postcondition: Returns 0.2 for ring neighbours and 0 for every other pair,
// including self-pairs and auxiliary kinds.
func TransferFactor(target, source Kind) float64 {
	if !target.IsMajor() || !source.IsMajor() {
		return 0
	}
	return transferTable[target][source]
}
