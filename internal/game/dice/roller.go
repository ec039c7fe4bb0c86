package dice

import (
	"slices"

	"go.uber.org/zap"
)

// Roll evaluates e against src.
//
// Postcondition: len(Kept) == e.KeepHighest when it is set, else e.Count;
// every kept die is in [1, e.Sides].
func Roll(e Expression, src Source) Result {
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = src.Intn(e.Sides) + 1
	}
	if e.KeepHighest > 0 {
		slices.Sort(rolled)
		slices.Reverse(rolled)
		rolled = rolled[:e.KeepHighest]
	}
	return Result{Expression: e.Raw, Kept: rolled, Modifier: e.Modifier}
}

// Roller rolls expressions and logs each result at Debug.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller returns a Roller drawing from src.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollExpr parses and rolls expr.
func (r *Roller) RollExpr(expr string) (Result, error) {
	e, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	res := Roll(e, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", res.Expression),
		zap.Ints("kept", res.Kept),
		zap.Int("modifier", res.Modifier),
		zap.Int("total", res.Total()),
	)
	return res, nil
}
