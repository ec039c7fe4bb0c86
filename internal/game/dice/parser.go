package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxCount bounds the dice in one expression so a script cannot request an
// arbitrarily large allocation.
const MaxCount = 100

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?([+-]\d+)?$`)

// Expression is a parsed dice expression.
//
// Invariant: 1 <= Count <= MaxCount, Sides >= 2, 0 <= KeepHighest < Count.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int
}

// Parse accepts "d20", "2d6", "2d6+3", "4d8-2" and "4d6kh3". Case and
// surrounding whitespace are ignored.
//
// Postcondition: Returns a valid Expression or an error naming the bad part.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}
	e := Expression{Raw: s, Count: 1}
	var err error
	if m[1] != "" {
		if e.Count, err = strconv.Atoi(m[1]); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
	}
	if e.Count < 1 || e.Count > MaxCount {
		return Expression{}, fmt.Errorf("dice: die count in %q must be in 1..%d", expr, MaxCount)
	}
	if e.Sides, err = strconv.Atoi(m[2]); err != nil || e.Sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be >= 2", expr)
	}
	if m[3] != "" {
		e.KeepHighest, err = strconv.Atoi(m[3])
		if err != nil || e.KeepHighest < 1 || e.KeepHighest >= e.Count {
			return Expression{}, fmt.Errorf("dice: kh in %q must be in 1..%d", expr, e.Count-1)
		}
	}
	if m[4] != "" {
		if e.Modifier, err = strconv.Atoi(m[4]); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}
	return e, nil
}
