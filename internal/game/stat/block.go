package stat

import (
	"strconv"

	"github.com/cory-johannsen/arena/internal/game/table"
)

// Block holds exactly one Stat per Kind, in ring order.
type Block struct {
	stats [KindCount]Stat
}

// NewBlock returns a Block with every stat at its minimum.
func NewBlock() Block {
	var b Block
	for _, k := range Kinds() {
		b.stats[k] = NewStat(k)
	}
	return b
}

// Stat returns the mutable stat for kind.
//
// Precondition: kind.IsMajor().
func (b *Block) Stat(kind Kind) *Stat {
	return &b.stats[kind]
}

// Value returns the derived value of kind: its base value plus the truncated
// transfer from every other attribute. It is recomputed on every call.
func (b *Block) Value(kind Kind) int {
	value := b.stats[kind].base
	for _, source := range Kinds() {
		value += int(float64(b.stats[source].base) * TransferFactor(kind, source))
	}
	return value
}

// Check reports whether the derived value of kind meets required.
func (b *Block) Check(kind Kind, required int) bool {
	return b.Value(kind) >= required
}

// CheckWithProgression performs Check and then advances kind by the progress
// the check grants. The gain is computed from the derived value before the
// advance, so transfers both help pass checks and count towards the cap.
//
// Postcondition: Returns the result of the check made before any advance.
func (b *Block) CheckWithProgression(kind Kind, check ProgressCheck) bool {
	skill := b.Value(kind)
	success := skill >= check.Required
	b.Stat(kind).Advance(ProgressGain(check, skill))
	return success
}

// MaxHP returns the square of the derived Constitution value.
func (b *Block) MaxHP() int {
	con := b.Value(Constitution)
	return con * con
}

// Table renders every stat whose derived value is non-zero.
func (b *Block) Table() string {
	t := table.New(
		table.Column{Name: "Stat", Align: table.Left},
		table.Column{Name: "Base", Align: table.Right},
		table.Column{Name: "Modified", Align: table.Right},
		table.Column{Name: "Progress", Align: table.Right},
		table.Column{Name: "Next Level", Align: table.Right},
	)
	for _, k := range Kinds() {
		value := b.Value(k)
		if value == 0 {
			continue
		}
		s := b.Stat(k)
		t.AddRow(
			k.String(),
			strconv.Itoa(s.base),
			strconv.Itoa(value),
			strconv.Itoa(s.progress),
			strconv.Itoa(s.threshold),
		)
	}
	return t.Render()
}
