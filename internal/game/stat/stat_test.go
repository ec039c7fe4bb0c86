package stat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/stat"
)

func TestNewStat_Minimum(t *testing.T) {
	s := stat.NewStat(stat.Will)
	assert.Equal(t, stat.Will, s.Kind())
	assert.Equal(t, 0, s.BaseValue())
	assert.Equal(t, 0, s.Progress())
	assert.Equal(t, 100, s.ProgressToNextLevel())
}

func TestProgressForLevel_MajorCurve(t *testing.T) {
	tests := []struct{ level, want int }{
		{1, 100}, {2, 114}, {3, 130}, {4, 148}, {5, 169}, {6, 192}, {7, 219}, {8, 249},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, stat.ProgressForLevel(stat.Strength, tc.level), "level=%d", tc.level)
	}
}

func TestProgressForLevel_MinorCurveIsFlatter(t *testing.T) {
	aux := stat.Kind(stat.KindCount)
	assert.Equal(t, 100, stat.ProgressForLevel(aux, 1))
	// ceil(100 * e^0.08) = ceil(108.33)
	assert.Equal(t, 109, stat.ProgressForLevel(aux, 2))
	for level := 2; level <= stat.MaxBaseValue; level++ {
		assert.Less(t, stat.ProgressForLevel(aux, level), stat.ProgressForLevel(stat.Agility, level), "level=%d", level)
	}
}

func TestProperty_ProgressForLevel_Increasing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, stat.MaxBaseValue).Draw(rt, "level")
		assert.Greater(rt, stat.ProgressForLevel(stat.Endurance, level+1), stat.ProgressForLevel(stat.Endurance, level))
	})
}

func TestAdvance_LevelsAtThreshold(t *testing.T) {
	s := stat.NewStat(stat.Strength)
	s.Advance(50)
	assert.Equal(t, 0, s.BaseValue())
	assert.Equal(t, 50, s.Progress())
	s.Advance(100)
	assert.Equal(t, 1, s.BaseValue())
	assert.Equal(t, 50, s.Progress())
	assert.Equal(t, 100, s.ProgressToNextLevel())
}

func TestAdvance_MultipleLevelsAtOnce(t *testing.T) {
	s := stat.NewStat(stat.Strength)
	s.Advance(1000)
	// 100+100+114+130+148+169+192 = 953; next costs 219.
	assert.Equal(t, 7, s.BaseValue())
	assert.Equal(t, 47, s.Progress())
	assert.Equal(t, 219, s.ProgressToNextLevel())
}

func TestAdvance_NegativeStopsAtZero(t *testing.T) {
	s := stat.NewStat(stat.Strength)
	s.Advance(150)
	s.Advance(-500)
	assert.Equal(t, 1, s.BaseValue())
	assert.Equal(t, 0, s.Progress())
}

func TestAdvance_SaturatesAndKeepsResidual(t *testing.T) {
	s := stat.NewStat(stat.Perception)
	s.Advance(1_000_000)
	assert.Equal(t, stat.MaxBaseValue, s.BaseValue())

	spent := 100
	for level := 1; level < stat.MaxBaseValue; level++ {
		spent += stat.ProgressForLevel(stat.Perception, level)
	}
	assert.Equal(t, 1_000_000-spent, s.Progress())

	residual := s.Progress()
	s.Advance(0)
	assert.Equal(t, stat.MaxBaseValue, s.BaseValue())
	assert.Equal(t, residual, s.Progress())
}

func TestAdvance_ResidualReappliedAfterLowering(t *testing.T) {
	s := stat.NewStat(stat.Perception)
	s.Advance(1_000_000)
	residual := s.Progress()
	threshold := s.ProgressToNextLevel()
	assert.GreaterOrEqual(t, residual, threshold)

	s.SetBaseValue(29)
	s.Advance(0)
	assert.Equal(t, stat.MaxBaseValue, s.BaseValue())
	assert.Equal(t, residual-threshold, s.Progress())
}

func TestProperty_Advance_NeverExceedsCap(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := stat.NewStat(stat.Kind(rapid.IntRange(0, stat.KindCount-1).Draw(rt, "kind")))
		steps := rapid.SliceOfN(rapid.IntRange(-1000, 50_000), 1, 20).Draw(rt, "steps")
		for _, amount := range steps {
			before := s.BaseValue()
			s.Advance(amount)
			assert.LessOrEqual(rt, s.BaseValue(), stat.MaxBaseValue)
			assert.GreaterOrEqual(rt, s.BaseValue(), before)
			assert.GreaterOrEqual(rt, s.Progress(), 0)
			assert.Positive(rt, s.ProgressToNextLevel())
			if s.BaseValue() < stat.MaxBaseValue {
				assert.Less(rt, s.Progress(), s.ProgressToNextLevel())
			}
		}
	})
}

func TestSetBaseValue(t *testing.T) {
	s := stat.NewStat(stat.Intelligence)
	s.SetBaseValue(0)
	assert.Equal(t, 0, s.BaseValue())
	s.SetBaseValue(30)
	assert.Equal(t, 30, s.BaseValue())
}

func TestSetBaseValue_OutOfRangePanics(t *testing.T) {
	s := stat.NewStat(stat.Intelligence)
	assert.Panics(t, func() { s.SetBaseValue(-1) })
	assert.Panics(t, func() { s.SetBaseValue(31) })
	assert.Equal(t, 0, s.BaseValue())
}
