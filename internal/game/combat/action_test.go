package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/stat"
)

func TestAction_Describe(t *testing.T) {
	assert.Equal(t, "Attack Char2", combat.Attack{Target: combat.TargetNamed("Char2")}.Describe())
	assert.Equal(t, "Do nothing", combat.Idle{}.Describe())
}

func TestTargetCharacter(t *testing.T) {
	c := character.New("Brute", stat.NewBlock())
	target := combat.TargetCharacter(c)
	assert.Equal(t, "Brute", target.Name())
	assert.Equal(t, "Brute", target.String())
	assert.Equal(t, combat.TargetNamed("Brute"), target)
}

func TestAttackDamage(t *testing.T) {
	stats := stat.NewBlock()
	assert.Equal(t, 1, combat.AttackDamage(character.New("Weak", stats)))
	stats.Stat(stat.Strength).SetBaseValue(4)
	stats.Stat(stat.Agility).SetBaseValue(5)
	// 4 base + 1 bled from Agility.
	assert.Equal(t, 6, combat.AttackDamage(character.New("Strong", stats)))
}

func TestSelfTargetPolicy(t *testing.T) {
	v := combat.View{
		Self: 1,
		Combatants: []combat.Snapshot{
			{Name: "A", HP: 4, MaxHP: 4},
			{Name: "B", HP: 9, MaxHP: 9},
		},
	}
	assert.Equal(t, combat.Attack{Target: combat.TargetNamed("B")}, combat.SelfTargetPolicy{}.Choose(v))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", combat.Running.String())
	assert.Equal(t, "finished", combat.Finished.String())
}
