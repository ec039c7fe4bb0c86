package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/hp"
	"github.com/cory-johannsen/arena/internal/game/prompt"
	"github.com/cory-johannsen/arena/internal/game/stat"
)

func newFighter(name string, controller character.Controller, str, con int) *character.Character {
	stats := stat.NewBlock()
	stats.Stat(stat.Strength).SetBaseValue(str)
	stats.Stat(stat.Constitution).SetBaseValue(con)
	c := character.New(name, stats)
	c.Controller = controller
	c.HitPoints().HealFully()
	return c
}

func status(rows ...string) string {
	out := "| Name  | HP | Max HP |"
	for _, r := range rows {
		out += "\n" + r
	}
	return out
}

func TestRun_ScriptedDuelEndsAfterFiveActions(t *testing.T) {
	char1 := newFighter("Char1", character.Human, 2, 2)
	char2 := newFighter("Char2", character.Human, 0, 3)
	frame, err := combat.NewFrame([]*character.Character{char1, char2})
	require.NoError(t, err)

	// Char1 always picks Char2 (index 1); Char2 always picks Char1 (index 0).
	ui := prompt.NewRecorder(1, 0, 1, 0, 1)
	require.NoError(t, frame.Run(context.Background(), ui))

	want := []string{
		status("| Char1 |  4 |      4 |", "| Char2 |  9 |      9 |"),
		"Char1 attacked Char2 for 3 damage.",
		status("| Char1 |  4 |      4 |", "| Char2 |  6 |      9 |"),
		"Char2 attacked Char1 for 1 damage.",
		status("| Char1 |  3 |      4 |", "| Char2 |  6 |      9 |"),
		"Char1 attacked Char2 for 3 damage.",
		status("| Char1 |  3 |      4 |", "| Char2 |  3 |      9 |"),
		"Char2 attacked Char1 for 1 damage.",
		status("| Char1 |  2 |      4 |", "| Char2 |  3 |      9 |"),
		"Char1 attacked Char2 for 3 damage.",
	}
	assert.Equal(t, want, ui.Lines())
	assert.Equal(t, combat.Finished, frame.State())
	assert.Equal(t, 5, frame.Resolved())
	assert.Equal(t, 3, frame.Round())
	assert.Equal(t, hp.Depleted, char2.HitPoints().State())
	assert.Equal(t, 2, char1.HitPoints().Current())
	assert.Equal(t, []string{"Char1"}, frame.Survivors())
}

func TestRun_HumanChoosesTarget(t *testing.T) {
	player := character.NewHuman("Player", stat.NewBlock())
	char2 := character.New("Char2", stat.NewBlock())
	frame, err := combat.NewFrame([]*character.Character{player, char2})
	require.NoError(t, err)

	ui := prompt.NewRecorder(1)
	require.NoError(t, frame.Run(context.Background(), ui))

	assert.Equal(t, []string{
		"| Name   | HP | Max HP |\n| Player |  1 |      1 |\n| Char2  |  1 |      1 |",
		"Player attacked Char2 for 1 damage.",
	}, ui.Lines())
	assert.Equal(t, [][]string{{"Attack Player", "Attack Char2", "Do nothing"}}, ui.Offered)
	assert.Equal(t, 1, frame.Resolved())
}

func TestRun_HumanAttackDamageIsOnePlusStrength(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		str := rapid.IntRange(0, stat.MaxBaseValue).Draw(rt, "str")
		player := newFighter("Player", character.Human, str, 0)
		dummy := newFighter("Dummy", character.Human, 0, 30)
		frame, err := combat.NewFrame([]*character.Character{player, dummy})
		require.NoError(rt, err)

		// Player attacks the dummy, the dummy idles, then input runs out.
		ui := prompt.NewRecorder(1, 2)
		err = frame.Run(context.Background(), ui)
		require.Error(rt, err)

		events := frame.Events()
		require.Len(rt, events, 2)
		assert.Equal(rt, 1+str, events[0].Damage)
		assert.Equal(rt, 900-(1+str), dummy.HitPoints().Current())
		assert.Equal(rt, "Dummy dawdles.", events[1].Narrative)
	})
}

func TestRun_AutomaticBaselineAttacksSelf(t *testing.T) {
	char1 := newFighter("Char1", character.Automatic, 2, 2)
	char2 := newFighter("Char2", character.Automatic, 0, 3)
	frame, err := combat.NewFrame([]*character.Character{char1, char2})
	require.NoError(t, err)

	ui := prompt.NewRecorder()
	require.NoError(t, frame.Run(context.Background(), ui))

	var narration []string
	for _, ev := range frame.Events() {
		narration = append(narration, ev.Narrative)
	}
	assert.Equal(t, []string{
		"Char1 attacked Char1 for 3 damage.",
		"Char2 attacked Char2 for 1 damage.",
		"Char1 attacked Char1 for 3 damage.",
	}, narration)
	assert.Equal(t, []string{"Char2"}, frame.Survivors())
	assert.Empty(t, ui.Offered, "automatic characters never prompt")
}

func TestRun_MissingTargetIsNarratedMiss(t *testing.T) {
	ghostHunter := newFighter("Hunter", character.Automatic, 0, 2)
	bystander := newFighter("Bystander", character.Automatic, 0, 2)
	policy := combat.PolicyFunc(func(v combat.View) combat.Action {
		if v.Actor().Name == "Hunter" && v.Round == 1 {
			return combat.Attack{Target: combat.TargetNamed("Ghost")}
		}
		return nil
	})
	frame, err := combat.NewFrame([]*character.Character{ghostHunter, bystander}, combat.WithPolicy(policy))
	require.NoError(t, err)

	ui := prompt.NewRecorder()
	require.NoError(t, frame.Run(context.Background(), ui))

	events := frame.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "Hunter tried to attack something nonexistent.", events[0].Narrative)
	assert.Equal(t, -1, events[0].TargetIndex)
	assert.Equal(t, 0, events[0].Damage)
	// Nil policy results fall back to attacking self.
	assert.Equal(t, "Bystander attacked Bystander for 1 damage.", events[1].Narrative)
}

func TestRun_IdleChangesNothing(t *testing.T) {
	a := newFighter("A", character.Human, 0, 2)
	b := newFighter("B", character.Human, 5, 2)
	frame, err := combat.NewFrame([]*character.Character{a, b})
	require.NoError(t, err)

	// A idles, B hits A for 6 (>= 4 HP).
	ui := prompt.NewRecorder(2, 0)
	require.NoError(t, frame.Run(context.Background(), ui))

	lines := ui.Lines()
	assert.Equal(t, "A dawdles.", lines[1])
	assert.Equal(t, "B attacked A for 6 damage.", lines[3])
	assert.Equal(t, hp.Full, b.HitPoints().State())
}

func TestRun_StopsMidRound(t *testing.T) {
	a := newFighter("A", character.Human, 30, 1)
	b := newFighter("B", character.Human, 0, 1)
	c := newFighter("C", character.Human, 0, 1)
	frame, err := combat.NewFrame([]*character.Character{a, b, c})
	require.NoError(t, err)

	// A kills B; B (already depleted) still acts and kills C.
	ui := prompt.NewRecorder(1, 2)
	require.NoError(t, frame.Run(context.Background(), ui))
	assert.Equal(t, 2, frame.Resolved())
	assert.Equal(t, 1, frame.Round())
	assert.Equal(t, []string{"A"}, frame.Survivors())
	assert.Len(t, ui.Offered, 2, "C never gets a turn")
}

func TestRun_SingleCombatantFinishesAfterFirstAction(t *testing.T) {
	solo := newFighter("Solo", character.Human, 0, 3)
	frame, err := combat.NewFrame([]*character.Character{solo})
	require.NoError(t, err)
	ui := prompt.NewRecorder(1)
	require.NoError(t, frame.Run(context.Background(), ui))
	assert.Equal(t, "Solo dawdles.", ui.Lines()[1])
	assert.Equal(t, combat.Finished, frame.State())
}

func TestRun_ResumesAfterDecisionError(t *testing.T) {
	char1 := newFighter("Char1", character.Human, 2, 2)
	char2 := newFighter("Char2", character.Human, 0, 3)
	frame, err := combat.NewFrame([]*character.Character{char1, char2})
	require.NoError(t, err)

	first := prompt.NewRecorder(1, 0)
	err = frame.Run(context.Background(), first)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Char1"`)
	assert.Equal(t, combat.Running, frame.State())
	assert.Equal(t, 2, frame.Resolved())

	second := prompt.NewRecorder(1, 0, 1)
	require.NoError(t, frame.Run(context.Background(), second))
	assert.Equal(t, 5, frame.Resolved())
	assert.Equal(t, hp.Depleted, char2.HitPoints().State())

	// A finished frame does nothing.
	third := prompt.NewRecorder()
	require.NoError(t, frame.Run(context.Background(), third))
	assert.Empty(t, third.Lines())
}

func TestRun_CancelledContext(t *testing.T) {
	player := character.NewHuman("Player", stat.NewBlock())
	npc := character.New("Npc", stat.NewBlock())
	frame, err := combat.NewFrame([]*character.Character{player, npc})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = frame.Run(ctx, prompt.NewRecorder(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, frame.Resolved())
}

func TestRun_TracksConstitutionChangesMidSession(t *testing.T) {
	a := newFighter("A", character.Human, 0, 3)
	b := newFighter("B", character.Human, 0, 3)
	frame, err := combat.NewFrame([]*character.Character{a, b})
	require.NoError(t, err)

	a.Stats.Stat(stat.Constitution).SetBaseValue(1)
	ui := prompt.NewRecorder(2)
	_ = frame.Run(context.Background(), ui)
	assert.Equal(t, "| Name | HP | Max HP |\n| A    |  1 |      1 |\n| B    |  9 |      9 |", ui.Lines()[0])
}

func TestNewFrame_Validation(t *testing.T) {
	_, err := combat.NewFrame(nil)
	assert.ErrorIs(t, err, combat.ErrEmptyRoster)

	a := character.New("Same", stat.NewBlock())
	b := character.New("Same", stat.NewBlock())
	_, err = combat.NewFrame([]*character.Character{a, b})
	assert.ErrorIs(t, err, combat.ErrDuplicateName)
}

func TestNewFrame_CopiesRoster(t *testing.T) {
	roster := []*character.Character{
		character.New("A", stat.NewBlock()),
		character.New("B", stat.NewBlock()),
	}
	frame, err := combat.NewFrame(roster, combat.WithSessionID("fixed"))
	require.NoError(t, err)
	roster[0] = character.New("Intruder", stat.NewBlock())
	assert.Equal(t, "fixed", frame.ID())
	assert.Equal(t, []combat.Target{combat.TargetNamed("A"), combat.TargetNamed("B")}, frame.ListTargets())
	assert.Nil(t, frame.Find(combat.TargetNamed("Intruder")))
	assert.NotNil(t, frame.Find(combat.TargetNamed("B")))
}

func TestNewFrame_GeneratesSessionIDs(t *testing.T) {
	roster := []*character.Character{character.New("A", stat.NewBlock())}
	f1, err := combat.NewFrame(roster)
	require.NoError(t, err)
	f2, err := combat.NewFrame(roster)
	require.NoError(t, err)
	assert.NotEmpty(t, f1.ID())
	assert.NotEqual(t, f1.ID(), f2.ID())
}

func TestRun_LogsSessionLifecycle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	char1 := newFighter("Char1", character.Automatic, 2, 2)
	char2 := newFighter("Char2", character.Automatic, 0, 3)
	frame, err := combat.NewFrame(
		[]*character.Character{char1, char2},
		combat.WithLogger(zap.New(core)),
		combat.WithSessionID("session-1"),
	)
	require.NoError(t, err)
	require.NoError(t, frame.Run(context.Background(), prompt.NewRecorder()))

	assert.Equal(t, 1, logs.FilterMessage("combat started").Len())
	assert.Equal(t, 3, logs.FilterMessage("action resolved").Len())
	finished := logs.FilterMessage("combat finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "session-1", finished[0].ContextMap()["session"])
	assert.EqualValues(t, 3, finished[0].ContextMap()["resolved"])
}

func TestProperty_RunTerminatesWithAtMostOneStanding(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "n")
		roster := make([]*character.Character, n)
		names := []string{"A", "B", "C", "D", "E"}
		for i := range roster {
			roster[i] = newFighter(names[i], character.Automatic,
				rapid.IntRange(0, 10).Draw(rt, "str"),
				rapid.IntRange(0, 10).Draw(rt, "con"))
		}
		frame, err := combat.NewFrame(roster)
		require.NoError(rt, err)
		require.NoError(rt, frame.Run(context.Background(), prompt.NewRecorder()))
		assert.LessOrEqual(rt, len(frame.Survivors()), 1)
		assert.Equal(rt, combat.Finished, frame.State())
	})
}
