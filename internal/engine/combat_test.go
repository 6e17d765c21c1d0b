package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfogale/sleeve-arena/internal/game"
)

func roundsRules() game.Rules {
	r := game.DefaultRules()
	r.ScoringMode = game.ScoringModeRounds
	return r
}

func TestResolveCombat_FasterStrikesFirstNoCounterattack(t *testing.T) {
	fast := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 10, Health: 5, Initiative: 3}}
	slow := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 10, Health: 8, Initiative: 1}}

	res := ResolveCombat(fast, slow, roundsRules())

	out1 := res.Sides["p1"].Outcome
	out2 := res.Sides["p2"].Outcome
	// The destroyed defender never counterattacks.
	assert.True(t, out1.Survived)
	assert.True(t, out1.Defeated)
	assert.Equal(t, 5, out1.HealthAfter)
	assert.Equal(t, 0, out1.DamageAbsorbed)
	assert.False(t, out2.Survived)
	assert.Equal(t, 0, out2.DamageDealt)
}

func TestResolveCombat_SurvivingDefenderCounterattacks(t *testing.T) {
	fast := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 3, Health: 10, Initiative: 5}}
	slow := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 4, Health: 10, Initiative: 2}}

	res := ResolveCombat(fast, slow, roundsRules())

	assert.Equal(t, 6, res.Sides["p1"].Outcome.HealthAfter)
	assert.Equal(t, 7, res.Sides["p2"].Outcome.HealthAfter)
	assert.True(t, res.Sides["p1"].Outcome.Survived)
	assert.True(t, res.Sides["p2"].Outcome.Survived)
}

func TestResolveCombat_InitiativeTieIsSimultaneous(t *testing.T) {
	a := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 10, Health: 5, Initiative: 2}}
	b := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 10, Health: 5, Initiative: 2}}

	res := ResolveCombat(a, b, roundsRules())

	// Both sides deal full damage even though both end up destroyed.
	assert.False(t, res.Sides["p1"].Outcome.Survived)
	assert.False(t, res.Sides["p2"].Outcome.Survived)
	assert.Equal(t, 10, res.Sides["p1"].Outcome.DamageDealt)
	assert.Equal(t, 10, res.Sides["p2"].Outcome.DamageDealt)
	assert.True(t, res.Sides["p1"].Outcome.Defeated)
	assert.True(t, res.Sides["p2"].Outcome.Defeated)
}

func TestResolveCombat_RoundsScoring(t *testing.T) {
	rules := roundsRules()
	rules.PointsForKill = 3
	rules.PointsPerOverkill = 1
	rules.PointsPerAbsorbed = 1

	winner := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 7, Health: 10, Initiative: 5}}
	loser := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 4, Health: 5, Initiative: 1}}

	res := ResolveCombat(winner, loser, rules)

	out := res.Sides["p1"].Outcome
	// Overkill: 7 dealt against 5 health = 2. Absorbed 0 (defender died
	// before counterattacking). Kill 3 + overkill 2 = 5.
	assert.Equal(t, 2, out.Overkill)
	assert.Equal(t, 5, out.Points)
	assert.Equal(t, 0, res.Sides["p2"].Outcome.Points)
}

func TestResolveCombat_AbsorbedPointsForSurvivor(t *testing.T) {
	rules := roundsRules()
	a := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 2, Health: 10, Initiative: 3}}
	b := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 4, Health: 10, Initiative: 1}}

	res := ResolveCombat(a, b, rules)

	// Both survive: each earns one point per damage absorbed.
	assert.Equal(t, 4, res.Sides["p1"].Outcome.Points)
	assert.Equal(t, 2, res.Sides["p2"].Outcome.Points)
}

func TestResolveCombat_PointsModeScoring(t *testing.T) {
	rules := game.DefaultRules()
	rules.ScoringMode = game.ScoringModePoints
	rules.PointsForSurviving = 1
	rules.PointsForDefeating = 2

	winner := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 9, Health: 10, Initiative: 5}}
	loser := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 1, Health: 5, Initiative: 1}}

	res := ResolveCombat(winner, loser, rules)

	assert.Equal(t, 3, res.Sides["p1"].Outcome.Points)
	assert.Equal(t, 0, res.Sides["p2"].Outcome.Points)
}

func TestResolveCombat_OnPlayFiresUnconditionally(t *testing.T) {
	eff := &game.SpecialEffect{Trigger: game.TriggerOnPlay, Action: game.ActionModifyInitiative, Amount: 2}
	doomed := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 1, Health: 1, Initiative: 1, SpecialEffect: eff}}
	killer := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 10, Health: 10, Initiative: 5}}

	res := ResolveCombat(doomed, killer, roundsRules())

	fired := res.Sides["p1"].EffectTriggered
	require.NotNil(t, fired)
	assert.Equal(t, game.TriggerOnPlay, fired.Trigger)
	assert.False(t, res.Sides["p1"].Outcome.Survived)
}

func TestResolveCombat_PostCombatTriggers(t *testing.T) {
	tests := []struct {
		name    string
		trigger game.TriggerKind
		// side under test: weak loses, strong wins
		weakSide  bool
		wantFired bool
	}{
		{"if_survives fires for winner", game.TriggerIfSurvives, false, true},
		{"if_survives silent for destroyed", game.TriggerIfSurvives, true, false},
		{"if_destroyed fires for destroyed", game.TriggerIfDestroyed, true, true},
		{"if_defeats fires for winner", game.TriggerIfDefeats, false, true},
		{"if_doesnt_defeat fires for destroyed", game.TriggerIfDoesntDefeat, true, true},
		{"if_doesnt_defeat silent for winner", game.TriggerIfDoesntDefeat, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff := &game.SpecialEffect{Trigger: tt.trigger, Action: game.ActionAddPersistentModifier, Stat: game.StatDamage, Amount: 1}
			weak := game.ResolvedStats{Damage: 1, Health: 2, Initiative: 1}
			strong := game.ResolvedStats{Damage: 10, Health: 10, Initiative: 5}
			if tt.weakSide {
				weak.SpecialEffect = eff
			} else {
				strong.SpecialEffect = eff
			}
			res := ResolveCombat(
				Side{PlayerID: "weak", Stats: weak},
				Side{PlayerID: "strong", Stats: strong},
				roundsRules(),
			)
			id := "strong"
			if tt.weakSide {
				id = "weak"
			}
			if tt.wantFired {
				assert.NotNil(t, res.Sides[id].EffectTriggered)
			} else {
				assert.Nil(t, res.Sides[id].EffectTriggered)
			}
		})
	}
}

func TestResolveCombat_OnPlaySuppressesPostCombat(t *testing.T) {
	// A card has one effect slot: if it fired on_play nothing fires later.
	eff := &game.SpecialEffect{Trigger: game.TriggerOnPlay, Action: game.ActionDrawCards, CardKind: game.KindAnimal, Count: 1}
	a := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 2, Health: 10, Initiative: 3, SpecialEffect: eff}}
	b := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 2, Health: 10, Initiative: 1}}

	res := ResolveCombat(a, b, roundsRules())

	fired := res.Sides["p1"].EffectTriggered
	require.NotNil(t, fired)
	assert.Equal(t, game.TriggerOnPlay, fired.Trigger)
}

func TestResolveCombat_LogIsOrdered(t *testing.T) {
	a := Side{PlayerID: "p1", Stats: game.ResolvedStats{Damage: 3, Health: 10, Initiative: 4}}
	b := Side{PlayerID: "p2", Stats: game.ResolvedStats{Damage: 3, Health: 10, Initiative: 2}}

	res := ResolveCombat(a, b, roundsRules())

	require.NotEmpty(t, res.Log)
	assert.Contains(t, res.Log[0], "attacks first")
}
