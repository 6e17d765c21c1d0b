package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfogale/sleeve-arena/internal/game"
)

func sleeveCard(bg, fg *game.CardStats) *game.CardDefinition {
	return &game.CardDefinition{ID: "sleeve", Kind: game.KindSleeve, Active: true, BackgroundStats: bg, ForegroundStats: fg}
}

func animalCard(st *game.CardStats) *game.CardDefinition {
	return &game.CardDefinition{ID: "animal", Kind: game.KindAnimal, Active: true, Stats: st}
}

func equipmentCard(id string, st *game.CardStats) *game.CardDefinition {
	return &game.CardDefinition{ID: id, Kind: game.KindEquipment, Active: true, Stats: st}
}

func TestResolveStats_LayerOrder(t *testing.T) {
	sleeve := sleeveCard(
		&game.CardStats{Damage: game.IntPtr(1), Health: game.IntPtr(1), Initiative: game.IntPtr(1)},
		&game.CardStats{Damage: game.IntPtr(9)},
	)
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(3), Health: game.IntPtr(5), Initiative: game.IntPtr(2)})
	eq := equipmentCard("eq1", &game.CardStats{Health: game.IntPtr(7)})

	rs, attr := ResolveStatsWithAttribution(sleeve, animal, []*game.CardDefinition{eq}, nil, 0)

	// Foreground sleeve wins damage, equipment wins health, animal wins
	// initiative because the later layers never set it.
	assert.Equal(t, 9, rs.Damage)
	assert.Equal(t, 7, rs.Health)
	assert.Equal(t, 2, rs.Initiative)
	assert.Equal(t, LayerSleeveForeground, attr.Damage)
	assert.Equal(t, "equipment[0]", attr.Health)
	assert.Equal(t, LayerAnimal, attr.Initiative)
}

func TestResolveStats_AbsentForegroundDoesNotOverwrite(t *testing.T) {
	sleeve := sleeveCard(&game.CardStats{Damage: game.IntPtr(2)}, &game.CardStats{})
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(5), Health: game.IntPtr(10)})

	rs := ResolveStats(sleeve, animal, nil, nil, 0)

	assert.Equal(t, 5, rs.Damage)
	assert.Equal(t, 10, rs.Health)
}

func TestResolveStats_ZeroDamageDoesNotOverwrite(t *testing.T) {
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(4), Health: game.IntPtr(4)})
	// An explicit zero on damage/health means "says nothing about this stat".
	eq := equipmentCard("eq0", &game.CardStats{Damage: game.IntPtr(0), Health: game.IntPtr(6)})

	rs := ResolveStats(nil, animal, []*game.CardDefinition{eq}, nil, 0)

	assert.Equal(t, 4, rs.Damage)
	assert.Equal(t, 6, rs.Health)
}

func TestResolveStats_ZeroInitiativeOverwrites(t *testing.T) {
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(2), Health: game.IntPtr(2), Initiative: game.IntPtr(5)})
	eq := equipmentCard("anchor", &game.CardStats{Initiative: game.IntPtr(0)})

	rs, attr := ResolveStatsWithAttribution(nil, animal, []*game.CardDefinition{eq}, nil, 0)

	// Initiative overwrites on presence: an explicit zero is meaningful.
	assert.Equal(t, 0, rs.Initiative)
	assert.Equal(t, "equipment[0]", attr.Initiative)
}

func TestResolveStats_MissingInitiativeDefaultsToZero(t *testing.T) {
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(2), Health: game.IntPtr(2)})

	rs := ResolveStats(nil, animal, nil, nil, 0)

	assert.Equal(t, 0, rs.Initiative)
}

func TestResolveStats_ModifierReplacedNotStacked(t *testing.T) {
	animal := animalCard(&game.CardStats{
		Damage: game.IntPtr(3), Health: game.IntPtr(3),
		Modifier: &game.Modifier{Stat: game.StatDamage, Amount: 5},
	})
	eq := equipmentCard("charm", &game.CardStats{
		Modifier: &game.Modifier{Stat: game.StatHealth, Amount: 2},
	})

	rs := ResolveStats(nil, animal, []*game.CardDefinition{eq}, nil, 0)

	// Only the surviving (topmost) modifier applies.
	assert.Equal(t, 3, rs.Damage)
	assert.Equal(t, 5, rs.Health)
}

func TestResolveStats_PersistentBeforeModifierThenClamp(t *testing.T) {
	animal := animalCard(&game.CardStats{
		Damage: game.IntPtr(2), Health: game.IntPtr(3),
		Modifier: &game.Modifier{Stat: game.StatDamage, Amount: -10},
	})
	persistent := []game.PersistentModifier{
		{Stat: game.StatDamage, Amount: 3, SourceRound: 1},
		{Stat: game.StatHealth, Amount: -1, SourceRound: 2},
	}

	rs := ResolveStats(nil, animal, nil, persistent, 2)

	// Damage: 2 + 3 - 10 = -5, clamped to 0. Health: 3 - 1 = 2.
	assert.Equal(t, 0, rs.Damage)
	assert.Equal(t, 2, rs.Health)
	assert.Equal(t, 2, rs.Initiative)
}

func TestResolveStats_EquipmentStackOrder(t *testing.T) {
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(1), Health: game.IntPtr(1)})
	eqA := equipmentCard("a", &game.CardStats{Damage: game.IntPtr(5)})
	eqB := equipmentCard("b", &game.CardStats{Damage: game.IntPtr(8)})

	forward := ResolveStats(nil, animal, []*game.CardDefinition{eqA, eqB}, nil, 0)
	backward := ResolveStats(nil, animal, []*game.CardDefinition{eqB, eqA}, nil, 0)

	assert.Equal(t, 8, forward.Damage)
	assert.Equal(t, 5, backward.Damage)
}

func TestResolveStats_Deterministic(t *testing.T) {
	sleeve := sleeveCard(
		&game.CardStats{Initiative: game.IntPtr(3)},
		&game.CardStats{Modifier: &game.Modifier{Stat: game.StatHealth, Amount: 1}},
	)
	animal := animalCard(&game.CardStats{Damage: game.IntPtr(4), Health: game.IntPtr(6)})
	persistent := []game.PersistentModifier{{Stat: game.StatDamage, Amount: 2, SourceRound: 1}}

	first := ResolveStats(sleeve, animal, nil, persistent, 1)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ResolveStats(sleeve, animal, nil, persistent, 1))
	}
}

func TestResolveStats_SpecialEffectPresenceOverwrites(t *testing.T) {
	animal := animalCard(&game.CardStats{
		Damage: game.IntPtr(2), Health: game.IntPtr(2),
		SpecialEffect: &game.SpecialEffect{Trigger: game.TriggerOnPlay, Action: game.ActionModifyInitiative, Amount: 1},
	})
	eq := equipmentCard("relic", &game.CardStats{
		SpecialEffect: &game.SpecialEffect{Trigger: game.TriggerIfSurvives, Action: game.ActionAddPersistentModifier, Stat: game.StatDamage, Amount: 2},
	})

	rs, attr := ResolveStatsWithAttribution(nil, animal, []*game.CardDefinition{eq}, nil, 0)

	require.NotNil(t, rs.SpecialEffect)
	assert.Equal(t, game.TriggerIfSurvives, rs.SpecialEffect.Trigger)
	assert.Equal(t, "equipment[0]", attr.SpecialEffect)
}
