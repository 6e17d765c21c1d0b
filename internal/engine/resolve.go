package engine

import (
	"strconv"

	"github.com/rfogale/sleeve-arena/internal/game"
)

// Layer names used in stat attribution output.
const (
	LayerSleeveBackground = "sleeve_background"
	LayerAnimal           = "animal"
	LayerEquipment        = "equipment"
	LayerSleeveForeground = "sleeve_foreground"
)

type statLayer struct {
	name  string
	stats *game.CardStats
}

// Attribution reports which layer won each field of a resolved stat set. An
// empty string means no layer set the field. Equipment layers are suffixed
// with their stack position (e.g. "equipment[1]").
type Attribution struct {
	Damage        string `json:"damage"`
	Health        string `json:"health"`
	Initiative    string `json:"initiative"`
	Modifier      string `json:"modifier"`
	SpecialEffect string `json:"special_effect"`
}

// buildLayers assembles the fold order: sleeve background at the bottom,
// then the animal, then equipment in selection order, sleeve foreground on
// top.
func buildLayers(sleeve, animal *game.CardDefinition, equipment []*game.CardDefinition) []statLayer {
	layers := make([]statLayer, 0, len(equipment)+3)
	if sleeve != nil {
		layers = append(layers, statLayer{name: LayerSleeveBackground, stats: sleeve.BackgroundStats})
	}
	if animal != nil {
		layers = append(layers, statLayer{name: LayerAnimal, stats: animal.Stats})
	}
	for i, eq := range equipment {
		if eq == nil {
			continue
		}
		layers = append(layers, statLayer{name: LayerEquipment + "[" + strconv.Itoa(i) + "]", stats: eq.Stats})
	}
	if sleeve != nil {
		layers = append(layers, statLayer{name: LayerSleeveForeground, stats: sleeve.ForegroundStats})
	}
	return layers
}

// ResolveStats merges a composed card's attribute layers into one dense stat
// set. A later layer overwrites damage/health only when present and nonzero
// (zero means "this layer says nothing about this stat"); initiative,
// modifier and special effect overwrite on mere presence, so an explicit
// zero initiative is meaningful. After folding, persistent modifiers apply
// additively, then the single surviving modifier, then the carried
// initiative offset; damage and health are clamped to >= 0.
//
// The function is pure: identical inputs always produce identical outputs.
func ResolveStats(sleeve, animal *game.CardDefinition, equipment []*game.CardDefinition, persistent []game.PersistentModifier, initiativeModifier int) game.ResolvedStats {
	rs, _ := ResolveStatsWithAttribution(sleeve, animal, equipment, persistent, initiativeModifier)
	return rs
}

// ResolveStatsWithAttribution is ResolveStats plus the companion view that
// reports which layer won each field.
func ResolveStatsWithAttribution(sleeve, animal *game.CardDefinition, equipment []*game.CardDefinition, persistent []game.PersistentModifier, initiativeModifier int) (game.ResolvedStats, Attribution) {
	var rs game.ResolvedStats
	var attr Attribution

	for _, layer := range buildLayers(sleeve, animal, equipment) {
		st := layer.stats
		if st == nil {
			continue
		}
		if st.Damage != nil && *st.Damage != 0 {
			rs.Damage = *st.Damage
			attr.Damage = layer.name
		}
		if st.Health != nil && *st.Health != 0 {
			rs.Health = *st.Health
			attr.Health = layer.name
		}
		if st.Initiative != nil {
			rs.Initiative = *st.Initiative
			attr.Initiative = layer.name
		}
		if st.Modifier != nil {
			m := *st.Modifier
			rs.Modifier = &m
			attr.Modifier = layer.name
		}
		if st.SpecialEffect != nil {
			e := *st.SpecialEffect
			rs.SpecialEffect = &e
			attr.SpecialEffect = layer.name
		}
	}

	for _, pm := range persistent {
		switch pm.Stat {
		case game.StatDamage:
			rs.Damage += pm.Amount
		case game.StatHealth:
			rs.Health += pm.Amount
		}
	}

	if rs.Modifier != nil {
		switch rs.Modifier.Stat {
		case game.StatDamage:
			rs.Damage += rs.Modifier.Amount
		case game.StatHealth:
			rs.Health += rs.Modifier.Amount
		}
	}

	rs.Initiative += initiativeModifier

	if rs.Damage < 0 {
		rs.Damage = 0
	}
	if rs.Health < 0 {
		rs.Health = 0
	}
	return rs, attr
}
