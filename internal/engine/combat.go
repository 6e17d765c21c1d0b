package engine

import (
	"strconv"

	"github.com/rfogale/sleeve-arena/internal/game"
)

// Side is one combatant: an opaque player id plus its resolved stats.
type Side struct {
	PlayerID string
	Stats    game.ResolvedStats
}

// SideResult is one side's outcome plus the effect (if any) that fired.
type SideResult struct {
	Outcome         game.RoundOutcome
	EffectTriggered *game.TriggeredEffect
}

// Result is the full output of a combat exchange. Log is an ordered,
// human-readable trace kept for audit and debugging; game logic never reads
// it.
type Result struct {
	Sides map[string]SideResult
	Log   []string
}

type combatContext struct {
	log []string
}

func (cc *combatContext) add(msg string) { cc.log = append(cc.log, msg) }

// ResolveCombat simulates the exchange between two resolved cards. The
// sequence is deterministic given inputs: on_play triggers fire first, then
// the initiative-ordered exchange (ties are simultaneous, and a destroyed
// defender never counterattacks), then survival/defeat is determined,
// post-combat triggers are evaluated, and scores are computed per the rules.
func ResolveCombat(s1, s2 Side, rules game.Rules) Result {
	cc := &combatContext{log: make([]string, 0, 16)}

	eff1 := fireOnPlay(cc, s1)
	eff2 := fireOnPlay(cc, s2)

	h1 := s1.Stats.Health
	h2 := s2.Stats.Health
	dealt1, dealt2 := 0, 0

	switch {
	case s1.Stats.Initiative == s2.Stats.Initiative:
		cc.add("Initiative tie at " + strconv.Itoa(s1.Stats.Initiative) + ": simultaneous exchange")
		h2 -= s1.Stats.Damage
		h1 -= s2.Stats.Damage
		dealt1 = s1.Stats.Damage
		dealt2 = s2.Stats.Damage
		cc.add(s1.PlayerID + " deals " + strconv.Itoa(dealt1) + " damage; " + s2.PlayerID + " deals " + strconv.Itoa(dealt2) + " damage")
	case s1.Stats.Initiative > s2.Stats.Initiative:
		dealt1, dealt2 = strike(cc, s1, s2, &h1, &h2)
	default:
		dealt2, dealt1 = strike(cc, s2, s1, &h2, &h1)
	}

	out1 := buildOutcome(s1.Stats, h1, h2, dealt1, dealt2, s2.Stats.Health)
	out2 := buildOutcome(s2.Stats, h2, h1, dealt2, dealt1, s1.Stats.Health)

	if eff1 == nil {
		eff1 = firePostCombat(cc, s1, out1)
	}
	if eff2 == nil {
		eff2 = firePostCombat(cc, s2, out2)
	}

	out1.Points = score(out1, rules)
	out2.Points = score(out2, rules)
	cc.add(s1.PlayerID + " scores " + strconv.Itoa(out1.Points) + " point(s); " + s2.PlayerID + " scores " + strconv.Itoa(out2.Points) + " point(s)")

	return Result{
		Sides: map[string]SideResult{
			s1.PlayerID: {Outcome: out1, EffectTriggered: eff1},
			s2.PlayerID: {Outcome: out2, EffectTriggered: eff2},
		},
		Log: cc.log,
	}
}

// fireOnPlay fires a side's effect when it is an on_play trigger. on_play
// fires unconditionally, before the exchange.
func fireOnPlay(cc *combatContext, s Side) *game.TriggeredEffect {
	eff := s.Stats.SpecialEffect
	if eff == nil || eff.Trigger != game.TriggerOnPlay {
		return nil
	}
	cc.add(s.PlayerID + " triggers on_play effect: " + string(eff.Action))
	return &game.TriggeredEffect{PlayerID: s.PlayerID, Trigger: eff.Trigger, Effect: *eff}
}

// firePostCombat evaluates the post-combat trigger conditions against the
// outcome. A card has one special effect slot, so at most one effect fires
// per side per round.
func firePostCombat(cc *combatContext, s Side, out game.RoundOutcome) *game.TriggeredEffect {
	eff := s.Stats.SpecialEffect
	if eff == nil || eff.Trigger == game.TriggerOnPlay {
		return nil
	}
	fired := false
	switch eff.Trigger {
	case game.TriggerIfSurvives:
		fired = out.Survived
	case game.TriggerIfDestroyed:
		fired = !out.Survived
	case game.TriggerIfDefeats:
		fired = out.Defeated
	case game.TriggerIfDoesntDefeat:
		fired = !out.Defeated
	}
	if !fired {
		return nil
	}
	cc.add(s.PlayerID + " triggers " + string(eff.Trigger) + " effect: " + string(eff.Action))
	return &game.TriggeredEffect{PlayerID: s.PlayerID, Trigger: eff.Trigger, Effect: *eff}
}

// strike resolves an ordered exchange: attacker hits first and the defender
// only counterattacks while still standing.
func strike(cc *combatContext, attacker, defender Side, attackerHealth, defenderHealth *int) (attackerDealt, defenderDealt int) {
	cc.add(attacker.PlayerID + " attacks first (initiative " + strconv.Itoa(attacker.Stats.Initiative) + " vs " + strconv.Itoa(defender.Stats.Initiative) + ")")
	*defenderHealth -= attacker.Stats.Damage
	attackerDealt = attacker.Stats.Damage
	cc.add(attacker.PlayerID + " deals " + strconv.Itoa(attackerDealt) + " damage")
	if *defenderHealth > 0 {
		*attackerHealth -= defender.Stats.Damage
		defenderDealt = defender.Stats.Damage
		cc.add(defender.PlayerID + " counterattacks for " + strconv.Itoa(defenderDealt) + " damage")
	} else {
		cc.add(defender.PlayerID + " is destroyed before it can counterattack")
	}
	return attackerDealt, defenderDealt
}

func buildOutcome(stats game.ResolvedStats, healthAfter, oppHealthAfter, dealt, taken, oppHealthBefore int) game.RoundOutcome {
	out := game.RoundOutcome{
		Survived:       healthAfter > 0,
		Defeated:       oppHealthAfter <= 0,
		DamageDealt:    dealt,
		DamageAbsorbed: taken,
		HealthBefore:   stats.Health,
		HealthAfter:    healthAfter,
	}
	if out.Defeated {
		out.Overkill = dealt - oppHealthBefore
		if out.Overkill < 0 {
			out.Overkill = 0
		}
	}
	return out
}

// score computes a side's points. A destroyed side earns 0 in either mode.
func score(out game.RoundOutcome, rules game.Rules) int {
	if !out.Survived {
		return 0
	}
	if rules.ScoringMode == game.ScoringModePoints {
		pts := rules.PointsForSurviving
		if out.Defeated {
			pts += rules.PointsForDefeating
		}
		return pts
	}
	pts := out.DamageAbsorbed * rules.PointsPerAbsorbed
	if out.Defeated {
		pts += rules.PointsForKill + out.Overkill*rules.PointsPerOverkill
	}
	return pts
}
