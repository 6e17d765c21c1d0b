package engine

import "github.com/rfogale/sleeve-arena/internal/game"

// Drawer requests bonus draws from the deck/hand manager. The return value
// is the number of cards actually drawn; draw_cards effects fizzle silently
// when both deck and discard are empty, so callers never treat a short draw
// as an error.
type Drawer interface {
	DrawBonus(p *game.PlayerState, kind game.CardKind, count int) int
}

// ApplyEffects folds a round's triggered effects into one player's
// persistent state. add_persistent_modifier entries are tagged with the
// round they originated from and never expire; modify_initiative amounts sum
// into a one-round-only offset. The initiative modifier is reset every round
// regardless of whether any effect fired.
func ApplyEffects(p *game.PlayerState, effects []game.TriggeredEffect, round int, drawer Drawer) {
	nextInitiative := 0
	for _, te := range effects {
		if te.PlayerID != p.PlayerID {
			continue
		}
		switch te.Effect.Action {
		case game.ActionAddPersistentModifier:
			p.PersistentModifiers = append(p.PersistentModifiers, game.PersistentModifier{
				Stat:        te.Effect.Stat,
				Amount:      te.Effect.Amount,
				SourceRound: round,
			})
		case game.ActionModifyInitiative:
			nextInitiative += te.Effect.Amount
		case game.ActionDrawCards:
			if drawer != nil {
				drawer.DrawBonus(p, te.Effect.CardKind, te.Effect.Count)
			}
		}
	}
	p.InitiativeModifier = nextInitiative
}
