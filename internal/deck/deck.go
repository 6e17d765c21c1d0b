// Package deck tracks per-player draw piles, hands, discard piles and sleeve
// rotation, and performs shuffling and reshuffle-on-exhaustion.
package deck

import (
	"math/rand"
	"time"

	"github.com/rfogale/sleeve-arena/internal/game"
)

// Shuffle returns a uniform random permutation of cards (Fisher-Yates). The
// input slice is not modified.
func Shuffle(cards []string, rng *rand.Rand) []string {
	out := make([]string, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Manager performs all hand/deck mutations for a game. It owns the RNG so
// tests can seed it deterministically.
type Manager struct {
	rng *rand.Rand
}

func NewManager(rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{rng: rng}
}

// drawFrom moves up to n cards from deck into the returned slice,
// reshuffling the discard pile into the deck when the deck runs out. A short
// draw (both piles empty) is not an error.
func (m *Manager) drawFrom(deck, discard *[]string, n int) []string {
	drawn := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if len(*deck) == 0 {
			if len(*discard) == 0 {
				break
			}
			*deck = Shuffle(*discard, m.rng)
			*discard = nil
		}
		drawn = append(drawn, (*deck)[0])
		*deck = (*deck)[1:]
	}
	return drawn
}

// DrawAnimals draws up to n animals into the player's hand and returns how
// many were actually drawn.
func (m *Manager) DrawAnimals(p *game.PlayerState, n int) int {
	drawn := m.drawFrom(&p.AnimalDeck, &p.AnimalDiscard, n)
	p.AnimalHand = append(p.AnimalHand, drawn...)
	return len(drawn)
}

// DrawEquipment draws up to n equipment cards into the player's hand.
func (m *Manager) DrawEquipment(p *game.PlayerState, n int) int {
	drawn := m.drawFrom(&p.EquipmentDeck, &p.EquipmentDiscard, n)
	p.EquipmentHand = append(p.EquipmentHand, drawn...)
	return len(drawn)
}

// DrawBonus satisfies the engine's Drawer interface for draw_cards effects.
// The draw fizzles silently when both deck and discard are empty.
func (m *Manager) DrawBonus(p *game.PlayerState, kind game.CardKind, count int) int {
	switch kind {
	case game.KindAnimal:
		return m.DrawAnimals(p, count)
	case game.KindEquipment:
		return m.DrawEquipment(p, count)
	}
	return 0
}

// CommitSleeve rotates the chosen sleeve from the available pool to the used
// pool. When the available pool empties it is refilled from used: all
// sleeves cycle back, including the one just played.
func (m *Manager) CommitSleeve(p *game.PlayerState, sleeveID string) bool {
	rest, ok := remove(p.AvailableSleeves, sleeveID)
	if !ok {
		return false
	}
	p.AvailableSleeves = rest
	p.UsedSleeves = append(p.UsedSleeves, sleeveID)
	if len(p.AvailableSleeves) == 0 {
		p.AvailableSleeves = p.UsedSleeves
		p.UsedSleeves = nil
	}
	return true
}

// DiscardPlayed moves the committed animal and equipment from hand to the
// discard piles.
func (m *Manager) DiscardPlayed(p *game.PlayerState, commit game.CommittedCard) {
	if rest, ok := remove(p.AnimalHand, commit.AnimalID); ok {
		p.AnimalHand = rest
		p.AnimalDiscard = append(p.AnimalDiscard, commit.AnimalID)
	}
	for _, eq := range commit.EquipmentIDs {
		if rest, ok := remove(p.EquipmentHand, eq); ok {
			p.EquipmentHand = rest
			p.EquipmentDiscard = append(p.EquipmentDiscard, eq)
		}
	}
}

// TopUp advances hands for the next round: the animal hand is refilled to
// the starting hand size, while equipment draws a fixed per-round amount
// regardless of hand size.
func (m *Manager) TopUp(p *game.PlayerState, rules game.Rules) {
	if missing := rules.StartingAnimalHand - len(p.AnimalHand); missing > 0 {
		m.DrawAnimals(p, missing)
	}
	if rules.EquipmentDrawPerRound > 0 {
		m.DrawEquipment(p, rules.EquipmentDrawPerRound)
	}
}

// remove returns ss without the first occurrence of id.
func remove(ss []string, id string) ([]string, bool) {
	for i := range ss {
		if ss[i] == id {
			out := make([]string, 0, len(ss)-1)
			out = append(out, ss[:i]...)
			out = append(out, ss[i+1:]...)
			return out, true
		}
	}
	return ss, false
}

// Contains reports whether id is present in ss. Used by commit validation.
func Contains(ss []string, id string) bool {
	for _, s := range ss {
		if s == id {
			return true
		}
	}
	return false
}
