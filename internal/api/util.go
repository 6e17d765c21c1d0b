package api

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/rfogale/sleeve-arena/internal/game"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateJoinCode creates a short alphanumeric code for joining games.
func generateJoinCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// sanitizeGameFor returns a copy of g safe to show to viewerID. Opponent
// hands, draw piles and any still-pending commit are stripped so a player
// polling the game cannot see the other side's hidden information. Resolved
// rounds stay intact: both commits are public once a round resolves.
func sanitizeGameFor(g *game.Game, viewerID string) game.Game {
	out := *g
	out.Players = make([]game.PlayerState, len(g.Players))
	copy(out.Players, g.Players)
	for i := range out.Players {
		p := &out.Players[i]
		if p.PlayerID == viewerID {
			continue
		}
		p.AnimalHand = nil
		p.AnimalDeck = nil
		p.EquipmentHand = nil
		p.EquipmentDeck = nil
		p.CurrentCommit = nil
	}
	// Viewers never need the full frozen catalog on every poll.
	out.Catalog = game.CatalogSnapshot{}
	return out
}
