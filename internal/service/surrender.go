package service

import (
	"time"

	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/storage"
)

// Surrender ends an active game immediately in the opponent's favor. It is
// its own small transaction: one load, one write, ratings best-effort.
func Surrender(repo storage.Repository, gameID uint, playerID string) (*game.Game, error) {
	var out *game.Game
	err := repo.Transact(func(tx storage.Repository) error {
		g, err := tx.GetGameByID(gameID)
		if err != nil {
			return ErrGameNotFound
		}
		if g.Status != game.StatusActive {
			return ErrGameNotActive
		}
		p := g.PlayerByID(playerID)
		if p == nil {
			return ErrPlayerNotInGame
		}
		opp := g.OpponentOf(playerID)
		if opp == nil {
			return ErrGameNotActive
		}

		now := time.Now()
		g.Status = game.StatusFinished
		g.EndedAt = &now
		g.Winner = opp.PlayerID
		g.Message = p.PlayerName + " surrendered. " + opp.PlayerName + " wins."

		if g.Ranked && !g.StatsCounted {
			updateRatings(tx, g, playerID)
			g.StatsCounted = true
		}

		out = g
		return tx.UpdateGame(g)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
