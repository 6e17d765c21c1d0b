package snapshot

import (
	"github.com/google/uuid"

	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/keys"
	"github.com/rfogale/sleeve-arena/internal/rating"
)

// Record builds a brand-new GameSnapshot from a finished game's round
// history for the given live player. The snapshot stores card IDs only;
// stats are re-resolved at replay time so later balance changes apply to
// recorded opponents too.
func Record(g *game.Game, player *game.PlayerState, playerElo int) *game.GameSnapshot {
	commits := make([]game.SnapshotCommit, 0, len(g.Rounds))
	for _, rr := range g.Rounds {
		c, ok := rr.Commits[player.PlayerID]
		if !ok {
			continue
		}
		commits = append(commits, game.SnapshotCommit{
			SleeveID:     c.SleeveID,
			AnimalID:     c.AnimalID,
			EquipmentIDs: c.EquipmentIDs,
		})
	}

	activeIDs := make([]string, 0, len(g.Catalog.Cards))
	for id, card := range g.Catalog.Cards {
		if card.Active {
			activeIDs = append(activeIDs, id)
		}
	}

	elo := playerElo
	if elo == 0 {
		elo = rating.StartingElo
	}

	return &game.GameSnapshot{
		SnapshotUUID:  uuid.NewString(),
		PlayerName:    player.PlayerName,
		Elo:           elo,
		RoundCount:    len(commits),
		Commits:       commits,
		ActiveCardIDs: activeIDs,
		CatalogKey:    keys.CatalogKeyFromIDs(activeIDs),
	}
}
