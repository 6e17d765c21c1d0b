package service

import (
	"github.com/rfogale/sleeve-arena/internal/deck"
	"github.com/rfogale/sleeve-arena/internal/engine"
	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/snapshot"
	"github.com/rfogale/sleeve-arena/internal/storage"
)

// CommitRound validates and stores a player's composed card for the current
// round. In a synchronous game the first commit only records the choice;
// the second commit triggers resolution. In an asynchronous game the live
// player's single commit resolves immediately against the snapshot's
// recorded commit for this round.
//
// The whole operation runs inside one repository transaction: the "has the
// opponent committed?" check and the resolution write are a single atomic
// unit, so two commits racing each other resolve the round exactly once.
// Returns the updated game and whether the round was resolved.
func CommitRound(repo storage.Repository, gameID uint, playerID, sleeveID, animalID string, equipmentIDs []string) (*game.Game, bool, error) {
	var out *game.Game
	resolved := false

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
		if p.HasCommitted {
			// Idempotency boundary, not a retry: the first commit stands.
			return ErrAlreadyCommitted
		}
		if err := validateHoldings(p, sleeveID, animalID, equipmentIDs); err != nil {
			return err
		}

		stats, err := resolveCommitStats(g, p, sleeveID, animalID, equipmentIDs)
		if err != nil {
			return err
		}
		p.CurrentCommit = &game.CommittedCard{
			SleeveID:     sleeveID,
			AnimalID:     animalID,
			EquipmentIDs: equipmentIDs,
			FinalStats:   stats,
		}
		p.HasCommitted = true

		if g.IsAsync {
			if err := commitSnapshotSide(tx, g); err != nil {
				return err
			}
		}

		opp := g.OpponentOf(playerID)
		if opp != nil && opp.HasCommitted {
			if err := resolveRound(tx, g); err != nil {
				return err
			}
			resolved = true
		}

		out = g
		return tx.UpdateGame(g)
	})
	if err != nil {
		return nil, false, err
	}
	return out, resolved, nil
}

// validateHoldings rejects selections the player does not currently hold.
// Nothing is mutated on rejection.
func validateHoldings(p *game.PlayerState, sleeveID, animalID string, equipmentIDs []string) error {
	if !deck.Contains(p.AvailableSleeves, sleeveID) {
		return ErrSleeveNotAvailable
	}
	if !deck.Contains(p.AnimalHand, animalID) {
		return ErrAnimalNotInHand
	}
	// Check equipment against a scratch copy so duplicated selections of a
	// single held card are caught.
	hand := append([]string(nil), p.EquipmentHand...)
	for _, eq := range equipmentIDs {
		found := false
		for i := range hand {
			if hand[i] == eq {
				hand = append(hand[:i], hand[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return ErrEquipmentNotInHand
		}
	}
	return nil
}

// resolveCommitStats resolves a composed card against the game's frozen
// catalog and the player's accumulated persistent/initiative state. A
// referenced card missing from the frozen catalog is a data-integrity
// violation, not a validation failure.
func resolveCommitStats(g *game.Game, p *game.PlayerState, sleeveID, animalID string, equipmentIDs []string) (game.ResolvedStats, error) {
	sleeve := g.Catalog.Card(sleeveID)
	animal := g.Catalog.Card(animalID)
	if sleeve == nil || animal == nil {
		return game.ResolvedStats{}, ErrCardMissingFromCatalog
	}
	equipment := make([]*game.CardDefinition, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		eq := g.Catalog.Card(id)
		if eq == nil {
			return game.ResolvedStats{}, ErrCardMissingFromCatalog
		}
		equipment = append(equipment, eq)
	}
	return engine.ResolveStats(sleeve, animal, equipment, p.PersistentModifiers, p.InitiativeModifier), nil
}

// commitSnapshotSide replays the snapshot's recorded commit for the current
// round, re-resolving its stats against this game's frozen catalog and the
// snapshot side's accumulated state. Snapshots are commitments to card IDs,
// never to baked stats.
func commitSnapshotSide(tx storage.Repository, g *game.Game) error {
	if g.SnapshotID == nil {
		return ErrSnapshotExhausted
	}
	snap, err := tx.GetSnapshotByID(*g.SnapshotID)
	if err != nil {
		return err
	}
	sc, err := snapshot.CommitFor(snap, g.CurrentRound)
	if err != nil {
		return ErrSnapshotExhausted
	}
	side := g.PlayerByID(snap.SnapshotUUID)
	if side == nil {
		return ErrPlayerNotInGame
	}
	stats, err := resolveCommitStats(g, side, sc.SleeveID, sc.AnimalID, sc.EquipmentIDs)
	if err != nil {
		return err
	}
	side.CurrentCommit = &game.CommittedCard{
		SleeveID:     sc.SleeveID,
		AnimalID:     sc.AnimalID,
		EquipmentIDs: sc.EquipmentIDs,
		FinalStats:   stats,
	}
	side.HasCommitted = true
	return nil
}
