package service

import (
	"math/rand"
	"time"

	"github.com/rfogale/sleeve-arena/internal/deck"
	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/logging"
	"github.com/rfogale/sleeve-arena/internal/snapshot"
	"github.com/rfogale/sleeve-arena/internal/storage"
)

// CreateGameRequest carries what the matchmaking collaborator hands us.
type CreateGameRequest struct {
	JoinCode   string
	PlayerID   string
	PlayerName string
	Ranked     bool
	Async      bool
}

// CreateGame creates a new game around a frozen copy of the current
// catalog. Synchronous games wait for a second player; asynchronous games
// are matched against a recorded snapshot immediately and become active.
func CreateGame(repo storage.Repository, cards []game.CardDefinition, rules game.Rules, req CreateGameRequest) (*game.Game, error) {
	catalog := freezeCatalog(cards)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	g := &game.Game{
		JoinCode:     req.JoinCode,
		Status:       game.StatusWaitingForPlayers,
		Ranked:       req.Ranked,
		IsAsync:      req.Async,
		CurrentRound: 1,
		MaxRounds:    rules.MaxRounds,
		Rules:        rules,
		Catalog:      catalog,
		Scores:       map[string]int{},
		Players: []game.PlayerState{
			newPlayerState(catalog, rules, rng, req.PlayerID, req.PlayerName),
		},
		Message: "Game created. Waiting for an opponent.",
	}
	g.Scores[req.PlayerID] = 0

	if req.Async {
		u, err := repo.GetUserByPlayerID(req.PlayerID)
		if err != nil {
			return nil, err
		}
		snap, err := snapshot.Match(repo, u.Elo, rules.MaxRounds)
		if err != nil {
			return nil, err
		}
		sid := snap.ID
		g.SnapshotID = &sid
		// The snapshot side tracks persistent/initiative state like a live
		// player but holds no decks: its commits are fixed card IDs.
		g.Players = append(g.Players, game.PlayerState{
			PlayerID:   snap.SnapshotUUID,
			PlayerName: snap.PlayerName,
		})
		g.Scores[snap.SnapshotUUID] = 0
		g.Status = game.StatusActive
		g.Message = "Matched against a recorded opponent. Commit your card."
		logging.Info("async game matched", logging.Fields{"snapshot_id": snap.ID, "snapshot_elo": snap.Elo})
	}

	if err := repo.CreateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// JoinGame adds a second live player to a waiting synchronous game and
// activates it.
func JoinGame(repo storage.Repository, joinCode, playerID, playerName string) (*game.Game, error) {
	g, err := repo.FindGameByJoinCode(joinCode)
	if err != nil {
		return nil, ErrGameNotFound
	}
	if g.Status != game.StatusWaitingForPlayers || g.IsAsync {
		return nil, ErrGameNotActive
	}
	if len(g.Players) >= 2 {
		return nil, ErrGameFull
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g.Players = append(g.Players, newPlayerState(g.Catalog, g.Rules, rng, playerID, playerName))
	g.Scores[playerID] = 0
	g.Status = game.StatusActive
	g.Message = "Both players present. Commit your cards."
	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// newPlayerState deals a fresh hand from the frozen catalog: shuffled animal
// and equipment decks, all active sleeves in the rotation pool, and starting
// hands drawn per the rules.
func newPlayerState(catalog game.CatalogSnapshot, rules game.Rules, rng *rand.Rand, playerID, playerName string) game.PlayerState {
	var animals, equipment, sleeves []string
	for id, card := range catalog.Cards {
		if !card.Active {
			continue
		}
		switch card.Kind {
		case game.KindAnimal:
			animals = append(animals, id)
		case game.KindEquipment:
			equipment = append(equipment, id)
		case game.KindSleeve:
			sleeves = append(sleeves, id)
		}
	}

	p := game.PlayerState{
		PlayerID:         playerID,
		PlayerName:       playerName,
		AnimalDeck:       deck.Shuffle(animals, rng),
		EquipmentDeck:    deck.Shuffle(equipment, rng),
		AvailableSleeves: deck.Shuffle(sleeves, rng),
	}
	mgr := deck.NewManager(rng)
	mgr.DrawAnimals(&p, rules.StartingAnimalHand)
	mgr.DrawEquipment(&p, rules.StartingEquipmentHand)
	return p
}

// freezeCatalog deep-copies the configured cards into an owned snapshot so
// later catalog edits never affect this game.
func freezeCatalog(cards []game.CardDefinition) game.CatalogSnapshot {
	frozen := make(map[string]game.CardDefinition, len(cards))
	for _, c := range cards {
		frozen[c.ID] = cloneCard(c)
	}
	return game.CatalogSnapshot{Cards: frozen}
}

func cloneCard(c game.CardDefinition) game.CardDefinition {
	out := c
	out.BackgroundStats = cloneStats(c.BackgroundStats)
	out.ForegroundStats = cloneStats(c.ForegroundStats)
	out.Stats = cloneStats(c.Stats)
	return out
}

func cloneStats(st *game.CardStats) *game.CardStats {
	if st == nil {
		return nil
	}
	out := &game.CardStats{}
	if st.Damage != nil {
		out.Damage = game.IntPtr(*st.Damage)
	}
	if st.Health != nil {
		out.Health = game.IntPtr(*st.Health)
	}
	if st.Initiative != nil {
		out.Initiative = game.IntPtr(*st.Initiative)
	}
	if st.Modifier != nil {
		m := *st.Modifier
		out.Modifier = &m
	}
	if st.SpecialEffect != nil {
		e := *st.SpecialEffect
		out.SpecialEffect = &e
	}
	return out
}
