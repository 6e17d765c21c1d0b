package api

import (
	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/storage"
)

// GameHandler groups all game-related HTTP handlers. It carries the loaded
// catalog and rules so new games can freeze their own copy.
type GameHandler struct {
	repo  storage.Repository
	cards []game.CardDefinition
	rules game.Rules
}

// NewGameHandler creates a new GameHandler with the given repository and the
// configured catalog and rules.
func NewGameHandler(repo storage.Repository, cards []game.CardDefinition, rules game.Rules) *GameHandler {
	return &GameHandler{repo: repo, cards: cards, rules: rules}
}
