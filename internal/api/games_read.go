package api

import (
	"net/http"
	"strconv"

	"github.com/rfogale/sleeve-arena/internal/constants"
	"github.com/rfogale/sleeve-arena/internal/game"

	"github.com/gin-gonic/gin"
)

const defaultLeaderboardLimit = 20
const maxLeaderboardLimit = 100

// Catalog returns the currently configured active cards. Inactive entries
// are omitted: they exist only inside frozen catalogs of games created while
// they were active.
func (h *GameHandler) Catalog(c *gin.Context) {
	active := make([]game.CardDefinition, 0, len(h.cards))
	for _, card := range h.cards {
		if card.Active {
			active = append(active, card)
		}
	}
	c.JSON(http.StatusOK, gin.H{"cards": active, "rules": h.rules})
}

// Leaderboard returns the top rated player profiles.
func (h *GameHandler) Leaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoard})
		return
	}

	type entry struct {
		PlayerName  string `json:"player_name"`
		Elo         int    `json:"elo"`
		GamesPlayed int    `json:"games_played"`
		Wins        int    `json:"wins"`
		Losses      int    `json:"losses"`
		Draws       int    `json:"draws"`
	}
	out := make([]entry, 0, len(users))
	for _, u := range users {
		out = append(out, entry{
			PlayerName:  u.PlayerName,
			Elo:         u.Elo,
			GamesPlayed: u.GamesPlayed,
			Wins:        u.Wins,
			Losses:      u.Losses,
			Draws:       u.Draws,
		})
	}
	c.JSON(http.StatusOK, gin.H{"players": out})
}

// Snapshots lists the recorded opponents available for async play under the
// configured round count. Commit histories are withheld so clients cannot
// scout a snapshot's strategy before being matched against it.
func (h *GameHandler) Snapshots(c *gin.Context) {
	snaps, err := h.repo.ListSnapshotsByRoundCount(h.rules.MaxRounds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGames})
		return
	}

	type entry struct {
		SnapshotUUID string `json:"snapshot_uuid"`
		PlayerName   string `json:"player_name"`
		Elo          int    `json:"elo"`
		GamesPlayed  int    `json:"games_played"`
		Wins         int    `json:"wins"`
		Losses       int    `json:"losses"`
		Draws        int    `json:"draws"`
		RoundCount   int    `json:"round_count"`
	}
	out := make([]entry, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, entry{
			SnapshotUUID: s.SnapshotUUID,
			PlayerName:   s.PlayerName,
			Elo:          s.Elo,
			GamesPlayed:  s.GamesPlayed,
			Wins:         s.Wins,
			Losses:       s.Losses,
			Draws:        s.Draws,
			RoundCount:   s.RoundCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": out})
}
