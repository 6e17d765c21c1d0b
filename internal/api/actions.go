package api

import (
	"net/http"

	"github.com/rfogale/sleeve-arena/internal/constants"
	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/service"

	"github.com/gin-gonic/gin"
)

type CommitPayload struct {
	PlayerID     string   `json:"player_id"`
	SleeveID     string   `json:"sleeve_id"`
	AnimalID     string   `json:"animal_id"`
	EquipmentIDs []string `json:"equipment_ids"`
}

// CommitCard stores a player's composed card for the current round. The
// second commit of a round (or the only commit, in an async game) resolves
// it.
func (h *GameHandler) CommitCard(c *gin.Context) {
	// Path param contains the join code. Resolve to internal ID.
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	if g.Status != game.StatusActive {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotActive})
		return
	}
	var req CommitPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerID == "" || req.SleeveID == "" || req.AnimalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g2, resolved, err := service.CommitRound(h.repo, g.ID, req.PlayerID, req.SleeveID, req.AnimalID, req.EquipmentIDs)
	if err != nil {
		switch err {
		case service.ErrGameNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case service.ErrGameNotActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotActive})
		case service.ErrPlayerNotInGame:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInGame})
		case service.ErrAlreadyCommitted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyCommitted})
		case service.ErrSleeveNotAvailable, service.ErrAnimalNotInHand, service.ErrEquipmentNotInHand:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardNotHeld})
		case service.ErrCardMissingFromCatalog:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCard})
		case service.ErrSnapshotExhausted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoSnapshotAvailable})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreCommit})
		}
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{
			constants.JSONKeyMessage: "Round resolved",
			"round":                  g2.CurrentRound,
			"status":                 g2.Status,
		})
	} else {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Commit stored. Waiting for opponent."})
	}
}

type SurrenderPayload struct {
	PlayerID string `json:"player_id"`
}

// SurrenderGame ends the match immediately in the opponent's favor.
func (h *GameHandler) SurrenderGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	var req SurrenderPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g2, err := service.Surrender(h.repo, g.ID, req.PlayerID)
	if err != nil {
		switch err {
		case service.ErrGameNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case service.ErrGameNotActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotActive})
		case service.ErrPlayerNotInGame:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInGame})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: g2.Message,
		"winner":                 g2.Winner,
		"status":                 g2.Status,
	})
}
