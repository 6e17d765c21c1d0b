package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/rfogale/sleeve-arena/internal/constants"
	"github.com/rfogale/sleeve-arena/internal/logging"
	"github.com/rfogale/sleeve-arena/internal/service"
	"github.com/rfogale/sleeve-arena/internal/snapshot"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateGamePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Ranked     bool   `json:"ranked"`
	Async      bool   `json:"async"`
}

// CreateGame creates a new game and returns its ID and join code. With
// async=true the game is matched against a recorded opponent and returned
// already active.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
	}
	if utf8.RuneCountInString(req.PlayerName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	_ = h.repo.UpsertUser(req.PlayerID, req.PlayerName)

	g, err := service.CreateGame(h.repo, h.cards, h.rules, service.CreateGameRequest{
		JoinCode:   generateJoinCode(),
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		Ranked:     req.Ranked,
		Async:      req.Async,
	})
	if err != nil {
		if err == snapshot.ErrNoSnapshot {
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoSnapshotAvailable})
			return
		}
		logging.Error("failed to create game", err, logging.Fields{constants.LogFieldPlayerID: req.PlayerID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game_id":   g.ID,
		"join_code": g.JoinCode,
		"player_id": req.PlayerID,
		"status":    g.Status,
	})
}

type JoinGamePayload struct {
	JoinCode   string `json:"join_code"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// JoinGame allows a second player to join a waiting game via join code.
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req JoinGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
	}
	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}

	_ = h.repo.UpsertUser(req.PlayerID, req.PlayerName)

	g, err := service.JoinGame(h.repo, code, req.PlayerID, req.PlayerName)
	if err != nil {
		switch err {
		case service.ErrGameNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case service.ErrGameFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameFull})
		case service.ErrGameNotActive:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotActive})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game_id":   g.ID,
		"join_code": g.JoinCode,
		"player_id": req.PlayerID,
		"status":    g.Status,
	})
}

// GetGame returns the current game state for polling clients. Pass
// ?player_id= to receive your own hidden information; the opponent's hands
// and pending commit are always stripped.
func (h *GameHandler) GetGame(c *gin.Context) {
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
	viewer := c.Query("player_id")
	c.JSON(http.StatusOK, sanitizeGameFor(g, viewer))
}
