package api

import (
	"net/http"

	"github.com/rfogale/sleeve-arena/internal/constants"
	"github.com/rfogale/sleeve-arena/internal/engine"
	"github.com/rfogale/sleeve-arena/internal/game"

	"github.com/gin-gonic/gin"
)

type ResolveStatsPayload struct {
	SleeveID            string                    `json:"sleeve_id"`
	AnimalID            string                    `json:"animal_id"`
	EquipmentIDs        []string                  `json:"equipment_ids"`
	PersistentModifiers []game.PersistentModifier `json:"persistent_modifiers"`
	InitiativeModifier  int                       `json:"initiative_modifier"`
}

// ResolveStats is a stateless dry run of the layered stat fold against the
// configured catalog. Deck-builder UIs call it to preview a composed card;
// nothing is persisted.
func (h *GameHandler) ResolveStats(c *gin.Context) {
	var req ResolveStatsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	byID := make(map[string]*game.CardDefinition, len(h.cards))
	for i := range h.cards {
		byID[h.cards[i].ID] = &h.cards[i]
	}
	sleeve := byID[req.SleeveID]
	animal := byID[req.AnimalID]
	if sleeve == nil || sleeve.Kind != game.KindSleeve || animal == nil || animal.Kind != game.KindAnimal {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCard})
		return
	}
	equipment := make([]*game.CardDefinition, 0, len(req.EquipmentIDs))
	for _, id := range req.EquipmentIDs {
		eq := byID[id]
		if eq == nil || eq.Kind != game.KindEquipment {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCard})
			return
		}
		equipment = append(equipment, eq)
	}

	stats, attr := engine.ResolveStatsWithAttribution(sleeve, animal, equipment, req.PersistentModifiers, req.InitiativeModifier)
	c.JSON(http.StatusOK, gin.H{
		"final_stats": stats,
		"attribution": attr,
	})
}

type CombatSidePayload struct {
	PlayerID string             `json:"player_id"`
	Stats    game.ResolvedStats `json:"stats"`
}

type ResolveCombatPayload struct {
	SideA CombatSidePayload `json:"side_a"`
	SideB CombatSidePayload `json:"side_b"`
	Rules *game.Rules       `json:"rules"`
}

// ResolveCombat is a stateless combat preview between two resolved stat
// sets. Rules default to the server's configured rules when omitted.
func (h *GameHandler) ResolveCombat(c *gin.Context) {
	var req ResolveCombatPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.SideA.PlayerID == "" || req.SideB.PlayerID == "" || req.SideA.PlayerID == req.SideB.PlayerID {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	rules := h.rules
	if req.Rules != nil {
		rules = *req.Rules
	}

	result := engine.ResolveCombat(
		engine.Side{PlayerID: req.SideA.PlayerID, Stats: req.SideA.Stats},
		engine.Side{PlayerID: req.SideB.PlayerID, Stats: req.SideB.Stats},
		rules,
	)
	outcomes := make(map[string]game.RoundOutcome, 2)
	for id, sr := range result.Sides {
		outcomes[id] = sr.Outcome
	}
	c.JSON(http.StatusOK, gin.H{
		"results":    outcomes,
		"combat_log": result.Log,
	})
}
