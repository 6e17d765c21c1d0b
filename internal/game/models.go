package game

import (
	"time"

	"gorm.io/gorm"
)

// Game statuses.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusActive            = "active"
	StatusFinished          = "finished"
)

// CardDefinition is an immutable catalog entry. The catalog lives in the
// server config (arena_config.json); games hold a frozen copy taken at game
// start so later catalog edits never affect in-progress games.
//
// Sleeves carry BackgroundStats and ForegroundStats; animals and equipment
// carry Stats. IDs are opaque strings chosen by the catalog author.
type CardDefinition struct {
	ID     string   `json:"id"`
	Kind   CardKind `json:"kind"`
	Name   string   `json:"name"`
	Active bool     `json:"active"`

	BackgroundStats *CardStats `json:"background_stats,omitempty"`
	ForegroundStats *CardStats `json:"foreground_stats,omitempty"`
	Stats           *CardStats `json:"stats,omitempty"`
}

// CatalogSnapshot is the frozen card catalog embedded in a game record.
type CatalogSnapshot struct {
	Cards map[string]CardDefinition `json:"cards"`
}

// Card returns the frozen definition for id, or nil when the id is unknown.
func (cs *CatalogSnapshot) Card(id string) *CardDefinition {
	if cs == nil || cs.Cards == nil {
		return nil
	}
	if c, ok := cs.Cards[id]; ok {
		return &c
	}
	return nil
}

// CommittedCard is one player's locked-in choice for a round. Immutable once
// created; stored in round history.
type CommittedCard struct {
	SleeveID     string        `json:"sleeve_id"`
	AnimalID     string        `json:"animal_id"`
	EquipmentIDs []string      `json:"equipment_ids"`
	FinalStats   ResolvedStats `json:"final_stats"`
}

// PlayerState is the mutable per-player progress inside a game. For async
// games the snapshot side uses the same structure (decks empty, persistent
// and initiative state tracked normally).
type PlayerState struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	AnimalHand    []string `json:"animal_hand"`
	AnimalDeck    []string `json:"animal_deck"`
	AnimalDiscard []string `json:"animal_discard"`

	EquipmentHand    []string `json:"equipment_hand"`
	EquipmentDeck    []string `json:"equipment_deck"`
	EquipmentDiscard []string `json:"equipment_discard"`

	AvailableSleeves []string `json:"available_sleeves"`
	UsedSleeves      []string `json:"used_sleeves"`

	PersistentModifiers []PersistentModifier `json:"persistent_modifiers"`
	// InitiativeModifier applies to the next round only, then resets to 0.
	InitiativeModifier int `json:"initiative_modifier"`

	CurrentCommit *CommittedCard `json:"current_commit"`
	HasCommitted  bool           `json:"has_committed"`
}

// RoundOutcome is one side's result of a combat exchange.
type RoundOutcome struct {
	Survived       bool `json:"survived"`
	Defeated       bool `json:"defeated"`
	DamageDealt    int  `json:"damage_dealt"`
	DamageAbsorbed int  `json:"damage_absorbed"`
	Overkill       int  `json:"overkill"`
	HealthBefore   int  `json:"health_before"`
	HealthAfter    int  `json:"health_after"`
	Points         int  `json:"points"`
}

// TriggeredEffect records a special effect that fired during a round.
type TriggeredEffect struct {
	PlayerID string        `json:"player_id"`
	Trigger  TriggerKind   `json:"trigger"`
	Effect   SpecialEffect `json:"effect"`
}

// RoundResult is an immutable ledger entry: appended, never rewritten. It is
// the authoritative audit trail of a game.
type RoundResult struct {
	RoundNumber      int                      `json:"round_number"`
	Commits          map[string]CommittedCard `json:"commits"`
	Results          map[string]RoundOutcome  `json:"results"`
	EffectsTriggered []TriggeredEffect        `json:"effects_triggered"`
	CombatLog        []string                 `json:"combat_log"`
}

// Game is the root aggregate. Player and round state is serialized into JSON
// columns; the frozen rules and catalog are deep copies owned by the game so
// admin catalog edits cannot leak into running matches.
type Game struct {
	gorm.Model
	JoinCode string `json:"join_code" gorm:"uniqueIndex"`
	Status   string `json:"status"`
	Ranked   bool   `json:"ranked"`

	IsAsync    bool  `json:"is_async"`
	SnapshotID *uint `json:"snapshot_id,omitempty"`

	CurrentRound int        `json:"current_round"`
	MaxRounds    int        `json:"max_rounds"`
	Winner       string     `json:"winner"`
	IsDraw       bool       `json:"is_draw"`
	EndedAt      *time.Time `json:"ended_at"`

	Rules   Rules           `json:"rules" gorm:"serializer:json"`
	Catalog CatalogSnapshot `json:"catalog" gorm:"serializer:json"`

	Players []PlayerState  `json:"players" gorm:"serializer:json"`
	Scores  map[string]int `json:"scores" gorm:"serializer:json"`
	Rounds  []RoundResult  `json:"rounds" gorm:"serializer:json"`

	Message      string `json:"message"`
	StatsCounted bool   `json:"-"`
}

// PlayerByID returns the participant with the given opaque id, or nil.
func (g *Game) PlayerByID(playerID string) *PlayerState {
	for i := range g.Players {
		if g.Players[i].PlayerID == playerID {
			return &g.Players[i]
		}
	}
	return nil
}

// OpponentOf returns the other participant, or nil when playerID is not in
// the game.
func (g *Game) OpponentOf(playerID string) *PlayerState {
	if len(g.Players) != 2 {
		return nil
	}
	if g.Players[0].PlayerID == playerID {
		return &g.Players[1]
	}
	if g.Players[1].PlayerID == playerID {
		return &g.Players[0]
	}
	return nil
}

// SnapshotCommit is one recorded round choice inside a GameSnapshot. Only
// card IDs are stored: stats are re-resolved live each round so catalog
// balance changes retroactively affect recorded opponents too.
type SnapshotCommit struct {
	SleeveID     string   `json:"sleeve_id"`
	AnimalID     string   `json:"animal_id"`
	EquipmentIDs []string `json:"equipment_ids"`
}

// GameSnapshot is a recorded strategy used as a stand-in opponent for
// asynchronous play. Never mutated after recording except for its rating and
// win/loss counters.
type GameSnapshot struct {
	gorm.Model
	SnapshotUUID string `json:"snapshot_uuid" gorm:"uniqueIndex"`
	PlayerName   string `json:"player_name"`

	Elo         int `json:"elo"`
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`

	RoundCount int              `json:"round_count"`
	Commits    []SnapshotCommit `json:"commits" gorm:"serializer:json"`
	// ActiveCardIDs records the catalog state the strategy was recorded
	// against; CatalogKey is its canonical fingerprint for indexed lookup.
	ActiveCardIDs []string `json:"active_card_ids" gorm:"serializer:json"`
	CatalogKey    string   `json:"catalog_key" gorm:"index"`
}

func (GameSnapshot) TableName() string { return "game_snapshots" }

// User stores unique player identity, rating and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID   string `gorm:"uniqueIndex"`
	PlayerName   string
	Elo          int
	GamesPlayed  int
	Wins         int
	Losses       int
	Draws        int
	Resignations int
}

// Unify the global users table name as "player_profiles".
func (User) TableName() string { return "player_profiles" }
