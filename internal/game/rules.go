package game

// Scoring modes. "rounds" plays exactly MaxRounds and compares accumulated
// totals (absorbed/kill/overkill points). "points" is the legacy mode: a
// side that reaches PointsToWin ends the game early, and scoring uses the
// flat surviving/defeating values.
const (
	ScoringModeRounds = "rounds"
	ScoringModePoints = "points"
)

// Rules is the frozen game configuration copied into each game at creation.
type Rules struct {
	MaxRounds             int    `json:"max_rounds"`
	StartingAnimalHand    int    `json:"starting_animal_hand"`
	StartingEquipmentHand int    `json:"starting_equipment_hand"`
	EquipmentDrawPerRound int    `json:"equipment_draw_per_round"`
	ScoringMode           string `json:"scoring_mode"`
	PointsToWin           int    `json:"points_to_win"`

	PointsForKill     int `json:"points_for_kill"`
	PointsPerOverkill int `json:"points_per_overkill"`
	PointsPerAbsorbed int `json:"points_per_absorbed"`

	// Legacy flat values used by the "points" scoring mode.
	PointsForSurviving int `json:"points_for_surviving"`
	PointsForDefeating int `json:"points_for_defeating"`
}

// DefaultRules returns the values used when the config file omits a rules
// section.
func DefaultRules() Rules {
	return Rules{
		MaxRounds:             5,
		StartingAnimalHand:    3,
		StartingEquipmentHand: 3,
		EquipmentDrawPerRound: 1,
		ScoringMode:           ScoringModeRounds,
		PointsToWin:           10,
		PointsForKill:         3,
		PointsPerOverkill:     1,
		PointsPerAbsorbed:     1,
		PointsForSurviving:    1,
		PointsForDefeating:    2,
	}
}
