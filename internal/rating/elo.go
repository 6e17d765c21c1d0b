// Package rating implements the ELO updates applied when a ranked game
// ends.
package rating

import "math"

const (
	// StartingElo is assigned to players and snapshots with no history.
	StartingElo = 1200

	// Players below the games-played threshold move with the higher
	// provisional K-factor.
	ProvisionalGames   = 30
	KFactorProvisional = 40
	KFactorEstablished = 20

	// Snapshots have no account of their own, so their K-factor is derived
	// from a fixed assumed games-played baseline.
	SnapshotAssumedGamesPlayed = ProvisionalGames
)

// Outcomes expressed as actual scores.
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

// Expected returns the logistic expected score of a player against an
// opponent: 1 / (1 + 10^((opp-player)/400)).
func Expected(playerElo, opponentElo int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponentElo-playerElo)/400.0))
}

// KFactor picks the K-factor from a side's own games-played count.
func KFactor(gamesPlayed int) int {
	if gamesPlayed < ProvisionalGames {
		return KFactorProvisional
	}
	return KFactorEstablished
}

// NewRating computes the updated rating after one game.
func NewRating(oldElo, gamesPlayed, opponentElo int, actual float64) int {
	k := float64(KFactor(gamesPlayed))
	return int(math.Round(float64(oldElo) + k*(actual-Expected(oldElo, opponentElo))))
}
