package service

import (
	"strconv"
	"time"

	"github.com/rfogale/sleeve-arena/internal/deck"
	"github.com/rfogale/sleeve-arena/internal/engine"
	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/logging"
	"github.com/rfogale/sleeve-arena/internal/rating"
	"github.com/rfogale/sleeve-arena/internal/snapshot"
	"github.com/rfogale/sleeve-arena/internal/storage"
)

// resolveRound computes one round from both stored commits and advances the
// game. It runs inside the commit transaction: no other code path may
// partially apply a round.
func resolveRound(tx storage.Repository, g *game.Game) error {
	p1 := &g.Players[0]
	p2 := &g.Players[1]
	if p1.CurrentCommit == nil || p2.CurrentCommit == nil {
		return ErrGameNotActive
	}

	result := engine.ResolveCombat(
		engine.Side{PlayerID: p1.PlayerID, Stats: p1.CurrentCommit.FinalStats},
		engine.Side{PlayerID: p2.PlayerID, Stats: p2.CurrentCommit.FinalStats},
		g.Rules,
	)

	effects := make([]game.TriggeredEffect, 0, 2)
	for _, p := range []*game.PlayerState{p1, p2} {
		if sr := result.Sides[p.PlayerID]; sr.EffectTriggered != nil {
			effects = append(effects, *sr.EffectTriggered)
		}
	}

	// Append the immutable ledger entry before mutating player state so the
	// audit trail reflects exactly what was committed.
	g.Rounds = append(g.Rounds, game.RoundResult{
		RoundNumber: g.CurrentRound,
		Commits: map[string]game.CommittedCard{
			p1.PlayerID: *p1.CurrentCommit,
			p2.PlayerID: *p2.CurrentCommit,
		},
		Results: map[string]game.RoundOutcome{
			p1.PlayerID: result.Sides[p1.PlayerID].Outcome,
			p2.PlayerID: result.Sides[p2.PlayerID].Outcome,
		},
		EffectsTriggered: effects,
		CombatLog:        result.Log,
	})
	g.Scores[p1.PlayerID] += result.Sides[p1.PlayerID].Outcome.Points
	g.Scores[p2.PlayerID] += result.Sides[p2.PlayerID].Outcome.Points

	mgr := deck.NewManager(nil)
	for _, p := range []*game.PlayerState{p1, p2} {
		commit := *p.CurrentCommit
		mgr.CommitSleeve(p, commit.SleeveID)
		mgr.DiscardPlayed(p, commit)
		// Persistent modifiers, next-round initiative and bonus draws. The
		// initiative modifier resets every round even when nothing fired.
		engine.ApplyEffects(p, effects, g.CurrentRound, mgr)
		mgr.TopUp(p, g.Rules)
		p.CurrentCommit = nil
		p.HasCommitted = false
	}

	g.CurrentRound++
	if g.CurrentRound > g.MaxRounds || pointsWinReached(g) {
		finishGame(tx, g)
	} else {
		g.Message = "Round resolved. Commit for round " + strconv.Itoa(g.CurrentRound) + "."
	}
	return nil
}

// pointsWinReached implements the legacy points-to-win ending.
func pointsWinReached(g *game.Game) bool {
	if g.Rules.ScoringMode != game.ScoringModePoints || g.Rules.PointsToWin <= 0 {
		return false
	}
	for _, s := range g.Scores {
		if s >= g.Rules.PointsToWin {
			return true
		}
	}
	return false
}

// finishGame compares final scores, closes the game and applies end-of-game
// side effects (ratings, snapshot recording).
func finishGame(tx storage.Repository, g *game.Game) {
	now := time.Now()
	g.Status = game.StatusFinished
	g.EndedAt = &now

	p1 := &g.Players[0]
	p2 := &g.Players[1]
	s1 := g.Scores[p1.PlayerID]
	s2 := g.Scores[p2.PlayerID]
	switch {
	case s1 > s2:
		g.Winner = p1.PlayerID
		g.Message = "Victory for " + p1.PlayerName
	case s2 > s1:
		g.Winner = p2.PlayerID
		g.Message = "Victory for " + p2.PlayerName
	default:
		g.IsDraw = true
		g.Message = "The game ends in a draw"
	}

	if g.Ranked && !g.StatsCounted {
		updateRatings(tx, g, "")
		g.StatsCounted = true
	}

	// The opponent population grows organically: a finished async game with
	// a full commit history becomes a brand-new snapshot.
	if g.IsAsync && len(g.Rounds) == g.MaxRounds {
		recordSnapshot(tx, g)
	}
}

// actualScore maps the game result to an ELO actual score for one side.
func actualScore(g *game.Game, playerID string) float64 {
	if g.IsDraw {
		return rating.ScoreDraw
	}
	if g.Winner == playerID {
		return rating.ScoreWin
	}
	return rating.ScoreLoss
}

// updateRatings applies ELO and win/loss bookkeeping for both sides of a
// ranked game. All failures here are logged and swallowed: rating updates
// are best-effort and must never abort the round/game transaction that
// invoked them.
func updateRatings(tx storage.Repository, g *game.Game, resignedID string) {
	if len(g.Players) != 2 {
		return
	}
	live := &g.Players[0]
	other := &g.Players[1]

	if g.IsAsync {
		updateUserAndSnapshot(tx, g, live, resignedID)
		return
	}

	u1, err1 := tx.GetUserByPlayerID(live.PlayerID)
	u2, err2 := tx.GetUserByPlayerID(other.PlayerID)
	if err1 != nil || err2 != nil {
		logging.Warn("rating update skipped: failed to load profiles", err1, logging.Fields{"game_id": g.ID})
		return
	}
	// Both new ratings derive from the pre-game values.
	new1 := rating.NewRating(u1.Elo, u1.GamesPlayed, u2.Elo, actualScore(g, live.PlayerID))
	new2 := rating.NewRating(u2.Elo, u2.GamesPlayed, u1.Elo, actualScore(g, other.PlayerID))
	applyResult(u1, new1, actualScore(g, live.PlayerID), resignedID == live.PlayerID)
	applyResult(u2, new2, actualScore(g, other.PlayerID), resignedID == other.PlayerID)
	if err := tx.SaveUser(u1); err != nil {
		logging.Warn("failed to save rating", err, logging.Fields{"player_id": live.PlayerID})
	}
	if err := tx.SaveUser(u2); err != nil {
		logging.Warn("failed to save rating", err, logging.Fields{"player_id": other.PlayerID})
	}
}

// updateUserAndSnapshot rates an async game: the live player's K-factor
// comes from their own history, the snapshot's from a fixed assumed
// games-played baseline (it has no account of its own).
func updateUserAndSnapshot(tx storage.Repository, g *game.Game, live *game.PlayerState, resignedID string) {
	if g.SnapshotID == nil {
		return
	}
	u, err := tx.GetUserByPlayerID(live.PlayerID)
	if err != nil {
		logging.Warn("rating update skipped: failed to load profile", err, logging.Fields{"player_id": live.PlayerID})
		return
	}
	snap, err := tx.GetSnapshotByID(*g.SnapshotID)
	if err != nil {
		logging.Warn("rating update skipped: failed to load snapshot", err, logging.Fields{"game_id": g.ID})
		return
	}

	actualLive := actualScore(g, live.PlayerID)
	actualSnap := actualScore(g, snap.SnapshotUUID)
	newLive := rating.NewRating(u.Elo, u.GamesPlayed, snap.Elo, actualLive)
	newSnap := rating.NewRating(snap.Elo, rating.SnapshotAssumedGamesPlayed, u.Elo, actualSnap)

	applyResult(u, newLive, actualLive, resignedID == live.PlayerID)
	if err := tx.SaveUser(u); err != nil {
		logging.Warn("failed to save rating", err, logging.Fields{"player_id": live.PlayerID})
	}

	snap.Elo = newSnap
	snap.GamesPlayed++
	switch actualSnap {
	case rating.ScoreWin:
		snap.Wins++
	case rating.ScoreLoss:
		snap.Losses++
	default:
		snap.Draws++
	}
	if err := tx.SaveSnapshot(snap); err != nil {
		logging.Warn("failed to save snapshot rating", err, logging.Fields{"snapshot_id": snap.ID})
	}
}

func applyResult(u *game.User, newElo int, actual float64, resigned bool) {
	u.Elo = newElo
	u.GamesPlayed++
	switch actual {
	case rating.ScoreWin:
		u.Wins++
	case rating.ScoreLoss:
		u.Losses++
	default:
		u.Draws++
	}
	if resigned {
		u.Resignations++
	}
}

// recordSnapshot persists the live player's full commit history as a new
// opponent snapshot. Best-effort: a failure here never unwinds the game.
func recordSnapshot(tx storage.Repository, g *game.Game) {
	live := &g.Players[0]
	elo := rating.StartingElo
	if u, err := tx.GetUserByPlayerID(live.PlayerID); err == nil {
		elo = u.Elo
	}
	snap := snapshot.Record(g, live, elo)
	if err := tx.CreateSnapshot(snap); err != nil {
		logging.Warn("failed to record game snapshot", err, logging.Fields{"game_id": g.ID})
		return
	}
	logging.Info("recorded new opponent snapshot", logging.Fields{"game_id": g.ID, "snapshot_id": snap.ID, "rounds": snap.RoundCount})
}
