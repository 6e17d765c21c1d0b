// Package snapshot selects recorded opponent strategies for asynchronous
// play and records finished async games as new snapshots.
package snapshot

import (
	"errors"
	"strconv"

	"github.com/rfogale/sleeve-arena/internal/dedupe"
	"github.com/rfogale/sleeve-arena/internal/game"
)

var ErrNoSnapshot = errors.New("no snapshot available for matching")

// Store is the slice of the repository the matcher needs.
type Store interface {
	ListSnapshotsByRoundCount(roundCount int) ([]game.GameSnapshot, error)
}

// Rating windows tried in order; if no candidate falls inside any window the
// nearest candidate overall is used.
var ratingWindows = []int{100, 200, 400}

// eloBucket groups lookups so concurrent matchmaking for similar ratings
// collapses into one query.
const eloBucket = 50

// Match selects a recorded opponent for a live player. Policy: nearest
// rating within a widening tolerance, among snapshots whose recorded round
// count equals maxRounds. Concurrent lookups for the same rating bucket are
// deduplicated through a singleflight group.
func Match(store Store, elo, maxRounds int) (*game.GameSnapshot, error) {
	key := strconv.Itoa(elo/eloBucket*eloBucket) + ":" + strconv.Itoa(maxRounds)
	v, err, _ := dedupe.MatchGroup.Do(key, func() (interface{}, error) {
		candidates, err := store.ListSnapshotsByRoundCount(maxRounds)
		if err != nil {
			return nil, err
		}
		return pick(candidates, elo)
	})
	if err != nil {
		return nil, err
	}
	// Copy so concurrent callers sharing a singleflight result never hand
	// the same snapshot value to two games.
	s := *(v.(*game.GameSnapshot))
	return &s, nil
}

func pick(candidates []game.GameSnapshot, elo int) (*game.GameSnapshot, error) {
	if len(candidates) == 0 {
		return nil, ErrNoSnapshot
	}
	best := -1
	bestDist := 0
	for i := range candidates {
		d := candidates[i].Elo - elo
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	for _, window := range ratingWindows {
		if bestDist <= window {
			return &candidates[best], nil
		}
	}
	// Outside every window: still return the nearest so a thin snapshot
	// population never blocks async play.
	return &candidates[best], nil
}

// CommitFor returns the snapshot's recorded commit for a 1-based round.
func CommitFor(s *game.GameSnapshot, round int) (game.SnapshotCommit, error) {
	if round < 1 || round > len(s.Commits) {
		return game.SnapshotCommit{}, errors.New("snapshot has no commit for round " + strconv.Itoa(round))
	}
	return s.Commits[round-1], nil
}
