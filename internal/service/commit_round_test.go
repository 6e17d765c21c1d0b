package service

import (
	"testing"

	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/rating"
	"github.com/rfogale/sleeve-arena/internal/storage"
)

type mockRepo struct {
	games map[uint]*game.Game
	users map[string]*game.User
	snaps map[uint]*game.GameSnapshot

	updatedGame   *game.Game
	savedUsers    []*game.User
	savedSnaps    []*game.GameSnapshot
	createdSnaps  []*game.GameSnapshot
	transactCount int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		games: map[uint]*game.Game{},
		users: map[string]*game.User{},
		snaps: map[uint]*game.GameSnapshot{},
	}
}

func (m *mockRepo) CreateGame(g *game.Game) error { m.games[g.ID] = g; return nil }

func (m *mockRepo) GetGameByID(id uint) (*game.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrGameNotFound
}

func (m *mockRepo) FindGameByJoinCode(code string) (*game.Game, error) {
	for _, g := range m.games {
		if g.JoinCode == code {
			return g, nil
		}
	}
	return nil, ErrGameNotFound
}

func (m *mockRepo) UpdateGame(g *game.Game) error { m.updatedGame = g; return nil }

func (m *mockRepo) Transact(fn func(storage.Repository) error) error {
	m.transactCount++
	return fn(m)
}

func (m *mockRepo) GetUserByPlayerID(playerID string) (*game.User, error) {
	if u, ok := m.users[playerID]; ok {
		return u, nil
	}
	return &game.User{PlayerUUID: playerID, Elo: rating.StartingElo}, nil
}

func (m *mockRepo) UpsertUser(playerID, name string) error { return nil }

func (m *mockRepo) SaveUser(u *game.User) error {
	m.users[u.PlayerUUID] = u
	m.savedUsers = append(m.savedUsers, u)
	return nil
}

func (m *mockRepo) GetTopPlayers(limit int) ([]game.User, error) { return nil, nil }

func (m *mockRepo) ListSnapshotsByRoundCount(roundCount int) ([]game.GameSnapshot, error) {
	out := make([]game.GameSnapshot, 0, len(m.snaps))
	for _, s := range m.snaps {
		if s.RoundCount == roundCount {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockRepo) GetSnapshotByID(id uint) (*game.GameSnapshot, error) {
	if s, ok := m.snaps[id]; ok {
		return s, nil
	}
	return nil, ErrGameNotFound
}

func (m *mockRepo) CreateSnapshot(s *game.GameSnapshot) error {
	m.createdSnaps = append(m.createdSnaps, s)
	return nil
}

func (m *mockRepo) SaveSnapshot(s *game.GameSnapshot) error {
	m.savedSnaps = append(m.savedSnaps, s)
	return nil
}

func testCatalog() game.CatalogSnapshot {
	return game.CatalogSnapshot{Cards: map[string]game.CardDefinition{
		"plain": {ID: "plain", Kind: game.KindSleeve, Name: "Plain", Active: true,
			BackgroundStats: &game.CardStats{Initiative: game.IntPtr(1)},
			ForegroundStats: &game.CardStats{}},
		"wolf": {ID: "wolf", Kind: game.KindAnimal, Name: "Wolf", Active: true,
			Stats: &game.CardStats{Damage: game.IntPtr(4), Health: game.IntPtr(6), Initiative: game.IntPtr(3)}},
		"boar": {ID: "boar", Kind: game.KindAnimal, Name: "Boar", Active: true,
			Stats: &game.CardStats{Damage: game.IntPtr(3), Health: game.IntPtr(8), Initiative: game.IntPtr(1)}},
		"sword": {ID: "sword", Kind: game.KindEquipment, Name: "Sword", Active: true,
			Stats: &game.CardStats{Damage: game.IntPtr(6)}},
	}}
}

func testGame(maxRounds int) *game.Game {
	return &game.Game{
		Status:       game.StatusActive,
		CurrentRound: 1,
		MaxRounds:    maxRounds,
		Rules: func() game.Rules {
			r := game.DefaultRules()
			r.MaxRounds = maxRounds
			return r
		}(),
		Catalog: testCatalog(),
		Scores:  map[string]int{"p1": 0, "p2": 0},
		Players: []game.PlayerState{
			{PlayerID: "p1", PlayerName: "P1",
				AnimalHand: []string{"wolf"}, EquipmentHand: []string{"sword"},
				AvailableSleeves: []string{"plain"}},
			{PlayerID: "p2", PlayerName: "P2",
				AnimalHand: []string{"boar"}, EquipmentHand: nil,
				AvailableSleeves: []string{"plain"}},
		},
	}
}

func TestCommitRound_FirstCommitWaits(t *testing.T) {
	g := testGame(3)
	mr := newMockRepo()
	mr.games[7] = g

	g2, resolved, err := CommitRound(mr, 7, "p1", "plain", "wolf", []string{"sword"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatalf("round should not resolve after a single commit")
	}
	p := g2.PlayerByID("p1")
	if !p.HasCommitted || p.CurrentCommit == nil {
		t.Fatalf("commit was not stored")
	}
	if p.CurrentCommit.FinalStats.Damage != 10 {
		t.Fatalf("expected wolf+sword damage 10, got %d", p.CurrentCommit.FinalStats.Damage)
	}
	if mr.updatedGame == nil {
		t.Fatalf("game was not persisted")
	}
}

func TestCommitRound_SecondCommitResolves(t *testing.T) {
	g := testGame(3)
	mr := newMockRepo()
	mr.games[7] = g

	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", []string{"sword"}); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	g2, resolved, err := CommitRound(mr, 7, "p2", "plain", "boar", nil)
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	if !resolved {
		t.Fatalf("expected second commit to resolve the round")
	}
	if len(g2.Rounds) != 1 {
		t.Fatalf("expected one round in history, got %d", len(g2.Rounds))
	}
	if g2.CurrentRound != 2 {
		t.Fatalf("expected CurrentRound=2, got %d", g2.CurrentRound)
	}
	// Wolf+sword (damage 10, initiative 3) destroys the boar (health 8)
	// before it counterattacks: kill 3 + overkill 2.
	if g2.Scores["p1"] != 5 || g2.Scores["p2"] != 0 {
		t.Fatalf("unexpected scores: %v", g2.Scores)
	}
	for _, id := range []string{"p1", "p2"} {
		p := g2.PlayerByID(id)
		if p.HasCommitted || p.CurrentCommit != nil {
			t.Fatalf("player %s commit state not reset", id)
		}
	}
	if len(g2.Rounds[0].CombatLog) == 0 {
		t.Fatalf("expected a combat log")
	}
}

func TestCommitRound_DuplicateRejected(t *testing.T) {
	g := testGame(3)
	mr := newMockRepo()
	mr.games[7] = g

	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", nil); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", nil); err != ErrAlreadyCommitted {
		t.Fatalf("expected ErrAlreadyCommitted, got %v", err)
	}
}

func TestCommitRound_RejectsCardsNotHeld(t *testing.T) {
	g := testGame(3)
	mr := newMockRepo()
	mr.games[7] = g

	if _, _, err := CommitRound(mr, 7, "p2", "plain", "wolf", nil); err != ErrAnimalNotInHand {
		t.Fatalf("expected ErrAnimalNotInHand, got %v", err)
	}
	if _, _, err := CommitRound(mr, 7, "p2", "velvet", "boar", nil); err != ErrSleeveNotAvailable {
		t.Fatalf("expected ErrSleeveNotAvailable, got %v", err)
	}
	// One sword in hand, committed twice.
	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", []string{"sword", "sword"}); err != ErrEquipmentNotInHand {
		t.Fatalf("expected ErrEquipmentNotInHand, got %v", err)
	}
	// Rejection must not leave partial state behind.
	if g.Players[1].HasCommitted {
		t.Fatalf("rejected commit mutated player state")
	}
}

func TestCommitRound_FinalRoundFinishesGame(t *testing.T) {
	g := testGame(1)
	g.Ranked = true
	mr := newMockRepo()
	mr.games[7] = g

	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", []string{"sword"}); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	g2, resolved, err := CommitRound(mr, 7, "p2", "plain", "boar", nil)
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	if !resolved {
		t.Fatalf("expected resolution")
	}
	if g2.Status != game.StatusFinished {
		t.Fatalf("expected finished status, got %s", g2.Status)
	}
	if g2.Winner != "p1" || g2.IsDraw {
		t.Fatalf("expected p1 to win, got winner=%q draw=%v", g2.Winner, g2.IsDraw)
	}
	if g2.EndedAt == nil {
		t.Fatalf("EndedAt not set")
	}
	if !g2.StatsCounted {
		t.Fatalf("ratings should be counted exactly once")
	}
	if len(mr.savedUsers) != 2 {
		t.Fatalf("expected both ratings saved, got %d", len(mr.savedUsers))
	}
	winner := mr.users["p1"]
	loser := mr.users["p2"]
	if winner.Elo <= rating.StartingElo || loser.Elo >= rating.StartingElo {
		t.Fatalf("unexpected elo movement: winner=%d loser=%d", winner.Elo, loser.Elo)
	}
	if winner.Wins != 1 || loser.Losses != 1 {
		t.Fatalf("win/loss counters not updated")
	}
}

func TestCommitRound_UnrankedSkipsRatings(t *testing.T) {
	g := testGame(1)
	mr := newMockRepo()
	mr.games[7] = g

	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", nil); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if _, _, err := CommitRound(mr, 7, "p2", "plain", "boar", nil); err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	if len(mr.savedUsers) != 0 {
		t.Fatalf("unranked game must not touch ratings")
	}
}

func TestCommitRound_GameNotActive(t *testing.T) {
	g := testGame(3)
	g.Status = game.StatusFinished
	mr := newMockRepo()
	mr.games[7] = g

	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", nil); err != ErrGameNotActive {
		t.Fatalf("expected ErrGameNotActive, got %v", err)
	}
}

func TestCommitRound_AsyncResolvesImmediately(t *testing.T) {
	g := testGame(2)
	g.IsAsync = true
	sid := uint(3)
	g.SnapshotID = &sid
	g.Players[1] = game.PlayerState{PlayerID: "snap-uuid", PlayerName: "Ghost"}
	g.Scores = map[string]int{"p1": 0, "snap-uuid": 0}

	mr := newMockRepo()
	mr.games[7] = g
	mr.snaps[3] = &game.GameSnapshot{
		SnapshotUUID: "snap-uuid",
		PlayerName:   "Ghost",
		Elo:          1200,
		RoundCount:   2,
		Commits: []game.SnapshotCommit{
			{SleeveID: "plain", AnimalID: "boar"},
			{SleeveID: "plain", AnimalID: "boar"},
		},
	}

	g2, resolved, err := CommitRound(mr, 7, "p1", "plain", "wolf", []string{"sword"})
	if err != nil {
		t.Fatalf("async commit failed: %v", err)
	}
	if !resolved {
		t.Fatalf("async commit must resolve the round immediately")
	}
	if len(g2.Rounds) != 1 {
		t.Fatalf("expected one resolved round, got %d", len(g2.Rounds))
	}
	// The snapshot's commit is re-resolved against this game's catalog.
	sc := g2.Rounds[0].Commits["snap-uuid"]
	if sc.AnimalID != "boar" || sc.FinalStats.Health != 8 {
		t.Fatalf("snapshot side commit not re-resolved: %+v", sc)
	}
}

func TestCommitRound_AsyncRunsOutOfSnapshotCommits(t *testing.T) {
	g := testGame(3)
	g.IsAsync = true
	sid := uint(3)
	g.SnapshotID = &sid
	g.CurrentRound = 2
	g.Players[1] = game.PlayerState{PlayerID: "snap-uuid", PlayerName: "Ghost"}
	g.Scores = map[string]int{"p1": 0, "snap-uuid": 0}

	mr := newMockRepo()
	mr.games[7] = g
	mr.snaps[3] = &game.GameSnapshot{
		SnapshotUUID: "snap-uuid",
		RoundCount:   1,
		Commits:      []game.SnapshotCommit{{SleeveID: "plain", AnimalID: "boar"}},
	}

	if _, _, err := CommitRound(mr, 7, "p1", "plain", "wolf", nil); err != ErrSnapshotExhausted {
		t.Fatalf("expected ErrSnapshotExhausted, got %v", err)
	}
}

func TestCommitRound_FinishedAsyncGameRecordsSnapshot(t *testing.T) {
	g := testGame(1)
	g.IsAsync = true
	sid := uint(3)
	g.SnapshotID = &sid
	g.Players[1] = game.PlayerState{PlayerID: "snap-uuid", PlayerName: "Ghost"}
	g.Scores = map[string]int{"p1": 0, "snap-uuid": 0}

	mr := newMockRepo()
	mr.games[7] = g
	mr.snaps[3] = &game.GameSnapshot{
		SnapshotUUID: "snap-uuid",
		RoundCount:   1,
		Commits:      []game.SnapshotCommit{{SleeveID: "plain", AnimalID: "boar"}},
	}

	_, resolved, err := CommitRound(mr, 7, "p1", "plain", "wolf", []string{"sword"})
	if err != nil {
		t.Fatalf("async commit failed: %v", err)
	}
	if !resolved {
		t.Fatalf("expected resolution")
	}
	if len(mr.createdSnaps) != 1 {
		t.Fatalf("finished async game should record a new snapshot")
	}
	rec := mr.createdSnaps[0]
	if rec.RoundCount != 1 || rec.Commits[0].AnimalID != "wolf" {
		t.Fatalf("recorded snapshot should hold the live player's commits: %+v", rec)
	}
}
