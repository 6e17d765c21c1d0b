package storage

import "github.com/rfogale/sleeve-arena/internal/game"

type Repository interface {
	CreateGame(g *game.Game) error
	GetGameByID(id uint) (*game.Game, error)
	FindGameByJoinCode(code string) (*game.Game, error)
	UpdateGame(g *game.Game) error
	// Transact runs fn against a repository view bound to a single database
	// transaction. Round resolution must run inside it so commit
	// re-validation, the round computation and both state writes are one
	// atomic unit.
	Transact(fn func(Repository) error) error

	GetUserByPlayerID(playerID string) (*game.User, error)
	UpsertUser(playerID, name string) error
	SaveUser(u *game.User) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)

	ListSnapshotsByRoundCount(roundCount int) ([]game.GameSnapshot, error)
	GetSnapshotByID(id uint) (*game.GameSnapshot, error)
	CreateSnapshot(s *game.GameSnapshot) error
	SaveSnapshot(s *game.GameSnapshot) error
}
