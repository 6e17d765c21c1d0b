package storage

import (
	"gorm.io/gorm"

	"github.com/rfogale/sleeve-arena/internal/game"
	"github.com/rfogale/sleeve-arena/internal/rating"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(g *game.Game) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.Game, error) {
	var g game.Game
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) FindGameByJoinCode(code string) (*game.Game, error) {
	var g game.Game
	err := r.db.Where("join_code = ?", code).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) UpdateGame(g *game.Game) error {
	return r.db.Save(g).Error
}

// Transact serializes the whole unit through one database transaction.
// SQLite's writer lock means two commits racing to "check if opponent has
// committed" cannot interleave between the re-check and the write.
func (r *sqliteRepository) Transact(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteRepository{db: tx})
	})
}

// GetUserByPlayerID returns the stored profile, or a fresh unsaved profile
// at the starting rating when the player has no history yet.
func (r *sqliteRepository) GetUserByPlayerID(playerID string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("player_uuid = ?", playerID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{PlayerUUID: playerID, Elo: rating.StartingElo}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpsertUser(playerID, name string) error {
	var u game.User
	if err := r.db.Where("player_uuid = ?", playerID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{PlayerUUID: playerID, Elo: rating.StartingElo}
		} else {
			return err
		}
	}
	if name != "" {
		u.PlayerName = name
	}
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// GetTopPlayers returns top N players ordered by Elo desc, then GamesPlayed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("elo DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) ListSnapshotsByRoundCount(roundCount int) ([]game.GameSnapshot, error) {
	var snaps []game.GameSnapshot
	if err := r.db.Where("round_count = ?", roundCount).Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

func (r *sqliteRepository) GetSnapshotByID(id uint) (*game.GameSnapshot, error) {
	var s game.GameSnapshot
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) CreateSnapshot(s *game.GameSnapshot) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) SaveSnapshot(s *game.GameSnapshot) error {
	return r.db.Save(s).Error
}
