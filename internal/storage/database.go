package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rfogale/sleeve-arena/internal/game"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate. The card catalog is intentionally not persisted: the config
// file is its single source of truth, and every game embeds its own frozen
// copy at creation.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Game{}, &game.GameSnapshot{}, &game.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
