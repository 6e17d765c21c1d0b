package main

import (
	"os"

	"github.com/rfogale/sleeve-arena/internal/api"
	"github.com/rfogale/sleeve-arena/internal/config"
	"github.com/rfogale/sleeve-arena/internal/constants"
	"github.com/rfogale/sleeve-arena/internal/logging"
	"github.com/rfogale/sleeve-arena/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; environment wins over file.
	_ = godotenv.Load()

	// Load the card catalog and rules (required). Path may be provided via
	// ARENA_CONFIG or defaults to ./arena_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": configPath, "hint": "create an arena_config.json with a 'card_list' array of cards (id,kind,name,active,stats or background_stats/foreground_stats) and optional keys: rules, server.address"})
	}

	// Allow the DB path to be configured via ARENA_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	handler := api.NewGameHandler(repo, cfg.Cards, cfg.Rules)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCatalog, handler.Catalog)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)
		apiRoutes.GET(constants.RouteSnapshots, handler.Snapshots)

		apiRoutes.POST(constants.RouteResolveStats, handler.ResolveStats)
		apiRoutes.POST(constants.RouteResolveCombat, handler.ResolveCombat)

		apiRoutes.POST(constants.RouteGames, handler.CreateGame)
		apiRoutes.POST(constants.RouteGamesJoin, handler.JoinGame)
		apiRoutes.GET(constants.RouteGameByCode, handler.GetGame)
		apiRoutes.POST(constants.RouteGameCommit, handler.CommitCard)
		apiRoutes.POST(constants.RouteGameSurrender, handler.SurrenderGame)
	}

	addr := os.Getenv(constants.EnvAddr)
	if addr == "" {
		addr = cfg.ServerAddress
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
