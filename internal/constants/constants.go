package constants

// Centralized constants for env keys, routes and shared strings.
const (
	// Environment variable keys
	EnvConfigPath = "ARENA_CONFIG"
	EnvDBPath     = "ARENA_DB"
	EnvAddr       = "ARENA_ADDR"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router.
const (
	RouteAPIPrefix = "/api"

	RouteVersion     = "/version"
	RouteCatalog     = "/catalog"
	RouteLeaderboard = "/leaderboard"

	RouteResolveStats  = "/resolve-stats"
	RouteResolveCombat = "/resolve-combat"

	RouteGames         = "/games"
	RouteGamesJoin     = "/games/join"
	RouteGameByCode    = "/games/:gameCode"
	RouteGameCommit    = "/games/:gameCode/commit"
	RouteGameSurrender = "/games/:gameCode/surrender"

	RouteSnapshots = "/snapshots"
)

// Common JSON response keys.
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers.
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidGameCode   = "Invalid game code"
	ErrGameNotFound      = "Game not found"
	ErrFailedCreateGame  = "Failed to create game"
	ErrFailedUpdateGame  = "Failed to update game"
	ErrFailedFetchGames  = "Failed to fetch games"
	ErrFailedFetchBoard  = "Failed to fetch leaderboard"
	ErrFailedStoreCommit = "Failed to store commit"
	ErrGameFull          = "Game is full"

	ErrGameNotActive       = "Game is not active"
	ErrPlayerNotInGame     = "Player not in game"
	ErrAlreadyCommitted    = "Already committed this round"
	ErrCardNotHeld         = "Selected card is not currently held"
	ErrUnknownCard         = "Selected card is unknown or inactive"
	ErrNoSnapshotAvailable = "No recorded opponent available"
)

// Logging field names.
const (
	LogFieldGameID     = "game_id"
	LogFieldPlayerID   = "player_id"
	LogFieldSnapshotID = "snapshot_id"
	LogFieldRound      = "round"
	LogFieldAddr       = "addr"
)
