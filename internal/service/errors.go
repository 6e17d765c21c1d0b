package service

import "errors"

// Validation errors reject the commit synchronously with no state mutated;
// the caller retries with corrected input. Precondition errors surface to
// the caller and are not retried automatically. ErrCardMissingFromCatalog
// is a data-integrity violation: it aborts the operation entirely and
// indicates a bug in catalog snapshotting, not a recoverable condition.
var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNotActive    = errors.New("game is not active")
	ErrGameFull         = errors.New("game is full")
	ErrPlayerNotInGame  = errors.New("player not in game")
	ErrAlreadyCommitted = errors.New("player already committed this round")

	ErrSleeveNotAvailable = errors.New("sleeve is not in the available pool")
	ErrAnimalNotInHand    = errors.New("animal is not in hand")
	ErrEquipmentNotInHand = errors.New("equipment is not in hand")

	ErrCardMissingFromCatalog = errors.New("card missing from frozen catalog snapshot")

	ErrSnapshotExhausted = errors.New("snapshot has no commit for this round")
)
