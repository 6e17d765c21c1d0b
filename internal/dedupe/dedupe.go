package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent lookups. Using a centralized singleflight.Group ensures only
// one lookup runs for a given key while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// MatchGroup deduplicates snapshot-matching queries keyed by rating bucket
// and round count (e.g. "1200:5"). Matchmaking bursts tend to ask for the
// same bucket repeatedly.
var MatchGroup singleflight.Group
