package keys

import (
	"sort"
	"strings"
)

// CatalogKeyFromIDs produces a canonical fingerprint for a set of card IDs.
// Behavior: trims ids, lower-cases, sorts the parts and joins with
// underscore. Suitable for stable DB keys regardless of the order provided
// by the caller.
func CatalogKeyFromIDs(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		s := strings.TrimSpace(id)
		if s == "" {
			continue
		}
		parts = append(parts, strings.ToLower(s))
	}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}
