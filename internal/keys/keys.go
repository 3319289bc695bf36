package keys

import (
	"slices"
	"strings"
)

// MatchupKey identifies who fought whom, independent of which side each
// name was on. Blank names are skipped; each remaining name is snake_cased
// in lower case, e.g. ("Hero", "Bog Witch") -> "bog_witch_hero".
func MatchupKey(names ...string) string {
	var parts []string
	for _, n := range names {
		if f := strings.Fields(n); len(f) > 0 {
			parts = append(parts, strings.ToLower(strings.Join(f, "_")))
		}
	}
	slices.Sort(parts)
	return strings.Join(parts, "_")
}
