// Package match identifies columns likely to hold personally identifying data.
//
// Pass one flags columns by name (Names). Pass two flags columns whose values
// overlap the values captured from columns already removed (Values).
package match

import (
	"strings"

	"github.com/ukaji3/xlsdeid/pkg/deid/models"
)

// Names returns the columns whose names contain any identifying string.
// Comparison is case-insensitive and ignores surrounding whitespace.
// Blank identifying strings never match, so an empty or blank set matches nothing.
func Names(columns []string, ids []string) []models.NameMatch {
	needles := normalizeIDs(ids)
	if len(needles) == 0 {
		return nil
	}

	var matches []models.NameMatch
	for _, col := range columns {
		name := strings.ToLower(strings.TrimSpace(col))
		var hit []string
		for _, id := range needles {
			if strings.Contains(name, id) {
				hit = append(hit, id)
			}
		}
		if len(hit) > 0 {
			matches = append(matches, models.NameMatch{Column: col, Matched: hit})
		}
	}
	return matches
}

// normalizeIDs lowercases and trims ids, dropping blanks and duplicates.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = normalizeID(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
