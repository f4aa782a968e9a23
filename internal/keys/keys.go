package keys

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

// Identifier produces the canonical table key for a species, move, item or
// ability name: trimmed, lower-cased, inner whitespace and underscores
// collapsed to single hyphens.
func Identifier(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(name)), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "-")
}

// DisplayName turns an identifier back into a human readable title,
// e.g. "quick-strike" -> "Quick Strike".
func DisplayName(id string) string {
	return title.String(strings.ReplaceAll(Identifier(id), "-", " "))
}

// WildEncounterKey identifies a wild encounter start for deduplication.
func WildEncounterKey(trainerID, area string) string {
	return "wild:" + strings.TrimSpace(trainerID) + ":" + Identifier(area)
}
