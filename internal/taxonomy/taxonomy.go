// Package taxonomy holds the canonical expense category enumeration.
//
// The model prompts historically used two spellings for the medical bucket
// ("Health" and "Healthcare"); "Health" is canonical and Normalize folds the
// alias so only one enumeration ever reaches the datastore.
package taxonomy

import (
	"strings"
)

const (
	Food          = "Food"
	Transport     = "Transport"
	Shopping      = "Shopping"
	Entertainment = "Entertainment"
	Bills         = "Bills"
	Health        = "Health"
	Other         = "Other"
)

var Categories = []string{Food, Transport, Shopping, Entertainment, Bills, Health, Other}

var aliases = map[string]string{
	"healthcare": Health,
}

// Normalize maps known aliases to their canonical spelling and fixes casing
// for canonical names. Unknown values pass through unchanged.
func Normalize(category string) string {
	trimmed := strings.TrimSpace(category)
	lower := strings.ToLower(trimmed)
	if canonical, ok := aliases[lower]; ok {
		return canonical
	}
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}
	return trimmed
}

func IsValid(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Coerce normalizes and forces the result into the canonical set, mapping
// anything unknown to Other. Used on AI-derived paths; direct input keeps
// its category after Normalize.
func Coerce(category string) string {
	normalized := Normalize(category)
	if IsValid(normalized) {
		return normalized
	}
	return Other
}
