// Package catalog holds the static lookup tables the eligibility and
// validation engines evaluate against: the profile field schema, per-service
// requirements, security tiers, and the step sequences of each guided service.
//
// Everything here is loaded once at process start and read-only for the
// process lifetime.
package catalog

import (
	"sort"
	"strings"
	"unicode"
)

// LabelFor returns the display label for a profile field. Fields absent from
// the schema fall back to a derived label (underscores to spaces, title case).
func LabelFor(field string) string {
	for _, fields := range ProfileSchema {
		if spec, ok := fields[field]; ok {
			return spec.Label
		}
	}
	return deriveLabel(field)
}

func deriveLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ServiceIDs returns the sorted ids of all guided services, for error payloads
// that list valid ids.
func ServiceIDs() []string {
	ids := make([]string, 0, len(Services))
	for id := range Services {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
