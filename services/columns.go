package services

import "strings"

// KnownVanTypes is the closed vocabulary of vehicle platforms the catalog
// can tag items with. A header must equal one of these (after
// normalization) to be treated as a compatibility column; this is the one
// inference policy for every input format.
var KnownVanTypes = []string{"promaster", "sprinter", "transit", "other"}

// TagColumn is a compatibility column resolved from the header row.
type TagColumn struct {
	Index int
	Tag   string
}

// PickColumn returns the index of the first header whose normalized text
// contains any of the candidate substrings, or -1 when no header matches.
// Header order wins over candidate order: the first matching header is
// taken even if a later header matches an earlier candidate.
func PickColumn(headers []string, candidates []string) int {
	for i, header := range headers {
		norm := Normalize(header)
		if norm == "" {
			continue
		}
		for _, candidate := range candidates {
			if candidate != "" && strings.Contains(norm, candidate) {
				return i
			}
		}
	}
	return -1
}

// CompatibilityColumns resolves the headers that name a known van type.
// Only exact matches (after normalization) count; any other header is left
// to substring-based field inference.
func CompatibilityColumns(headers []string) []TagColumn {
	var cols []TagColumn
	for i, header := range headers {
		key := Normalize(header)
		for _, tag := range KnownVanTypes {
			if key == tag {
				cols = append(cols, TagColumn{Index: i, Tag: tag})
				break
			}
		}
	}
	return cols
}
