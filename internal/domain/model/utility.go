package model

import "strings"

// Utility identifies a kind of utility service at a property.
type Utility string

const (
	UtilityElectric Utility = "ELECTRIC"
	UtilityGas      Utility = "GAS"
	UtilityWater    Utility = "WATER"
	UtilitySewer    Utility = "SEWER"
	UtilityTrash    Utility = "TRASH"
)

// Utilities lists all known utility kinds in canonical order.
var Utilities = []Utility{UtilityElectric, UtilityGas, UtilityWater, UtilitySewer, UtilityTrash}

// utilityLetters maps single-letter abbreviations used in suborder issue
// titles. SEWER and TRASH have no letter in this alphabet, so suborders for
// them cannot be expressed in a title; see codec.EncodeSuborderTitle.
var utilityLetters = map[byte]Utility{
	'E': UtilityElectric,
	'G': UtilityGas,
	'W': UtilityWater,
}

// ParseUtility returns the utility for its canonical name.
func ParseUtility(s string) (Utility, bool) {
	switch Utility(s) {
	case UtilityElectric, UtilityGas, UtilityWater, UtilitySewer, UtilityTrash:
		return Utility(s), true
	}
	return "", false
}

// UtilityFromLetter resolves a title-grammar letter to a utility.
func UtilityFromLetter(c byte) (Utility, bool) {
	u, ok := utilityLetters[c]
	return u, ok
}

// Letter returns the title-grammar letter for the utility, if it has one.
func (u Utility) Letter() (byte, bool) {
	for c, v := range utilityLetters {
		if v == u {
			return c, true
		}
	}
	return 0, false
}

// Abbrev returns the first letter of the utility name. Used in order issue
// titles, where every kind is representable.
func (u Utility) Abbrev() byte {
	return u[0]
}

// AbbrevString concatenates first-letter abbreviations, e.g. "EG".
func AbbrevString(utilities []Utility) string {
	var b strings.Builder
	for _, u := range utilities {
		b.WriteByte(u.Abbrev())
	}
	return b.String()
}

// FormatUtilities renders a utility list as "[ELECTRIC, GAS]". The same
// rendering is used in the database and in metadata blocks.
func FormatUtilities(utilities []Utility) string {
	names := make([]string, 0, len(utilities))
	for _, u := range utilities {
		names = append(names, string(u))
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// ParseUtilitiesList parses the "[ELECTRIC, GAS]" rendering. Unknown names
// are dropped.
func ParseUtilitiesList(s string) []Utility {
	cleaned := strings.Trim(strings.TrimSpace(s), "[]")
	if cleaned == "" {
		return nil
	}
	var result []Utility
	for _, part := range strings.Split(cleaned, ",") {
		if u, ok := ParseUtility(strings.TrimSpace(part)); ok {
			result = append(result, u)
		}
	}
	return result
}

// DedupeUtilities removes duplicates while preserving order.
func DedupeUtilities(utilities []Utility) []Utility {
	seen := make(map[Utility]struct{}, len(utilities))
	var result []Utility
	for _, u := range utilities {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		result = append(result, u)
	}
	return result
}
