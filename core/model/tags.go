package model

import "strings"

// MissingTags returns the entries of required that are absent from have.
// Matching is case-insensitive; returned tags keep their original spelling.
func MissingTags(required, have []string) []string {
	var missing []string
	for _, r := range required {
		if !containsFold(have, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// HasAllTags reports whether have covers every tag in required,
// case-insensitively.
func HasAllTags(required, have []string) bool {
	return len(MissingTags(required, have)) == 0
}

// SameLocation compares two location names case-insensitively.
func SameLocation(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
