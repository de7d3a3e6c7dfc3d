package fabric

import "strings"

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// NormalizePath returns the comparison key for a path name: brackets removed,
// surrounding whitespace trimmed, lowercased.
func NormalizePath(p string) string {
	return strings.ToLower(strings.TrimSpace(bracketStripper.Replace(p)))
}

// SamePath reports whether two path names refer to the same path.
func SamePath(a, b string) bool {
	return NormalizePath(a) == NormalizePath(b)
}
