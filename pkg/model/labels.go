package model

import (
	"strings"
	"unicode"
)

// IDToName converts a field id into a display name: underscores become
// spaces and the first letter of every word is upper-cased. The rest of each
// word is left untouched, so "max_HTTP_rate" becomes "Max HTTP Rate".
func IDToName(id string) string {
	if id == "" {
		return ""
	}
	spaced := strings.ReplaceAll(id, "_", " ")

	var out strings.Builder
	out.Grow(len(spaced))
	boundary := true
	for _, r := range spaced {
		if boundary && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		boundary = unicode.IsSpace(r)
		out.WriteRune(r)
	}
	return out.String()
}
