package dues

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize canonicalizes free-text course and branch names so that values a
// human reads as equal ("B.Tech", "b_tech", " BTECH ") compare equal. It
// lower-cases, trims, and strips everything outside [a-z0-9]. Idempotent;
// empty input maps to the empty string.
func Normalize(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ItemKey canonicalizes a catalog item name into the key form used in a
// student's items map: trimmed, lower-cased, with whitespace runs collapsed to
// a single underscore. "Graph Book" and "graph  book" both yield "graph_book".
// This must stay in lockstep with how the roster collaborator writes keys.
func ItemKey(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}
