// Package sanitize maps arbitrary display strings to filesystem-safe,
// length-bounded names.
package sanitize

import (
	"regexp"
	"strings"
)

// DefaultMaxLength bounds generated file and directory names.
const DefaultMaxLength = 120

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// Name strips characters that are illegal on common filesystems, collapses
// whitespace runs to a single space, truncates to maxLength runes and trims
// trailing spaces and periods. It is total and idempotent.
func Name(name string, maxLength int) string {
	name = illegalChars.ReplaceAllString(name, "")
	name = spaceRuns.ReplaceAllString(name, " ")

	if maxLength >= 0 {
		if runes := []rune(name); len(runes) > maxLength {
			name = string(runes[:maxLength])
		}
	}

	return strings.TrimRight(name, " .")
}
