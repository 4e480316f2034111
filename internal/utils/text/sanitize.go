// Package text provides small text helpers shared by the content layer
// and the snapshot capture utility.
package text

import "strings"

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with
// an underscore. Runs of disallowed characters collapse to a single
// underscore. This keeps attachment URLs stable across OS/filesystems:
// the capture utility and the snapshot backend must produce identical
// names for the same input.
func SanitizeFilename(filename string) string {
	var b strings.Builder
	b.Grow(len(filename))

	lastWasUnderscore := false
	for _, r := range filename {
		if isFilenameSafe(r) {
			b.WriteRune(r)
			lastWasUnderscore = false
			continue
		}
		if !lastWasUnderscore {
			b.WriteByte('_')
			lastWasUnderscore = true
		}
	}

	return b.String()
}

func isFilenameSafe(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-':
		return true
	}
	return false
}
