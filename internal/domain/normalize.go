package domain

import (
	"strings"
)

// NormalizeLabel prepares free-text labels (case type, jurisdiction, titles) for storage:
//   - trims leading/trailing whitespace
//   - compresses runs of spaces and tabs into one space
//
// Case is preserved so labels round-trip the way users typed them.
func NormalizeLabel(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '\t' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeKey is NormalizeLabel folded to lower case, for case-insensitive matching.
func NormalizeKey(text string) string {
	return strings.ToLower(NormalizeLabel(text))
}
