package textutil

import "strings"

// CollapseWhitespace folds runs of whitespace (including newlines) into a
// single space and trims the result. Subtitle cue text frequently spans
// multiple lines; speech synthesis wants one flat sentence.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Truncate shortens a string to at most max runes, appending an ellipsis when
// anything was cut. Used to bound user-facing alert messages.
func Truncate(value string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
