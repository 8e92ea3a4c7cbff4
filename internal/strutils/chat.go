package strutils

import (
	"regexp"
	"strings"
)

var tagRx = regexp.MustCompile(`<[^<>]*>`)

// RemoveTags strips markup like <col=ff0000> and <img=2> from a chat line
func RemoveTags(message string) string {
	return tagRx.ReplaceAllString(message, "")
}

// NormalizeName converts non-breaking spaces to regular spaces and trims the name.
// Player names in chat use non-breaking spaces in place of regular ones.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "\u00a0", " ")
	return strings.TrimSpace(name)
}

// NamesEqual compares two player names case-insensitively after normalization.
// Empty names never match.
func NamesEqual(a, b string) bool {
	a = NormalizeName(a)
	b = NormalizeName(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// CleanChatLine removes tags and surrounding whitespace from a raw chat line
func CleanChatLine(message string) string {
	return strings.TrimSpace(RemoveTags(message))
}
