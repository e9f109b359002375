package fetch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Ellipsis marks a truncated description.
const Ellipsis = "..."

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes tags, decodes entities and collapses whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most maxLen runes, cutting at a word boundary
// and appending "..." when it had to cut. Strings that already fit are
// returned unchanged. A single word longer than the budget is hard-cut,
// and budgets of 3 or less have no room for the ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= len(Ellipsis) {
		if maxLen < 0 {
			maxLen = 0
		}
		return string(runes[:maxLen])
	}

	cut := maxLen - len(Ellipsis)
	head := runes[:cut]

	// The cut already falls between two words.
	if unicode.IsSpace(runes[cut]) {
		return strings.TrimRightFunc(string(head), unicode.IsSpace) + Ellipsis
	}

	for i := len(head) - 1; i > 0; i-- {
		if unicode.IsSpace(head[i]) {
			return strings.TrimRightFunc(string(head[:i]), unicode.IsSpace) + Ellipsis
		}
	}
	return string(head) + Ellipsis
}
