// Package emoji substitutes :shortcode: sequences in captured text with
// their emoji. Unknown shortcodes pass through unchanged.
package emoji

import (
	"strings"

	gomoji "github.com/kyokomi/emoji/v2"
)

// shortcodes maps :name: codes to emoji, sourced from the gemoji dataset
// so the full GitHub shortcode set (including aliases like :+1:) resolves.
var shortcodes = gomoji.CodeMap()

// Replace substitutes every known :shortcode: in s. Matching is
// case-insensitive; a shortcode is a colon-delimited run of
// [a-z0-9_+-] characters.
func Replace(s string) string {
	var b strings.Builder
	i := 0
	for {
		start := indexFrom(s, i, ':')
		if start < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		end := shortcodeEnd(s, start+1)
		if end < 0 {
			b.WriteString(s[i : start+1])
			i = start + 1
			continue
		}
		name := strings.ToLower(s[start+1 : end])
		e, ok := shortcodes[":"+name+":"]
		if !ok {
			// Keep the opening colon; the closing one may open the next code.
			b.WriteString(s[i : start+1])
			i = start + 1
			continue
		}
		b.WriteString(s[i:start])
		b.WriteString(e)
		i = end + 1
	}
}

func indexFrom(s string, from int, c byte) int {
	idx := strings.IndexByte(s[from:], c)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// shortcodeEnd returns the index of the closing colon of a shortcode whose
// body starts at from, or -1 if the run is empty or unterminated.
func shortcodeEnd(s string, from int) int {
	for i := from; i < len(s); i++ {
		c := s[i]
		if c == ':' {
			if i == from {
				return -1
			}
			return i
		}
		if !isShortcodeChar(c) {
			return -1
		}
	}
	return -1
}

func isShortcodeChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '+' || c == '-':
		return true
	}
	return false
}
