// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "strings"

// sentenceTerminators are searched in order; the cut goes after the last
// occurrence of any of them inside the search window. Korean polite
// endings come first so the plain period rung never shortens them.
var sentenceTerminators = []string{"습니다.", "입니다.", "다.", "요.", ".", "!", "?"}

// Window extensions applied around the target length. A terminator is
// accepted anywhere in s[0.2*limit : limit+200]; failing that, the hard
// cut happens at limit+300.
const (
	truncateSearchSlack = 200
	truncateHardSlack   = 300
)

// SafeTruncate shortens s to roughly limit runes without fragmenting a
// sentence when it can avoid it. The candidate window extends to
// limit+200 runes; the cut lands immediately after the last sentence
// terminator found past 20% of the limit. With no terminator in reach the
// result is the hard prefix of limit+300 runes. Strings of at most limit
// runes pass through untouched.
func SafeTruncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	windowEnd := limit + truncateSearchSlack
	if windowEnd > len(runes) {
		windowEnd = len(runes)
	}
	window := string(runes[:windowEnd])
	minStart := limit / 5

	cut := 0
	for _, term := range sentenceTerminators {
		idx := strings.LastIndex(window, term)
		if idx < 0 {
			continue
		}
		start := len([]rune(window[:idx]))
		if start <= minStart {
			continue
		}
		if end := start + len([]rune(term)); end > cut {
			cut = end
		}
	}
	if cut > 0 {
		return string(runes[:cut])
	}

	if len(runes) <= limit+truncateHardSlack {
		return s
	}
	return string(runes[:limit+truncateHardSlack])
}
