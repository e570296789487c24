// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"
	"strings"
)

// Model output is untrusted: it may carry Markdown markup, HTML fragments,
// emoji, and dangling URLs that would either break layout or leak markup
// into the PDF. Sanitize runs two stages: a structural strip, then
// whitespace normalization. The strip is deliberately conservative so it
// never consumes Korean narrative content.

var (
	headerMarkPattern  = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s*`)
	emphasisPattern    = regexp.MustCompile(`(\*\*|__|\*|` + "`" + `)`)
	htmlTagLikePattern = regexp.MustCompile(`<[^<>\n]{0,120}>`)
	trailingURLPattern = regexp.MustCompile(`(?m)\s*https?://\S+\s*$`)
	spaceRunPattern    = regexp.MustCompile(`[ \t]{2,}`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// strippedEmoji is the fixed set of decoration glyphs removed before
// layout.
var strippedEmoji = []string{
	"🔬", "📚", "🌐", "📝", "💡", "🧪", "🔍", "📊", "📈", "🎯", "📌", "✅", "⭐", "❗", "✨", "🚀",
}

// Sanitize prepares one untrusted string for PDF layout.
func Sanitize(s string) string {
	// Stage 1: structural strip.
	s = headerMarkPattern.ReplaceAllString(s, "")
	s = emphasisPattern.ReplaceAllString(s, "")
	s = htmlTagLikePattern.ReplaceAllString(s, " ")
	s = trailingURLPattern.ReplaceAllString(s, "")
	for _, e := range strippedEmoji {
		s = strings.ReplaceAll(s, e, "")
	}

	// Stage 2: whitespace normalization.
	s = spaceRunPattern.ReplaceAllString(s, " ")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
