// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keyword maps a Korean free-text query onto a small bag of English
// search terms. The mapping is a closed, hand-curated phrase dictionary
// with a literal passthrough for ASCII tokens; an empty result is a valid
// outcome and downstream retrieval treats it as a no-hit query.
package keyword

import "strings"

// maxTerms caps the size of the returned term bag.
const maxTerms = 5

// Map translates a raw query into at most maxTerms distinct lowercased
// English tokens. Dictionary phrases are matched by substring; when no
// phrase matches, runs of ASCII letters in the query are taken literally.
func Map(query string) []string {
	lowered := strings.ToLower(query)

	var terms []string
	for _, entry := range phraseDictionary {
		if strings.Contains(lowered, entry.korean) {
			terms = append(terms, entry.english...)
		}
	}

	if len(terms) == 0 {
		terms = asciiTokens(lowered)
	}

	return dedupe(terms, maxTerms)
}

// asciiTokens extracts runs of ASCII letters from text, lowercased.
func asciiTokens(text string) []string {
	var tokens []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			run.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// dedupe collapses duplicates preserving first-seen order and truncates to limit.
func dedupe(terms []string, limit int) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
