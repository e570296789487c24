// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/littlescienceai/littlesci/internal/plan"
	"github.com/littlescienceai/littlesci/pkg/types"
)

// minCardTitleLength rejects stray fragments masquerading as card titles.
const minCardTitleLength = 5

var (
	htmlCardPattern    = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*card[^"]*"[^>]*>(.*?)</div>`)
	htmlTitlePattern   = regexp.MustCompile(`(?s)<(?:h3|h4|strong|b)[^>]*>(.*?)</(?:h3|h4|strong|b)>`)
	htmlSummaryPattern = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)
	boldTitlePattern   = regexp.MustCompile(`^\*\*(.+?)\*\*`)
	bulletPattern      = regexp.MustCompile(`^[-•*]\s+(.+)$`)
	rawURLPattern      = regexp.MustCompile(`^https?://\S+$`)
	mdLinkPattern      = regexp.MustCompile(`\[[^\]]*\]\((https?://[^)]+)\)`)
	tagPattern         = regexp.MustCompile(`<[^>]+>`)
)

// card is a (title, summary, link) triple recovered from a section body.
type card struct {
	title   string
	summary string
	link    string
}

// Parse reconstructs a report model from a previously rendered blob. It is
// total: any region that cannot be recognized is simply left empty, and
// the topic falls back to the fixed default.
func Parse(blob string) *types.ReportModel {
	lines := strings.Split(strings.ReplaceAll(blob, "\r\n", "\n"), "\n")

	m := &types.ReportModel{Topic: parseTopic(lines)}

	regions := splitRegions(lines)

	m.Explanation = splitBlocks(regions.explanation)

	for _, c := range parseCards(regions.internal) {
		m.Internal = append(m.Internal, types.InternalHit{
			CorpusRow: types.CorpusRow{Title: c.title},
			Summary:   c.summary,
		})
	}
	for _, c := range parseCards(regions.feed) {
		m.Feed = append(m.Feed, types.FeedRecord{
			Title:   c.title,
			Summary: c.summary,
			Link:    c.link,
			Source:  "arXiv",
		})
	}

	m.Plan = parsePlanRegion(regions.plan)

	m.Normalize()
	return m
}

// parseTopic finds the first level-1 heading or 주제-prefixed line.
func parseTopic(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			if topic := stripIcon(trimmed[2:]); topic != "" {
				return topic
			}
		}
		if rest, ok := strings.CutPrefix(trimmed, "주제"); ok {
			rest = strings.TrimLeft(rest, ": \t")
			if topic := stripIcon(rest); topic != "" {
				return topic
			}
		}
	}
	return types.DefaultTopic
}

// stripIcon drops leading icon glyphs and whitespace from a heading.
func stripIcon(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// regions are the line ranges carved out by the level-2 section markers.
type regions struct {
	explanation []string
	internal    []string
	feed        []string
	plan        []string
}

// splitRegions classifies each level-2 section by its Korean keywords.
// Text before the first marker (minus the topic heading) is explanation.
func splitRegions(lines []string) regions {
	var r regions
	current := &r.explanation
	seenTopic := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") && !seenTopic {
			seenTopic = true
			continue
		}

		if strings.HasPrefix(trimmed, "## ") {
			switch classifySection(trimmed) {
			case "internal":
				current = &r.internal
			case "feed":
				current = &r.feed
			case "plan":
				current = &r.plan
			default:
				current = nil
			}
			continue
		}

		if current != nil {
			*current = append(*current, line)
		}
	}
	return r
}

// classifySection maps a level-2 header onto one of the three known regions.
func classifySection(header string) string {
	lowered := strings.ToLower(header)
	switch {
	case strings.Contains(lowered, "내부") || strings.Contains(lowered, "데이터베이스"):
		return "internal"
	case strings.Contains(lowered, "arxiv") || strings.Contains(lowered, "논문 검색") || strings.Contains(lowered, "최신 논문"):
		return "feed"
	case strings.Contains(lowered, "생성된 연구"):
		return "plan"
	}
	return ""
}

// splitBlocks groups lines into blank-line-separated paragraphs.
func splitBlocks(lines []string) []string {
	var (
		paragraphs []string
		buf        []string
	)
	flush := func() {
		if text := strings.TrimSpace(strings.Join(buf, "\n")); text != "" {
			paragraphs = append(paragraphs, text)
		}
		buf = nil
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return paragraphs
}

// parseCards recovers (title, summary) pairs from a section body, trying
// the recognizers in precedence order: HTML card blocks, Markdown
// bold-title blocks, plain bullets. The first recognizer yielding at least
// one valid pair wins.
func parseCards(lines []string) []card {
	body := strings.Join(lines, "\n")

	for _, recognize := range []func(string) []card{htmlCards, boldCards, bulletCards} {
		if cards := valid(recognize(body)); len(cards) > 0 {
			return cards
		}
	}
	return nil
}

// valid filters cards whose title is long enough to be a real title.
func valid(cards []card) []card {
	var out []card
	for _, c := range cards {
		if utf8.RuneCountInString(c.title) > minCardTitleLength {
			out = append(out, c)
		}
	}
	return out
}

func htmlCards(body string) []card {
	var cards []card
	for _, m := range htmlCardPattern.FindAllStringSubmatch(body, -1) {
		inner := m[1]
		c := card{}
		if t := htmlTitlePattern.FindStringSubmatch(inner); t != nil {
			c.title = cleanFragment(t[1])
		}
		if s := htmlSummaryPattern.FindStringSubmatch(inner); s != nil {
			c.summary = cleanFragment(s[1])
		}
		if l := mdLinkPattern.FindStringSubmatch(inner); l != nil {
			c.link = l[1]
		}
		if c.title != "" {
			cards = append(cards, c)
		}
	}
	return cards
}

func boldCards(body string) []card {
	var cards []card
	var cur *card
	var summary []string

	flush := func() {
		if cur == nil {
			return
		}
		cur.summary = strings.TrimSpace(strings.Join(summary, "\n"))
		cards = append(cards, *cur)
		cur, summary = nil, nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := boldTitlePattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			cur = &card{title: strings.TrimSpace(m[1])}
			continue
		}
		if cur == nil {
			continue
		}
		switch {
		case trimmed == "":
			flush()
		case rawURLPattern.MatchString(trimmed):
			cur.link = trimmed
		default:
			if m := mdLinkPattern.FindStringSubmatch(trimmed); m != nil && cur.link == "" {
				cur.link = m[1]
			}
			summary = append(summary, trimmed)
		}
	}
	flush()
	return cards
}

func bulletCards(body string) []card {
	var cards []card
	for _, line := range strings.Split(body, "\n") {
		m := bulletPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		c := card{title: strings.TrimSpace(m[1])}
		// "title: summary" and "title - summary" bullet shapes.
		for _, sep := range []string{": ", " - "} {
			if title, summary, found := strings.Cut(c.title, sep); found {
				c.title = strings.TrimSpace(title)
				c.summary = strings.TrimSpace(summary)
				break
			}
		}
		cards = append(cards, c)
	}
	return cards
}

// cleanFragment strips residual tags and collapses whitespace in an
// HTML-recognized capture.
func cleanFragment(s string) string {
	return strings.Join(strings.Fields(tagPattern.ReplaceAllString(s, " ")), " ")
}

// parsePlanRegion captures the seven named subsections of the plan region.
// A nil return means the blob carried no plan at all.
func parsePlanRegion(lines []string) *types.ResearchPlan {
	if len(lines) == 0 {
		return nil
	}

	sections := make(map[types.PlanSlot]string)
	var current types.PlanSlot
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		if text := strings.TrimSpace(strings.Join(buf, "\n")); text != "" {
			sections[current] = text
		}
		buf = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "###") {
			if slot, ok := plan.MatchSlotHeader(trimmed); ok {
				flush()
				current = slot
				continue
			}
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	if len(sections) == 0 {
		return nil
	}

	p := &types.ResearchPlan{}
	for slot, text := range sections {
		p.SetSlot(slot, text)
	}
	return p
}
