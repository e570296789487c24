// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the in-memory report model into a Markdown blob
// and reconstructs models from previously rendered blobs. Compose and
// Parse are inverses for the structural fields: topic, section presence,
// and the count and order of hits survive a round trip.
package report

import (
	"fmt"
	"strings"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// Section header markers in composed blobs. The parser matches on the
// Korean keywords, not the icons, so hand-edited blobs still parse.
const (
	internalHeader = "## 📚 내부 프로젝트 탐색 결과"
	feedHeader     = "## 🌐 arXiv 최신 논문"
	planHeader     = "## 📝 생성된 연구 논문"
)

// Messages used when a section has nothing to show.
const (
	noInternalHits = "관련 내부 프로젝트를 찾지 못했습니다."
	noFeedHits     = "관련 arXiv 논문을 찾지 못했습니다."
)

// planSectionTitles maps plan slots to the Korean subsection headers the
// composer writes and the parser's alias table recognizes.
var planSectionTitles = map[types.PlanSlot]string{
	types.SlotAbstract:     "초록",
	types.SlotIntroduction: "서론",
	types.SlotMethods:      "연구 방법",
	types.SlotResults:      "예상 결과",
	types.SlotVisuals:      "시각 자료",
	types.SlotConclusion:   "결론",
	types.SlotReferences:   "참고 문헌",
}

// Compose renders the model as a Markdown blob suitable for archival and
// later re-parsing. The model is normalized first, so the blob always
// carries a topic line.
func Compose(m *types.ReportModel) string {
	m.Normalize()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# 🔬 %s\n\n", m.Topic)

	for _, p := range m.Explanation {
		sb.WriteString(p)
		sb.WriteString("\n\n")
	}

	sb.WriteString(internalHeader + "\n\n")
	if len(m.Internal) == 0 {
		sb.WriteString(noInternalHits + "\n\n")
	}
	for _, hit := range m.Internal {
		fmt.Fprintf(&sb, "**%s**", hit.Title)
		if meta := hitMeta(hit); meta != "" {
			fmt.Fprintf(&sb, " (%s)", meta)
		}
		sb.WriteString("\n")
		if hit.Summary != "" {
			sb.WriteString(hit.Summary + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(feedHeader + "\n\n")
	if len(m.Feed) == 0 {
		sb.WriteString(noFeedHits + "\n\n")
	}
	for _, rec := range m.Feed {
		fmt.Fprintf(&sb, "**%s**\n", rec.Title)
		if rec.Summary != "" {
			sb.WriteString(rec.Summary + "\n")
		}
		if rec.Link != "" {
			sb.WriteString(rec.Link + "\n")
		}
		sb.WriteString("\n")
	}

	if m.Plan != nil {
		sb.WriteString(planHeader + "\n\n")
		for _, slot := range types.PlanSlots {
			fmt.Fprintf(&sb, "### %s\n\n%s\n\n", planSectionTitles[slot], m.Plan.Slot(slot))
		}
	}

	return sb.String()
}

// hitMeta joins the year and category of a hit for the title line.
func hitMeta(hit types.InternalHit) string {
	var parts []string
	if hit.Year != "" {
		parts = append(parts, hit.Year)
	}
	if hit.Category != "" {
		parts = append(parts, hit.Category)
	}
	return strings.Join(parts, ", ")
}
