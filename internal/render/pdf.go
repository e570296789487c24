// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays a report model out onto A4 pages. The renderer is
// deterministic for a fixed model and clock; every string passes through
// the sanitizer before layout, and a failed or unverifiable PDF write
// degrades to a plain-text backup artifact instead of an error.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/internal/report"
	"github.com/littlescienceai/littlesci/pkg/types"
)

// Page geometry, in millimeters.
const (
	pageMargin      = 20
	bottomBreak     = 25
	h1BreakMargin   = 50 // widow guard: no level-1 heading below pageH-50
	h2BreakMargin   = 40
	cardBreakMargin = 45
)

// renderHits is how many hits of each list the renderer consumes.
const renderHits = 3

// paragraphChunk slices long paragraphs into separate cells.
const paragraphChunk = 500

// Card truncation targets.
const (
	cardTitleLimit = 300
	cardBodyLimit  = 3000
)

// headerTopicLimit truncates the running-header topic, in runes.
const headerTopicLimit = 30

// koreanFamily is the registered name of the Korean typeface.
const koreanFamily = "korean"

// Default font locations, overridable through RenderConfig.
const (
	defaultFontRegular = "fonts/NanumGothic.ttf"
	defaultFontBold    = "fonts/NanumGothicBold.ttf"
)

const (
	defaultOutputDir = "outputs"
	reportSubtitle   = "연구 탐색 보고서"
	reportAuthor     = "LittleScienceAI"
)

// Section copy for empty result lists.
const (
	noInternalMessage = "관련 내부 프로젝트를 찾지 못했습니다."
	noFeedMessage     = "관련 arXiv 논문을 찾지 못했습니다."
)

// referencesGuide replaces user data in the plan's references subsection:
// a fixed how-to plus APA-style examples for the three common source kinds.
const referencesGuide = `참고 문헌은 연구에서 인용한 자료의 출처를 정리하는 부분입니다. 아래 APA 형식 예시를 참고하여, 실제로 인용한 자료만 기록하세요.

학술지 논문: 김과학, 이탐구 (2023). 운동 강도가 청소년 체지방률에 미치는 영향. 한국청소년건강학회지, 15(2), 123-135.

온라인 자료: 국립중앙과학관 (2024). 청소년 과학탐구 가이드. https://www.science.go.kr 에서 2024년 3월 1일 검색

단행본: 박연구 (2022). 중고등학생을 위한 연구 방법론. 서울: 과학교육출판사.`

// Renderer produces PDF (or plain-text fallback) artifacts from report
// models.
type Renderer struct {
	cfg    types.RenderConfig
	logger *zap.Logger

	// now is the clock used for the cover-page date, overridable in tests.
	now func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets an optional logger for degraded-render diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer builds a Renderer with the given configuration.
func NewRenderer(cfg types.RenderConfig, opts ...Option) *Renderer {
	r := &Renderer{cfg: cfg, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays the model out and writes it under the output directory,
// returning the artifact path. When the PDF cannot be produced or fails
// verification, the sanitized report text is written as
// <basename>_backup.txt and that path is returned instead; the only error
// case left is being unable to write even the backup.
func (r *Renderer) Render(m *types.ReportModel, filename string) (string, error) {
	m.Normalize()

	outDir := r.cfg.OutputDir
	if outDir == "" {
		outDir = defaultOutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}
	pdfPath := filepath.Join(outDir, filename)

	if err := r.writePDF(m, pdfPath); err != nil {
		r.logger.Warn("pdf render degraded to text backup",
			zap.String("path", pdfPath), zap.Error(err))
		return r.writeBackup(m, pdfPath)
	}
	if err := verifyPDF(pdfPath); err != nil {
		r.logger.Warn("pdf verification failed, writing text backup",
			zap.String("path", pdfPath), zap.Error(err))
		return r.writeBackup(m, pdfPath)
	}
	return pdfPath, nil
}

// RenderBlob re-renders a previously persisted report blob by parsing it
// back into a model first.
func (r *Renderer) RenderBlob(blob, filename string) (string, error) {
	return r.Render(report.Parse(blob), filename)
}

// writeBackup writes the sanitized report text next to the intended PDF.
func (r *Renderer) writeBackup(m *types.ReportModel, pdfPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	backupPath := filepath.Join(filepath.Dir(pdfPath), base+"_backup.txt")

	blob := Sanitize(report.Compose(m))
	if err := os.WriteFile(backupPath, []byte(blob), 0o644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return backupPath, nil
}

func (r *Renderer) writePDF(m *types.ReportModel, path string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, bottomBreak)

	l := &layout{doc: doc}
	l.family, l.builtin = r.setupFonts(doc)
	if l.builtin {
		l.tr = doc.UnicodeTranslatorFromDescriptor("")
	}
	_, l.pageH = doc.GetPageSize()

	headerTopic := truncateRunes(m.Topic, headerTopicLimit)
	doc.SetHeaderFunc(func() {
		if doc.PageNo() == 1 {
			return
		}
		doc.SetY(8)
		doc.SetFont(l.family, "", 9)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 8, l.encode(headerTopic+" - 연구보고서"), "", 0, "R", false, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.SetY(pageMargin)
	})
	doc.SetFooterFunc(func() {
		if doc.PageNo() == 1 {
			return
		}
		doc.SetY(-15)
		doc.SetFont(l.family, "", 9)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 10, fmt.Sprintf("- %d -", doc.PageNo()), "", 0, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})

	r.coverPage(l, m)
	r.contentPages(l, m)

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// setupFonts registers the Korean family. A missing bold weight reuses
// the regular file; a missing regular weight falls back to the built-in
// Latin typeface. Registration failures are suppressed, not surfaced.
func (r *Renderer) setupFonts(doc *fpdf.Fpdf) (family string, builtin bool) {
	regular := r.cfg.FontRegular
	if regular == "" {
		regular = defaultFontRegular
	}
	bold := r.cfg.FontBold
	if bold == "" {
		bold = defaultFontBold
	}

	if !fileExists(regular) {
		return "Helvetica", true
	}

	doc.AddUTF8Font(koreanFamily, "", regular)
	if fileExists(bold) {
		doc.AddUTF8Font(koreanFamily, "B", bold)
	} else {
		doc.AddUTF8Font(koreanFamily, "B", regular)
	}
	if doc.Err() {
		doc.ClearError()
		return "Helvetica", true
	}
	return koreanFamily, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *Renderer) coverPage(l *layout, m *types.ReportModel) {
	doc := l.doc
	doc.AddPage()

	doc.SetY(95)
	doc.SetFont(l.family, "B", 20)
	doc.MultiCell(0, 12, l.text(m.Topic), "", "C", false)

	doc.Ln(6)
	doc.SetFont(l.family, "", 14)
	doc.CellFormat(0, 10, l.encode(reportSubtitle), "", 1, "C", false, 0, "")

	doc.Ln(4)
	doc.SetFont(l.family, "", 11)
	doc.CellFormat(0, 8, l.encode(r.now().Format("2006년 1월 2일")), "", 1, "C", false, 0, "")

	doc.Ln(24)
	doc.SetFont(l.family, "", 12)
	doc.CellFormat(0, 8, reportAuthor, "", 1, "C", false, 0, "")
}

func (r *Renderer) contentPages(l *layout, m *types.ReportModel) {
	l.doc.AddPage()

	l.heading1("주제 설명")
	for _, p := range m.Explanation {
		l.paragraph(p)
	}

	l.heading1("문헌 조사")

	l.heading2("내부 프로젝트")
	if len(m.Internal) == 0 {
		l.paragraph(noInternalMessage)
	}
	for _, hit := range capInternal(m.Internal) {
		l.paperCard(hit.Title, internalSourceLine(hit), hit.Summary)
	}

	l.heading2("arXiv 최신 논문")
	if len(m.Feed) == 0 {
		l.paragraph(noFeedMessage)
	}
	for _, rec := range capFeed(m.Feed) {
		l.paperCard(rec.Title, rec.Source, rec.Summary)
	}

	if m.Plan != nil {
		l.heading1("연구 계획서")
		for _, slot := range types.PlanSlots {
			l.heading2(planSectionTitle(slot))
			if slot == types.SlotReferences {
				for _, block := range strings.Split(referencesGuide, "\n\n") {
					l.paragraph(block)
				}
				continue
			}
			l.paragraph(m.Plan.Slot(slot))
		}
	}
}

func capInternal(hits []types.InternalHit) []types.InternalHit {
	if len(hits) > renderHits {
		return hits[:renderHits]
	}
	return hits
}

func capFeed(recs []types.FeedRecord) []types.FeedRecord {
	if len(recs) > renderHits {
		return recs[:renderHits]
	}
	return recs
}

// internalSourceLine builds the dim provenance line under an internal card.
func internalSourceLine(hit types.InternalHit) string {
	parts := []string{"내부 프로젝트 DB"}
	if hit.Year != "" {
		parts = append(parts, hit.Year)
	}
	if hit.Category != "" {
		parts = append(parts, hit.Category)
	}
	return strings.Join(parts, " · ")
}

// planSectionTitle names a plan slot in the rendered report.
func planSectionTitle(slot types.PlanSlot) string {
	switch slot {
	case types.SlotAbstract:
		return "초록"
	case types.SlotIntroduction:
		return "서론"
	case types.SlotMethods:
		return "연구 방법"
	case types.SlotResults:
		return "예상 결과"
	case types.SlotVisuals:
		return "시각 자료"
	case types.SlotConclusion:
		return "결론"
	case types.SlotReferences:
		return "참고 문헌"
	}
	return string(slot)
}

// layout tracks per-document state: the active font family, the heading
// counters, and the page height for widow guards.
type layout struct {
	doc     *fpdf.Fpdf
	family  string
	builtin bool
	tr      func(string) string
	pageH   float64
	h1, h2  int
}

// text sanitizes one untrusted string and encodes it for the active family.
func (l *layout) text(s string) string {
	return l.encode(Sanitize(s))
}

// encode maps a string for the built-in Latin family; the UTF-8 Korean
// family needs no mapping.
func (l *layout) encode(s string) string {
	if l.builtin && l.tr != nil {
		return l.tr(s)
	}
	return s
}

// guard forces a page break when the cursor sits below the threshold, so
// the element about to be emitted keeps some following content with it.
func (l *layout) guard(breakMargin float64) {
	if l.doc.GetY() > l.pageH-breakMargin {
		l.doc.AddPage()
	}
}

func (l *layout) heading1(title string) {
	l.guard(h1BreakMargin)
	l.h1++
	l.h2 = 0
	l.doc.SetFont(l.family, "B", 16)
	l.doc.MultiCell(0, 9, l.encode(fmt.Sprintf("%d. %s", l.h1, title)), "", "L", false)
	l.doc.Ln(2)
}

func (l *layout) heading2(title string) {
	l.guard(h2BreakMargin)
	l.h2++
	l.doc.SetFont(l.family, "B", 13)
	l.doc.MultiCell(0, 8, l.encode(fmt.Sprintf("%d.%d %s", l.h1, l.h2, title)), "", "L", false)
	l.doc.Ln(1)
}

// paragraph emits one body paragraph, slicing overlong text into
// paragraphChunk-rune cells with a small gap between them.
func (l *layout) paragraph(s string) {
	s = l.text(s)
	if s == "" {
		return
	}
	l.doc.SetFont(l.family, "", 10.5)

	runes := []rune(s)
	for start := 0; start < len(runes); start += paragraphChunk {
		end := start + paragraphChunk
		if end > len(runes) {
			end = len(runes)
		}
		l.doc.MultiCell(0, 6, string(runes[start:end]), "", "L", false)
		l.doc.Ln(1)
	}
	l.doc.Ln(2)
}

// paperCard emits one literature hit: bullet title, dim source line, body.
func (l *layout) paperCard(title, source, body string) {
	l.guard(cardBreakMargin)

	l.doc.SetFont(l.family, "B", 11)
	l.doc.MultiCell(0, 6, l.encode("• "+SafeTruncate(Sanitize(title), cardTitleLimit)), "", "L", false)

	if source != "" {
		l.doc.SetFont(l.family, "", 9)
		l.doc.SetTextColor(128, 128, 128)
		l.doc.MultiCell(0, 5, l.text(source), "", "L", false)
		l.doc.SetTextColor(0, 0, 0)
	}

	if body = SafeTruncate(Sanitize(body), cardBodyLimit); body != "" {
		l.doc.SetFont(l.family, "", 10)
		l.doc.MultiCell(0, 5.5, l.encode(body), "", "L", false)
	}
	l.doc.Ln(3)
}

// truncateRunes hard-truncates s to limit runes with an ellipsis.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
