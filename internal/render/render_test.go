// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/littlescienceai/littlesci/internal/report"
	"github.com/littlescienceai/littlesci/pkg/types"
)

func TestSafeTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{
			name:  "short string untouched",
			input: "짧은 문장입니다.",
			limit: 300,
			want:  "짧은 문장입니다.",
		},
		{
			name:  "exactly at limit untouched",
			input: strings.Repeat("가", 300),
			limit: 300,
			want:  strings.Repeat("가", 300),
		},
		{
			name: "cut after last terminator in window",
			input: strings.Repeat("가", 290) + "다." +
				strings.Repeat("나", 158) + "다." +
				strings.Repeat("라", 300),
			limit: 300,
			want: strings.Repeat("가", 290) + "다." +
				strings.Repeat("나", 158) + "다.",
		},
		{
			name:  "polite ending kept whole",
			input: strings.Repeat("가", 280) + "습니다." + strings.Repeat("나", 400),
			limit: 300,
			want:  strings.Repeat("가", 280) + "습니다.",
		},
		{
			name:  "terminator before one fifth of limit rejected",
			input: strings.Repeat("a", 50) + "." + strings.Repeat("b", 600),
			limit: 300,
			want:  strings.Repeat("a", 50) + "." + strings.Repeat("b", 549),
		},
		{
			name:  "no terminator within hard slack returns whole",
			input: strings.Repeat("x", 550),
			limit: 300,
			want:  strings.Repeat("x", 550),
		},
		{
			name:  "no terminator beyond hard slack hard cut",
			input: strings.Repeat("x", 900),
			limit: 300,
			want:  strings.Repeat("x", 600),
		},
		{
			name:  "plain period accepted",
			input: strings.Repeat("w", 320) + ". " + strings.Repeat("v", 400),
			limit: 300,
			want:  strings.Repeat("w", 320) + ".",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SafeTruncate(tc.input, tc.limit)
			if got != tc.want {
				t.Errorf("SafeTruncate() = %d runes, want %d runes",
					len([]rune(got)), len([]rune(tc.want)))
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "header marks stripped",
			input: "## 제목\n본문",
			want:  "제목\n본문",
		},
		{
			name:  "emphasis stripped",
			input: "**굵게** 그리고 *기울임* `코드`",
			want:  "굵게 그리고 기울임 코드",
		},
		{
			name:  "html tags become spaces",
			input: `a<div class="card">b</div>c`,
			want:  "a b c",
		},
		{
			name:  "trailing url removed",
			input: "출처는 다음과 같습니다. https://example.com",
			want:  "출처는 다음과 같습니다.",
		},
		{
			name:  "mid line url survives",
			input: "https://www.science.go.kr 에서 검색",
			want:  "https://www.science.go.kr 에서 검색",
		},
		{
			name:  "decoration emoji removed",
			input: "🔬 실험 결과 📊",
			want:  "실험 결과",
		},
		{
			name:  "whitespace normalized",
			input: "a   b\n\n\n\nc",
			want:  "a b\n\nc",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  본문  ",
			want:  "본문",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.input); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("짧은 주제", 30); got != "짧은 주제" {
		t.Errorf("short topic changed: %q", got)
	}
	long := strings.Repeat("가", 40)
	got := truncateRunes(long, 30)
	if want := strings.Repeat("가", 30) + "…"; got != want {
		t.Errorf("truncateRunes() = %q, want %q", got, want)
	}
}

func TestInternalSourceLine(t *testing.T) {
	hit := types.InternalHit{
		CorpusRow: types.CorpusRow{Title: "t", Year: "2019", Category: "Energy"},
	}
	if got := internalSourceLine(hit); got != "내부 프로젝트 DB · 2019 · Energy" {
		t.Errorf("internalSourceLine() = %q", got)
	}
	if got := internalSourceLine(types.InternalHit{}); got != "내부 프로젝트 DB" {
		t.Errorf("internalSourceLine(empty) = %q", got)
	}
}

func TestPlanSectionTitles(t *testing.T) {
	want := map[types.PlanSlot]string{
		types.SlotAbstract:     "초록",
		types.SlotIntroduction: "서론",
		types.SlotMethods:      "연구 방법",
		types.SlotResults:      "예상 결과",
		types.SlotVisuals:      "시각 자료",
		types.SlotConclusion:   "결론",
		types.SlotReferences:   "참고 문헌",
	}
	for slot, title := range want {
		if got := planSectionTitle(slot); got != title {
			t.Errorf("planSectionTitle(%s) = %q, want %q", slot, got, title)
		}
	}
}

func sampleRenderModel() *types.ReportModel {
	plan := &types.ResearchPlan{}
	for _, slot := range types.PlanSlots {
		plan.SetSlot(slot, "이 항목은 연구 계획서의 본문으로 사용되는 충분히 긴 단락입니다. "+string(slot))
	}
	return &types.ReportModel{
		Topic: "운동과 체지방 감량",
		Explanation: []string{
			"운동은 에너지 소비를 늘려 체지방 감량에 기여합니다.",
			strings.Repeat("장기적인 유산소 운동은 기초 대사량에도 영향을 줍니다. ", 30),
		},
		Internal: []types.InternalHit{
			{CorpusRow: types.CorpusRow{Title: "Exercise Intensity and Body Fat", Year: "2021", Category: "Health"}, Summary: "운동 강도와 체지방의 관계를 다룬 프로젝트로 추정됩니다.", Score: 0.42},
			{CorpusRow: types.CorpusRow{Title: "Wearable Fitness Tracking", Year: "2020", Category: "Engineering"}, Summary: "웨어러블 기기 기반 운동량 추적 연구로 추정됩니다.", Score: 0.31},
		},
		Feed: []types.FeedRecord{
			{Title: "Deep Learning for Exercise Recognition", Summary: "A study of exercise recognition models.", Link: "https://arxiv.org/abs/2401.00001", Source: "arXiv"},
		},
		Plan: plan,
	}
}

// requireArtifact accepts either outcome of a render: a verified PDF or
// the text backup written when no Korean font is available and the PDF
// path fails verification.
func requireArtifact(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	if strings.HasSuffix(path, ".pdf") {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), "%PDF"))
		require.Greater(t, len(data), minPDFSize)
	} else {
		require.True(t, strings.HasSuffix(path, "_backup.txt"))
	}
}

func TestRenderProducesArtifact(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(types.RenderConfig{OutputDir: dir})
	r.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	path, err := r.Render(sampleRenderModel(), "report.pdf")
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))
	requireArtifact(t, path)
}

func TestRenderAppendsPDFExtension(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(types.RenderConfig{OutputDir: dir})

	path, err := r.Render(sampleRenderModel(), "report")
	require.NoError(t, err)
	ok := strings.HasSuffix(path, ".pdf") || strings.HasSuffix(path, "_backup.txt")
	require.True(t, ok, "unexpected artifact name %q", path)
}

func TestRenderEmptyModel(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(types.RenderConfig{OutputDir: dir})

	path, err := r.Render(&types.ReportModel{}, "empty.pdf")
	require.NoError(t, err)
	requireArtifact(t, path)
}

func TestRenderBlobRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(types.RenderConfig{OutputDir: dir})

	blob := report.Compose(sampleRenderModel())
	path, err := r.RenderBlob(blob, "from-blob.pdf")
	require.NoError(t, err)
	requireArtifact(t, path)
}

func TestWriteBackup(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(types.RenderConfig{OutputDir: dir})
	m := sampleRenderModel()

	path, err := r.writeBackup(m, filepath.Join(dir, "report.pdf"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report_backup.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), m.Topic)
	require.NotContains(t, string(data), "##")
}

func TestVerifyPDF(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.pdf")
	require.Error(t, verifyPDF(missing))

	small := filepath.Join(dir, "small.pdf")
	require.NoError(t, os.WriteFile(small, []byte("%PDF-1.4 tiny"), 0o644))
	require.Error(t, verifyPDF(small))

	notPDF := filepath.Join(dir, "not.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte(strings.Repeat("A", minPDFSize+1)), 0o644))
	require.Error(t, verifyPDF(notPDF))
}

func TestSetupFontsFallsBackWithoutRegular(t *testing.T) {
	r := NewRenderer(types.RenderConfig{
		FontRegular: filepath.Join(t.TempDir(), "absent.ttf"),
	})
	family, builtin := r.setupFonts(nil)
	require.Equal(t, "Helvetica", family)
	require.True(t, builtin)
}
