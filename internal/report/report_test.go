package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlescienceai/littlesci/pkg/types"
)

func sampleModel() *types.ReportModel {
	return &types.ReportModel{
		Topic: "운동과 체지방 감량",
		Explanation: []string{
			"운동은 에너지 소비를 늘려 체지방을 줄이는 대표적인 방법입니다.",
			"유산소 운동과 근력 운동은 서로 다른 방식으로 지방 대사에 영향을 줍니다.",
		},
		Internal: []types.InternalHit{
			{CorpusRow: types.CorpusRow{Title: "Exercise Intensity and Fat Loss", Year: "2021", Category: "Health"}, Summary: "운동 강도에 따른 체지방 변화를 비교한 연구로 추정됩니다.", Score: 0.42},
			{CorpusRow: types.CorpusRow{Title: "Wearable Trackers for Teen Fitness"}, Summary: "웨어러블 기기로 운동량을 추적한 연구로 추정됩니다.", Score: 0.21},
		},
		Feed: []types.FeedRecord{
			{Title: "Fat Oxidation under Interval Training", Summary: "인터벌 훈련에서의 지방 산화를 다룹니다.", Link: "http://arxiv.org/abs/2301.07041v1", Source: "arXiv"},
		},
		Plan: &types.ResearchPlan{
			Abstract:     "운동 강도에 따른 체지방 변화를 4주간 관찰하는 탐구 계획입니다.",
			Introduction: "청소년기의 체지방 관리는 건강한 성장에 중요한 주제입니다.",
			Methods:      "참가자를 두 그룹으로 나누어 서로 다른 운동 프로그램을 4주간 진행합니다.",
			Results:      "고강도 그룹에서 더 큰 체지방 감소가 관찰될 것으로 예상합니다.",
			Visuals:      "주차별 체지방률 변화를 꺾은선 그래프로 나타낼 계획입니다.",
			Conclusion:   "운동 강도와 체지방 감량의 관계를 정리하고 한계를 논의합니다.",
			References:   "관련 학술 데이터베이스 검색 결과를 저자, 제목, 연도 순으로 정리합니다.",
		},
	}
}

func TestComposeParseRoundTrip(t *testing.T) {
	m := sampleModel()
	got := Parse(Compose(m))

	assert.Equal(t, m.Topic, got.Topic)
	assert.Equal(t, len(m.Explanation), len(got.Explanation))

	require.Len(t, got.Internal, len(m.Internal))
	for i := range m.Internal {
		assert.Equal(t, m.Internal[i].Title, got.Internal[i].Title, "internal order must survive")
		assert.Equal(t, m.Internal[i].Summary, got.Internal[i].Summary)
	}

	require.Len(t, got.Feed, len(m.Feed))
	assert.Equal(t, m.Feed[0].Title, got.Feed[0].Title)
	assert.Equal(t, m.Feed[0].Link, got.Feed[0].Link)

	require.NotNil(t, got.Plan)
	for _, slot := range types.PlanSlots {
		assert.Equal(t, m.Plan.Slot(slot), got.Plan.Slot(slot), "plan slot %s", slot)
	}
}

func TestComposeWithoutPlanOmitsRegion(t *testing.T) {
	m := sampleModel()
	m.Plan = nil
	blob := Compose(m)

	assert.NotContains(t, blob, planHeader)
	assert.Nil(t, Parse(blob).Plan)
}

func TestComposeEmptyModelStillParses(t *testing.T) {
	m := &types.ReportModel{}
	blob := Compose(m)

	got := Parse(blob)
	assert.Equal(t, types.DefaultTopic, got.Topic)
	assert.Empty(t, got.Internal)
	assert.Empty(t, got.Feed)
	assert.Nil(t, got.Plan)
	assert.Contains(t, blob, noInternalHits)
}

func TestParseTopicVariants(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want string
	}{
		{"icon heading", "# 🔬 광합성의 원리\n\n본문", "광합성의 원리"},
		{"plain heading", "# 광합성\n", "광합성"},
		{"topic prefix", "주제: 미세 플라스틱\n본문", "미세 플라스틱"},
		{"no topic", "그냥 본문 텍스트", types.DefaultTopic},
		{"empty blob", "", types.DefaultTopic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.blob).Topic; got != tt.want {
				t.Errorf("topic = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseHTMLCardsTakePrecedence(t *testing.T) {
	blob := strings.Join([]string{
		"# 주제어",
		"",
		"## 내부 데이터베이스",
		`<div class="paper-card"><h3>Solar Panel Efficiency Study</h3><p>태양광 패널 효율 연구로 추정됩니다.</p></div>`,
		"**Bold Fallback Title**",
		"이 블록은 무시되어야 합니다.",
	}, "\n")

	got := Parse(blob)
	require.Len(t, got.Internal, 1)
	assert.Equal(t, "Solar Panel Efficiency Study", got.Internal[0].Title)
	assert.Equal(t, "태양광 패널 효율 연구로 추정됩니다.", got.Internal[0].Summary)
}

func TestParseBulletCards(t *testing.T) {
	blob := strings.Join([]string{
		"# 주제어",
		"",
		"## arXiv 논문 검색",
		"- Interval Training Effects: 인터벌 훈련의 효과를 다룹니다.",
		"- Wearable Sensor Accuracy - 웨어러블 센서의 정확도 연구입니다.",
		"- 짧음",
	}, "\n")

	got := Parse(blob)
	require.Len(t, got.Feed, 2, "short titles must be rejected")
	assert.Equal(t, "Interval Training Effects", got.Feed[0].Title)
	assert.Equal(t, "인터벌 훈련의 효과를 다룹니다.", got.Feed[0].Summary)
	assert.Equal(t, "Wearable Sensor Accuracy", got.Feed[1].Title)
}

func TestParseExplanationRegion(t *testing.T) {
	blob := strings.Join([]string{
		"# 🔬 소리의 성질",
		"",
		"소리는 매질의 진동으로 전달되는 파동입니다.",
		"",
		"진동수가 높을수록 높은 소리로 들립니다.",
		"",
		"## 📚 내부 프로젝트 탐색 결과",
		"이 줄은 설명이 아닙니다.",
	}, "\n")

	got := Parse(blob)
	require.Len(t, got.Explanation, 2)
	assert.Equal(t, "소리는 매질의 진동으로 전달되는 파동입니다.", got.Explanation[0])
}

func TestParseIsTotalOnGarbage(t *testing.T) {
	for _, blob := range []string{
		"",
		"<<<>>> {not a report} ####",
		strings.Repeat("## ", 100),
		"# \n## 내부\n**\n",
	} {
		got := Parse(blob)
		require.NotNil(t, got)
		assert.NotEmpty(t, got.Topic)
	}
}

func TestParseBoundsHits(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# 주제어\n\n## 내부 데이터베이스\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("**Corpus Project Title Number " + strings.Repeat("I", i+1) + "**\n요약입니다.\n\n")
	}
	got := Parse(sb.String())
	assert.LessOrEqual(t, len(got.Internal), types.MaxHits)
}
