// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"bytes"
	"text/template"
)

// Profile identifies one of the three prompt shapes sent to the provider.
type Profile string

const (
	// ProfileFullTopic is the seven-section pedagogical essay.
	ProfileFullTopic Profile = "full_topic"

	// ProfileQuickSummary is the five-section compressed variant.
	ProfileQuickSummary Profile = "quick_summary"

	// ProfileTitleGloss infers a short summary from a project title alone.
	ProfileTitleGloss Profile = "title_gloss"
)

// systemPrompt is shared by all three profiles.
const systemPrompt = `당신은 중·고등학생의 과학 탐구를 돕는 친절한 과학 선생님입니다. 모든 답변은 한국어로, 학생이 이해할 수 있는 수준으로 작성합니다.`

// fullTopicTmpl asks for a seven-section essay. Sections are separated by
// blank lines so the client can split the response into paragraphs.
var fullTopicTmpl = template.Must(template.New("full_topic").Parse(`다음 과학 주제를 중·고등학생에게 설명해 주세요: "{{.Topic}}"

아래 일곱 부분으로 나누어 작성하고, 각 부분 사이에는 빈 줄을 넣어 주세요.

1. 핵심 개념: 이 주제가 무엇인지 쉬운 말로 설명
2. 원리와 메커니즘: 어떻게 작동하는지
3. 현재 연구 동향: 지금 과학계에서 어떤 연구가 이루어지는지
4. 실생활 응용: 일상에서 만나는 사례
5. 문헌 조사 키워드: 영어 검색어 3~5개와 바로 쓸 수 있는 검색 URL
   (예: https://scholar.google.com/scholar?q=검색어)
6. 확장 탐구 아이디어: 학생이 직접 해볼 수 있는 탐구 주제 2~3개
7. 정리: 한 문단 요약

마크다운 제목 없이 본문만 작성해 주세요.`))

// quickSummaryTmpl asks for a compressed five-section variant.
var quickSummaryTmpl = template.Must(template.New("quick_summary").Parse(`다음 과학 주제를 다섯 부분으로 짧게 설명해 주세요: "{{.Topic}}"

핵심 개념, 원리, 응용 사례, 탐구 아이디어, 정리 — 각 부분은 2~3문장으로,
부분 사이에는 빈 줄을 넣어 주세요.`))

// titleGlossTmpl infers a project's likely content from its title alone.
// The response must hedge with "~로 추정됩니다" since the title is the only
// evidence available.
var titleGlossTmpl = template.Must(template.New("title_gloss").Parse(`다음은 과학 프로젝트의 제목입니다: "{{.Title}}"

제목만 보고 이 프로젝트가 어떤 연구였을지 3~4문장으로 추측해 주세요.
확실하지 않으므로 "~로 추정됩니다" 같은 표현을 사용해 주세요.`))

func renderTemplate(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	// The templates have no failure modes beyond a missing field, which
	// would be a programming error; Execute errors are not reachable with
	// the fixed data shapes below.
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// userPrompt renders the profile's user prompt for the given input.
func userPrompt(profile Profile, input string) string {
	switch profile {
	case ProfileFullTopic:
		return renderTemplate(fullTopicTmpl, struct{ Topic string }{Topic: input})
	case ProfileQuickSummary:
		return renderTemplate(quickSummaryTmpl, struct{ Topic string }{Topic: input})
	case ProfileTitleGloss:
		return renderTemplate(titleGlossTmpl, struct{ Title string }{Title: input})
	}
	return input
}
