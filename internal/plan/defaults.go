// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"strings"
	"unicode/utf8"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// minSlotLength is the minimum useful length of a validated slot, in runes
// after whitespace trimming. Shorter slots are replaced by defaults.
const minSlotLength = 20

// slotDefaults are the deterministic fallback paragraphs substituted for
// slots the provider left missing, empty, or too short. Each default is a
// usable scaffold prompt for the student, not an apology.
var slotDefaults = map[types.PlanSlot]string{
	types.SlotAbstract:     "이 연구는 선택한 주제를 체계적으로 탐구하기 위한 계획입니다. 탐구를 진행하며 구체적인 내용을 이 초록에 보완해 주세요.",
	types.SlotIntroduction: "연구 배경과 필요성을 정리하는 부분입니다. 이 주제를 선택한 이유와 해결하고 싶은 탐구 질문을 적어 보세요.",
	types.SlotMethods:      "실험 설계, 준비물, 진행 절차를 단계별로 정리해 보세요. 독립 변인과 종속 변인, 통제 변인도 함께 계획합니다.",
	types.SlotResults:      "실험에서 얻을 것으로 기대되는 결과를 예상해 보고, 측정값을 어떤 형식으로 기록할지 미리 계획합니다.",
	types.SlotVisuals:      "결과를 표, 그래프, 사진 중 어떤 형태로 보여줄지 계획해 보세요. 그래프라면 가로축과 세로축을 미리 정해 둡니다.",
	types.SlotConclusion:   "예상 결과가 연구 질문에 어떤 답을 주는지 정리하고, 탐구의 한계와 이어서 해볼 후속 연구를 적어 보세요.",
	types.SlotReferences:   "참고한 자료의 출처를 저자, 제목, 연도, 출처 순으로 정리해 보세요. 학술 데이터베이스 검색 결과를 활용합니다.",
}

// applyDefaults fills every slot whose trimmed content is shorter than
// minSlotLength with its deterministic default. The returned plan always
// has all seven slots populated.
func applyDefaults(sections map[types.PlanSlot]string) *types.ResearchPlan {
	p := &types.ResearchPlan{}
	for _, slot := range types.PlanSlots {
		text := strings.TrimSpace(sections[slot])
		if utf8.RuneCountInString(text) < minSlotLength {
			text = slotDefaults[slot]
		}
		p.SetSlot(slot, text)
	}
	return p
}
