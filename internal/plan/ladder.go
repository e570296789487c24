// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// fencedBlockPattern captures the body of a triple-backtick code block,
// with or without a language tag.
var fencedBlockPattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\n?(.*?)```")

// slotAliases maps each plan slot to the header keywords the line-oriented
// parser recognizes, in Korean and English. Matching is case-insensitive
// substring over a single line.
var slotAliases = map[types.PlanSlot][]string{
	types.SlotAbstract:     {"abstract", "초록", "요약"},
	types.SlotIntroduction: {"introduction", "서론", "연구 배경", "연구배경"},
	types.SlotMethods:      {"methods", "method", "연구 방법", "연구방법", "실험 방법"},
	types.SlotResults:      {"results", "result", "예상 결과", "예상결과", "결과"},
	types.SlotVisuals:      {"visuals", "visual", "시각 자료", "시각자료", "그래프"},
	types.SlotConclusion:   {"conclusion", "결론"},
	types.SlotReferences:   {"references", "reference", "참고 문헌", "참고문헌", "출처"},
}

// parseResponse walks the robustness ladder over a raw provider response
// and returns whatever sections it could recover. The ladder never fails;
// at worst the returned map is empty and every slot falls back to its
// default.
//
// Rungs, in order: whole-response JSON, fenced-block JSON, balanced-brace
// scan, line-oriented keyword split.
func parseResponse(response string) map[types.PlanSlot]string {
	if sections, ok := parseJSONObject(response); ok {
		return sections
	}

	for _, m := range fencedBlockPattern.FindAllStringSubmatch(response, -1) {
		if sections, ok := parseJSONObject(m[1]); ok {
			return sections
		}
	}

	for _, candidate := range balancedObjects(response) {
		if sections, ok := parseJSONObject(candidate); ok {
			if _, has := sections[types.SlotAbstract]; has {
				return sections
			}
		}
	}

	return parseLines(response)
}

// parseJSONObject attempts a strict JSON parse and keeps only the seven
// known slot names, matched case-insensitively.
func parseJSONObject(text string) (map[types.PlanSlot]string, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, false
	}

	sections := make(map[types.PlanSlot]string)
	for key, val := range raw {
		slot := types.PlanSlot(strings.ToLower(strings.TrimSpace(key)))
		if _, known := slotAliases[slot]; !known {
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			continue
		}
		sections[slot] = s
	}
	if len(sections) == 0 {
		return nil, false
	}
	return sections, true
}

// balancedObjects scans text for top-level balanced {...} substrings in
// order of appearance. Brace tracking ignores braces inside JSON strings.
func balancedObjects(text string) []string {
	var objects []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					objects = append(objects, text[start:i+1])
					start = -1
				}
			}
		}
	}
	return objects
}

// parseLines is the last tolerant rung: walk lines top-down, switching the
// accumulating section whenever a line names one, and appending everything
// else to the current section. Text before the first recognized header is
// discarded.
func parseLines(response string) map[types.PlanSlot]string {
	sections := make(map[types.PlanSlot]string)
	var current types.PlanSlot
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text != "" {
			sections[current] = text
		}
		buf = nil
	}

	for _, line := range strings.Split(response, "\n") {
		if slot, ok := MatchSlotHeader(line); ok {
			flush()
			current = slot
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

// MatchSlotHeader reports which slot, if any, a line's keywords name.
// Earlier slots in presentation order win when a line is ambiguous. The
// report parser shares this alias table when recovering plan subsections
// from persisted blobs.
func MatchSlotHeader(line string) (types.PlanSlot, bool) {
	lowered := strings.ToLower(line)
	for _, slot := range types.PlanSlots {
		for _, alias := range slotAliases[slot] {
			if strings.Contains(lowered, alias) {
				return slot, true
			}
		}
	}
	return "", false
}
