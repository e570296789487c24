package keyword

import (
	"strings"
	"testing"
)

func TestMapExerciseAndBodyFat(t *testing.T) {
	got := Map("운동과 체지방 감량")

	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("len = %d, want 1..5", len(got))
	}

	allowed := map[string]bool{
		"exercise": true, "physical": true, "activity": true, "fitness": true,
		"body": true, "fat": true, "weight": true, "loss": true, "reduction": true,
	}
	for _, term := range got {
		if !allowed[term] {
			t.Errorf("unexpected term %q", term)
		}
	}
}

func TestMapNoDuplicates(t *testing.T) {
	// Both entries expand to overlapping token sets.
	got := Map("체지방 감량과 체지방 측정")
	seen := make(map[string]bool)
	for _, term := range got {
		if seen[term] {
			t.Errorf("duplicate term %q in %v", term, got)
		}
		seen[term] = true
	}
}

func TestMapCapsAtFive(t *testing.T) {
	got := Map("운동 다이어트 태양광 인공지능 미세먼지")
	if len(got) > 5 {
		t.Errorf("len = %d, want <= 5", len(got))
	}
}

func TestMapASCIIPassthrough(t *testing.T) {
	got := Map("CRISPR gene editing")
	want := []string{"crispr", "gene", "editing"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMapASCIIIgnoredWhenDictionaryMatches(t *testing.T) {
	got := Map("태양광 panels")
	for _, term := range got {
		if term == "panels" {
			t.Errorf("literal token leaked into dictionary expansion: %v", got)
		}
	}
	if !contains(got, "solar") {
		t.Errorf("expected dictionary expansion, got %v", got)
	}
}

func TestMapEmptyQuery(t *testing.T) {
	if got := Map(""); len(got) != 0 {
		t.Errorf("Map(\"\") = %v, want empty", got)
	}
}

func TestMapUnknownKoreanYieldsEmpty(t *testing.T) {
	if got := Map("알 수 없는 주제어"); len(got) != 0 {
		t.Errorf("got %v, want empty for out-of-dictionary Korean", got)
	}
}

func TestMapLowercasesOutput(t *testing.T) {
	for _, term := range Map("DNA Sequencing") {
		if term != strings.ToLower(term) {
			t.Errorf("term %q is not lowercase", term)
		}
	}
}

func contains(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
