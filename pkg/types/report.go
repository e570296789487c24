// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the littlesci pipeline:
// corpus rows, retrieval hits, feed records, research plans, and the
// report model consumed by the PDF renderer.
package types

// DefaultTopic is the topic substituted when none can be extracted from a
// query or a persisted report blob.
const DefaultTopic = "과학 연구 탐색"

// MaxHits bounds the number of results either retriever returns.
const MaxHits = 5

// CorpusRow is one project record from the internal corpus table.
// Rows are immutable after load; Title is never empty.
type CorpusRow struct {
	// Title is the project title, the only field the index is built over.
	Title string `json:"title" yaml:"title"`

	// Year is the fair year as it appears in the table.
	Year string `json:"year" yaml:"year"`

	// Category is the project's fair category.
	Category string `json:"category" yaml:"category"`

	// Country is the fair country.
	Country string `json:"country" yaml:"country"`

	// Region is the fair state or region.
	Region string `json:"region" yaml:"region"`

	// Awards lists any awards, unparsed.
	Awards string `json:"awards" yaml:"awards"`
}

// InternalHit is a corpus row selected by the internal retriever, together
// with its similarity score and a lazily produced pedagogical summary.
type InternalHit struct {
	CorpusRow `yaml:",inline"`

	// Summary is a short gloss inferred from the title. Filled only for
	// rows selected for output, never during indexing.
	Summary string `json:"summary" yaml:"summary"`

	// Score is the cosine similarity in [0,1] that placed this row above
	// the retrieval threshold.
	Score float64 `json:"score" yaml:"score"`
}

// FeedRecord is one normalized entry from the preprint feed. A failed or
// empty fetch is represented by a single sentinel record whose Title
// encodes the failure mode, never by an error.
type FeedRecord struct {
	// Title is the entry title, or a sentinel such as "arXiv 검색 실패".
	Title string `json:"title" yaml:"title"`

	// Summary is the entry abstract, possibly replaced by a title gloss.
	Summary string `json:"summary" yaml:"summary"`

	// Link is the entry URL, or empty for sentinel records.
	Link string `json:"link" yaml:"link"`

	// Source identifies the feed (e.g. "arXiv").
	Source string `json:"source" yaml:"source"`
}

// PlanSlot names one of the seven sections of a research plan.
type PlanSlot string

const (
	SlotAbstract     PlanSlot = "abstract"
	SlotIntroduction PlanSlot = "introduction"
	SlotMethods      PlanSlot = "methods"
	SlotResults      PlanSlot = "results"
	SlotVisuals      PlanSlot = "visuals"
	SlotConclusion   PlanSlot = "conclusion"
	SlotReferences   PlanSlot = "references"
)

// PlanSlots lists the seven slots in presentation order.
var PlanSlots = []PlanSlot{
	SlotAbstract,
	SlotIntroduction,
	SlotMethods,
	SlotResults,
	SlotVisuals,
	SlotConclusion,
	SlotReferences,
}

// ResearchPlan is the seven-section planning document produced by the
// synthesizer. Every slot is populated after validation; slots the provider
// left empty or too short carry deterministic defaults.
type ResearchPlan struct {
	Abstract     string `json:"abstract" yaml:"abstract"`
	Introduction string `json:"introduction" yaml:"introduction"`
	Methods      string `json:"methods" yaml:"methods"`
	Results      string `json:"results" yaml:"results"`
	Visuals      string `json:"visuals" yaml:"visuals"`
	Conclusion   string `json:"conclusion" yaml:"conclusion"`
	References   string `json:"references" yaml:"references"`
}

// Slot returns the named section's text.
func (p *ResearchPlan) Slot(s PlanSlot) string {
	switch s {
	case SlotAbstract:
		return p.Abstract
	case SlotIntroduction:
		return p.Introduction
	case SlotMethods:
		return p.Methods
	case SlotResults:
		return p.Results
	case SlotVisuals:
		return p.Visuals
	case SlotConclusion:
		return p.Conclusion
	case SlotReferences:
		return p.References
	}
	return ""
}

// SetSlot assigns the named section's text.
func (p *ResearchPlan) SetSlot(s PlanSlot, text string) {
	switch s {
	case SlotAbstract:
		p.Abstract = text
	case SlotIntroduction:
		p.Introduction = text
	case SlotMethods:
		p.Methods = text
	case SlotResults:
		p.Results = text
	case SlotVisuals:
		p.Visuals = text
	case SlotConclusion:
		p.Conclusion = text
	case SlotReferences:
		p.References = text
	}
}

// ReportModel is the in-memory aggregate a single user interaction builds
// up: the topic, its pedagogical explanation, both retrieval result lists,
// and the optional synthesized plan.
type ReportModel struct {
	// Topic is never empty; parsing substitutes DefaultTopic when the
	// topic cannot be recovered.
	Topic string `json:"topic" yaml:"topic"`

	// Explanation is an ordered list of non-empty paragraphs, length >= 1
	// for any explained topic.
	Explanation []string `json:"explanation" yaml:"explanation"`

	// Internal holds at most MaxHits corpus hits, descending by score.
	Internal []InternalHit `json:"internal" yaml:"internal"`

	// Feed holds at most MaxHits feed records in feed order.
	Feed []FeedRecord `json:"feed" yaml:"feed"`

	// Plan is non-nil iff synthesis has run for this topic and idea.
	Plan *ResearchPlan `json:"plan,omitempty" yaml:"plan,omitempty"`
}

// Normalize enforces the model invariants in place: a non-empty topic and
// the MaxHits bound on both result lists.
func (m *ReportModel) Normalize() {
	if m.Topic == "" {
		m.Topic = DefaultTopic
	}
	if len(m.Internal) > MaxHits {
		m.Internal = m.Internal[:MaxHits]
	}
	if len(m.Feed) > MaxHits {
		m.Feed = m.Feed[:MaxHits]
	}
}
