// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"regexp"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// maxMethodsLength caps the methods section, in runes, before the closing
// sentence is appended.
const maxMethodsLength = 1000

// methodsClosing replaces the truncated tail of an overlong methods section.
const methodsClosing = " …이후 절차는 연구를 진행하며 단계별로 구체화합니다."

// urlPattern matches http(s) URLs for the references rewrite.
var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// referenceRotation is the fixed list of canonical academic-database URLs
// that provider-invented reference links are rewritten onto, in order of
// appearance. The list is deliberately stable so the mapping is
// deterministic across runs.
var referenceRotation = []string{
	"https://scholar.google.com",
	"https://www.riss.kr",
	"https://www.dbpia.co.kr",
	"https://www.kci.go.kr",
	"https://arxiv.org",
	"https://pubmed.ncbi.nlm.nih.gov",
	"https://www.sciencedirect.com",
	"https://link.springer.com",
	"https://www.jstor.org",
	"https://doaj.org",
}

// sanitize applies the post-parse rules in place: the methods cap and the
// references URL rewrite.
func sanitize(p *types.ResearchPlan) {
	p.Methods = trimMethods(p.Methods)
	p.References = rewriteReferences(p.References)
}

// trimMethods caps an overlong methods section at maxMethodsLength runes
// and replaces the removed tail with the fixed closing sentence.
func trimMethods(methods string) string {
	runes := []rune(methods)
	if len(runes) <= maxMethodsLength {
		return methods
	}
	return string(runes[:maxMethodsLength]) + methodsClosing
}

// rewriteReferences maps every URL in the references text, in order of
// appearance, onto the canonical rotation list, then wraps each rewritten
// URL in a Markdown link so renderers display it as a clickable reference.
func rewriteReferences(references string) string {
	i := 0
	return urlPattern.ReplaceAllStringFunc(references, func(string) string {
		canonical := referenceRotation[i%len(referenceRotation)]
		i++
		return fmt.Sprintf("[%s](%s)", canonical, canonical)
	})
}
