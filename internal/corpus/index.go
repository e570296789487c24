// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Index is a pre-fitted TF-IDF vectorizer over corpus titles plus the
// vectorized titles themselves. Fitting happens once at load; Transform
// and Similarities are pure and safe for concurrent readers.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	vectors    []sparseVec
}

// sparseVec maps feature index to weight. All stored vectors are
// L2-normalized so cosine similarity reduces to a dot product.
type sparseVec map[int]float64

// fitIndex builds the vocabulary and IDF weights from titles, then
// vectorizes every title. The vocabulary uses lowercase unigrams and
// bigrams, capped at maxFeatures terms by total corpus frequency.
func fitIndex(titles []string, maxFeatures int) *Index {
	counts := make(map[string]int)
	docFreq := make(map[string]int)
	tokenized := make([][]string, len(titles))

	for i, title := range titles {
		terms := ngrams(tokenize(title))
		tokenized[i] = terms

		seen := make(map[string]bool)
		for _, t := range terms {
			counts[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	idx := &Index{vocabulary: selectVocabulary(counts, maxFeatures)}

	// Smoothed IDF: ln((1+n)/(1+df)) + 1.
	n := float64(len(titles))
	idx.idf = make([]float64, len(idx.vocabulary))
	for term, fi := range idx.vocabulary {
		idx.idf[fi] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	idx.vectors = make([]sparseVec, len(titles))
	for i, terms := range tokenized {
		idx.vectors[i] = idx.vectorize(terms)
	}
	return idx
}

// selectVocabulary keeps the maxFeatures most frequent terms, breaking
// frequency ties alphabetically so fitting is deterministic.
func selectVocabulary(counts map[string]int, maxFeatures int) map[string]int {
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	// Feature indices follow alphabetical order within the kept set.
	sort.Strings(terms)
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// VocabularySize returns the number of fitted features.
func (ix *Index) VocabularySize() int {
	return len(ix.vocabulary)
}

// Transform vectorizes free text with the fitted vocabulary and IDF
// weights. Unknown terms are ignored; an all-unknown input yields a zero
// vector, which scores 0 against every row.
func (ix *Index) Transform(text string) sparseVec {
	return ix.vectorize(ngrams(tokenize(text)))
}

// Similarities returns the cosine similarity of the query vector against
// every fitted title, in table order.
func (ix *Index) Similarities(query sparseVec) []float64 {
	sims := make([]float64, len(ix.vectors))
	for i, v := range ix.vectors {
		sims[i] = dot(query, v)
	}
	return sims
}

func (ix *Index) vectorize(terms []string) sparseVec {
	vec := make(sparseVec)
	for _, t := range terms {
		if fi, ok := ix.vocabulary[t]; ok {
			vec[fi] += ix.idf[fi]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for fi, w := range vec {
			vec[fi] = w / norm
		}
	}
	return vec
}

func dot(a, b sparseVec) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for fi, w := range a {
		sum += w * b[fi]
	}
	return sum
}

// tokenize lowercases text and splits it into runs of letters and digits.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ngrams returns the unigrams plus adjacent bigrams of tokens, bigrams
// joined with a single space.
func ngrams(tokens []string) []string {
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
