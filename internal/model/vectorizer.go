// Package model holds the learned half of the triage pipeline: the TF-IDF
// vectorizer, the multinomial logistic classifier, and their on-disk
// artifact format. Training is deterministic so two runs over the same
// dataset produce byte-identical artifacts.
package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// minTokenLength drops single-letter tokens before vocabulary building.
const minTokenLength = 2

// Vectorizer converts cleaned complaint text into L2-normalized TF-IDF
// vectors over a fixed vocabulary. Fields are exported for gob encoding;
// treat a fitted Vectorizer as immutable.
type Vectorizer struct {
	Vocabulary  map[string]int // term -> column index, assigned in sorted term order
	IDF         []float64      // indexed by column
	MaxFeatures int
}

// NewVectorizer returns an unfitted vectorizer capped at maxFeatures terms.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// tokenize splits cleaned text into vocabulary candidates. Stop words and
// tokens shorter than two letters are dropped.
func tokenize(doc string) []string {
	fields := strings.Fields(doc)
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) < minTokenLength || IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Fit builds the vocabulary and IDF table from the training corpus. When
// the corpus has more distinct terms than MaxFeatures, the most frequent
// terms across the corpus win; frequency ties break lexicographically.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("vectorizer fit: empty corpus")
	}

	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			corpusFreq[tok]++
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			docFreq[tok]++
		}
	}

	if len(corpusFreq) == 0 {
		return fmt.Errorf("vectorizer fit: no usable tokens in corpus")
	}

	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}

	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
				return corpusFreq[terms[i]] > corpusFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}

	// Column order is alphabetical regardless of frequency.
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))

	n := float64(len(docs))
	for idx, term := range terms {
		v.Vocabulary[term] = idx
		df := float64(docFreq[term])
		v.IDF[idx] = math.Log((1+n)/(1+df)) + 1
	}

	return nil
}

// Transform maps cleaned text to a dense TF-IDF vector. Terms outside the
// vocabulary are ignored; text with no known terms yields the zero vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.IDF))
	if len(vec) == 0 {
		return vec
	}

	for _, tok := range tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	var sumSquares float64
	for idx := range vec {
		vec[idx] *= v.IDF[idx]
		sumSquares += vec[idx] * vec[idx]
	}

	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}

// TransformAll vectorizes a batch of documents.
func (v *Vectorizer) TransformAll(docs []string) [][]float64 {
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// Features returns the vocabulary size of a fitted vectorizer.
func (v *Vectorizer) Features() int {
	return len(v.IDF)
}
