// Package ml holds the text feature extractor and the tree-ensemble
// classifier used to assign spending categories to transaction descriptions.
package ml

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

var (
	ErrAlreadyFitted = errors.New("already fitted")
	ErrNotFitted     = errors.New("not fitted")
	ErrEmptyCorpus   = errors.New("empty training corpus")
)

// Vectorizer turns descriptions into L2-normalized TF-IDF vectors.
// The vocabulary is frozen by Fit.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Tokenize lowercases s and splits it on every rune that is not a letter or
// digit. Single-rune tokens are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func (v *Vectorizer) Fitted() bool {
	return v != nil && v.Vocabulary != nil
}

func (v *Vectorizer) NumFeatures() int {
	if v == nil {
		return 0
	}
	return len(v.IDF)
}

// Fit learns the vocabulary and smoothed IDF weights from docs.
func (v *Vectorizer) Fit(docs []string) error {
	if v.Fitted() {
		return ErrAlreadyFitted
	}
	if len(docs) == 0 {
		return ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.Vocabulary = vocab
	v.IDF = idf
	return nil
}

// Transform maps each doc to a vector of NumFeatures weights. Words outside
// the vocabulary are ignored, so unknown or empty text gives a zero vector.
func (v *Vectorizer) Transform(docs []string) [][]float64 {
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		vec := make([]float64, v.NumFeatures())
		if v.Fitted() {
			for _, tok := range Tokenize(doc) {
				if idx, ok := v.Vocabulary[tok]; ok {
					vec[idx]++
				}
			}
			var norm float64
			for j := range vec {
				vec[j] *= v.IDF[j]
				norm += vec[j] * vec[j]
			}
			if norm > 0 {
				norm = math.Sqrt(norm)
				for j := range vec {
					vec[j] /= norm
				}
			}
		}
		out[i] = vec
	}
	return out
}

// Validate checks a decoded vectorizer for internal consistency.
func (v *Vectorizer) Validate() error {
	if !v.Fitted() {
		return ErrNotFitted
	}
	if len(v.Vocabulary) != len(v.IDF) {
		return errors.New("vocabulary and idf sizes differ")
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return errors.New("vocabulary index out of range for term " + term)
		}
	}
	return nil
}
