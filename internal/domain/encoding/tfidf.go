package encoding

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

var ErrEmptyVocabulary = errors.New("empty vocabulary: corpus contains no skill tokens")

// Encoder maps skill text into a fixed TF-IDF space learned by Fit. It is immutable after
// Fit and safe for concurrent Transform calls.
type Encoder struct {
	vocab map[string]int
	terms []string
	idf   []float64
}

// Fit learns the vocabulary and smoothed inverse document frequencies of docs.
func Fit(docs []string) (*Encoder, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyVocabulary
	}

	df := map[string]int{}
	for _, d := range docs {
		seen := map[string]struct{}{}
		for _, tok := range Tokenize(d) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return &Encoder{vocab: vocab, terms: terms, idf: idf}, nil
}

func (e *Encoder) Dim() int {
	if e == nil {
		return 0
	}
	return len(e.terms)
}

func (e *Encoder) Terms() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.terms))
	copy(out, e.terms)
	return out
}

// Transform encodes doc. Tokens outside the fitted vocabulary are ignored; a document with no
// known token encodes to the zero vector.
func (e *Encoder) Transform(doc string) Vector {
	if e == nil {
		return Vector{}
	}

	counts := map[int]float64{}
	for _, tok := range Tokenize(doc) {
		idx, ok := e.vocab[tok]
		if !ok {
			continue
		}
		counts[idx]++
	}

	v := Vector{dim: len(e.terms)}
	if len(counts) == 0 {
		return v
	}

	v.indices = make([]int, 0, len(counts))
	for idx := range counts {
		v.indices = append(v.indices, idx)
	}
	sort.Ints(v.indices)

	v.values = make([]float64, len(v.indices))
	norm := 0.0
	for i, idx := range v.indices {
		w := counts[idx] * e.idf[idx]
		v.values[i] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v.values {
			v.values[i] /= norm
		}
	}
	return v
}

func (e *Encoder) TransformAll(docs []string) []Vector {
	out := make([]Vector, 0, len(docs))
	for _, d := range docs {
		out = append(out, e.Transform(d))
	}
	return out
}

// Tokenize lower-cases s and returns runs of letters, digits and underscores that are at
// least two runes long, in order of appearance.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	out := make([]string, 0, 8)
	var b strings.Builder
	runes := 0
	flush := func() {
		if runes >= 2 {
			out = append(out, b.String())
		}
		b.Reset()
		runes = 0
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return out
}
