package lexicon

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// SuggestOption is a functional option for configuring a [Suggester].
type SuggestOption func(*Suggester)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// word sharing a Double Metaphone code with the query. Default: 0.70.
func WithPhoneticThreshold(threshold float64) SuggestOption {
	return func(s *Suggester) {
		s.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// word shares a phonetic code with the query. Default: 0.85.
func WithFuzzyThreshold(threshold float64) SuggestOption {
	return func(s *Suggester) {
		s.fuzzyThreshold = threshold
	}
}

// Suggester proposes the closest known word for a word that is missing from
// a [Lexicon]. It never changes lookup results; it only feeds diagnostics.
//
// Candidates sharing a Double Metaphone code with the query are ranked by
// Jaro-Winkler similarity and preferred over plain string-similarity matches.
// The Suggester is read-only after construction and safe for concurrent use.
type Suggester struct {
	words             []string
	codes             []map[string]struct{}
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// NewSuggester precomputes phonetic codes for every word in l.
func NewSuggester(l *Lexicon, opts ...SuggestOption) *Suggester {
	words := l.Words()
	s := &Suggester{
		words:             words,
		codes:             make([]map[string]struct{}, len(words)),
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for i, w := range words {
		s.codes[i] = codesFor(w)
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Suggest returns the known word most similar to word.
//
// When matched is false, suggestion equals word and confidence is 0. A word
// already present in the lexicon is returned as its own perfect match.
func (s *Suggester) Suggest(word string) (suggestion string, confidence float64, matched bool) {
	query := strings.ToLower(strings.TrimSpace(word))
	if query == "" || len(s.words) == 0 {
		return word, 0, false
	}

	queryCodes := codesFor(query)

	var (
		best         string
		bestScore    float64
		bestPhonetic bool
	)
	for i, candidate := range s.words {
		score := matchr.JaroWinkler(query, candidate, false)
		if codesOverlap(queryCodes, s.codes[i]) {
			if score < s.phoneticThreshold {
				continue
			}
			if !bestPhonetic || score > bestScore {
				best, bestScore, bestPhonetic = candidate, score, true
			}
		} else if !bestPhonetic && score >= s.fuzzyThreshold && score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if best == "" {
		return word, 0, false
	}
	return best, bestScore, true
}

// codesFor returns the non-empty Double Metaphone codes of w.
func codesFor(w string) map[string]struct{} {
	codes := make(map[string]struct{}, 2)
	p, sec := matchr.DoubleMetaphone(w)
	if p != "" {
		codes[p] = struct{}{}
	}
	if sec != "" {
		codes[sec] = struct{}{}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
