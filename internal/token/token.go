// Package token splits free text into words and punctuation marks.
//
// A [Tokenizer] is configured with two disjoint punctuation sets: stoppers,
// which end a sentence, and specials, which do not. Every maximal run of word
// characters becomes a [Word] token, every character in one of the sets
// becomes a single-character token of the matching kind, and everything else
// (whitespace, unconfigured punctuation) is dropped.
package token

import (
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Kind classifies a [Token].
type Kind int

const (
	// Word is a run of letters, digits, combining marks and apostrophes.
	Word Kind = iota

	// Stopper is a sentence-ending mark; the next word is capitalised.
	Stopper

	// Special is any other configured punctuation mark.
	Special
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Stopper:
		return "stopper"
	case Special:
		return "special"
	}
	return "unknown"
}

// Token is a classified unit of text. Its Kind is fixed at tokenisation time.
type Token struct {
	Text string
	Kind Kind
}

// IsWordRune reports whether r belongs inside a [Word] token.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '\'' || r == '’'
}

// Set is an immutable set of punctuation characters.
type Set struct {
	runes map[rune]struct{}
}

// NewSet returns a [Set] containing every rune of chars.
func NewSet(chars string) Set {
	s := Set{runes: make(map[rune]struct{}, utf8.RuneCountInString(chars))}
	for _, r := range chars {
		s.runes[r] = struct{}{}
	}
	return s
}

// Contains reports whether r is in s.
func (s Set) Contains(r rune) bool {
	_, ok := s.runes[r]
	return ok
}

// Len returns the number of distinct characters in s.
func (s Set) Len() int {
	return len(s.runes)
}

// Runes returns the members of s in ascending order.
func (s Set) Runes() []rune {
	out := make([]rune, 0, len(s.runes))
	for r := range s.runes {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Intersect returns the characters present in both s and o, sorted.
func (s Set) Intersect(o Set) []rune {
	var out []rune
	for _, r := range s.Runes() {
		if o.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// String returns the members of s in ascending order as a string.
func (s Set) String() string {
	return string(s.Runes())
}

// Tokenizer produces [Token] sequences. It is safe for concurrent use.
type Tokenizer struct {
	stoppers Set
	specials Set
}

// NewTokenizer returns a [Tokenizer] for the given punctuation sets. The sets
// are expected to be disjoint; a character in both is classified as a
// [Stopper].
func NewTokenizer(stoppers, specials Set) *Tokenizer {
	return &Tokenizer{stoppers: stoppers, specials: specials}
}

// Classify returns the kind of a single rune, or false when the rune is
// dropped during tokenisation.
func (t *Tokenizer) Classify(r rune) (Kind, bool) {
	switch {
	case IsWordRune(r):
		return Word, true
	case t.stoppers.Contains(r):
		return Stopper, true
	case t.specials.Contains(r):
		return Special, true
	}
	return 0, false
}

// Tokens returns a lazy sequence over the tokens of text in a single left to
// right pass. Word tokens are lower-cased. The text is NFC-normalised first
// so precomposed and decomposed spellings tokenise identically.
func (t *Tokenizer) Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		text := norm.NFC.String(text)
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			kind, ok := t.Classify(r)
			if !ok {
				i += size
				continue
			}
			if kind != Word {
				i += size
				if !yield(Token{Text: string(r), Kind: kind}) {
					return
				}
				continue
			}

			start := i
			for i < len(text) {
				r, size := utf8.DecodeRuneInString(text[i:])
				if !IsWordRune(r) {
					break
				}
				i += size
			}
			if !yield(Token{Text: strings.ToLower(text[start:i]), Kind: Word}) {
				return
			}
		}
	}
}
