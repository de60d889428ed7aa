package transcript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MrWong99/orthographer/internal/lexicon"
	"github.com/MrWong99/orthographer/internal/segment"
)

// Resolver replaces a single lower-cased word token.
//
// Implementations must be safe for concurrent use.
type Resolver interface {
	// Resolve returns the replacement for word and whether any table entry
	// applied to it.
	Resolve(word string) (out string, mapped bool)
}

// ResolverFunc adapts a function to the [Resolver] interface.
type ResolverFunc func(word string) (string, bool)

// Resolve calls f(word).
func (f ResolverFunc) Resolve(word string) (string, bool) {
	return f(word)
}

// Identity returns every word unchanged.
var Identity Resolver = ResolverFunc(func(word string) (string, bool) {
	return word, false
})

// LexiconResolver looks words up in a [lexicon.Lexicon] and falls back to the
// word itself. Of an entry listing several pronunciations only the first is
// used, so one word token always resolves to one word.
type LexiconResolver struct {
	Lexicon *lexicon.Lexicon
}

// Resolve implements [Resolver].
func (r LexiconResolver) Resolve(word string) (string, bool) {
	if v, ok := r.Lexicon.Get(word); ok {
		return FirstPronunciation(v), true
	}
	return word, false
}

// SegmentResolver encodes every word through a [segment.Segmenter]. Symbols
// without a mapping pass through; ignored symbols are dropped.
type SegmentResolver struct {
	Segmenter *segment.Segmenter
}

// Resolve implements [Resolver].
func (r SegmentResolver) Resolve(word string) (string, bool) {
	var (
		b      strings.Builder
		mapped bool
	)
	b.Grow(len(word))
	for _, seg := range r.Segmenter.Segments(word) {
		mapped = mapped || seg.Mapped
		b.WriteString(seg.Target)
	}
	return b.String(), mapped
}

// Compose looks a word up in the lexicon and encodes the phonetic result
// through the segmenter. Words missing from the lexicon are returned
// unchanged rather than segmented, so plain spellings are never mangled by a
// phonetic table.
//
// Pronunciation dumps list alternatives after the first one, separated by
// whitespace ("/həˈloʊ/, /hɛˈloʊ/"). Only the first pronunciation is
// segmented.
type Compose struct {
	Lexicon   *lexicon.Lexicon
	Segmenter *segment.Segmenter
}

// Resolve implements [Resolver].
func (r Compose) Resolve(word string) (string, bool) {
	phonetic, ok := r.Lexicon.Get(word)
	if !ok {
		return word, false
	}
	return r.Segmenter.Encode(FirstPronunciation(phonetic)), true
}

// FirstPronunciation returns the part of a lexicon value before the first
// whitespace, or the whole value when it has none.
func FirstPronunciation(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexFunc(value, unicode.IsSpace); i >= 0 {
		return value[:i]
	}
	return value
}

// Mode selects the direction of a transform.
type Mode string

const (
	// ModeWordToPhonetic replaces words with their lexicon entry.
	ModeWordToPhonetic Mode = "word-to-phonetic"

	// ModePhoneticToOrthography segments phonetic words into the target
	// alphabet.
	ModePhoneticToOrthography Mode = "phonetic-to-orthography"

	// ModeWordToOrthography looks words up and segments the phonetic result.
	ModeWordToOrthography Mode = "word-to-orthography"
)

// IsValid reports whether m is a recognised mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeWordToPhonetic, ModePhoneticToOrthography, ModeWordToOrthography:
		return true
	}
	return false
}

// ParseMode converts a configuration string into a [Mode]. Surrounding space
// and letter case are ignored.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("transcript: unknown mode %q; valid values: %s, %s, %s",
			s, ModeWordToPhonetic, ModePhoneticToOrthography, ModeWordToOrthography)
	}
	return m, nil
}

// UsesLexicon reports whether m needs a lexicon.
func (m Mode) UsesLexicon() bool {
	return m == ModeWordToPhonetic || m == ModeWordToOrthography
}

// UsesSegmenter reports whether m needs a segment map.
func (m Mode) UsesSegmenter() bool {
	return m == ModePhoneticToOrthography || m == ModeWordToOrthography
}

// NewResolver returns the [Resolver] for mode. lex and seg may be nil when
// the mode does not use them.
func NewResolver(mode Mode, lex *lexicon.Lexicon, seg *segment.Segmenter) (Resolver, error) {
	if mode.UsesSegmenter() && seg == nil {
		return nil, fmt.Errorf("transcript: mode %q requires a segmenter", mode)
	}
	switch mode {
	case ModeWordToPhonetic:
		return LexiconResolver{Lexicon: lex}, nil
	case ModePhoneticToOrthography:
		return SegmentResolver{Segmenter: seg}, nil
	case ModeWordToOrthography:
		return Compose{Lexicon: lex, Segmenter: seg}, nil
	}
	return nil, fmt.Errorf("transcript: unknown mode %q; valid values: %s, %s, %s",
		mode, ModeWordToPhonetic, ModePhoneticToOrthography, ModeWordToOrthography)
}
