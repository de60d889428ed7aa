// Package lexicon maps words to their phonetic or orthographic form.
//
// Lookups are case-insensitive: keys are lower-cased on construction and
// queries are lower-cased before lookup. A word that is not in the lexicon is
// returned unchanged by [Lexicon.Lookup]; absence is never an error, since
// real text is full of proper nouns and neologisms no finite table covers.
package lexicon

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/MrWong99/orthographer/internal/pairfile"
)

// Lexicon is an immutable word table. A nil *Lexicon behaves as an empty one.
// All methods are safe for concurrent use.
type Lexicon struct {
	entries map[string]string
}

// New returns a [Lexicon] holding a lower-cased copy of entries. When two
// keys fold to the same word the already lower-case key takes precedence.
func New(entries map[string]string) *Lexicon {
	l := &Lexicon{entries: make(map[string]string, len(entries))}
	// Sorted order puts upper-case variants first so the lower-case key is
	// written last.
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		l.entries[strings.ToLower(k)] = entries[k]
	}
	return l
}

// FromPairs builds a [Lexicon] from pairs in order. Later pairs overwrite
// earlier ones with the same folded key.
func FromPairs(pairs []pairfile.Pair) *Lexicon {
	l := &Lexicon{entries: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		l.entries[strings.ToLower(p.Key)] = p.Value
	}
	return l
}

// Load reads a pair file from r. See package pairfile for the format.
func Load(r io.Reader) (*Lexicon, error) {
	pairs, err := pairfile.Read(r)
	if err != nil {
		return nil, err
	}
	return FromPairs(pairs), nil
}

// LoadFile is a convenience wrapper that reads the pair file at path.
func LoadFile(path string) (*Lexicon, error) {
	pairs, err := pairfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromPairs(pairs), nil
}

// Get returns the entry for word and whether it exists.
func (l *Lexicon) Get(word string) (string, bool) {
	if l == nil {
		return "", false
	}
	v, ok := l.entries[strings.ToLower(word)]
	return v, ok
}

// Lookup returns the entry for word, or word itself when there is none.
func (l *Lexicon) Lookup(word string) string {
	if v, ok := l.Get(word); ok {
		return v
	}
	return word
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Words returns every key in sorted order.
func (l *Lexicon) Words() []string {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.entries))
}
