// Package segment converts phonetic strings into a target alphabet by greedy
// longest-match over one- and two-symbol units.
//
// A [Map] holds the two lookup tables; a [Segmenter] scans input left to
// right and always prefers a two-symbol (digraph) match over a one-symbol
// match at the same position. Symbols absent from both tables are copied
// through unchanged, so encoding never fails.
//
// Both types are read-only after construction and safe for concurrent use.
package segment

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/MrWong99/orthographer/internal/pairfile"
)

// ErrKeyLength is returned when a pair-file key is neither one nor two symbols.
var ErrKeyLength = errors.New("segment: key must be one or two symbols")

// Map is an immutable pair of lookup tables from phonetic symbols to
// target-alphabet strings. Keys of the digraph table are always exactly two
// symbols in NFC. Lookups are case-sensitive.
type Map struct {
	one map[rune]string
	two map[[2]rune]string
}

// NewMap returns a [Map] owning private copies of one and two. Later changes
// to the arguments do not affect the returned map. Either argument may be nil.
//
// Keys are brought to NFC, the form the [Segmenter] scans. A digraph key that
// composes to a single symbol (e + U+0303 to ẽ) moves to the single-symbol
// table and takes precedence over an existing entry there.
func NewMap(one map[rune]string, two map[[2]rune]string) *Map {
	m := &Map{
		one: make(map[rune]string, len(one)),
		two: make(map[[2]rune]string, len(two)),
	}
	for r, v := range one {
		if !m.set(string(r), v) {
			m.one[r] = v
		}
	}
	for k, v := range two {
		if !m.set(string(k[:]), v) {
			m.two[k] = v
		}
	}
	return m
}

// set stores v under the NFC form of key in the table matching its length.
// It reports false when the normalised key is neither one nor two symbols.
func (m *Map) set(key string, v string) bool {
	k := []rune(norm.NFC.String(key))
	switch len(k) {
	case 1:
		m.one[k[0]] = v
	case 2:
		m.two[[2]rune{k[0], k[1]}] = v
	default:
		return false
	}
	return true
}

// One returns the mapping for a single symbol.
func (m *Map) One(r rune) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m.one[r]
	return s, ok
}

// Two returns the mapping for the digraph a+b.
func (m *Map) Two(a, b rune) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m.two[[2]rune{a, b}]
	return s, ok
}

// Len reports the number of single-symbol and digraph entries.
func (m *Map) Len() (one, two int) {
	if m == nil {
		return 0, 0
	}
	return len(m.one), len(m.two)
}

// LoadMap reads a pair file from r. Keys of one symbol go to the
// single-symbol table, keys of two symbols to the digraph table. When a key
// is repeated the last value wins.
func LoadMap(r io.Reader) (*Map, error) {
	pairs, err := pairfile.Read(r)
	if err != nil {
		return nil, err
	}
	return fromPairs(pairs)
}

// LoadMapFile is a convenience wrapper that reads the pair file at path.
func LoadMapFile(path string) (*Map, error) {
	pairs, err := pairfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := fromPairs(pairs)
	if err != nil {
		return nil, fmt.Errorf("%w (file %q)", err, path)
	}
	return m, nil
}

func fromPairs(pairs []pairfile.Pair) (*Map, error) {
	m := &Map{
		one: make(map[rune]string),
		two: make(map[[2]rune]string),
	}
	for _, p := range pairs {
		if !m.set(p.Key, p.Value) {
			n := utf8.RuneCountInString(norm.NFC.String(p.Key))
			return nil, fmt.Errorf("line %d: key %q has %d symbols: %w", p.Line, p.Key, n, ErrKeyLength)
		}
	}
	return m, nil
}
