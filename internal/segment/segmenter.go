package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Segment is one unit produced by a scan.
type Segment struct {
	// Source is the one or two input symbols consumed.
	Source string

	// Target is the mapped output, or Source itself when unmapped.
	Target string

	// Pos is the rune offset of the first consumed symbol in the NFC form
	// of the input.
	Pos int

	// Mapped reports whether Target came from the map.
	Mapped bool
}

// Option configures a [Segmenter].
type Option func(*Segmenter)

// WithIgnored drops every symbol in chars from the input before pairing, as
// if it were not there. Ignored symbols never produce output and never split
// a digraph: with 'ˈ' ignored, "oˈʊ" is scanned as "oʊ".
func WithIgnored(chars string) Option {
	return func(s *Segmenter) {
		for _, r := range norm.NFC.String(chars) {
			s.ignored[r] = struct{}{}
		}
	}
}

// Segmenter is a greedy longest-match encoder over a [Map].
// It is safe for concurrent use.
type Segmenter struct {
	m       *Map
	ignored map[rune]struct{}
}

// New returns a [Segmenter] over m. A nil m encodes every input to itself.
func New(m *Map, opts ...Option) *Segmenter {
	s := &Segmenter{
		m:       m,
		ignored: make(map[rune]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Encode returns input with every phonetic unit replaced by its mapping.
// Input is brought to NFC first, so precomposed and decomposed spellings of
// a symbol encode identically.
//
// The scan advances left to right. At each position a digraph formed with the
// next symbol wins over the single symbol; otherwise the single symbol is
// mapped, or copied through when the map has no entry for it. The trailing
// unpaired symbol always goes through the single-symbol table.
func (s *Segmenter) Encode(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	s.scan(input, func(seg Segment) {
		b.WriteString(seg.Target)
	})
	return b.String()
}

// Segments returns the units a [Segmenter.Encode] call would produce, in
// order. Concatenating their Source fields yields the NFC form of input
// minus ignored symbols; concatenating Target fields yields the encoded string.
func (s *Segmenter) Segments(input string) []Segment {
	var out []Segment
	s.scan(input, func(seg Segment) {
		out = append(out, seg)
	})
	return out
}

// Mapped reports whether Encode(input) would apply at least one mapping.
func (s *Segmenter) Mapped(input string) bool {
	mapped := false
	s.scan(input, func(seg Segment) {
		mapped = mapped || seg.Mapped
	})
	return mapped
}

type symbol struct {
	r   rune
	pos int
}

func (s *Segmenter) scan(input string, emit func(Segment)) {
	input = norm.NFC.String(input)
	syms := make([]symbol, 0, len(input))
	pos := 0
	for _, r := range input {
		if _, skip := s.ignored[r]; !skip {
			syms = append(syms, symbol{r: r, pos: pos})
		}
		pos++
	}

	for i := 0; i < len(syms); {
		if i+1 < len(syms) {
			a, b := syms[i].r, syms[i+1].r
			if target, ok := s.m.Two(a, b); ok {
				emit(Segment{
					Source: string([]rune{a, b}),
					Target: target,
					Pos:    syms[i].pos,
					Mapped: true,
				})
				i += 2
				continue
			}
		}

		r := syms[i].r
		target, ok := s.m.One(r)
		if !ok {
			target = string(r)
		}
		emit(Segment{
			Source: string(r),
			Target: target,
			Pos:    syms[i].pos,
			Mapped: ok,
		})
		i++
	}
}
