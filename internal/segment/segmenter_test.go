package segment_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/MrWong99/orthographer/internal/segment"
)

func TestEncode_DigraphBeatsSingles(t *testing.T) {
	t.Parallel()

	m := segment.NewMap(
		map[rune]string{'o': "x", 'ʊ': "y"},
		map[[2]rune]string{{'o', 'ʊ'}: "o"},
	)
	s := segment.New(m)

	if got := s.Encode("oʊ"); got != "o" {
		t.Errorf("Encode(%q) = %q, want %q", "oʊ", got, "o")
	}
}

func TestEncode_Table(t *testing.T) {
	t.Parallel()

	s := segment.New(segment.EnglishIPA(), segment.WithIgnored(segment.DefaultIgnored))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "unknown symbols pass through", input: "xyz", want: "xyz"},
		{name: "single symbol", input: "æ", want: "a"},
		{name: "trailing unpaired symbol", input: "kæt", want: "kat"},
		{name: "hello", input: "həˈloʊ", want: "hulo"},
		{name: "church", input: "tʃɝtʃ", want: "cēc"},
		{name: "judge", input: "dʒʌdʒ", want: "juj"},
		{name: "stress mark does not split digraph", input: "oˈʊ", want: "o"},
		{name: "slashes removed", input: "/ðɪs/", want: "þis"},
		{name: "greedy leftmost pair", input: "eɪɹ", want: "är"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Encode(tc.input); got != tc.want {
				t.Errorf("Encode(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestEncode_NilMapIsIdentity(t *testing.T) {
	t.Parallel()

	s := segment.New(nil)
	for _, in := range []string{"", "a", "həˈloʊ", "日本語"} {
		if got := s.Encode(in); got != in {
			t.Errorf("Encode(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestSegments_ConsumesEverySymbolOnce(t *testing.T) {
	t.Parallel()

	s := segment.New(segment.EnglishIPA())
	inputs := []string{"", "a", "oʊ", "oʊo", "tʃtʃtʃ", "ɪɹɪɹɪ", "abcdefg", "hwʊɚdʒæɹ"}

	for _, in := range inputs {
		segs := s.Segments(in)

		var src, dst strings.Builder
		next := 0
		for _, seg := range segs {
			if seg.Pos != next {
				t.Errorf("Segments(%q): segment %+v starts at %d, want %d", in, seg, seg.Pos, next)
			}
			next += len([]rune(seg.Source))
			src.WriteString(seg.Source)
			dst.WriteString(seg.Target)
		}

		if src.String() != in {
			t.Errorf("Segments(%q): sources join to %q, want input", in, src.String())
		}
		if dst.String() != s.Encode(in) {
			t.Errorf("Segments(%q): targets join to %q, want Encode result %q", in, dst.String(), s.Encode(in))
		}
		n := len([]rune(in))
		if len(segs) > n || 2*len(segs) < n {
			t.Errorf("Segments(%q): %d segments for %d symbols, want between N/2 and N", in, len(segs), n)
		}
	}
}

func TestMapped(t *testing.T) {
	t.Parallel()

	s := segment.New(segment.EnglishIPA())
	if s.Mapped("xyz") {
		t.Error("Mapped(\"xyz\") = true, want false")
	}
	if !s.Mapped("xæz") {
		t.Error("Mapped(\"xæz\") = false, want true")
	}
}

func TestNewMap_CopiesInput(t *testing.T) {
	t.Parallel()

	one := map[rune]string{'a': "b"}
	m := segment.NewMap(one, nil)
	one['a'] = "changed"
	one['c'] = "d"

	if got, _ := m.One('a'); got != "b" {
		t.Errorf("One('a') = %q after caller mutation, want %q", got, "b")
	}
	if n1, n2 := m.Len(); n1 != 1 || n2 != 0 {
		t.Errorf("Len() = (%d, %d), want (1, 0)", n1, n2)
	}
}

func TestEnglishIPA_FreshInstances(t *testing.T) {
	t.Parallel()

	a, b := segment.EnglishIPA(), segment.EnglishIPA()
	if a == b {
		t.Fatal("EnglishIPA returned the same pointer twice")
	}
	n1, n2 := a.Len()
	if n1 != 18 || n2 != 17 {
		t.Errorf("Len() = (%d, %d), want (18, 17)", n1, n2)
	}
}

func TestLoadMap(t *testing.T) {
	t.Parallel()

	input := "# test table\nɑ\tò\ntʃ\tc\nɑ\ta\n"
	m, err := segment.LoadMap(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got, _ := m.One('ɑ'); got != "a" {
		t.Errorf("One('ɑ') = %q, want last duplicate %q", got, "a")
	}
	if got, ok := m.Two('t', 'ʃ'); !ok || got != "c" {
		t.Errorf("Two('t','ʃ') = (%q, %v), want (\"c\", true)", got, ok)
	}
}

func TestLoadMap_KeyTooLong(t *testing.T) {
	t.Parallel()

	_, err := segment.LoadMap(strings.NewReader("abc\tx\n"))
	if !errors.Is(err, segment.ErrKeyLength) {
		t.Fatalf("LoadMap error = %v, want ErrKeyLength", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error should mention line 1, got: %v", err)
	}
}

func TestEncode_NormalisesInput(t *testing.T) {
	t.Parallel()

	m := segment.NewMap(map[rune]string{'\u1ebd': "en"}, nil)
	s := segment.New(m)

	decomposed := "e\u0303"
	if got := s.Encode(decomposed); got != "en" {
		t.Errorf("Encode(decomposed ẽ) = %q, want %q", got, "en")
	}
	if got := s.Encode("\u1ebd"); got != "en" {
		t.Errorf("Encode(precomposed ẽ) = %q, want %q", got, "en")
	}
}

func TestNewMap_ComposingDigraphBecomesSingle(t *testing.T) {
	t.Parallel()

	m := segment.NewMap(nil, map[[2]rune]string{{'e', '\u0303'}: "en"})
	if got, ok := m.One('\u1ebd'); !ok || got != "en" {
		t.Errorf("One('ẽ') = (%q, %v), want (\"en\", true)", got, ok)
	}
	if n1, n2 := m.Len(); n1 != 1 || n2 != 0 {
		t.Errorf("Len() = (%d, %d), want (1, 0)", n1, n2)
	}

	s := segment.New(m)
	for _, in := range []string{"e\u0303", "\u1ebd"} {
		if got := s.Encode(in); got != "en" {
			t.Errorf("Encode(%q) = %q, want %q", in, got, "en")
		}
	}
}

func TestLoadMap_NormalisesKeys(t *testing.T) {
	t.Parallel()

	m, err := segment.LoadMap(strings.NewReader("e\u0303\ten\ne\u0303ɪ\tein\n"))
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got, ok := m.One('\u1ebd'); !ok || got != "en" {
		t.Errorf("One('ẽ') = (%q, %v), want (\"en\", true)", got, ok)
	}
	if got, ok := m.Two('\u1ebd', 'ɪ'); !ok || got != "ein" {
		t.Errorf("Two('ẽ','ɪ') = (%q, %v), want (\"ein\", true)", got, ok)
	}
}

func TestLoadMap_EmptyValueDeletesSymbol(t *testing.T) {
	t.Parallel()

	m, err := segment.LoadMap(strings.NewReader("ʔ\t\nə\tu\n"))
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got, ok := m.One('ʔ'); !ok || got != "" {
		t.Errorf("One('ʔ') = (%q, %v), want (\"\", true)", got, ok)
	}
	if got := segment.New(m).Encode("əʔə"); got != "uu" {
		t.Errorf("Encode = %q, want %q", got, "uu")
	}
}
