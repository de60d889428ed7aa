package lexicon_test

import (
	"testing"

	"github.com/MrWong99/orthographer/internal/lexicon"
)

func newTestLexicon() *lexicon.Lexicon {
	return lexicon.New(map[string]string{
		"hello":    "həˈloʊ",
		"world":    "wɝɫd",
		"whispers": "ˈwɪspɝz",
	})
}

func TestSuggester_CloseMisspelling(t *testing.T) {
	t.Parallel()

	s := lexicon.NewSuggester(newTestLexicon())

	got, conf, ok := s.Suggest("helo")
	if !ok {
		t.Fatalf("Suggest(%q): matched=false, want true", "helo")
	}
	if got != "hello" {
		t.Errorf("Suggest(%q) = %q, want %q", "helo", got, "hello")
	}
	if conf < 0.85 {
		t.Errorf("Suggest(%q): confidence=%f, want >= 0.85", "helo", conf)
	}
}

func TestSuggester_ExactWordIsPerfect(t *testing.T) {
	t.Parallel()

	s := lexicon.NewSuggester(newTestLexicon())

	got, conf, ok := s.Suggest("WORLD")
	if !ok || got != "world" {
		t.Fatalf("Suggest(%q) = (%q, %v), want (\"world\", true)", "WORLD", got, ok)
	}
	if conf != 1 {
		t.Errorf("Suggest(%q): confidence=%f, want 1", "WORLD", conf)
	}
}

func TestSuggester_NoMatch(t *testing.T) {
	t.Parallel()

	s := lexicon.NewSuggester(newTestLexicon())

	got, conf, ok := s.Suggest("xyzzy")
	if ok {
		t.Fatalf("Suggest(%q): matched=true (%q), want false", "xyzzy", got)
	}
	if got != "xyzzy" || conf != 0 {
		t.Errorf("Suggest(%q) = (%q, %f), want original word and 0", "xyzzy", got, conf)
	}
}

func TestSuggester_EmptyInputs(t *testing.T) {
	t.Parallel()

	if _, _, ok := lexicon.NewSuggester(nil).Suggest("hello"); ok {
		t.Error("empty lexicon: matched=true, want false")
	}
	if _, _, ok := lexicon.NewSuggester(newTestLexicon()).Suggest("   "); ok {
		t.Error("blank word: matched=true, want false")
	}
}

func TestSuggester_ThresholdOptions(t *testing.T) {
	t.Parallel()

	s := lexicon.NewSuggester(newTestLexicon(),
		lexicon.WithPhoneticThreshold(1.01),
		lexicon.WithFuzzyThreshold(1.01),
	)
	if got, _, ok := s.Suggest("helo"); ok {
		t.Errorf("Suggest(%q) with unreachable thresholds = %q, want no match", "helo", got)
	}
}
