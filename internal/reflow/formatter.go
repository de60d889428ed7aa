package reflow

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MrWong99/orthographer/internal/token"
)

// Formatter reduces a token stream to a single string. It holds no per-call
// state and is safe for concurrent use.
type Formatter struct {
	cfg Configuration
}

// New returns a [Formatter] for cfg. cfg should come from [NewConfiguration].
func New(cfg Configuration) *Formatter {
	return &Formatter{cfg: cfg}
}

// Configuration returns the formatter's configuration.
func (f *Formatter) Configuration() Configuration {
	return f.cfg
}

// Format consumes tokens once and returns the assembled text with leading and
// trailing whitespace trimmed.
//
// For each token:
//
//   - A word is capitalised at the start of the text and after a stopper.
//   - A word that follows another word or a stopper is preceded by the
//     delimiter, or by a line break once the current line has reached the
//     maximum length. A word directly after a special mark attaches to it.
//   - Stoppers and specials attach to whatever precedes them.
//
// Line length counts runes since the last line break, including delimiters.
// Word tokens with empty text are skipped entirely.
func (f *Formatter) Format(tokens iter.Seq[token.Token]) string {
	var (
		b     strings.Builder
		state formatState
	)
	for t := range tokens {
		f.write(&b, &state, t)
	}
	return strings.TrimSpace(b.String())
}

// formatState is reset for every Format call.
type formatState struct {
	lineLength int
	previous   token.Token
	started    bool
}

func (f *Formatter) write(b *strings.Builder, st *formatState, t token.Token) {
	if t.Kind == token.Word && t.Text == "" {
		return
	}

	sep := ""
	if t.Kind == token.Word && (!st.started || st.previous.Kind != token.Special) {
		switch {
		case st.started && f.cfg.breakLines && st.lineLength >= f.cfg.maxLineLength:
			sep = "\n"
		case st.lineLength > 0:
			sep = f.cfg.delimiter
		}
	}

	text := t.Text
	if t.Kind == token.Word && f.shouldCapitalize(st, sep) {
		text = capitalize(text)
	}

	out := sep + text
	b.WriteString(out)

	if i := strings.LastIndexByte(out, '\n'); i >= 0 {
		st.lineLength = utf8.RuneCountInString(out[i+1:])
	} else {
		st.lineLength += utf8.RuneCountInString(out)
	}
	st.previous = t
	st.started = true
}

func (f *Formatter) shouldCapitalize(st *formatState, sep string) bool {
	if !f.cfg.capitalize {
		return false
	}
	if !st.started || st.previous.Kind == token.Stopper {
		return true
	}
	return f.cfg.capitalizeLines && sep == "\n"
}

// capitalize upper-cases the first rune of s and leaves the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	upper := unicode.ToTitle(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
