// Package reflow joins a token stream into wrapped, sentence-capitalised text.
//
// Formatting is driven by an immutable [Configuration] that is validated once
// by [NewConfiguration]. Reconfiguring means building a new Configuration and
// a new [Formatter]; nothing is mutated in place.
package reflow

import (
	"errors"
	"fmt"

	"github.com/MrWong99/orthographer/internal/token"
)

// Default formatting values.
const (
	DefaultMaxLineLength = 100
	DefaultDelimiter     = " "
	DefaultStoppers      = ".!?\n"
	DefaultSpecials      = "~@#$%^&*/:;-_=+"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("reflow: invalid configuration")

// Configuration holds formatter and tokeniser settings. The zero value is not
// valid; obtain one from [NewConfiguration] or [DefaultConfiguration].
type Configuration struct {
	maxLineLength   int
	delimiter       string
	stoppers        token.Set
	specials        token.Set
	capitalize      bool
	breakLines      bool
	capitalizeLines bool
}

// Option adjusts a [Configuration] under construction.
type Option func(*Configuration)

// WithMaxLineLength sets the line length at which the formatter breaks before
// the next word. Default: 100.
func WithMaxLineLength(n int) Option {
	return func(c *Configuration) { c.maxLineLength = n }
}

// WithDelimiter sets the text inserted between adjacent words. Default: " ".
func WithDelimiter(d string) Option {
	return func(c *Configuration) { c.delimiter = d }
}

// WithStoppers sets the sentence-ending characters. Default: ".!?\n".
func WithStoppers(chars string) Option {
	return func(c *Configuration) { c.stoppers = token.NewSet(chars) }
}

// WithSpecials sets the non-terminal punctuation characters.
// Default: "~@#$%^&*/:;-_=+".
func WithSpecials(chars string) Option {
	return func(c *Configuration) { c.specials = token.NewSet(chars) }
}

// WithCapitalize toggles capitalisation of the first word of the text and of
// every word following a stopper. Default: true.
func WithCapitalize(on bool) Option {
	return func(c *Configuration) { c.capitalize = on }
}

// WithBreakLines toggles line wrapping. Default: true.
func WithBreakLines(on bool) Option {
	return func(c *Configuration) { c.breakLines = on }
}

// WithCapitalizeLines additionally capitalises the first word of every
// wrapped line. It has no effect unless capitalisation is on. Default: false.
func WithCapitalizeLines(on bool) Option {
	return func(c *Configuration) { c.capitalizeLines = on }
}

// DefaultConfiguration returns the configuration produced by
// NewConfiguration with no options.
func DefaultConfiguration() Configuration {
	return Configuration{
		maxLineLength: DefaultMaxLineLength,
		delimiter:     DefaultDelimiter,
		stoppers:      token.NewSet(DefaultStoppers),
		specials:      token.NewSet(DefaultSpecials),
		capitalize:    true,
		breakLines:    true,
	}
}

// NewConfiguration applies opts over the defaults and validates the result.
// The returned error wraps [ErrInvalidConfig] and lists every problem found.
func NewConfiguration(opts ...Option) (Configuration, error) {
	c := DefaultConfiguration()
	for _, o := range opts {
		o(&c)
	}
	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// Validate reports whether c is usable. A zero Configuration fails.
func (c Configuration) Validate() error {
	var errs []error

	if c.maxLineLength <= 0 {
		errs = append(errs, fmt.Errorf("max line length %d must be positive", c.maxLineLength))
	}
	if overlap := c.stoppers.Intersect(c.specials); len(overlap) > 0 {
		errs = append(errs, fmt.Errorf("characters %q are both stoppers and specials", string(overlap)))
	}
	for _, named := range []struct {
		name string
		set  token.Set
	}{{"stoppers", c.stoppers}, {"specials", c.specials}} {
		for _, r := range named.set.Runes() {
			if token.IsWordRune(r) {
				errs = append(errs, fmt.Errorf("%s contain word character %q", named.name, r))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// MaxLineLength returns the wrapping threshold.
func (c Configuration) MaxLineLength() int { return c.maxLineLength }

// Delimiter returns the inter-word separator.
func (c Configuration) Delimiter() string { return c.delimiter }

// Stoppers returns the sentence-ending characters.
func (c Configuration) Stoppers() token.Set { return c.stoppers }

// Specials returns the non-terminal punctuation characters.
func (c Configuration) Specials() token.Set { return c.specials }

// Capitalize reports whether sentence capitalisation is on.
func (c Configuration) Capitalize() bool { return c.capitalize }

// BreakLines reports whether line wrapping is on.
func (c Configuration) BreakLines() bool { return c.breakLines }

// CapitalizeLines reports whether wrapped lines start capitalised.
func (c Configuration) CapitalizeLines() bool { return c.capitalizeLines }

// Tokenizer returns a tokeniser using the configured punctuation sets.
func (c Configuration) Tokenizer() *token.Tokenizer {
	return token.NewTokenizer(c.stoppers, c.specials)
}

// Equal reports whether c and o format identically.
func (c Configuration) Equal(o Configuration) bool {
	return c.maxLineLength == o.maxLineLength &&
		c.delimiter == o.delimiter &&
		c.stoppers.String() == o.stoppers.String() &&
		c.specials.String() == o.specials.String() &&
		c.capitalize == o.capitalize &&
		c.breakLines == o.breakLines &&
		c.capitalizeLines == o.capitalizeLines
}
