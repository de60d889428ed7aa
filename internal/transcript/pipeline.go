// Package transcript composes tokenising, word resolution and reflow into a
// single text transform.
//
// A [Pipeline] is immutable once built and safe for concurrent use. Swapping
// mapping tables or formatting means building a new Pipeline.
package transcript

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrWong99/orthographer/internal/lexicon"
	"github.com/MrWong99/orthographer/internal/observe"
	"github.com/MrWong99/orthographer/internal/reflow"
	"github.com/MrWong99/orthographer/internal/token"
)

// Option is a functional option for configuring a [Pipeline].
type Option func(*Pipeline)

// WithMetrics records token, lookup and latency metrics on every
// [Pipeline.TransformContext] call.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the logger for per-transform debug lines. Default:
// [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSuggester attaches a [lexicon.Suggester] used by [Pipeline.Analyze] to
// propose replacements for unmapped words.
func WithSuggester(s *lexicon.Suggester) Option {
	return func(p *Pipeline) {
		p.suggester = s
	}
}

// Pipeline turns raw text into reflowed, resolved text.
type Pipeline struct {
	tokenizer *token.Tokenizer
	formatter *reflow.Formatter
	resolver  Resolver
	metrics   *observe.Metrics
	suggester *lexicon.Suggester
	logger    *slog.Logger
}

// New validates cfg and returns a Pipeline resolving words through r. A nil r
// leaves every word unchanged.
func New(cfg reflow.Configuration, r Resolver, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = Identity
	}
	p := &Pipeline{
		tokenizer: cfg.Tokenizer(),
		formatter: reflow.New(cfg),
		resolver:  r,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Transform is shorthand for building a Pipeline and running it once.
func Transform(text string, cfg reflow.Configuration, r Resolver) (string, error) {
	p, err := New(cfg, r)
	if err != nil {
		return "", err
	}
	return p.Transform(text), nil
}

// Configuration returns the formatting configuration of p.
func (p *Pipeline) Configuration() reflow.Configuration {
	return p.formatter.Configuration()
}

// Transform tokenises text, resolves every word and reflows the result.
func (p *Pipeline) Transform(text string) string {
	return p.formatter.Format(p.resolved(text, nil))
}

// TransformContext behaves like [Pipeline.Transform] and additionally records
// a span and, when configured, metrics. The transform itself never blocks;
// ctx only carries trace and metric context.
func (p *Pipeline) TransformContext(ctx context.Context, text string) string {
	ctx, span := observe.StartSpan(ctx, "transcript.transform",
		trace.WithAttributes(attribute.Int("input.bytes", len(text))))
	defer span.End()

	start := time.Now()
	var c counts
	out := p.formatter.Format(p.resolved(text, &c))

	span.SetAttributes(
		attribute.Int("output.bytes", len(out)),
		attribute.Int("words.mapped", c.mapped),
		attribute.Int("words.unmapped", c.unmapped),
	)
	if p.metrics != nil {
		p.metrics.TransformDuration.Record(ctx, time.Since(start).Seconds())
		for k, n := range c.kinds {
			p.metrics.RecordTokens(ctx, token.Kind(k).String(), int64(n))
		}
		p.metrics.RecordLookups(ctx, int64(c.mapped), int64(c.unmapped))
	}
	observe.WithSpan(ctx, p.logger).Debug("transcript: transform complete",
		"input_bytes", len(text),
		"output_bytes", len(out),
		"mapped", c.mapped,
		"unmapped", c.unmapped,
	)
	return out
}

// counts tallies one transform. kinds is indexed by [token.Kind].
type counts struct {
	kinds    [3]int
	mapped   int
	unmapped int
}

// resolved returns the token stream of text with every word replaced through
// the resolver. When c is non-nil it is updated as tokens are pulled.
func (p *Pipeline) resolved(text string, c *counts) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for t := range p.tokenizer.Tokens(text) {
			if c != nil && int(t.Kind) < len(c.kinds) {
				c.kinds[t.Kind]++
			}
			if t.Kind == token.Word {
				out, mapped := p.resolver.Resolve(t.Text)
				if c != nil {
					if mapped {
						c.mapped++
					} else {
						c.unmapped++
					}
				}
				t.Text = out
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Unknown is a word the resolver had no entry for.
type Unknown struct {
	Word string

	// Suggestion is the closest known word, empty when none qualified.
	Suggestion string
	Confidence float64
}

// Report summarises how a text would be transformed.
type Report struct {
	Words    int
	Stoppers int
	Specials int
	Mapped   int
	Unmapped int

	// Unknown lists each distinct unmapped word once, in first-seen order.
	Unknown []Unknown
}

// Coverage returns the fraction of words that were mapped, or 1 for a text
// without words.
func (r Report) Coverage() float64 {
	if r.Words == 0 {
		return 1
	}
	return float64(r.Mapped) / float64(r.Words)
}

// Analyze tokenises and resolves text without formatting it and reports what
// it found.
func (p *Pipeline) Analyze(text string) Report {
	var (
		rep  Report
		seen = make(map[string]struct{})
	)
	for t := range p.tokenizer.Tokens(text) {
		switch t.Kind {
		case token.Stopper:
			rep.Stoppers++
			continue
		case token.Special:
			rep.Specials++
			continue
		}
		rep.Words++
		if _, mapped := p.resolver.Resolve(t.Text); mapped {
			rep.Mapped++
			continue
		}
		rep.Unmapped++
		if _, dup := seen[t.Text]; dup {
			continue
		}
		seen[t.Text] = struct{}{}
		u := Unknown{Word: t.Text}
		if p.suggester != nil {
			if s, conf, ok := p.suggester.Suggest(t.Text); ok {
				u.Suggestion, u.Confidence = s, conf
			}
		}
		rep.Unknown = append(rep.Unknown, u)
	}
	return rep
}
