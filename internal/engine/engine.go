// Package engine turns a [config.Config] into a running transform pipeline
// and keeps it current as the configuration changes.
//
// An [Engine] never mutates a pipeline in place. Every reload loads whatever
// mapping tables changed, builds a fresh [transcript.Pipeline] and publishes
// it with a single atomic store, so concurrent Transform calls always see
// either the old or the new pipeline in full.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/orthographer/internal/config"
	"github.com/MrWong99/orthographer/internal/lexicon"
	"github.com/MrWong99/orthographer/internal/observe"
	"github.com/MrWong99/orthographer/internal/segment"
	"github.com/MrWong99/orthographer/internal/transcript"
)

// Option is a functional option for [New].
type Option func(*Engine)

// WithMetrics sets the metric instruments used by the engine and its
// pipelines. Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLevelVar makes the engine apply each config's log_level to lv.
func WithLevelVar(lv *slog.LevelVar) Option {
	return func(e *Engine) { e.levelVar = lv }
}

// WithLogOutput sends engine and pipeline logs to w through a text logger
// whose level follows log_level. Default: [slog.Default].
func WithLogOutput(w io.Writer) Option {
	return func(e *Engine) { e.logOut = w }
}

// Engine owns the current pipeline. It is safe for concurrent use.
type Engine struct {
	metrics  *observe.Metrics
	levelVar *slog.LevelVar
	logOut   io.Writer
	logger   *slog.Logger

	// mu serialises rebuilds; readers only touch current.
	mu      sync.Mutex
	current atomic.Pointer[state]
}

// state is one published generation.
type state struct {
	cfg      *config.Config
	tables   tables
	pipeline *transcript.Pipeline
}

// tables holds the loaded mapping data. Either field is nil when the mode
// does not use it.
type tables struct {
	lexicon  *lexicon.Lexicon
	segments *segment.Map
}

// New loads the tables cfg refers to and builds the first pipeline. A nil
// cfg means an empty config.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	if e.metrics == nil {
		e.metrics = observe.DefaultMetrics()
	}
	e.logger = slog.Default()
	if e.logOut != nil {
		if e.levelVar == nil {
			e.levelVar = new(slog.LevelVar)
		}
		e.logger = observe.NewLogger(e.logOut, e.levelVar)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.applyLogLevel(cfg)
	t, err := e.loadTables(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st, err := e.build(cfg, t)
	if err != nil {
		return nil, err
	}
	e.current.Store(st)

	lexWords := t.lexicon.Len()
	one, two := t.segments.Len()
	observe.WithSpan(ctx, e.logger).Info("engine: ready",
		"mode", cfg.EffectiveMode(),
		"lexicon_words", lexWords,
		"segments_single", one,
		"segments_digraph", two,
	)
	return e, nil
}

// Pipeline returns the current pipeline.
func (e *Engine) Pipeline() *transcript.Pipeline {
	return e.current.Load().pipeline
}

// Config returns the config the current pipeline was built from.
func (e *Engine) Config() *config.Config {
	return e.current.Load().cfg
}

// Transform runs text through the current pipeline.
func (e *Engine) Transform(ctx context.Context, text string) string {
	return e.Pipeline().TransformContext(ctx, text)
}

// Analyze reports on text using the current pipeline.
func (e *Engine) Analyze(text string) transcript.Report {
	return e.Pipeline().Analyze(text)
}

// Reload switches to cfg. Tables are reused unless [config.Diff] reports
// that the mode or the maps changed. On error the previous pipeline stays in
// service.
func (e *Engine) Reload(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("engine: reload with nil config")
	}
	ctx, span := observe.StartSpan(ctx, "engine.reload")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.current.Load()
	d := config.Diff(cur.cfg, cfg)

	err := e.swap(ctx, cfg, cur, d.ModeChanged || d.MapsChanged)
	e.recordReload(ctx, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	observe.WithSpan(ctx, e.logger).Info("engine: configuration applied",
		"log_level_changed", d.LogLevelChanged,
		"mode_changed", d.ModeChanged,
		"maps_changed", d.MapsChanged,
		"format_changed", d.FormatChanged,
	)
	return nil
}

// ReloadMaps re-reads the mapping files of the current config, for when they
// were edited in place.
func (e *Engine) ReloadMaps(ctx context.Context) error {
	ctx, span := observe.StartSpan(ctx, "engine.reload_maps")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.current.Load()
	err := e.swap(ctx, cur.cfg, cur, true)
	e.recordReload(ctx, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	observe.WithSpan(ctx, e.logger).Info("engine: mapping tables reloaded")
	return nil
}

// OnConfigChange applies new. Its signature matches the [config.NewWatcher]
// callback.
func (e *Engine) OnConfigChange(_, new *config.Config) {
	ctx, span := observe.StartSpan(context.Background(), "engine.config_change")
	defer span.End()

	if err := e.Reload(ctx, new); err != nil {
		observe.WithSpan(ctx, e.logger).Error("engine: reload failed, keeping previous configuration", "err", err)
	}
}

// swap builds and publishes a state for cfg. e.mu must be held.
func (e *Engine) swap(ctx context.Context, cfg *config.Config, cur *state, reloadTables bool) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	t := cur.tables
	if reloadTables {
		var err error
		if t, err = e.loadTables(ctx, cfg); err != nil {
			return err
		}
	}

	st, err := e.build(cfg, t)
	if err != nil {
		return err
	}
	e.applyLogLevel(cfg)
	e.current.Store(st)
	return nil
}

func (e *Engine) build(cfg *config.Config, t tables) (*state, error) {
	mode := cfg.EffectiveMode()
	format, err := cfg.Formatting()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	var seg *segment.Segmenter
	if t.segments != nil {
		seg = segment.New(t.segments, segment.WithIgnored(cfg.IgnoredSymbols()))
	}
	r, err := transcript.NewResolver(mode, t.lexicon, seg)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	opts := []transcript.Option{
		transcript.WithMetrics(e.metrics),
		transcript.WithLogger(e.logger),
	}
	if cfg.Suggest && mode.UsesLexicon() && t.lexicon != nil {
		opts = append(opts, transcript.WithSuggester(lexicon.NewSuggester(t.lexicon)))
	}
	p, err := transcript.New(format, r, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &state{cfg: cfg, tables: t, pipeline: p}, nil
}

// loadTables reads the lexicon and segment files in parallel.
func (e *Engine) loadTables(ctx context.Context, cfg *config.Config) (tables, error) {
	start := time.Now()
	mode := cfg.EffectiveMode()

	var t tables
	eg, egCtx := errgroup.WithContext(ctx)

	if mode.UsesLexicon() {
		eg.Go(func() error {
			path := cfg.ResolvePath(cfg.Lexicon)
			if path == "" {
				t.lexicon = lexicon.New(nil)
				return nil
			}
			if err := egCtx.Err(); err != nil {
				return err
			}
			l, err := lexicon.LoadFile(path)
			if err != nil {
				return fmt.Errorf("engine: load lexicon %q: %w", path, err)
			}
			t.lexicon = l
			return nil
		})
	}

	if mode.UsesSegmenter() {
		eg.Go(func() error {
			path := cfg.ResolvePath(cfg.Segments)
			if path == "" {
				t.segments = segment.EnglishIPA()
				return nil
			}
			if err := egCtx.Err(); err != nil {
				return err
			}
			m, err := segment.LoadMapFile(path)
			if err != nil {
				return fmt.Errorf("engine: load segments %q: %w", path, err)
			}
			t.segments = m
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return tables{}, err
	}
	observe.WithSpan(ctx, e.logger).Debug("engine: tables loaded", "elapsed", time.Since(start))
	return t, nil
}

func (e *Engine) applyLogLevel(cfg *config.Config) {
	if e.levelVar != nil {
		e.levelVar.Set(cfg.LogLevel.SlogLevel())
	}
}

func (e *Engine) recordReload(ctx context.Context, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	e.metrics.RecordReload(ctx, status)
}
