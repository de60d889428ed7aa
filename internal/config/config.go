// Package config provides the on-disk configuration schema, loader, diffing
// and polling file watcher for orthographer.
package config

import (
	"log/slog"
	"path/filepath"

	"github.com/MrWong99/orthographer/internal/reflow"
	"github.com/MrWong99/orthographer/internal/segment"
	"github.com/MrWong99/orthographer/internal/transcript"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// SlogLevel maps l to an [slog.Level]. An empty or unknown level maps to
// [slog.LevelInfo].
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DefaultMode is used when the mode field is empty.
const DefaultMode = transcript.ModeWordToOrthography

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// Mode selects the transform direction. Empty means [DefaultMode].
	Mode transcript.Mode `yaml:"mode"`

	// Lexicon is the path of a word/phonetic pair file. Relative paths are
	// resolved against BaseDir.
	Lexicon string `yaml:"lexicon"`

	// Segments is the path of a phonetic/orthography pair file. When empty
	// the built-in English IPA tables are used.
	Segments string `yaml:"segments"`

	// Ignored lists symbols dropped before segmentation. Nil means
	// [segment.DefaultIgnored]; an empty string ignores nothing.
	Ignored *string `yaml:"ignored"`

	// Suggest enables nearest-word suggestions for unknown words in reports.
	Suggest bool `yaml:"suggest"`

	// Format holds the reflow settings. Unset fields keep their defaults.
	Format FormatConfig `yaml:"format"`

	// BaseDir anchors relative paths. [Load] sets it to the directory of the
	// config file.
	BaseDir string `yaml:"-"`
}

// FormatConfig mirrors [reflow.Configuration]. Fields are pointers so that an
// explicit zero is distinguishable from an omitted value.
type FormatConfig struct {
	MaxLineLength   *int    `yaml:"max_line_length"`
	Delimiter       *string `yaml:"delimiter"`
	Stoppers        *string `yaml:"stoppers"`
	Specials        *string `yaml:"specials"`
	Capitalize      *bool   `yaml:"capitalize"`
	BreakLines      *bool   `yaml:"break_lines"`
	CapitalizeLines *bool   `yaml:"capitalize_lines"`
}

// EffectiveMode returns Mode, or [DefaultMode] when it is empty.
func (c *Config) EffectiveMode() transcript.Mode {
	if c.Mode == "" {
		return DefaultMode
	}
	return c.Mode
}

// ResolvePath returns p joined to BaseDir when p is relative. Empty paths
// stay empty.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// IgnoredSymbols returns the symbols the segmenter drops.
func (c *Config) IgnoredSymbols() string {
	if c.Ignored == nil {
		return segment.DefaultIgnored
	}
	return *c.Ignored
}

// Formatting builds the validated [reflow.Configuration] described by the
// format block. The error wraps [reflow.ErrInvalidConfig].
func (c *Config) Formatting() (reflow.Configuration, error) {
	f := c.Format
	var opts []reflow.Option
	if f.MaxLineLength != nil {
		opts = append(opts, reflow.WithMaxLineLength(*f.MaxLineLength))
	}
	if f.Delimiter != nil {
		opts = append(opts, reflow.WithDelimiter(*f.Delimiter))
	}
	if f.Stoppers != nil {
		opts = append(opts, reflow.WithStoppers(*f.Stoppers))
	}
	if f.Specials != nil {
		opts = append(opts, reflow.WithSpecials(*f.Specials))
	}
	if f.Capitalize != nil {
		opts = append(opts, reflow.WithCapitalize(*f.Capitalize))
	}
	if f.BreakLines != nil {
		opts = append(opts, reflow.WithBreakLines(*f.BreakLines))
	}
	if f.CapitalizeLines != nil {
		opts = append(opts, reflow.WithCapitalizeLines(*f.CapitalizeLines))
	}
	return reflow.NewConfiguration(opts...)
}
