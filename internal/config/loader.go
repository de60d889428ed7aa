package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] whose BaseDir is the directory containing the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := decode(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Relative paths in the returned config resolve against the working
// directory. Useful in tests where configs are constructed from string
// literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	return decode(r, "")
}

func decode(r io.Reader, baseDir string) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.BaseDir = baseDir
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	mode := cfg.EffectiveMode()
	if !mode.IsValid() {
		errs = append(errs, fmt.Errorf("mode %q is invalid; valid values: word-to-phonetic, phonetic-to-orthography, word-to-orthography", cfg.Mode))
	} else {
		if mode.UsesLexicon() && cfg.Lexicon == "" {
			slog.Warn("no lexicon configured; every word will pass through unchanged", "mode", mode)
		}
		if !mode.UsesLexicon() && cfg.Lexicon != "" {
			slog.Warn("lexicon is configured but unused by mode", "mode", mode, "lexicon", cfg.Lexicon)
		}
		if !mode.UsesSegmenter() && (cfg.Segments != "" || cfg.Ignored != nil) {
			slog.Warn("segment settings are configured but unused by mode", "mode", mode)
		}
		if cfg.Suggest && !mode.UsesLexicon() {
			slog.Warn("suggest needs a lexicon mode; suggestions disabled", "mode", mode)
		}
	}

	if _, err := cfg.Formatting(); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}

	return errors.Join(errs...)
}
