package config_test

import (
	"testing"

	"github.com/MrWong99/orthographer/internal/config"
	"github.com/MrWong99/orthographer/internal/transcript"
)

func ptr[T any](v T) *T { return &v }

func baseConfig() *config.Config {
	return &config.Config{
		LogLevel: config.LogInfo,
		Mode:     transcript.ModeWordToOrthography,
		Lexicon:  "words.txt",
		BaseDir:  "/etc/orthographer",
	}
}

func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()

	d := config.Diff(baseConfig(), baseConfig())
	if d.Changed() {
		t.Errorf("expected no changes, got %+v", d)
	}
}

func TestDiff_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		check   func(d config.ConfigDiff) bool
		rebuild bool
	}{
		{
			name:   "log level",
			mutate: func(c *config.Config) { c.LogLevel = config.LogDebug },
			check: func(d config.ConfigDiff) bool {
				return d.LogLevelChanged && d.NewLogLevel == config.LogDebug
			},
		},
		{
			name:    "mode",
			mutate:  func(c *config.Config) { c.Mode = transcript.ModeWordToPhonetic },
			check:   func(d config.ConfigDiff) bool { return d.ModeChanged && !d.MapsChanged },
			rebuild: true,
		},
		{
			name:    "lexicon path",
			mutate:  func(c *config.Config) { c.Lexicon = "other.txt" },
			check:   func(d config.ConfigDiff) bool { return d.MapsChanged },
			rebuild: true,
		},
		{
			name:    "base dir moves relative paths",
			mutate:  func(c *config.Config) { c.BaseDir = "/srv/orthographer" },
			check:   func(d config.ConfigDiff) bool { return d.MapsChanged },
			rebuild: true,
		},
		{
			name:    "ignored symbols",
			mutate:  func(c *config.Config) { c.Ignored = ptr("") },
			check:   func(d config.ConfigDiff) bool { return d.MapsChanged },
			rebuild: true,
		},
		{
			name:    "format",
			mutate:  func(c *config.Config) { c.Format.MaxLineLength = ptr(40) },
			check:   func(d config.ConfigDiff) bool { return d.FormatChanged && !d.MapsChanged },
			rebuild: true,
		},
		{
			name:    "suggest",
			mutate:  func(c *config.Config) { c.Suggest = true },
			check:   func(d config.ConfigDiff) bool { return d.SuggestChanged },
			rebuild: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next := baseConfig()
			tc.mutate(next)
			d := config.Diff(baseConfig(), next)
			if !tc.check(d) {
				t.Errorf("unexpected diff %+v", d)
			}
			if !d.Changed() {
				t.Error("Changed() = false, want true")
			}
			if d.NeedsRebuild() != tc.rebuild {
				t.Errorf("NeedsRebuild() = %v, want %v", d.NeedsRebuild(), tc.rebuild)
			}
		})
	}
}

func TestDiff_EquivalentSpellingsAreEqual(t *testing.T) {
	t.Parallel()

	old := baseConfig()
	old.Mode = ""
	next := baseConfig()
	next.Format.MaxLineLength = ptr(100)
	next.Ignored = ptr("/ˈˌ,")

	if d := config.Diff(old, next); d.Changed() {
		t.Errorf("defaults spelled out should not count as changes, got %+v", d)
	}
}
