package config

// ConfigDiff describes what changed between two configs.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// ModeChanged is true when the effective transform direction differs.
	ModeChanged bool

	// MapsChanged is true when a different lexicon or segment table must be
	// loaded: a changed path or a changed ignored set.
	MapsChanged bool

	// FormatChanged is true when the reflow settings differ.
	FormatChanged bool

	SuggestChanged bool
}

// Changed reports whether any tracked field differs.
func (d ConfigDiff) Changed() bool {
	return d.LogLevelChanged || d.ModeChanged || d.MapsChanged || d.FormatChanged || d.SuggestChanged
}

// NeedsRebuild reports whether the transform pipeline must be rebuilt.
// A log level change alone does not.
func (d ConfigDiff) NeedsRebuild() bool {
	return d.ModeChanged || d.MapsChanged || d.FormatChanged || d.SuggestChanged
}

// Diff compares old and new configs and returns what changed. Paths are
// compared after resolution against each config's BaseDir.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.LogLevel != new.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.LogLevel
	}

	d.ModeChanged = old.EffectiveMode() != new.EffectiveMode()

	d.MapsChanged = old.ResolvePath(old.Lexicon) != new.ResolvePath(new.Lexicon) ||
		old.ResolvePath(old.Segments) != new.ResolvePath(new.Segments) ||
		old.IgnoredSymbols() != new.IgnoredSymbols()

	d.FormatChanged = formatChanged(old, new)
	d.SuggestChanged = old.Suggest != new.Suggest

	return d
}

func formatChanged(old, new *Config) bool {
	a, errA := old.Formatting()
	b, errB := new.Formatting()
	if errA != nil || errB != nil {
		return true
	}
	return !a.Equal(b)
}
