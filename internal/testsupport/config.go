package testsupport

import (
	"path/filepath"
	"testing"

	"reshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Templates.Filename = "$title$.$ext$"
	cfg.Templates.DuplicateSuffix = " ($index$)"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithDryRun toggles dry-run on the test config.
func WithDryRun() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Rename.DryRun = true
	}
}

// WithFilenameTemplate overrides the filename template on the test config.
func WithFilenameTemplate(format string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Templates.Filename = format
	}
}
