package testsupport

import (
	"path/filepath"
	"testing"

	"partsplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ExportDir = filepath.Join(base, "plans")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold sets the label matching threshold on the test config.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.SimilarityThreshold = threshold
	}
}

// WithCarryForward toggles the continuation policy on the test config.
func WithCarryForward(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.CarryForwardLabels = enabled
	}
}

// WithExtraCatalog points the test config at a user catalog file.
func WithExtraCatalog(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.ExtraPath = path
	}
}

// WithLLMKey sets an advisor API key on the test config.
func WithLLMKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = key
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
