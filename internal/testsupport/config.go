package testsupport

import (
	"path/filepath"
	"testing"

	"loadmaster/internal/config"
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
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.PreviewBind = "127.0.0.1:0"

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

// WithExportEndpoint points remote exports at endpoint.
func WithExportEndpoint(endpoint string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Endpoint = endpoint
	}
}

// WithMission overrides the mission defaults for new workspaces.
func WithMission(mission config.Mission) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Mission = mission
	}
}

// WithRowsPerPage overrides document pagination.
func WithRowsPerPage(rows int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.RowsPerPage = rows
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
