package testsupport

import (
	"testing"

	"loadmaster/internal/config"
	"loadmaster/internal/logging"
	"loadmaster/internal/workspace"
)

// MustOpenWorkspace opens a workspace for tests and registers cleanup.
func MustOpenWorkspace(t testing.TB, cfg *config.Config) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("workspace.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = ws.Close()
	})
	return ws
}
