package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// setupTestContext returns a context over a SQLite store that has not been
// initialized yet, and the path of its database file.
func setupTestContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Out: out}, dbPath, out
}

// setupReadyContext returns an initialized and prepared context.
func setupReadyContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	ctx, dbPath, out := setupTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := ctx.Prepare("tester", "UTC"); err != nil {
		t.Fatalf("failed to prepare context: %v", err)
	}
	return ctx, dbPath, out
}
