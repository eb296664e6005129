package testsupport

import (
	"context"
	"testing"

	"sublint/internal/config"
	"sublint/internal/snapstore"
)

// MustOpenSnapStore opens the snap cache database for tests and registers cleanup.
func MustOpenSnapStore(t testing.TB, cfg *config.Config) *snapstore.Store {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store, err := snapstore.Open(context.Background(), cfg.SnapCachePath())
	if err != nil {
		t.Fatalf("snapstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
