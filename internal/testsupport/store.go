package testsupport

import (
	"context"
	"testing"
	"time"

	"migrunner/internal/config"
	"migrunner/internal/history"
	"migrunner/internal/preflight"
)

// MustOpenHistory opens the history store configured in cfg and registers
// cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordSession stores a session for customer with the given results.
func RecordSession(t testing.TB, store *history.Store, customer, migType string, startedAt time.Time, results ...preflight.Result) history.Session {
	t.Helper()

	session, err := store.Record(context.Background(), history.Session{
		CustomerDir: customer,
		MigType:     migType,
		StartedAt:   startedAt,
		Ready:       preflight.Ready(results),
		Results:     results,
	})
	if err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return session
}
