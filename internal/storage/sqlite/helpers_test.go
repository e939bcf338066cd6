package sqlite

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.May, 17, 10, 30, 0, 0, time.UTC)

func testToday() time.Time {
	return time.Date(2024, time.May, 17, 0, 0, 0, 0, time.UTC)
}

// setupTestStore opens a store on a temp file with a fake clock and a seeded
// random source.
func setupTestStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewStore(filepath.Join(t.TempDir(), "test.db"),
		WithClock(clock),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	require.NoError(t, store.Load(context.Background()))
	t.Cleanup(func() { store.Close() })
	return store, clock
}

// addNames adds each name and fails the test on error.
func addNames(t *testing.T, store *Store, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, store.Add(context.Background(), name))
	}
}

func exec(t *testing.T, store *Store, query string, args ...any) {
	t.Helper()
	_, err := store.GetDB().Exec(query, args...)
	require.NoError(t, err)
}

func activeNames(t *testing.T, store *Store) []string {
	t.Helper()
	names, err := store.GetDB().Query("SELECT name FROM names WHERE active = 1 ORDER BY rowid")
	require.NoError(t, err)
	defer names.Close()

	var out []string
	for names.Next() {
		var name string
		require.NoError(t, names.Scan(&name))
		out = append(out, name)
	}
	require.NoError(t, names.Err())
	return out
}
