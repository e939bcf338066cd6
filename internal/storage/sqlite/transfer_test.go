package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/models"
	"github.com/julianstephens/praylist/internal/storage"
	"github.com/julianstephens/praylist/internal/transfer"
)

func TestBulkImportNames(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	result, err := store.BulkImport(ctx, [][]string{{"X"}, {"Y"}})
	require.NoError(t, err)
	assert.Equal(t, models.ImportResult{Format: models.ImportFormatNames, Imported: 2}, result)

	result, err = store.BulkImport(ctx, [][]string{{"X"}, {"Z"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"X"}, result.Skipped)

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, names)

	rec, err := store.Get(ctx, "Z")
	require.NoError(t, err)
	assert.Equal(t, testToday(), rec.Created)
	assert.Equal(t, constants.SentinelDate, rec.Last)
}

func TestBulkImportSkipsDuplicatesWithinFile(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	result, err := store.BulkImport(ctx, [][]string{{"A"}, {"B"}, {"A"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"A"}, result.Skipped)
}

func TestBulkImportRecords(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	addNames(t, store, "Test person 1")

	result, err := store.BulkImport(ctx, [][]string{
		{"Test person 1", "False", "False", "2018-11-01", "2000-01-01", "0"},
		{"Test person 9", "True", "True", "2018-11-01", "2019-02-03", "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ImportFormatRecords, result.Format)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"Test person 1"}, result.Skipped)

	rec, err := store.Get(ctx, "Test person 9")
	require.NoError(t, err)
	assert.Equal(t, models.Record{
		Name:      "Test person 9",
		Active:    false,
		PrayedFor: true,
		Created:   time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC),
		Last:      time.Date(2019, 2, 3, 0, 0, 0, 0, time.UTC),
		Count:     5,
	}, rec, "imported records are never active")

	existing, err := store.Get(ctx, "Test person 1")
	require.NoError(t, err)
	assert.Equal(t, testToday(), existing.Created, "skipped row leaves the original untouched")
}

func TestBulkImportMalformedIsFatal(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	tests := map[string][][]string{
		"bad width":      {{"a", "b"}},
		"mixed widths":   {{"Alice"}, {"Bob", "extra"}},
		"bad date":       {{"Alice", "False", "False", "yesterday", "2000-01-01", "0"}},
		"short record":   {{"Alice", "False", "False", "2018-11-01", "2000-01-01", "0"}, {"Bob"}},
		"negative count": {{"Alice", "False", "False", "2018-11-01", "2000-01-01", "-3"}},
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := store.BulkImport(ctx, rows)
			require.Error(t, err)
			assert.True(t, storage.IsFault(err))
			assert.ErrorIs(t, err, transfer.ErrMalformedRow)
		})
	}

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "nothing from a malformed import is committed")
}

func TestBulkImportEmpty(t *testing.T) {
	store, _ := setupTestStore(t)
	result, err := store.BulkImport(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, clock := setupTestStore(t)
	addNames(t, src, "Alice", "Bob", "Carol", `Dan "the man", Jr.`)
	require.NoError(t, src.MarkProcessed(ctx, "Alice"))
	clock.Advance(72 * time.Hour)
	require.NoError(t, src.MarkProcessed(ctx, "Alice"))
	require.NoError(t, src.MarkProcessed(ctx, "Carol"))
	_, err := src.PickRandom(ctx, []string{"Alice", "Bob", "Carol"})
	require.NoError(t, err)

	exported, err := src.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, exported, 4)

	path := filepath.Join(t.TempDir(), "backup.csv")
	require.NoError(t, transfer.WriteFile(path, exported))
	rows, err := transfer.ReadFile(path)
	require.NoError(t, err)

	dst, _ := setupTestStore(t)
	result, err := dst.BulkImport(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Imported)

	imported, err := dst.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, imported, len(exported))
	for i := range exported {
		want := exported[i]
		want.Active = false
		assert.Equal(t, want, imported[i])
	}
}

func TestBulkImportLogsSkippedAtWarn(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	store := NewStore(filepath.Join(t.TempDir(), "test.db"),
		WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})),
	)
	require.NoError(t, store.Load(ctx))
	t.Cleanup(func() { store.Close() })
	addNames(t, store, "X")

	result, err := store.BulkImport(ctx, [][]string{{"X"}, {"Y"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, result.Skipped)
	assert.Contains(t, buf.String(), "Name already exists, skipping import")
	assert.Contains(t, buf.String(), "name=X")
}
