package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/storage"
)

func TestAdd(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Add(ctx, "Spiderman"))

	rec, err := store.Get(ctx, "Spiderman")
	require.NoError(t, err)
	assert.Equal(t, "Spiderman", rec.Name)
	assert.False(t, rec.Active)
	assert.False(t, rec.PrayedFor)
	assert.Equal(t, 0, rec.Count)
	assert.Equal(t, testToday(), rec.Created)
	assert.Equal(t, constants.SentinelDate, rec.Last)
	assert.True(t, rec.NeverPrayed())
}

func TestAddTrimsName(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	require.NoError(t, store.Add(ctx, "  Alice  "))
	_, err := store.Get(ctx, "Alice")
	assert.NoError(t, err)
}

func TestAddDuplicate(t *testing.T) {
	ctx := context.Background()
	store, clock := setupTestStore(t)

	require.NoError(t, store.Add(ctx, "Alice"))
	require.NoError(t, store.MarkProcessed(ctx, "Alice"))
	before, err := store.ExportAll(ctx)
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	err = store.Add(ctx, "Alice")
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	assert.False(t, storage.IsFault(err))

	after, err := store.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed add must not change the store")
}

func TestAddBlankName(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.ErrorIs(t, store.Add(context.Background(), "   "), storage.ErrInvalidName)
}

func TestGetNotFound(t *testing.T) {
	store, _ := setupTestStore(t)
	_, err := store.Get(context.Background(), "Nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListNamesInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	addNames(t, store, "Charlie", "Alice", "Bob")
	names, err = store.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Alice", "Bob"}, names)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	addNames(t, store, "Alice", "Bob", "Carol")
	require.NoError(t, store.MarkProcessed(ctx, "Alice"))

	require.NoError(t, store.Rename(ctx, map[string]string{"Alice": "Alicia", "Bob": "Bob"}))

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alicia", "Bob", "Carol"}, names, "rename keeps table order")

	rec, err := store.Get(ctx, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count, "rename keeps the record's state")
}

func TestRenameFailuresRollBack(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	addNames(t, store, "Alice", "Bob")

	err := store.Rename(ctx, map[string]string{"Alice": "Al", "Bob": "Al"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	err = store.Rename(ctx, map[string]string{"Alice": "Alicia", "Zed": "Zach"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.Rename(ctx, map[string]string{"Alice": " "})
	assert.ErrorIs(t, err, storage.ErrInvalidName)

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestSeedExamples(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)
	addNames(t, store, "Test person 6")

	added, err := store.SeedExamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, added, "existing example is skipped")

	rec, err := store.Get(ctx, "Test person 7")
	require.NoError(t, err)
	assert.Equal(t, testToday(), rec.Created)
	assert.Equal(t, testToday().AddDate(0, 0, -1000), rec.Last)
	assert.False(t, rec.PrayedFor)

	added, err = store.SeedExamples(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 4)
}
