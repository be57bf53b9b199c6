package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	return repo
}

func TestSetAndGetItem(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "k1", []byte{0x01, 0x02}))

	v, err := r.GetItem(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, v)
}

func TestGetItem_Absent_ReturnsNilNil(t *testing.T) {
	r := setupRepo(t)

	v, err := r.GetItem(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSetItem_Upsert(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "k", []byte("old")))
	require.NoError(t, r.SetItem(ctx, "k", []byte("new")))

	v, err := r.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestDeleteItem(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "k", []byte("v")))
	require.NoError(t, r.DeleteItem(ctx, "k"))

	v, err := r.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	// Deleting an absent key is fine.
	require.NoError(t, r.DeleteItem(ctx, "k"))
}

func TestListAndClear(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "a", []byte("1")))
	require.NoError(t, r.SetItem(ctx, "b", []byte("2")))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, []byte("1"), all["a"])

	require.NoError(t, r.Clear(ctx))
	all, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReset_DeletesMatchingPrefixesOnly(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "session", []byte("tok")))
	require.NoError(t, r.SetItem(ctx, "cache:post", []byte("p")))
	require.NoError(t, r.SetItem(ctx, "cache:feed", []byte("f")))
	require.NoError(t, r.SetItem(ctx, "crCmp:answer:7:0", []byte("draft")))
	require.NoError(t, r.SetItem(ctx, "theme", []byte("dark")))

	require.NoError(t, r.Reset(ctx, "session", "cache:"))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, all, "crCmp:answer:7:0")
	assert.Contains(t, all, "theme")
}

func TestReset_LikeWildcardsAreLiteral(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "a%b", []byte("1")))
	require.NoError(t, r.SetItem(ctx, "axb", []byte("2")))

	// "%" in the prefix must not act as a wildcard.
	require.NoError(t, r.Reset(ctx, "a%"))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "axb")
}

func TestMigrations_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.db")
	ctx := context.Background()

	r1, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, r1.SetItem(ctx, "k", []byte("v")))

	// Reopening runs the migrations again without damage.
	r2, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	v, err := r2.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
