package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "rpas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLiteStore(db)
}

func TestSQLiteStore_SetThenGet(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", []byte(`[{"id":"a"}]`)))

	v, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"a"}]`), v)
}

func TestSQLiteStore_GetAbsentReturnsNilNil(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	v, err := s.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteStore_SetUpsertsValue(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old")))
	require.NoError(t, s.Set(ctx, "k", []byte("new")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSQLiteStore_DeleteIsIdempotent(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "x", []byte("v")))
	require.NoError(t, s.Delete(ctx, "x"))

	v, err := s.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Delete(ctx, "x"))
}
