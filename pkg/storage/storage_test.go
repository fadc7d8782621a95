package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	file, err := NewFile(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)

	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "state", "regform.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStore_PutOverwritesSingleSlot(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, DefaultKey)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Put(ctx, DefaultKey, []byte(`{"id":41}`)))
			require.NoError(t, store.Put(ctx, DefaultKey, []byte(`{"id":42}`)))

			got, err := store.Get(ctx, DefaultKey)
			require.NoError(t, err)
			require.JSONEq(t, `{"id":42}`, string(got))
		})
	}
}

func TestStore_RejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, store.Put(ctx, "", []byte("{}")), ErrEmptyKey)
			_, err := store.Get(ctx, "")
			require.ErrorIs(t, err, ErrEmptyKey)
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "regform.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, DefaultKey, []byte(`{"id":42}`)))
	require.NoError(t, db.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.Equal(t, `{"id":42}`, string(got))
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte(`{"a":1}`)
	require.NoError(t, m.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(got))
	require.Equal(t, 1, m.Writes())
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "", "")
	require.NoError(t, err)
	require.IsType(t, &Memory{}, s)

	s, err = Open(ctx, "FILE", t.TempDir())
	require.NoError(t, err)
	require.IsType(t, &File{}, s)

	_, err = Open(ctx, "redis", "")
	require.Error(t, err)
}
