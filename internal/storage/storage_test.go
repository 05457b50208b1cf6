package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/fitlog/internal/db"
	"github.com/saadjs/fitlog/internal/storage"
)

type keyLister interface {
	storage.Backend
	storage.Lister
}

func newSQLiteBackend(t *testing.T) *storage.SQLite {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "fitlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	return storage.NewSQLite(sqldb)
}

func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) keyLister{
		"memory": func(t *testing.T) keyLister { return storage.NewMemory() },
		"sqlite": func(t *testing.T) keyLister { return newSQLiteBackend(t) },
	}
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			b := build(t)

			_, ok, err := b.Get("fitlog:meals")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Set("fitlog:meals", `[]`))
			require.NoError(t, b.Set("fitlog:meals", `[{"id":"a"}]`))
			require.NoError(t, b.Set("other:meals", `x`))

			v, ok, err := b.Get("fitlog:meals")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"a"}]`, v)

			keys, err := b.Keys("fitlog:")
			require.NoError(t, err)
			assert.Equal(t, []string{"fitlog:meals"}, keys)

			require.NoError(t, b.Remove("fitlog:meals"))
			require.NoError(t, b.Remove("fitlog:meals"))
			_, ok, err = b.Get("fitlog:meals")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLiteReportsStorageErrorsAfterClose(t *testing.T) {
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "fitlog.db"))
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations(sqldb))
	b := storage.NewSQLite(sqldb)
	require.NoError(t, sqldb.Close())

	err = b.Set("fitlog:user", `{}`)
	require.Error(t, err)
	var se *storage.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "set", se.Op)
	assert.Equal(t, "fitlog:user", se.Key)
}
