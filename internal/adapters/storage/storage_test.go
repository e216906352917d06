package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/tasklist/internal/infrastructure/config"
	"github.com/taskmaster/tasklist/internal/infrastructure/database"
	"github.com/taskmaster/tasklist/internal/ports"
)

func backends(t *testing.T) map[string]ports.KeyValueStorage {
	t.Helper()

	fileStorage, err := NewFileStorage(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	db, err := database.New(database.DriverSQLite, config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "tasklist.db"),
	})
	require.NoError(t, err)
	sqlStorage := NewSQLStorage(db)
	t.Cleanup(func() { _ = sqlStorage.Close() })

	return map[string]ports.KeyValueStorage{
		"memory": NewMemoryStorage(),
		"file":   fileStorage,
		"sqlite": sqlStorage,
	}
}

func TestStorage_GetSetRemove(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, ports.TodoStateKey)
			assert.ErrorIs(t, err, ports.ErrKeyNotFound)

			require.NoError(t, s.Set(ctx, ports.TodoStateKey, []byte(`{"todos":[]}`)))
			got, err := s.Get(ctx, ports.TodoStateKey)
			require.NoError(t, err)
			assert.Equal(t, `{"todos":[]}`, string(got))

			require.NoError(t, s.Set(ctx, ports.TodoStateKey, []byte(`{"todos":null}`)))
			got, err = s.Get(ctx, ports.TodoStateKey)
			require.NoError(t, err)
			assert.Equal(t, `{"todos":null}`, string(got))

			require.NoError(t, s.Set(ctx, ports.ThemeStateKey, []byte(`{"darkMode":true}`)))

			require.NoError(t, s.Remove(ctx, ports.TodoStateKey))
			_, err = s.Get(ctx, ports.TodoStateKey)
			assert.ErrorIs(t, err, ports.ErrKeyNotFound)

			// Removing twice is fine and other keys survive
			require.NoError(t, s.Remove(ctx, ports.TodoStateKey))
			got, err = s.Get(ctx, ports.ThemeStateKey)
			require.NoError(t, err)
			assert.Equal(t, `{"darkMode":true}`, string(got))
		})
	}
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStorage_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, ports.ThemeStateKey, []byte(`{"darkMode":false}`)))

	b, err := os.ReadFile(filepath.Join(dir, "theme.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"darkMode":false}`, string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are renamed away")

	assert.Error(t, s.Set(ctx, "../escape", []byte("x")))
}

func TestSQLStorage_Health(t *testing.T) {
	db, err := database.New(database.DriverSQLite, config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "health.db"),
	})
	require.NoError(t, err)
	s := NewSQLStorage(db)
	t.Cleanup(func() { _ = s.Close() })

	var checker ports.HealthChecker = s
	require.NoError(t, checker.Ping(context.Background()))

	var reporter ports.ConnectionReporter = s
	info := reporter.ConnectionInfo()
	assert.Equal(t, database.DriverSQLite, info["driver"])
	assert.Equal(t, 1, info["max_open_connections"])
}

func TestOpen_Drivers(t *testing.T) {
	cfg := &config.Config{
		Storage:  config.StorageConfig{Driver: config.DriverSQLite, Dir: t.TempDir()},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "open.db")},
	}

	s, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLStorage{}, s)
	require.NoError(t, s.Close())

	cfg.Storage.Driver = config.DriverFile
	s, err = Open(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	cfg.Storage.Driver = "etcd"
	_, err = Open(cfg, nil)
	assert.Error(t, err)
}
