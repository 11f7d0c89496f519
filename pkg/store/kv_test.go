package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	sqliteKV, err := OpenSQLite(filepath.Join(t.TempDir(), DatabaseFile))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func TestKVSetGetRemove(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Apply(Set("a", "1"), Set("b", "two")))
			v, ok, err := kv.Get("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "1", v)

			require.NoError(t, kv.Apply(Set("a", "3"), Remove("b")))
			v, _, _ = kv.Get("a")
			assert.Equal(t, "3", v)
			_, ok, _ = kv.Get("b")
			assert.False(t, ok)

			require.NoError(t, kv.Apply(Remove("never-set")))
		})
	}
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, first.Apply(Set(KeyLastDay, "Sun Oct 18 2026")))

	second, err := NewFileKV(dir)
	require.NoError(t, err)
	v, ok, err := second.Get(KeyLastDay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Sun Oct 18 2026", v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are renamed away")
	assert.Equal(t, StateFile, entries[0].Name())
}

func TestFileKVCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFile), []byte("{not: [yaml"), 0644))

	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	_, _, err = kv.Get("a")
	assert.Error(t, err)

	require.NoError(t, kv.Apply(Set("a", "1")), "writes replace a corrupt document")
	v, ok, err := kv.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DatabaseFile)
	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Apply(Set("k", "v")))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	v, ok, err := second.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteInMemory(t *testing.T) {
	kv, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Apply(Set("k", "v")))
	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
