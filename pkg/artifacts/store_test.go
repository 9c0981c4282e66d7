package artifacts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyRecord(t *testing.T) {
	store := NewStore(t.TempDir())

	record, err := store.Load("pisco-1")

	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Empty(t, record.Keys())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	record := Record{"tokenAddress": "terra1abc", "tokenCodeID": "42"}

	require.NoError(t, store.Save("pisco-1", record))

	loaded, err := store.Load("pisco-1")
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestSaveIsAtomicPerNetwork(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save("pisco-1", Record{"a": "1"}))
	require.NoError(t, store.Save("phoenix-1", Record{"b": "2"}))

	pisco, err := store.Load("pisco-1")
	require.NoError(t, err)
	phoenix, err := store.Load("phoenix-1")
	require.NoError(t, err)

	assert.Equal(t, Record{"a": "1"}, pisco)
	assert.Equal(t, Record{"b": "2"}, phoenix)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp", "temp files should be cleaned up")
	}
}

func TestLoadCorruptRecordReturnsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pisco-1.json"), []byte("{not json"), 0o600))

	_, err := store.Load("pisco-1")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
}

func TestLoadRejectsUnsafeNetworkName(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("../escape")

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
}

func TestRecordMergeAddsWithoutRemoving(t *testing.T) {
	record := Record{"tokenAddress": "terra1abc"}

	record.Merge(Record{"stakingAddress": "terra1def"})

	assert.Equal(t, []string{"stakingAddress", "tokenAddress"}, record.Keys())
	assert.True(t, record.Has("tokenAddress"))
}

func TestRecordUint64(t *testing.T) {
	record := Record{}
	record.SetUint64("tokenCodeID", 42)

	id, err := record.Uint64("tokenCodeID")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = record.Uint64("missing")
	assert.Error(t, err)

	record.Set("bad", "not-a-number")
	_, err = record.Uint64("bad")
	assert.Error(t, err)
}

func TestRecordCloneIsIndependent(t *testing.T) {
	record := Record{"a": "1"}
	clone := record.Clone()

	clone.Set("b", "2")

	assert.False(t, record.Has("b"))
	assert.True(t, clone.Has("a"))
}
