package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGetMissingKey(t *testing.T) {
	db := openTestDB(t)

	val, ok, err := db.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestSetGetRoundtrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("k", []byte(`{"hello":"world"}`)))

	val, ok, err := db.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"hello":"world"}`, string(val))
}

func TestSetOverwrites(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("k", []byte("old")))
	require.NoError(t, db.Set("k", []byte("new")))

	val, _, err := db.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(val))
}

func TestDelete(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("k", []byte("v")))
	require.NoError(t, db.Delete("k"))

	_, ok, err := db.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a missing key is fine
	require.NoError(t, db.Delete("k"))
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, db.Set("persisted", []byte("yes")))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()

	val, ok, err := db.Get("persisted")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "yes", string(val))
}
