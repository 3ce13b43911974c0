package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/db"
	"github.com/emilianohg/launchtracker/internal/storage"
)

var _ storage.KV = (*KVRepo)(nil)

func TestKVRepo_SetGetDelete(t *testing.T) {
	repo := NewKVRepo(db.NewTestDB(t))

	_, found, err := repo.Get("creative-launch-tracker")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set("creative-launch-tracker", "[]"))
	v, found, err := repo.Get("creative-launch-tracker")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", v)

	// Upsert overwrites.
	require.NoError(t, repo.Set("creative-launch-tracker", `[{"id":"a"}]`))
	v, _, err = repo.Get("creative-launch-tracker")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, repo.Delete("creative-launch-tracker"))
	_, found, err = repo.Get("creative-launch-tracker")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing key is not an error.
	require.NoError(t, repo.Delete("nope"))
}

func TestKVRepo_List(t *testing.T) {
	repo := NewKVRepo(db.NewTestDB(t))
	require.NoError(t, repo.Set("b", "1234"))
	require.NoError(t, repo.Set("a", "x"))

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, 1, entries[0].Size)
	assert.Equal(t, "b", entries[1].Key)
	assert.Equal(t, 4, entries[1].Size)
}

func TestKVRepo_DarkModeRoundTrip(t *testing.T) {
	repo := NewKVRepo(db.NewTestDB(t))
	keys := storage.NewKeys("")

	require.NoError(t, storage.SaveDarkMode(repo, keys, true))
	assert.True(t, storage.LoadDarkMode(repo, keys))
}
