package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritaslab/veritas/internal/client/api"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestStoreRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	store := NewStore(".veritas")

	saved := &api.Session{
		OperatorID: "SOC-ALPHA",
		Token:      "tok",
		Expiry:     time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "SOC-ALPHA", loaded.OperatorID)
	assert.Equal(t, "tok", loaded.Token)
}

func TestStoreLoadAbsentMarker(t *testing.T) {
	chdir(t, t.TempDir())

	loaded, err := NewStore(".veritas").Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStoreDiscardsExpiredMarker(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	store := NewStore(".veritas")

	require.NoError(t, store.Save(&api.Session{
		OperatorID: "SOC-ALPHA",
		Token:      "tok",
		Expiry:     time.Now().Add(-time.Minute),
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(filepath.Join(tmp, ".veritas", "session.json"))
	assert.True(t, os.IsNotExist(statErr), "expired marker must be removed")
}

func TestStoreDiscardsCorruptMarker(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	store := NewStore(".veritas")

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".veritas"), 0o770))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".veritas", "session.json"), []byte("{broken"), 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStoreClear(t *testing.T) {
	chdir(t, t.TempDir())
	store := NewStore(".veritas")

	require.NoError(t, store.Save(&api.Session{OperatorID: "X", Token: "t", Expiry: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, store.Clear(), "clearing an absent marker is fine")
}
