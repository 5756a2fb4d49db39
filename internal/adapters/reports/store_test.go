package reports_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/adapters/reports"
	"go.trai.ch/ledger/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	store := reports.NewStore(filepath.Join(t.TempDir(), "reports"))

	changed, err := store.Put("debug", []byte(`{"BUNDLE": []}`))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := store.Get("debug")
	require.NoError(t, err)
	assert.JSONEq(t, `{"BUNDLE": []}`, string(got))
	assert.FileExists(t, store.Path("debug"))
}

func TestStore_GetMissing(t *testing.T) {
	store := reports.NewStore(t.TempDir())

	got, err := store.Get("release")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_UnchangedContentIsNotRewritten(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"APK": []}`)

	first := reports.NewStore(dir)
	changed, err := first.Put("debug", data)
	require.NoError(t, err)
	require.True(t, changed)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(first.Path("debug"), old, old))

	// A fresh store reads the fingerprint from disk.
	second := reports.NewStore(dir)
	changed, err = second.Put("debug", data)
	require.NoError(t, err)
	assert.False(t, changed)

	info, err := os.Stat(second.Path("debug"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	changed, err = second.Put("debug", []byte(`{"APK": [], "BUNDLE": []}`))
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	_, err := reports.NewStore(dir).Put("release", []byte("{}"))
	require.NoError(t, err)

	got, err := reports.NewStore(dir).Get("release")
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), got)
}

func TestStore_At(t *testing.T) {
	store := reports.NewStore(t.TempDir())
	other := filepath.Join(t.TempDir(), "nested")

	moved := store.At(other)
	assert.Equal(t, other, moved.Dir())

	_, err := moved.Put("debug", []byte("{}"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(other, "debug.json"))
}

func TestStore_InvalidVariant(t *testing.T) {
	store := reports.NewStore(t.TempDir())

	for _, variant := range []string{"", "..", "a/b"} {
		_, err := store.Put(variant, []byte("{}"))
		require.ErrorIs(t, err, domain.ErrUnknownVariant, variant)
		_, err = store.Get(variant)
		require.ErrorIs(t, err, domain.ErrUnknownVariant, variant)
	}
}
