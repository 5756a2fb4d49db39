package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/adapters/fs"
)

func newInspector() *fs.Inspector {
	return fs.NewInspector(fs.NewHasher(fs.NewWalker(".git")))
}

func TestInspector_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.aab")
	writeFile(t, path, "bundle")

	status, err := newInspector().Inspect(path)
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.False(t, status.IsDir)
	assert.Equal(t, 1, status.Files)
	assert.Len(t, status.Digest, 16)

	writeFile(t, path, "signed bundle")
	changed, err := newInspector().Inspect(path)
	require.NoError(t, err)
	assert.NotEqual(t, status.Digest, changed.Digest)
}

func TestInspector_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.aab")

	status, err := newInspector().Inspect(path)
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.Empty(t, status.Digest)
	assert.Equal(t, path, status.Path)
}

func TestInspector_DirectoryDigestIsRelocatable(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first", "classes")
	second := filepath.Join(root, "second", "classes")
	for _, dir := range []string{first, second} {
		writeFile(t, filepath.Join(dir, "A.class"), "a")
		writeFile(t, filepath.Join(dir, "pkg", "B.class"), "b")
	}
	writeFile(t, filepath.Join(second, ".git", "HEAD"), "ignored")

	a, err := newInspector().Inspect(first)
	require.NoError(t, err)
	b, err := newInspector().Inspect(second)
	require.NoError(t, err)

	assert.True(t, a.IsDir)
	assert.Equal(t, 2, a.Files)
	assert.Equal(t, a.Digest, b.Digest)

	require.NoError(t, os.Rename(filepath.Join(second, "pkg", "B.class"), filepath.Join(second, "pkg", "C.class")))
	c, err := newInspector().Inspect(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest, c.Digest)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher(fs.NewWalker()).ComputeFileHash(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestHasher_CacheTracksModifications(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.jar")
	writeFile(t, path, "v1")
	hasher := fs.NewHasher(fs.NewWalker())

	first, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	again, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	writeFile(t, path, "version 2")
	changed, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}
