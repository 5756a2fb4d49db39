package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ledger/internal/adapters/fs"
	"go.trai.ch/ledger/internal/core/domain"
)

func TestResolver_ResolveInputs(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"b.pro", "a.pro", "c.txt"} {
		writeFile(t, filepath.Join(tmpDir, "proguard", f), "-keep")
	}

	resolved, err := fs.NewResolver().ResolveInputs([]string{
		"src/main/resources",
		"proguard/*.pro",
		"src/main/resources",
	}, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/main/resources",
		filepath.Join(tmpDir, "proguard", "a.pro"),
		filepath.Join(tmpDir, "proguard", "b.pro"),
	}, resolved)
}

func TestResolver_NoMatches(t *testing.T) {
	resolved, err := fs.NewResolver().ResolveInputs([]string{"missing/*.jar"}, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.NotNil(t, resolved)
}

func TestResolver_AbsolutePattern(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "libs", "x.jar"), "jar")

	resolved, err := fs.NewResolver().ResolveInputs([]string{filepath.Join(tmpDir, "libs", "*.jar")}, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "libs", "x.jar")}, resolved)
}

func TestResolver_BadPattern(t *testing.T) {
	_, err := fs.NewResolver().ResolveInputs([]string{"libs/[.jar"}, t.TempDir())
	require.ErrorIs(t, err, domain.ErrInvalidProducer)
}
