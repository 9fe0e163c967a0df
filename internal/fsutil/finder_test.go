package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b/second.hcl", "a/first.hcl", "a/notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	t.Run("finds matching files recursively, sorted", func(t *testing.T) {
		files, err := FindFilesByExtension(dir, ".hcl")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, filepath.Join(dir, "a/first.hcl"), files[0])
		assert.Equal(t, filepath.Join(dir, "b/second.hcl"), files[1])
	})

	t.Run("empty extension is rejected", func(t *testing.T) {
		_, err := FindFilesByExtension(dir, "")
		assert.Error(t, err)
	})

	t.Run("missing root is an error", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(dir, "missing"), ".hcl")
		assert.Error(t, err)
	})
}
