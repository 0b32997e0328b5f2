package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	write("b.txt", "bravo")
	write("a.md", "alpha")
	write("notes.pdf", "ignored")

	t.Run("directory load picks txt and md in sorted order", func(t *testing.T) {
		docs, err := New(nil).Load([]string{dir})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "alpha", docs[0].Content)
		assert.Equal(t, "bravo", docs[1].Content)
		assert.NotEqual(t, docs[0].ID, docs[1].ID)
	})

	t.Run("glob load", func(t *testing.T) {
		docs, err := New(nil).Load([]string{filepath.Join(dir, "*.txt")})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "bravo", docs[0].Content)
	})

	t.Run("no supported files is an error", func(t *testing.T) {
		empty := t.TempDir()
		_, err := New(nil).Load([]string{empty})
		assert.Error(t, err)
	})

	t.Run("missing single file is an error", func(t *testing.T) {
		_, err := New(nil).Load([]string{filepath.Join(dir, "missing.txt")})
		assert.Error(t, err)
	})
}
