package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docq/internal/domain"
)

func TestWindowChunker(t *testing.T) {
	t.Run("text shorter than window yields one chunk", func(t *testing.T) {
		c := NewWindowChunker(500, 100, 10)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: "  short text  "})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "short text", chunks[0].Text)
		assert.Equal(t, 0, chunks[0].Index)
		assert.Equal(t, 0, chunks[0].StartOffset)
		assert.Equal(t, len("  short text  "), chunks[0].EndOffset)
	})

	t.Run("empty and whitespace-only text yield no chunks", func(t *testing.T) {
		c := NewWindowChunker(500, 100, 10)
		for _, content := range []string{"", "   ", "\n\t\n"} {
			chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
			require.NoError(t, err)
			assert.Empty(t, chunks)
		}
	})

	t.Run("known offsets for 1000 chars with size 500 overlap 100", func(t *testing.T) {
		c := NewWindowChunker(500, 100, 10)
		content := strings.Repeat("x", 1000)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
		require.NoError(t, err)
		require.Len(t, chunks, 3)

		wantStart := []int{0, 400, 800}
		wantEnd := []int{500, 900, 1000}
		for i, ch := range chunks {
			assert.Equal(t, wantStart[i], ch.StartOffset)
			assert.Equal(t, wantEnd[i], ch.EndOffset)
			assert.Equal(t, i, ch.Index)
			assert.Equal(t, "doc", ch.SourceID)
		}
	})

	t.Run("consecutive starts advance by size minus overlap", func(t *testing.T) {
		c := NewWindowChunker(50, 10, 0)
		content := strings.Repeat("a", 327)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		for i := 1; i < len(chunks); i++ {
			assert.Equal(t, chunks[i-1].StartOffset+40, chunks[i].StartOffset)
		}
		assert.Equal(t, len(content), chunks[len(chunks)-1].EndOffset)
	})

	t.Run("offset ranges cover the full text without gaps", func(t *testing.T) {
		c := NewWindowChunker(64, 16, 0)
		content := strings.Repeat("coverage ", 100)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		assert.Equal(t, 0, chunks[0].StartOffset)
		for i := 1; i < len(chunks); i++ {
			assert.LessOrEqual(t, chunks[i].StartOffset, chunks[i-1].EndOffset)
		}
		assert.Equal(t, len(content), chunks[len(chunks)-1].EndOffset)
	})

	t.Run("terminates on short tail with large overlap", func(t *testing.T) {
		// 550 bytes with size 500: the second window reaches the end of
		// the text, so the cursor must stop instead of sliding back.
		c := NewWindowChunker(500, 499, 0)
		content := strings.Repeat("b", 550)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, 550, chunks[1].EndOffset)
	})

	t.Run("iteration count stays within the termination bound", func(t *testing.T) {
		for _, n := range []int{1, 99, 100, 101, 250, 999, 1000, 1001} {
			c := NewWindowChunker(100, 30, 0)
			content := strings.Repeat("z", n)
			chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
			require.NoError(t, err)
			bound := n/70 + 2
			assert.LessOrEqual(t, len(chunks), bound, "len=%d", n)
		}
	})

	t.Run("windows below minimum chunk size are skipped", func(t *testing.T) {
		// The tail window [80,86) trims to 2 chars, under the minimum.
		content := strings.Repeat("g", 80) + "  hi  "
		c := NewWindowChunker(80, 0, 10)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, 0, chunks[0].StartOffset)
	})

	t.Run("multibyte text splits on rune boundaries", func(t *testing.T) {
		c := NewWindowChunker(4, 1, 0)
		content := strings.Repeat("héllö ", 4)
		chunks, err := c.Chunk(domain.Document{ID: "doc", Content: content})
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		for _, ch := range chunks {
			assert.True(t, utf8.ValidString(ch.Text))
		}
		assert.Equal(t, utf8.RuneCountInString(content), chunks[len(chunks)-1].EndOffset)
	})

	t.Run("invalid settings fall back to sane defaults", func(t *testing.T) {
		c := NewWindowChunker(0, -1, -5)
		assert.Equal(t, 500, c.size)
		assert.Equal(t, 0, c.overlap)
		assert.Equal(t, 0, c.minChunkSize)

		c = NewWindowChunker(100, 200, 0)
		assert.Equal(t, 25, c.overlap)
	})
}
