package tfidf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docq/internal/domain"
)

func TestEmbedder(t *testing.T) {
	corpus := []string{
		"install the software by running setup",
		"restart the service after installing",
		"billing questions go to support",
	}

	t.Run("prepare fixes the dimension", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare(corpus))
		assert.Greater(t, e.Dimension(), 0)

		v, err := e.Embed(context.Background(), corpus[0])
		require.NoError(t, err)
		assert.Len(t, v, e.Dimension())
	})

	t.Run("same text embeds to the same vector", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare(corpus))

		a, err := e.Embed(context.Background(), "install setup")
		require.NoError(t, err)
		b, err := e.Embed(context.Background(), "install setup")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("batch preserves input order", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare(corpus))

		vectors, err := e.EmbedBatch(context.Background(), corpus)
		require.NoError(t, err)
		require.Len(t, vectors, len(corpus))
		for i, text := range corpus {
			single, err := e.Embed(context.Background(), text)
			require.NoError(t, err)
			assert.Equal(t, single, vectors[i])
		}
	})

	t.Run("vectors are unit length", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare(corpus))

		v, err := e.Embed(context.Background(), corpus[1])
		require.NoError(t, err)
		var norm float32
		for _, x := range v {
			norm += x * x
		}
		assert.InDelta(t, 1.0, norm, 1e-4)
	})

	t.Run("unknown terms embed to the zero vector", func(t *testing.T) {
		e := NewEmbedder()
		require.NoError(t, e.Prepare(corpus))

		v, err := e.Embed(context.Background(), "zebra quasar")
		require.NoError(t, err)
		for _, x := range v {
			assert.Zero(t, x)
		}
	})

	t.Run("embed before prepare fails with embedding error", func(t *testing.T) {
		e := NewEmbedder()
		_, err := e.Embed(context.Background(), "anything")
		var embErr *domain.EmbeddingError
		assert.ErrorAs(t, err, &embErr)
	})

	t.Run("empty corpus is rejected", func(t *testing.T) {
		e := NewEmbedder()
		err := e.Prepare(nil)
		var embErr *domain.EmbeddingError
		assert.ErrorAs(t, err, &embErr)
	})
}
