package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "window", cfg.Chunker.Type)
		assert.Equal(t, 500, cfg.Chunker.Size)
		assert.Equal(t, 100, cfg.Chunker.Overlap)
		assert.Equal(t, "tfidf", cfg.Embedder.Type)
		assert.Equal(t, "memory", cfg.VectorStore.Type)
		assert.Equal(t, 3, cfg.Retrieval.TopK)
		assert.Equal(t, "none", cfg.LLM.Type)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		body := `
chunker:
  type: window
  size: 800
  overlap: 200
embedder:
  type: openai
retrieval:
  top_k: 5
llm:
  type: openai
  temperature: 0.7
`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 800, cfg.Chunker.Size)
		assert.Equal(t, 200, cfg.Chunker.Overlap)
		assert.Equal(t, 5, cfg.Retrieval.TopK)

		require.NotNil(t, cfg.Embedder.OpenAI)
		assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
		assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)

		require.NotNil(t, cfg.LLM.OpenAI)
		assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.OpenAI.Model)
		assert.Equal(t, 256, cfg.LLM.MaxTokens)
		assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)
		assert.InDelta(t, 1.0, cfg.LLM.TopP, 1e-6)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub", "config.yaml")
		cfg := defaultConfig()
		cfg.Retrieval.TopK = 7
		require.NoError(t, Save(path, cfg))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Retrieval.TopK)
		assert.Equal(t, cfg.Chunker, loaded.Chunker)
	})
}
