package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"docq/internal/domain"
)

var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Client embeds text through the OpenAI embeddings API.
type Client struct {
	client    *openai.Client
	model     string
	dimension int
}

// Config configures the OpenAI embeddings client. BaseURL may point at any
// OpenAI-compatible endpoint; the API key is read from APIKeyEnv.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: modelDimensions[cfg.Model],
	}, nil
}

func (c *Client) Name() string { return "openai" }

// Prepare is a no-op; remote models need no corpus pass. The dimension is
// confirmed from the first response.
func (c *Client) Prepare(corpus []string) error { return nil }

func (c *Client) Dimension() int { return c.dimension }

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: texts,
	})
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &domain.EmbeddingError{
			Err: fmt.Errorf("got %d embeddings for %d inputs", len(resp.Data), len(texts)),
		}
	}
	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, &domain.EmbeddingError{Err: errors.New("embedding index out of range")}
		}
		v := make([]float32, len(item.Embedding))
		copy(v, item.Embedding)
		vectors[item.Index] = v
	}
	if c.dimension == 0 && len(vectors[0]) > 0 {
		c.dimension = len(vectors[0])
	}
	return vectors, nil
}
