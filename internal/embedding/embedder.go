package embedding

import "context"

// Embedder converts text into fixed-dimension numeric vectors.
// EmbedBatch is the primary entry point: ingestion embeds all chunks in a
// single call so providers can batch inference. Implementations may require
// a preparation phase over the corpus before embedding.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
