package domain

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Summarizer produces a brief overview of the ingested corpus.
type Summarizer interface {
	Summarize(documents []Document) string
}
