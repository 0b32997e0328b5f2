package domain

// Document is a single text file loaded into the pipeline.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a contiguous window of a source document used for indexing.
// StartOffset and EndOffset are character offsets into the source content,
// taken before whitespace trimming.
type Chunk struct {
	SourceID    string
	Text        string
	Index       int
	StartOffset int
	EndOffset   int
}

// IndexRecord is the (id, text, vector) triple stored in a vector index.
type IndexRecord struct {
	ID     string
	Text   string
	Vector []float32
}

// SearchResult is one retrieved chunk with its distance to the query
// vector. Lower distance means a closer match; the value is whatever
// metric the backing index uses, not a calibrated score.
type SearchResult struct {
	Text     string
	Distance float32
}
