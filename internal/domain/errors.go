package domain

// The pipeline distinguishes where a failure happened, because ingestion
// failures must abort the run while retrieval failures degrade to an empty
// context set. Each error wraps the underlying cause for errors.As/Is.

// EmbeddingError reports a failure of the embedding provider.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string { return "embedding: " + e.Err.Error() }
func (e *EmbeddingError) Unwrap() error { return e.Err }

// IndexWriteError reports a failed write to the vector index.
type IndexWriteError struct {
	Err error
}

func (e *IndexWriteError) Error() string { return "index write: " + e.Err.Error() }
func (e *IndexWriteError) Unwrap() error { return e.Err }

// IngestionError wraps any failure during the clear+embed+write sequence.
// An ingestion run that returns it must not be treated as partially applied.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string { return "ingestion: " + e.Err.Error() }
func (e *IngestionError) Unwrap() error { return e.Err }

// RetrievalError reports a failed nearest-neighbor query. Callers recover
// from it by continuing with an empty context set.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return "retrieval: " + e.Err.Error() }
func (e *RetrievalError) Unwrap() error { return e.Err }

// AnswererError reports a failure of the generation backend.
type AnswererError struct {
	Err error
}

func (e *AnswererError) Error() string { return "answerer: " + e.Err.Error() }
func (e *AnswererError) Unwrap() error { return e.Err }
