package vectorstore

import "docq/internal/domain"

// Storage persists (id, text, vector) records and answers nearest-neighbor
// queries. Search results come back ascending by distance (closest first)
// and never exceed topK. Clear wipes the whole collection and is idempotent.
type Storage interface {
	Init(dimension int) error
	Clear() error
	Upsert(records []domain.IndexRecord) error
	Search(vector []float32, topK int) ([]domain.SearchResult, error)
}
