package memory

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"docq/internal/domain"
)

// Storage is an in-memory vector store using brute-force cosine distance.
// Records are upserted by id; Search reports 1-cosine so that lower means
// closer, matching the remote backends.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	records   []domain.IndexRecord
	byID      map[string]int
}

func NewStorage() *Storage {
	return &Storage{byID: make(map[string]int)}
}

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	return nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.byID = make(map[string]int)
	return nil
}

func (s *Storage) Upsert(records []domain.IndexRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if len(r.Vector) != s.dimension {
			return &domain.IndexWriteError{
				Err: fmt.Errorf("record %s has dimension %d, want %d", r.ID, len(r.Vector), s.dimension),
			}
		}
	}
	for _, r := range records {
		if i, ok := s.byID[r.ID]; ok {
			s.records[i] = r
			continue
		}
		s.byID[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
	return nil
}

func (s *Storage) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	results := make([]domain.SearchResult, 0, len(s.records))
	for _, r := range s.records {
		results = append(results, domain.SearchResult{
			Text:     r.Text,
			Distance: 1 - cosineSimilarity(vector, r.Vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
