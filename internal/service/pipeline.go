package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docq/internal/answer"
	"docq/internal/domain"
	"docq/internal/embedding"
	"docq/internal/vectorstore"
)

// Pipeline wires the chunker, embedder, vector store and answerer into the
// ingest and query paths. It owns no global state; every collaborator is an
// injected handle, so the whole pipeline can run against fakes.
type Pipeline struct {
	chunker  domain.Chunker
	embedder embedding.Embedder
	store    vectorstore.Storage
	answerer answer.Answerer
	log      *zap.Logger
	topK     int
}

// Response is the outcome of answering one question: the generated answer
// plus the retrieved chunks it was grounded on, in rank order.
type Response struct {
	Answer  string
	Sources []domain.SearchResult
}

// answerer may be nil for retrieval-only use.
func NewPipeline(chunker domain.Chunker, embedder embedding.Embedder, store vectorstore.Storage, answerer answer.Answerer, log *zap.Logger, topK int) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if topK <= 0 {
		topK = 3
	}
	return &Pipeline{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		answerer: answerer,
		log:      log,
		topK:     topK,
	}
}

// Ingest chunks every document in order, embeds all chunks in one batch
// call, clears the index and writes the full set of records. Ids are
// chunk_{i} over the global chunk sequence (document order, then chunk
// order), so they are only stable within one ingestion run. Any failure
// aborts the run; the index is never left half-written and unreported.
func (p *Pipeline) Ingest(ctx context.Context, documents []domain.Document) (int, error) {
	var chunks []domain.Chunk
	var texts []string
	for _, doc := range documents {
		docChunks, err := p.chunker.Chunk(doc)
		if err != nil {
			return 0, &domain.IngestionError{Err: fmt.Errorf("chunking %s: %w", doc.ID, err)}
		}
		for _, ch := range docChunks {
			chunks = append(chunks, ch)
			texts = append(texts, ch.Text)
		}
		p.log.Debug("chunked document", zap.String("source", doc.ID), zap.Int("chunks", len(docChunks)))
	}
	if len(chunks) == 0 {
		if err := p.store.Clear(); err != nil {
			return 0, &domain.IngestionError{Err: err}
		}
		p.log.Warn("no chunks produced", zap.Int("documents", len(documents)))
		return 0, nil
	}

	if err := p.embedder.Prepare(texts); err != nil {
		return 0, &domain.IngestionError{Err: err}
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, &domain.IngestionError{Err: err}
	}
	dimension := p.embedder.Dimension()
	if dimension == 0 {
		dimension = len(vectors[0])
	}

	// Full-replace indexing: wipe the collection before every write so
	// repeated runs never accumulate stale entries.
	if err := p.store.Clear(); err != nil {
		return 0, &domain.IngestionError{Err: err}
	}
	if err := p.store.Init(dimension); err != nil {
		return 0, &domain.IngestionError{Err: err}
	}
	records := make([]domain.IndexRecord, len(chunks))
	for i, ch := range chunks {
		records[i] = domain.IndexRecord{
			ID:     fmt.Sprintf("chunk_%d", i),
			Text:   ch.Text,
			Vector: vectors[i],
		}
	}
	if err := p.store.Upsert(records); err != nil {
		return 0, &domain.IngestionError{Err: err}
	}
	p.log.Info("ingested documents",
		zap.Int("documents", len(documents)),
		zap.Int("chunks", len(chunks)),
		zap.Int("dimension", dimension),
		zap.String("embedder", p.embedder.Name()),
	)
	return len(chunks), nil
}

// Retrieve embeds the query and returns the topK nearest chunks, ascending
// by distance. A blank query returns an empty result without touching the
// embedder or the store. Embedding and index failures degrade to an empty
// result: a lost retrieval must not take the whole interaction down.
func (p *Pipeline) Retrieve(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}
	if topK <= 0 {
		topK = p.topK
	}
	vector, err := p.embedder.Embed(ctx, query)
	if err != nil {
		p.log.Error("query embedding failed", zap.Error(&domain.RetrievalError{Err: err}))
		return []domain.SearchResult{}, nil
	}
	results, err := p.store.Search(vector, topK)
	if err != nil {
		p.log.Error("index search failed", zap.Error(&domain.RetrievalError{Err: err}))
		return []domain.SearchResult{}, nil
	}
	return results, nil
}

// Answer retrieves context for the question and hands it to the answerer in
// rank order. With no context retrieved the answerer is still invoked; its
// system prompt makes it say it does not know. A generation failure is
// returned as a placeholder answer, never as a crash.
func (p *Pipeline) Answer(ctx context.Context, question string) (Response, error) {
	results, err := p.Retrieve(ctx, question, p.topK)
	if err != nil {
		return Response{}, err
	}
	if p.answerer == nil {
		return Response{Sources: results}, nil
	}
	contextChunks := make([]string, len(results))
	for i, r := range results {
		contextChunks[i] = r.Text
	}
	text, err := p.answerer.Answer(ctx, contextChunks, question)
	if err != nil {
		p.log.Error("answer generation failed", zap.Error(err))
		return Response{
			Answer:  "Error: could not get an answer from the model.",
			Sources: results,
		}, nil
	}
	return Response{Answer: text, Sources: results}, nil
}

// HasAnswerer reports whether answer generation is configured.
func (p *Pipeline) HasAnswerer() bool { return p.answerer != nil }
