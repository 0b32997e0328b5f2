package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docq/internal/answer"
	"docq/internal/chunker"
	"docq/internal/config"
	"docq/internal/domain"
	"docq/internal/embedding"
	openaiembed "docq/internal/embedding/openai"
	"docq/internal/embedding/tfidf"
	"docq/internal/loader"
	"docq/internal/service"
	"docq/internal/summarizer"
	"docq/internal/tui"
	"docq/internal/vectorstore"
	"docq/internal/vectorstore/memory"
	"docq/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docq/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: docq [--config=config.yaml] docs-dir-or-file [more ...]")
		os.Exit(1)
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	// Assemble components
	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "window", "":
		ch = chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap, cfg.Chunker.MinChunkSize)
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatal("unknown chunker", zap.String("type", cfg.Chunker.Type))
	}

	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		client, err := openaiembed.NewClient(openaiembed.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
		})
		if err != nil {
			log.Fatal("openai embedder init failed", zap.Error(err))
		}
		emb = client
	default:
		log.Fatal("unknown embedder", zap.String("type", cfg.Embedder.Type))
	}

	var st vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStorage()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatal("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatal("unknown vector store", zap.String("type", cfg.VectorStore.Type))
	}

	var ans answer.Answerer
	switch cfg.LLM.Type {
	case "none", "":
		// retrieval-only
	case "openai":
		a, err := answer.NewOpenAIAnswerer(answer.Config{
			BaseURL:   cfg.LLM.OpenAI.BaseURL,
			APIKeyEnv: cfg.LLM.OpenAI.APIKeyEnv,
			Generation: answer.GenerationConfig{
				Model:        cfg.LLM.OpenAI.Model,
				MaxTokens:    cfg.LLM.MaxTokens,
				Temperature:  cfg.LLM.Temperature,
				TopP:         cfg.LLM.TopP,
				Stop:         cfg.LLM.Stop,
				SystemPrompt: cfg.LLM.SystemPrompt,
			},
		})
		if err != nil {
			log.Fatal("openai answerer init failed", zap.Error(err))
		}
		ans = a
	default:
		log.Fatal("unknown llm", zap.String("type", cfg.LLM.Type))
	}

	docs, err := loader.New(log).Load(inputs)
	if err != nil {
		log.Fatal("loading documents failed", zap.Error(err))
	}

	pipeline := service.NewPipeline(ch, emb, st, ans, log, cfg.Retrieval.TopK)
	count, err := pipeline.Ingest(context.Background(), docs)
	if err != nil {
		log.Fatal("ingest failed", zap.Error(err))
	}

	overview := summarizer.NewKeywordSummarizer(cfg.Summary.MaxKeywords).Summarize(docs)
	summary := fmt.Sprintf("%s | %d chunks indexed", overview, count)

	m := tui.New(pipeline, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal("tui crashed", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	// Keep stdout free for the TUI.
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	return log
}
