package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"docrag/internal/chunker"
	"docrag/internal/config"
	"docrag/internal/converter"
	"docrag/internal/embedding"
	"docrag/internal/index"
	"docrag/internal/pipeline"
	"docrag/internal/rag"
	"docrag/internal/summarizer"
	"docrag/internal/vectorstore"
	"docrag/internal/vectorstore/bolt"
	"docrag/internal/vectorstore/memory"
	"docrag/internal/vectorstore/qdrant"
)

// App is the application context: every component wired once from the
// configuration at startup and passed by handle to commands and the
// TUI. There are no package-level singletons.
type App struct {
	Config    *config.AppConfig
	Log       *zap.Logger
	Converter *converter.MarkdownConverter
	Pipeline  *pipeline.Processor
	Index     *index.Index
	RAG       *rag.RAG
	Digest    *summarizer.FrequencyDigest

	backend vectorstore.Backend
}

// New assembles the application from configuration. A nil logger means
// silent operation (used by the TUI, which owns the terminal).
func New(cfg *config.AppConfig, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	embedder := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
		Model:     cfg.Embedder.Model,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	splitter := chunker.NewMarkdownChunker(cfg.Chunker.MaxChars, cfg.Chunker.Overlap)
	ix := index.New(splitter, embedder, backend, log)

	generator := rag.NewGenerator(rag.GeneratorConfig{
		Model:       cfg.Generator.Model,
		APIKeyEnv:   cfg.Generator.APIKeyEnv,
		Temperature: cfg.Generator.Temperature,
		MaxTokens:   cfg.Generator.MaxTokens,
		Timeout:     time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})

	conv := converter.New()
	return &App{
		Config:    cfg,
		Log:       log,
		Converter: conv,
		Pipeline:  pipeline.New(conv, log),
		Index:     ix,
		RAG:       rag.New(ix, generator, log),
		Digest:    summarizer.New(3),
		backend:   backend,
	}, nil
}

func newBackend(cfg *config.AppConfig) (vectorstore.Backend, error) {
	switch cfg.VectorStore.Type {
	case "bolt", "":
		file := ""
		if cfg.VectorStore.Bolt != nil {
			file = cfg.VectorStore.Bolt.File
		}
		if file == "" {
			file = filepath.Join(cfg.Paths.Embeddings, "docrag.db")
		}
		return bolt.Open(file)
	case "memory":
		return memory.New(), nil
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		return qdrant.New(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

// EnsureDirectories creates the uploads/processed/embeddings layout.
func (a *App) EnsureDirectories() error {
	for _, dir := range []string{a.Config.Paths.Uploads, a.Config.Paths.Processed, a.Config.Paths.Embeddings} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the vector store backend.
func (a *App) Close() error { return a.backend.Close() }

// NewLogger builds the process logger from the configured level.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.Encoding = "console"
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
