package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingClient is the subset of the OpenAI API the embedder needs,
// narrowed so tests can substitute a fake without touching global state.
type EmbeddingClient interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIConfig holds the embedder settings. The API key is read from
// the named environment variable when the client is first used.
type OpenAIConfig struct {
	Model     string
	APIKeyEnv string
	Timeout   time.Duration
}

// OpenAIEmbedder embeds text through the OpenAI embeddings API. The
// configuration is captured eagerly; the live client is materialized on
// the first call and reused for the process lifetime.
type OpenAIEmbedder struct {
	cfg OpenAIConfig

	mu     sync.Mutex
	client EmbeddingClient
}

func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIEmbedder{cfg: cfg}
}

// NewOpenAIEmbedderWithClient injects a prebuilt client, used by tests.
func NewOpenAIEmbedderWithClient(client EmbeddingClient, cfg OpenAIConfig) *OpenAIEmbedder {
	e := NewOpenAIEmbedder(cfg)
	e.client = client
	return e
}

func (e *OpenAIEmbedder) api() (EmbeddingClient, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		return e.client, nil
	}
	key := os.Getenv(e.cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", e.cfg.APIKeyEnv)
	}
	e.client = openai.NewClient(key)
	return e.client, nil
}

// Embed returns the vector for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in a single API call and returns vectors
// in input order.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	client, err := e.api()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(e.cfg.Model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.New("embedding count does not match input count")
	}
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("empty embedding for input %d", i)
		}
	}
	return vectors, nil
}
