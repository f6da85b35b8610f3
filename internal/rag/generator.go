package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docrag/internal/domain"
)

// RefusalSentence is what the model is instructed to reply when the
// answer cannot be derived from the supplied context.
const RefusalSentence = "The information is not present in the context."

const systemPromptFormat = `You are an assistant that provides information.
Answer the user's query using only the context below.
If the query is a bare keyword, summarize the information related to it.
If the query is a question, answer it directly.
If the answer is not contained in the context, reply exactly: "` + RefusalSentence + `"

Context:
%s`

// ChatClient is the chat-completion capability the generator depends
// on; *openai.Client satisfies it and tests substitute a recorder.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GeneratorConfig holds the generation settings. The API key is read
// from the named environment variable when the client is first used.
type GeneratorConfig struct {
	Model       string
	APIKeyEnv   string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Generator produces an answer from a query and retrieved context
// passages through a fixed two-message prompting contract.
type Generator struct {
	cfg GeneratorConfig

	mu     sync.Mutex
	client ChatClient
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Generator{cfg: cfg}
}

// NewGeneratorWithClient injects a prebuilt chat client, used by tests.
func NewGeneratorWithClient(client ChatClient, cfg GeneratorConfig) *Generator {
	g := NewGenerator(cfg)
	g.client = client
	return g
}

func (g *Generator) chat() (ChatClient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	key := os.Getenv(g.cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", g.cfg.APIKeyEnv)
	}
	g.client = openai.NewClient(key)
	return g.client, nil
}

// Generate joins the context passages with blank lines, in the order
// received, and returns the model's answer verbatim. Failures surface
// as *domain.RAGError.
func (g *Generator) Generate(ctx context.Context, query string, contexts []string) (string, error) {
	client, err := g.chat()
	if err != nil {
		return "", domain.NewRAGError("generate answer", err)
	}
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	// The request marshals Temperature with omitempty, so an exact 0
	// would be dropped and the API would fall back to its own default.
	// The smallest positive float32 transmits an effective zero.
	temperature := float32(g.cfg.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	combined := strings.Join(contexts, "\n\n")
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Temperature: temperature,
		MaxTokens:   g.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPromptFormat, combined)},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", domain.NewRAGError("generate answer", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewRAGError("generate answer", errors.New("no completion choices returned"))
	}
	return resp.Choices[0].Message.Content, nil
}
