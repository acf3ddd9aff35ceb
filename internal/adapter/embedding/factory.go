package embedding

import (
	"fmt"
	"time"

	"law-quiz/internal/config"
	"law-quiz/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
	ollamaLLM "github.com/tmc/langchaingo/llms/ollama"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
)

const (
	SourceNone   = "none"
	SourceOllama = "ollama"
	SourceOpenAI = "openai"

	defaultOpenAIModel  = "text-embedding-3-small"
	defaultEmbeddingTTL = 168 * time.Hour
)

// NewService builds the embedding service selected by cfg.Embedding.Source.
// It returns (nil, nil) when embeddings are disabled.
func NewService(cfg *config.Config, c domain.Cache) (domain.EmbeddingService, error) {
	ecfg := cfg.Embedding
	ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Embedding, defaultEmbeddingTTL)

	switch ecfg.Source {
	case "", SourceNone:
		return nil, nil
	case SourceOllama:
		embedder, err := newOllamaEmbedder(ecfg.ServerURL, ecfg.Model)
		if err != nil {
			return nil, err
		}
		return newCachedEmbeddingService(embedder, SourceOllama, c, ttl), nil
	case SourceOpenAI:
		embedder, err := newOpenAIEmbedder(ecfg.APIKey, ecfg.Model)
		if err != nil {
			return nil, err
		}
		return newCachedEmbeddingService(embedder, SourceOpenAI, c, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported embedding source: %q", ecfg.Source)
	}
}

func newOllamaEmbedder(serverURL, modelName string) (embeddings.Embedder, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollamaLLM.New(
		ollamaLLM.WithModel(modelName),
		ollamaLLM.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama LLM client for embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic embedder from Ollama LLM: %w", err)
	}
	return embedder, nil
}

func newOpenAIEmbedder(apiKey, modelName string) (embeddings.Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		modelName = defaultOpenAIModel
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithEmbeddingModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI LLM client for embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic embedder from OpenAI LLM: %w", err)
	}
	return embedder, nil
}
