package rag

import (
	"context"
	"fmt"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag/embedding"
	"github.com/documind/documind/internal/rag/embedding/googleEmbedding"
	"github.com/documind/documind/internal/rag/embedding/openaiEmbedding"
	"github.com/documind/documind/internal/rag/llm"
	"github.com/documind/documind/internal/rag/llm/gemini"
	"github.com/documind/documind/internal/rag/llm/groq"
)

// NewEmbedderFromEnv selects the embedding backend from EMBEDDING_PROVIDER.
// Called once at startup; a missing credential fails the process here rather
// than on the first upload.
func NewEmbedderFromEnv(ctx context.Context) (embedding.Embedder, error) {
	provider := config.EmbeddingProvider()
	switch provider {
	case "openai":
		client := openaiEmbedding.GetOpenAIEmbeddingClient(config.EmbeddingBaseURL(), config.EmbeddingModelName(), config.EmbeddingAPIKey())
		if client == nil {
			return nil, fmt.Errorf("%w: openai embedding client unavailable, set EMBEDDING_API_KEY or OPENAI_API_KEY", commonModels.ErrConfiguration)
		}
		return client, nil
	case "google":
		client := googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GeminiAPIKey())
		if client == nil {
			return nil, fmt.Errorf("%w: google embedding client unavailable, set GEMINI_API_KEY", commonModels.ErrConfiguration)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", commonModels.ErrConfiguration, provider)
	}
}

// NewLLMFromEnv selects the generation backend from LLM_PROVIDER.
func NewLLMFromEnv(ctx context.Context) (llm.Provider, error) {
	provider := config.LLMProvider()
	switch provider {
	case "groq":
		client := groq.GetGroqClient(config.GroqModelName, config.GroqAPIKey())
		if client == nil {
			return nil, fmt.Errorf("%w: groq client unavailable, set GROQ_API_KEY", commonModels.ErrConfiguration)
		}
		return client, nil
	case "gemini":
		client := gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GeminiAPIKey())
		if client == nil {
			return nil, fmt.Errorf("%w: gemini client unavailable, set GEMINI_API_KEY", commonModels.ErrConfiguration)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", commonModels.ErrConfiguration, provider)
	}
}
