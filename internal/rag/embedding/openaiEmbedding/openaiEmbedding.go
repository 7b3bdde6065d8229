package openaiEmbedding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/customHttpClient"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag/embedding"
	"github.com/documind/documind/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	api   openai.Client
	model string
}

// GetOpenAIEmbeddingClient returns the process-wide embedding client for any
// OpenAI-compatible embeddings endpoint. Returns nil when the API key is
// missing so the caller can fail startup.
func GetOpenAIEmbeddingClient(baseURL string, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if apikey == "" {
			logger.Error("Missing embedding API key")
			return
		}
		api := openai.NewClient(
			option.WithAPIKey(apikey),
			option.WithBaseURL(baseURL),
			option.WithHTTPClient(customHttpClient.Pooled(config.EmbeddingRequestTimeout)),
		)
		embeddingClient = &client{api: api, model: modelName}
		logger.Info("OpenAI-compatible embedding client created", "model", modelName)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return embeddingClient
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty input text", commonModels.ErrEmbedding)
	}

	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(query)},
	})
	if err != nil {
		logger.Error("Error getting embedding", "error", err)
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEmbedding, err)
	}
	if len(res.Data) == 0 {
		return nil, fmt.Errorf("%w: provider returned no embedding", commonModels.ErrEmbedding)
	}
	return embedding.Normalize(toFloat32(res.Data[0].Embedding)), nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			return nil, fmt.Errorf("%w: empty input text in batch", commonModels.ErrEmbedding)
		}
	}

	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
	})
	if err != nil {
		logger.Error("Error getting batch embeddings", "error", err, "batch size", len(chunks))
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEmbedding, err)
	}
	if len(res.Data) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", commonModels.ErrEmbedding, len(res.Data), len(chunks))
	}

	// The provider tags each embedding with its input index; place by index
	// rather than trusting response order.
	vectors := make([][]float32, len(chunks))
	for _, d := range res.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", commonModels.ErrEmbedding, d.Index)
		}
		vectors[d.Index] = embedding.Normalize(toFloat32(d.Embedding))
	}
	return vectors, nil
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
