package groq

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/customHttpClient"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag/llm"
	"github.com/documind/documind/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const maxRetries = 3

var logger *logger_i.Logger
var once sync.Once
var groqClient *llmClient

type llmClient struct {
	api       openai.Client
	modelName string
}

// GetGroqClient returns the process-wide Groq completion client. Groq speaks
// the OpenAI wire protocol, so this is openai-go pointed at the Groq base
// URL. Returns nil when the API key is missing so the caller can fail
// startup.
func GetGroqClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		if apikey == "" {
			logger.Error("Missing Groq API key")
			return
		}
		api := openai.NewClient(
			option.WithAPIKey(apikey),
			option.WithBaseURL(config.GroqBaseURL),
			option.WithHTTPClient(customHttpClient.Pooled(config.LLMRequestTimeout)),
		)
		groqClient = &llmClient{api: api, modelName: modelName}
		logger.Info("Groq client created", "model", modelName)
	})

	if groqClient == nil {
		return nil
	}
	return groqClient
}

// Complete runs the prompt with bounded retry: transient provider failures
// (429, 5xx, network) back off exponentially with jitter, capped at
// maxRetries attempts.
func (c *llmClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			base := time.Duration(attempt*attempt) * time.Second
			jitter := time.Duration(rand.Int64N(int64(base/2 + 1)))
			backoff := base + jitter
			logger.Warn("Retrying LLM call", "attempt", attempt+1, "backoff", backoff)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", commonModels.ErrGeneration, ctx.Err())
			case <-time.After(backoff):
			}
		}

		res, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.modelName),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(config.ModelTemperature),
		})
		if err != nil {
			lastErr = err
			if transient(err) && attempt < maxRetries {
				logger.Warn("LLM call failed, will retry", "error", err)
				continue
			}
			return "", fmt.Errorf("%w: %v", commonModels.ErrGeneration, err)
		}

		if len(res.Choices) == 0 {
			return "", fmt.Errorf("%w: provider returned no choices", commonModels.ErrGeneration)
		}
		return res.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w after %d retries: %v", commonModels.ErrGeneration, maxRetries, lastErr)
}

func transient(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests || apierr.StatusCode >= 500
	}
	//no structured API error means the request never got a response
	return true
}
