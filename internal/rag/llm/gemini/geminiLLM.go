package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag/llm"
	"github.com/documind/documind/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		if apikey == "" {
			logger.Error("Missing Gemini API key")
			return
		}
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Debug("Gemini " + modelName + " client created")
		logger.Info("Gemini client created")
		go closeClient(ctx, geminiClient)
	}

}

func (c *llmClient) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := float32(config.ModelTemperature)
	contentConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		contentConfig,
	)
	if err != nil {
		logger.Error("Error generating content", "error", err)
		return "", fmt.Errorf("%w: %v", commonModels.ErrGeneration, err)
	}

	answer := result.Text()
	if answer == "" {
		return "", fmt.Errorf("%w: provider returned no text", commonModels.ErrGeneration)
	}
	return answer, nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
