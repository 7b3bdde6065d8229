package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//retrieval pipeline
	ChunkSize          = 1000
	ChunkOverlap       = 200
	RetrievalTopK      = 4
	EmbeddingBatchSize = 100

	//session cache - least recently queried session is evicted once full
	SessionCacheCapacity = 64

	//serverTimeouts
	//write timeout is generous because upload+index and the LLM call run inside the request
	ReadTimeout            = 10 * time.Second
	WriteTimeout           = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	MaxUploadSize = 32 << 20 //32mb

	//llm
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	GroqModelName = "llama-3.3-70b-versatile"

	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	ModelTemperature float64 = 0.1

	LLMRequestTimeout       = 30 * time.Second
	EmbeddingRequestTimeout = 60 * time.Second
	PageExtractTimeout      = 10 * time.Second

	//the google embedder is asked for this output size; the openai-compatible
	//embedder takes whatever the model returns and the index checks consistency
	EmbeddingOutputDimensionality int32 = 1536

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//returned without an LLM call when retrieval comes back empty
	NoContextAnswer = "I couldn't find relevant information in the document to answer your question. Please try rephrasing or asking about a different topic."
)

func GroqAPIKey() string {
	return os.Getenv("GROQ_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// LLMProvider selects the completion backend: "groq" (default) or "gemini".
func LLMProvider() string {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		return v
	}
	return "groq"
}

// EmbeddingProvider selects the embedding backend: "openai" (default, works
// against any OpenAI-compatible server) or "google".
func EmbeddingProvider() string {
	if v := os.Getenv("EMBEDDING_PROVIDER"); v != "" {
		return v
	}
	return "openai"
}

func EmbeddingBaseURL() string {
	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		return v
	}
	return "https://api.openai.com/v1"
}

func EmbeddingAPIKey() string {
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		return v
	}
	return os.Getenv("OPENAI_API_KEY")
}

func EmbeddingModelName() string {
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		return v
	}
	return "text-embedding-3-small"
}
