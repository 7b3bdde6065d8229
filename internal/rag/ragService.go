package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/metrics"
	"github.com/documind/documind/internal/rag/embedding"
	"github.com/documind/documind/internal/rag/ingest"
	"github.com/documind/documind/internal/rag/llm"
	"github.com/documind/documind/internal/rag/vectorindex"
	"github.com/documind/documind/internal/session"
	"github.com/documind/documind/pkg/logger_i"
)

// Service is the whole retrieval core as seen by a front-end: index a
// document under a key, query it, clear it, list what is indexed. The
// boundary layers (HTTP handlers, TUI) hold a Service and nothing else.
type Service interface {
	Index(ctx context.Context, key string, filePath string, fileName string) (IndexResult, error)
	Query(ctx context.Context, key string, question string) (string, error)
	Clear(ctx context.Context, key string) bool
	ListSessions(ctx context.Context) []SessionInfo
}

type IndexResult struct {
	Key        string
	FileName   string
	ChunkCount int
	Cached     bool
}

type SessionInfo struct {
	Key        string
	FileName   string
	ChunkCount int
}

type service struct {
	sessions    *session.Store
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService constructor. The embedder and LLM provider are process-wide and
// shared read-only across every session; the session store is owned here.
func NewService(sessions *session.Store, llmProvider llm.Provider, em embedding.Embedder) Service {
	return &service{
		sessions:    sessions,
		llmProvider: llmProvider,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// Index runs extract -> chunk -> embed -> build and installs the session.
// The per-key build lock serializes concurrent uploads for one key, so only
// the first performs real work; a repeat upload returns the cached session
// without recomputing anything. A failed build leaves no partial session.
func (s *service) Index(ctx context.Context, key string, filePath string, fileName string) (IndexResult, error) {
	log := s.logger.With("key", key, "file", fileName)

	lock := s.sessions.BuildLock(key)
	lock.Lock()
	defer lock.Unlock()

	if cached, ok := s.sessions.Get(key); ok {
		log.Debug("Document already indexed, returning cached session")
		return IndexResult{Key: key, FileName: cached.Doc.Name, ChunkCount: cached.ChunkCount(), Cached: true}, nil
	}

	start := time.Now()
	pages, docType, err := ingest.ExtractDocument(filePath)
	metrics.CaptureExecutionMetrics("document_extraction", time.Since(start))
	if err != nil {
		return IndexResult{}, err
	}
	log.Debug("Extracted document", "type", docType, "pages", len(pages))

	chunks := ingest.PrepareChunks(pages, config.ChunkSize, config.ChunkOverlap)
	if len(chunks) == 0 {
		return IndexResult{}, fmt.Errorf("%w: document produced no passages", commonModels.ErrExtraction)
	}

	entries, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return IndexResult{}, err
	}

	index, err := vectorindex.Build(entries)
	if err != nil {
		return IndexResult{}, err
	}

	doc := commonModels.Document{
		Key:         key,
		Name:        fileName,
		PageCount:   len(pages),
		IngestedAt:  time.Now(),
		ContentType: docType,
	}
	s.sessions.Add(key, session.New(key, doc, index))
	log.Info("Session ready", "chunks", index.Len(), "dimension", index.Dimension())
	return IndexResult{Key: key, FileName: fileName, ChunkCount: index.Len()}, nil
}

// Query answers a question against one session's index: embed the question,
// retrieve top-k passages, build the grounded prompt, call the LLM. The
// canned no-context answer short-circuits the LLM entirely. Chat history is
// only appended once an answer exists, so a failed call never corrupts it.
func (s *service) Query(ctx context.Context, key string, question string) (string, error) {
	start := time.Now()
	status := "ok"
	defer func() { metrics.CaptureQueryMetrics(status, time.Since(start)) }()

	log := s.logger.With("key", key)

	sess, ok := s.sessions.Get(key)
	if !ok {
		status = "not_found"
		return "", fmt.Errorf("%w: %q", commonModels.ErrSessionNotFound, key)
	}

	queryVector, err := s.executeEmbeddingStep(ctx, question)
	if err != nil {
		status = "error"
		return "", err
	}

	matches, err := s.executeSearchStep(sess, queryVector)
	if err != nil {
		status = "error"
		return "", err
	}

	if len(matches) == 0 {
		log.Warn("No passages retrieved for query")
		return config.NoContextAnswer, nil
	}
	log.Debug("Retrieved passages", "count", len(matches), "top score", matches[0].Score)

	answer, err := s.executeLLMStep(ctx, matches, question)
	if err != nil {
		status = "error"
		return "", err
	}

	sess.AppendExchange(question, answer)
	return answer, nil
}

// Clear drops a session: index, embedder reference and chat history go with
// it. Reports whether the key existed.
func (s *service) Clear(ctx context.Context, key string) bool {
	removed := s.sessions.Remove(key)
	if removed {
		s.logger.Info("Session cleared", "key", key)
	}
	return removed
}

func (s *service) ListSessions(ctx context.Context) []SessionInfo {
	live := s.sessions.List()
	out := make([]SessionInfo, 0, len(live))
	for _, sess := range live {
		out = append(out, SessionInfo{
			Key:        sess.Key,
			FileName:   sess.Doc.Name,
			ChunkCount: sess.ChunkCount(),
		})
	}
	return out
}
