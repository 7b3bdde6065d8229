package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/metrics"
	"github.com/documind/documind/internal/rag/vectorindex"
	"github.com/documind/documind/internal/session"
)

// embedChunks turns passages into index entries, batching calls to the
// embedding provider. Whitespace-only passages are dropped up front since
// providers reject empty input. Any batch failure aborts the whole build.
func (s *service) embedChunks(ctx context.Context, chunks []commonModels.Passage) ([]vectorindex.Entry, error) {
	kept := make([]commonModels.Passage, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) != "" {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: all passages were blank", commonModels.ErrExtraction)
	}

	entries := make([]vectorindex.Entry, 0, len(kept))
	for lo := 0; lo < len(kept); lo += config.EmbeddingBatchSize {
		hi := lo + config.EmbeddingBatchSize
		if hi > len(kept) {
			hi = len(kept)
		}
		batch := kept[lo:hi]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		start := time.Now()
		vectors, err := s.embedder.BatchEmbedding(ctx, texts)
		metrics.CaptureExecutionMetrics("embedding", time.Since(start))
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("%w: provider returned %d vectors for %d inputs", commonModels.ErrEmbedding, len(vectors), len(batch))
		}

		for i, c := range batch {
			entries = append(entries, vectorindex.Entry{Passage: c, Vector: vectors[i]})
		}
	}
	return entries, nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	vector, err := s.embedder.GetEmbedding(ctx, question)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return nil, err
	}
	return vector, nil
}

func (s *service) executeSearchStep(sess *session.Session, queryVector []float32) ([]commonModels.ScoredPassage, error) {
	start := time.Now()
	matches, err := sess.Index.Search(queryVector, config.RetrievalTopK)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *service) executeLLMStep(ctx context.Context, matches []commonModels.ScoredPassage, question string) (string, error) {
	prompt := buildPrompt(matches, question)

	start := time.Now()
	answer, err := s.llmProvider.Complete(ctx, prompt)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))
	if err != nil {
		return "", err
	}
	return answer, nil
}

// buildPrompt assembles the grounded prompt: retrieved passages in rank
// order separated by blank lines, then the instruction and question.
func buildPrompt(matches []commonModels.ScoredPassage, question string) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Passage.Text
	}

	var b strings.Builder
	b.WriteString("Context information is below.\n")
	b.WriteString("---------------------\n")
	b.WriteString(strings.Join(parts, "\n\n"))
	b.WriteString("\n---------------------\n")
	b.WriteString("Given the context information above I want you to think step by step to answer the query in a crisp manner, in case you don't know the answer say 'I don't know!'.\n")
	b.WriteString("Query: ")
	b.WriteString(question)
	b.WriteString("\nAnswer: ")
	return b.String()
}
