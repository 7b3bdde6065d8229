package rag_test

import (
	"context"

	"github.com/documind/documind/internal/domain/commonModels"
)

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	// Control fields to simulate different behaviors
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)

	BatchCalls int
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{1, 0, 0}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	m.BatchCalls++
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Return unit vectors matching chunk count
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnComplete func(ctx context.Context, prompt string) (string, error)

	Calls      int
	LastPrompt string
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.OnComplete != nil {
		return m.OnComplete(ctx, prompt)
	}
	return "mocked llm response", nil
}

// MockIndex implements session.Index
type MockIndex struct {
	OnSearch func(query []float32, k int) ([]commonModels.ScoredPassage, error)
	OnLen    func() int
}

func (m *MockIndex) Search(query []float32, k int) ([]commonModels.ScoredPassage, error) {
	if m.OnSearch != nil {
		return m.OnSearch(query, k)
	}
	return nil, nil
}

func (m *MockIndex) Len() int {
	if m.OnLen != nil {
		return m.OnLen()
	}
	return 0
}
