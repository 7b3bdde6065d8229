package rag_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag"
	"github.com/documind/documind/internal/session"
)

func writeTestDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(t *testing.T) (rag.Service, *session.Store, *MockEmbedder, *MockLLM) {
	t.Helper()
	store := session.NewStore(8)
	embedder := &MockEmbedder{}
	provider := &MockLLM{}
	return rag.NewService(store, provider, embedder), store, embedder, provider
}

func TestIndex_SuccessAndIdempotency(t *testing.T) {
	svc, store, embedder, _ := newTestService(t)
	path := writeTestDocument(t, "The Eiffel Tower is located in Paris.")

	result, err := svc.Index(context.Background(), "sess-1", path, "doc.txt")
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.ChunkCount < 1 {
		t.Errorf("expected at least one chunk, got %d", result.ChunkCount)
	}
	if result.Cached {
		t.Errorf("first index reported as cached")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session in store, got %d", store.Len())
	}

	firstBatchCalls := embedder.BatchCalls

	// Same key again must hit the cache without recomputing anything
	again, err := svc.Index(context.Background(), "sess-1", path, "doc.txt")
	if err != nil {
		t.Fatalf("re-Index failed: %v", err)
	}
	if !again.Cached {
		t.Errorf("expected cached result on re-index")
	}
	if embedder.BatchCalls != firstBatchCalls {
		t.Errorf("re-index recomputed embeddings: %d calls, want %d", embedder.BatchCalls, firstBatchCalls)
	}
}

func TestIndex_EmbeddingFailureLeavesNoSession(t *testing.T) {
	svc, store, embedder, _ := newTestService(t)
	path := writeTestDocument(t, "Some document content here.")

	embedder.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
		return nil, errors.New("api limit")
	}

	if _, err := svc.Index(context.Background(), "sess-err", path, "doc.txt"); err == nil {
		t.Fatal("expected error from failed embedding")
	}
	if store.Len() != 0 {
		t.Errorf("failed build left a session behind")
	}

	// A later upload with the same key must retry, not hit a poisoned entry
	embedder.OnBatchEmbedding = nil
	result, err := svc.Index(context.Background(), "sess-err", path, "doc.txt")
	if err != nil {
		t.Fatalf("retry after failure did not work: %v", err)
	}
	if result.Cached {
		t.Errorf("retry wrongly reported cached")
	}
}

func TestIndex_UnsupportedDocument(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Index(context.Background(), "sess-bad", "picture.png", "picture.png")
	if !errors.Is(err, commonModels.ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestQuery_SessionNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Query(context.Background(), "no-such-session", "hello?")
	if !errors.Is(err, commonModels.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestQuery_GroundedAnswer(t *testing.T) {
	svc, store, _, provider := newTestService(t)
	path := writeTestDocument(t, "The Eiffel Tower is located in Paris. It was completed in 1889.")

	if _, err := svc.Index(context.Background(), "sess-q", path, "doc.txt"); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	provider.OnComplete = func(ctx context.Context, prompt string) (string, error) {
		return "Paris", nil
	}

	answer, err := svc.Query(context.Background(), "sess-q", "Where is the Eiffel Tower?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if answer != "Paris" {
		t.Errorf("answer got %q, want %q", answer, "Paris")
	}

	// The prompt must carry the retrieved passage and the question
	if !strings.Contains(provider.LastPrompt, "Eiffel Tower") {
		t.Errorf("prompt missing document content: %q", provider.LastPrompt)
	}
	if !strings.Contains(provider.LastPrompt, "Where is the Eiffel Tower?") {
		t.Errorf("prompt missing the question: %q", provider.LastPrompt)
	}
	if !strings.Contains(provider.LastPrompt, "Context information is below.") {
		t.Errorf("prompt missing instruction preamble: %q", provider.LastPrompt)
	}

	sess, ok := store.Get("sess-q")
	if !ok {
		t.Fatal("session vanished after query")
	}
	history := sess.History()
	if len(history) != 2 {
		t.Fatalf("expected question and answer in history, got %d messages", len(history))
	}
	if history[0].Role != commonModels.RoleUser || history[1].Role != commonModels.RoleAssistant {
		t.Errorf("history roles wrong: %+v", history)
	}
}

func TestQuery_NoMatchesSkipsLLM(t *testing.T) {
	svc, store, _, provider := newTestService(t)

	// A session whose index never finds anything
	empty := &MockIndex{
		OnSearch: func(query []float32, k int) ([]commonModels.ScoredPassage, error) {
			return nil, nil
		},
		OnLen: func() int { return 3 },
	}
	store.Add("sess-empty", session.New("sess-empty", commonModels.Document{Name: "doc.txt"}, empty))

	answer, err := svc.Query(context.Background(), "sess-empty", "anything?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if answer != config.NoContextAnswer {
		t.Errorf("expected the canned no-context answer, got %q", answer)
	}
	if provider.Calls != 0 {
		t.Errorf("LLM was called %d times on empty retrieval", provider.Calls)
	}
}

func TestQuery_LLMFailureLeavesHistoryUntouched(t *testing.T) {
	svc, store, _, provider := newTestService(t)
	path := writeTestDocument(t, "Document with content worth asking about.")

	if _, err := svc.Index(context.Background(), "sess-fail", path, "doc.txt"); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	provider.OnComplete = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("provider down")
	}

	if _, err := svc.Query(context.Background(), "sess-fail", "question?"); err == nil {
		t.Fatal("expected error from failed generation")
	}

	sess, _ := store.Get("sess-fail")
	if len(sess.History()) != 0 {
		t.Errorf("failed query polluted chat history")
	}
}

func TestQuery_SessionIsolation(t *testing.T) {
	svc, store, _, provider := newTestService(t)

	passageFor := func(text string) *MockIndex {
		return &MockIndex{
			OnSearch: func(query []float32, k int) ([]commonModels.ScoredPassage, error) {
				return []commonModels.ScoredPassage{
					{Passage: commonModels.Passage{Text: text}, Score: 0.9},
				}, nil
			},
			OnLen: func() int { return 1 },
		}
	}
	store.Add("sess-a", session.New("sess-a", commonModels.Document{Name: "a.txt"}, passageFor("Cats are mammals.")))
	store.Add("sess-b", session.New("sess-b", commonModels.Document{Name: "b.txt"}, passageFor("Rust is a programming language.")))

	if _, err := svc.Query(context.Background(), "sess-a", "about cats?"); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if strings.Contains(provider.LastPrompt, "Rust") {
		t.Errorf("session A prompt leaked session B content: %q", provider.LastPrompt)
	}

	if _, err := svc.Query(context.Background(), "sess-b", "about rust?"); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if strings.Contains(provider.LastPrompt, "Cats") {
		t.Errorf("session B prompt leaked session A content: %q", provider.LastPrompt)
	}
}

func TestClearAndList(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	path := writeTestDocument(t, "Whatever content.")

	if _, err := svc.Index(context.Background(), "sess-list", path, "doc.txt"); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	live := svc.ListSessions(context.Background())
	if len(live) != 1 || live[0].Key != "sess-list" {
		t.Errorf("unexpected session list: %+v", live)
	}

	if !svc.Clear(context.Background(), "sess-list") {
		t.Errorf("Clear reported the session missing")
	}
	if svc.Clear(context.Background(), "sess-list") {
		t.Errorf("second Clear should report missing")
	}
	if store.Len() != 0 {
		t.Errorf("store not empty after clear")
	}

	// Same key is reusable after a clear
	if _, err := svc.Index(context.Background(), "sess-list", path, "doc.txt"); err != nil {
		t.Fatalf("re-Index after clear failed: %v", err)
	}
}
