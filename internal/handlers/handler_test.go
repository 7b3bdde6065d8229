package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/documind/documind/internal/api"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag"
)

// mockRagService implements rag.Service
type mockRagService struct {
	OnIndex func(ctx context.Context, key string, filePath string, fileName string) (rag.IndexResult, error)
	OnQuery func(ctx context.Context, key string, question string) (string, error)
	OnClear func(ctx context.Context, key string) bool
	OnList  func(ctx context.Context) []rag.SessionInfo

	IndexCalls int
}

func (m *mockRagService) Index(ctx context.Context, key string, filePath string, fileName string) (rag.IndexResult, error) {
	m.IndexCalls++
	if m.OnIndex != nil {
		return m.OnIndex(ctx, key, filePath, fileName)
	}
	return rag.IndexResult{Key: key, FileName: fileName, ChunkCount: 1}, nil
}

func (m *mockRagService) Query(ctx context.Context, key string, question string) (string, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, key, question)
	}
	return "mocked answer", nil
}

func (m *mockRagService) Clear(ctx context.Context, key string) bool {
	if m.OnClear != nil {
		return m.OnClear(ctx, key)
	}
	return false
}

func (m *mockRagService) ListSessions(ctx context.Context) []rag.SessionInfo {
	if m.OnList != nil {
		return m.OnList(ctx)
	}
	return nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestChatHandler_UnknownSessionGetsUploadGuidance(t *testing.T) {
	mock := &mockRagService{
		OnQuery: func(ctx context.Context, key string, question string) (string, error) {
			return "", fmt.Errorf("%w: %q", commonModels.ErrSessionNotFound, key)
		},
	}
	Init(mock)

	w := postJSON(t, ChatHandler, `{"session_id":"ghost","message":"anything?"}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status got %d, want %d", w.Code, http.StatusNotFound)
	}

	var res api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if !strings.Contains(res.Error.Message, "upload a document first") {
		t.Errorf("error message lacks upload guidance: %q", res.Error.Message)
	}
}

func TestChatHandler_MissingFields(t *testing.T) {
	Init(&mockRagService{})

	for _, body := range []string{`{}`, `{"session_id":"x"}`, `{"message":"hi"}`, `not json`} {
		w := postJSON(t, ChatHandler, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status got %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestChatHandler_Success(t *testing.T) {
	mock := &mockRagService{
		OnQuery: func(ctx context.Context, key string, question string) (string, error) {
			return "grounded answer", nil
		},
	}
	Init(mock)

	w := postJSON(t, ChatHandler, `{"session_id":"sess-1","message":"where?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status got %d, want %d", w.Code, http.StatusOK)
	}
	var res api.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if res.Answer != "grounded answer" || res.SessionId != "sess-1" {
		t.Errorf("unexpected response: %+v", res)
	}
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("document", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, writer.FormDataContentType()
}

func TestUploadHandler_UnsupportedType(t *testing.T) {
	mock := &mockRagService{}
	Init(mock)

	body, contentType := multipartUpload(t, "image.png", []byte("not a document"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	UploadHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if mock.IndexCalls != 0 {
		t.Errorf("unsupported upload reached the indexing pipeline")
	}
}

func TestUploadHandler_Success(t *testing.T) {
	t.Cleanup(func() { os.RemoveAll("temporary_data") })

	mock := &mockRagService{
		OnIndex: func(ctx context.Context, key string, filePath string, fileName string) (rag.IndexResult, error) {
			return rag.IndexResult{Key: key, FileName: fileName, ChunkCount: 7}, nil
		},
	}
	Init(mock)

	body, contentType := multipartUpload(t, "doc.txt", []byte("some document text"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	UploadHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status got %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	var res api.UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if res.ChunkCount != 7 || res.SessionId == "" || res.FileName != "doc.txt" {
		t.Errorf("unexpected response: %+v", res)
	}
}

func TestDeleteSessionHandler(t *testing.T) {
	mock := &mockRagService{
		OnClear: func(ctx context.Context, key string) bool {
			return key == "known"
		},
	}
	Init(mock)

	router := chi.NewRouter()
	router.Delete("/session/{id}", DeleteSessionHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/session/known", nil))
	if w.Code != http.StatusOK {
		t.Errorf("known session: status got %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/session/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status got %d, want %d", w.Code, http.StatusNotFound)
	}
}
