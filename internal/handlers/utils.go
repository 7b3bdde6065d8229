package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/documind/documind/internal/adapter"
	"github.com/documind/documind/internal/api"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/domain/commonModels"
	"github.com/documind/documind/internal/rag"
	"github.com/documind/documind/pkg/logger_i"
)

var logRH *logger_i.Logger
var ragService rag.Service

// Init wires the handlers to the retrieval service. Must run before the
// server starts accepting requests.
func Init(service rag.Service) {
	logRH = logger_i.NewLogger("Request Handler")
	ragService = service
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

// writePipelineError translates a retrieval pipeline error into a response.
// The raw error stays in the logs, the client gets the message.
func writePipelineError(w http.ResponseWriter, id string, err error) {
	code := adapter.HttpStatusFor(err)
	logRH.Error("Pipeline error", "id", id, "httpCode", code, "error", err)

	message := err.Error()
	if commonModels.IsSessionNotFound(err) {
		message = "Session not found. Please upload a document first."
	}
	WriteErrorResponse(w, code, id, message)
}

func validateContext(ctx context.Context) bool {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logRH.With("traceId:", trace)
	}
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func validateChatRequest(requestData api.ChatRequest) bool {
	return requestData.SessionId != "" && requestData.Message != ""
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}
