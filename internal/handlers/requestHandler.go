package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/documind/documind/internal/adapter/utils"
	"github.com/documind/documind/internal/api"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/rag/ingest"
)

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// HealthHandler godoc
// @Summary      Liveness check
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadHandler godoc
// @Summary      Upload a document and build its session index
// @Description  Receives a file via multipart/form-data, extracts and embeds it, and returns the session key to query it with. Re-uploading under the same session_id returns the cached session.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        session_id  formData  string  false  "Session key to index under; generated when omitted"
// @Param        document    formData  file    true   "The PDF, DOCX, TXT or RTF file to index"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse "Missing file or file too large"
// @Failure      422  {object}  api.ErrorResponse "No extractable text in the document"
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	sessionKey := r.FormValue("session_id")
	if sessionKey == "" {
		sessionKey = utils.GetNewUUID()
		logRH.Debug("New upload session", "sessionKey:", sessionKey)
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, sessionKey, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	if !ingest.SupportedDocument(fileMetadata.Filename) {
		logRH.Warn("Unsupported document type", "file", fileMetadata.Filename)
		WriteErrorResponse(w, http.StatusBadRequest, sessionKey, "Unsupported document type. Upload a PDF, DOCX, TXT or RTF file.")
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, sessionKey, errString)
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, sessionKey, "Storage error")
		return
	}

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		destinationFileWriter.Close()
		WriteErrorResponse(w, http.StatusInternalServerError, sessionKey, "Write error")
		return
	}
	destinationFileWriter.Close()

	//the file only exists for the duration of indexing
	defer func() {
		if err := os.Remove(tempFilePath); err != nil {
			logRH.Warn("Couldn't remove temp file", "path", tempFilePath, "error", err)
		}
	}()

	result, err := ragService.Index(r.Context(), sessionKey, tempFilePath, fileMetadata.Filename)
	if err != nil {
		writePipelineError(w, sessionKey, err)
		return
	}

	message := "Document indexed successfully"
	if result.Cached {
		message = "Document already indexed"
	}
	writeJsonResponse(w, http.StatusOK, api.UploadResponse{
		SessionId:  result.Key,
		FileName:   result.FileName,
		ChunkCount: result.ChunkCount,
		Message:    message,
	})
}

// ChatHandler godoc
// @Summary      Ask a question against an indexed document
// @Description  Embeds the question, retrieves the closest passages from the session's index and returns a grounded answer.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest  true  "Session key and question"
// @Success      200      {object}  api.ChatResponse
// @Failure      400      {object}  api.ErrorResponse "Missing session_id or message"
// @Failure      404      {object}  api.ErrorResponse "Unknown session_id"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the Chat handler reader :", err)
		}
	}(request.Body)

	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !validateChatRequest(requestData) {
		logRH.Warn("Bad Chat Request: ", "error:", err, "request data:", requestData)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionId, "session_id and message are required")
		return
	}

	answer, err := ragService.Query(request.Context(), requestData.SessionId, requestData.Message)
	if err != nil {
		writePipelineError(w, requestData.SessionId, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, api.ChatResponse{
		SessionId: requestData.SessionId,
		Answer:    answer,
	})
}

// SessionsHandler godoc
// @Summary      List indexed sessions
// @Produce      json
// @Success      200  {object}  api.SessionsResponse
// @Router       /sessions [get]
func SessionsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	live := ragService.ListSessions(r.Context())
	sessions := make(map[string]api.SessionSummary, len(live))
	for _, s := range live {
		sessions[s.Key] = api.SessionSummary{
			FileName:   s.FileName,
			ChunkCount: s.ChunkCount,
		}
	}
	writeJsonResponse(w, http.StatusOK, api.SessionsResponse{
		SessionCount: len(sessions),
		Sessions:     sessions,
	})
}

// DeleteSessionHandler godoc
// @Summary      Clear a session
// @Description  Drops the session's index and chat history. The key can be reused by uploading again.
// @Produce      json
// @Param        id   path      string  true  "Session key"
// @Success      200  {object}  api.DeleteSessionResponse
// @Failure      404  {object}  api.ErrorResponse "Unknown session key"
// @Router       /session/{id} [delete]
func DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	if idString == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "session id is required")
		return
	}

	if !ragService.Clear(r.Context(), idString) {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Session not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.DeleteSessionResponse{
		SessionId: idString,
		Message:   "Session cleared",
	})
}
