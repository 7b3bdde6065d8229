package api

type UploadResponse struct {
	SessionId  string `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FileName   string `json:"file_name" example:"report.pdf"`
	ChunkCount int    `json:"chunk_count" example:"42"`
	Message    string `json:"message" example:"Document indexed successfully"`
}

type ChatResponse struct {
	SessionId string `json:"session_id"`
	Answer    string `json:"answer"`
}

type SessionSummary struct {
	FileName   string `json:"file_name"`
	ChunkCount int    `json:"chunk_count"`
}

type SessionsResponse struct {
	SessionCount int                       `json:"session_count"`
	Sessions     map[string]SessionSummary `json:"sessions"`
}

type DeleteSessionResponse struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" example:"Session cleared"`
}

type ErrorResponse struct {
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"session_id not found"`
	Id      string `json:"id,omitempty"`
}

// requests---------------------

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}
