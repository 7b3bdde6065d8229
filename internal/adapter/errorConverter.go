package adapter

import (
	"errors"
	"net/http"

	"github.com/documind/documind/internal/api"
	"github.com/documind/documind/internal/domain/commonModels"
)

// HttpStatusFor maps the pipeline's error classes onto HTTP status codes.
// Anything unclassified is a 500.
func HttpStatusFor(err error) int {
	switch {
	case commonModels.IsSessionNotFound(err):
		return http.StatusNotFound
	case commonModels.IsExtraction(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commonModels.ErrEmbedding),
		commonModels.IsGeneration(err):
		return http.StatusBadGateway
	case errors.Is(err, commonModels.ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    code,
			Message: message,
			Id:      id,
		},
	}
}
