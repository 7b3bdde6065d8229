package customHttpClient

import (
	"net/http"
	"time"

	"github.com/documind/documind/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Pooled returns a client that shares the package transport so the embedding
// and LLM adapters reuse connections instead of re-dialing per request.
func Pooled(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
