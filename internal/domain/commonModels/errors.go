package commonModels

import "errors"

// Pipeline error taxonomy. Every layer wraps these with %w so the boundary
// can map them to HTTP statuses with errors.Is.
var (
	ErrExtraction      = errors.New("document extraction failed")
	ErrEmbedding       = errors.New("embedding failed")
	ErrIndex           = errors.New("vector index misuse")
	ErrSessionNotFound = errors.New("session not found")
	ErrGeneration      = errors.New("answer generation failed")
	ErrConfiguration   = errors.New("missing configuration")
)

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsExtraction(err error) bool {
	return errors.Is(err, ErrExtraction)
}

func IsGeneration(err error) bool {
	return errors.Is(err, ErrGeneration)
}
