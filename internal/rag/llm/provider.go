package llm

import "context"

// Provider is the single capability the pipeline needs from a language
// model: complete a prompt into text. Authentication and model selection are
// resolved once at startup, outside the pipeline.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
