// Package narrative writes an optional prose digest of a report's date range
// using a language model. It defines a provider-agnostic LLM interface with an
// OpenAI implementation and a deterministic mock for testing. The digest is
// decorative: report generation never fails because of it.
package narrative

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM is the interface to a language model. Implementations must be stateless
// and safe for concurrent use.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig holds common provider options.
type LLMConfig struct {
	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string

	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// APIKey is the provider authentication key.
	APIKey string
}

// DefaultLLMConfig returns sensible defaults for a short report digest.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:     "gpt-4o-mini",
		MaxTokens: 400,
	}
}
