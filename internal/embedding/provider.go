// Package embedding provides text embedding providers and vector similarity
// for the matching engine. Providers are interchangeable behind one
// interface; a prioritized chain picks whichever configured provider
// answers first, and the engine never learns which one did.
package embedding

import "context"

// Provider generates a dense vector representation of a text.
type Provider interface {
	// Embed returns the embedding vector for text. Any failure (transport,
	// credential, quota) is returned as an error; callers treat it as
	// signal-unavailable, never fatal.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Name identifies the provider for logging.
	Name() string
}

// ProviderError wraps a provider failure with the provider's name.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	return "embedding provider " + e.Provider + " failed: " + e.Cause.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
