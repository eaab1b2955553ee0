package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Chain tries a prioritized list of providers until one answers. The
// provider list is fixed at startup from whichever credentials are
// configured; callers see a single Provider and never learn which
// concrete implementation produced a vector.
type Chain struct {
	providers []Provider
	log       *zap.Logger
}

// NewChain builds a chain over the given providers, in priority order.
func NewChain(log *zap.Logger, providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{providers: providers, log: log}, nil
}

// Embed returns the first successful provider result. Intermediate
// failures are logged and the next provider is tried; the last failure is
// returned when all providers fail.
func (c *Chain) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for _, p := range c.providers {
		vec, err := p.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
		c.log.Warn("embedding provider failed, trying next",
			zap.String("provider", p.Name()),
			zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// Name identifies the chain for logging.
func (c *Chain) Name() string { return "chain" }
