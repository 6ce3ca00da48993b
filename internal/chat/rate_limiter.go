package chat

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Ensure RateLimitedProvider implements Provider.
var _ Provider = (*RateLimitedProvider)(nil)

// RateLimitedProvider bounds outbound completions with a token bucket.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

func (r *RateLimitedProvider) Name() string { return r.name }

func (r *RateLimitedProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Complete(ctx, messages)
}
