package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryPolicy bounds retries around a network dependency. Delay doubles
// after each failed attempt starting from BaseDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy is used when a zero policy is supplied.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultRetryPolicy.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultRetryPolicy.BaseDelay
	}
	return p
}

// retry runs fn up to MaxAttempts times with exponential backoff.
// Context cancellation stops immediately and is never retried.
func (p RetryPolicy) retry(ctx context.Context, fn func() error) error {
	p = p.normalized()

	var lastErr error
	delay := p.BaseDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("after %d attempts: %w", p.MaxAttempts, lastErr)
}

// RetryingEmbedder decorates an Embedder with bounded retry.
type RetryingEmbedder struct {
	inner  Embedder
	policy RetryPolicy
}

// NewRetryingEmbedder creates a retry decorator around inner.
func NewRetryingEmbedder(inner Embedder, policy RetryPolicy) *RetryingEmbedder {
	return &RetryingEmbedder{inner: inner, policy: policy.normalized()}
}

// Embed retries the inner embedder per the policy.
func (r *RetryingEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	var result EmbeddingResult
	err := r.policy.retry(ctx, func() error {
		var innerErr error
		result, innerErr = r.inner.Embed(ctx, text)
		return innerErr
	})
	if err != nil {
		return EmbeddingResult{}, err
	}
	return result, nil
}

// BatchEmbed retries the inner batch call per the policy. Falls back to
// sequential Embed when inner has no native batch endpoint.
func (r *RetryingEmbedder) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	var result BatchEmbeddingResult
	err := r.policy.retry(ctx, func() error {
		var innerErr error
		result, innerErr = BatchEmbed(ctx, r.inner, texts)
		return innerErr
	})
	if err != nil {
		return BatchEmbeddingResult{}, err
	}
	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (r *RetryingEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := r.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// RetryingGenerator decorates a Generator with bounded retry.
type RetryingGenerator struct {
	inner  Generator
	policy RetryPolicy
}

// NewRetryingGenerator creates a retry decorator around inner.
func NewRetryingGenerator(inner Generator, policy RetryPolicy) *RetryingGenerator {
	return &RetryingGenerator{inner: inner, policy: policy.normalized()}
}

// Generate retries the inner generator per the policy.
func (r *RetryingGenerator) Generate(ctx context.Context, prompt string) (GenerationResult, error) {
	var result GenerationResult
	err := r.policy.retry(ctx, func() error {
		var innerErr error
		result, innerErr = r.inner.Generate(ctx, prompt)
		return innerErr
	})
	if err != nil {
		return GenerationResult{}, err
	}
	return result, nil
}
