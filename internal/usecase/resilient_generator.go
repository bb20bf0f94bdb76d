package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/DavidBolaji/rag-project/internal/domain/repository"
)

// ResilientGenerator wraps a primary text generator with retries and a
// one-shot fallback model so a flaky provider does not fail the whole turn.
type ResilientGenerator struct {
	primary    repository.TextGenerator
	fallback   repository.TextGenerator // the "Plan B" model
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
}

func NewResilientGenerator(primary, fallback repository.TextGenerator) *ResilientGenerator {
	return &ResilientGenerator{
		primary:    primary,
		fallback:   fallback,
		maxRetries: 2, // Total 3 attempts for Primary
		baseDelay:  500 * time.Millisecond,
		timeout:    25 * time.Second, // Global cap per generation
	}
}

func (r *ResilientGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	// Scoped timeout so one slow request doesn't hang the whole server
	resCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.executeWithRetry(resCtx, r.primary, prompt)
	if err == nil {
		return text, nil
	}

	fmt.Printf("[RELIABILITY] Primary exhausted. Switching to FALLBACK. Error: %v\n", err)

	// If primary fails, the fallback model gets exactly one attempt.
	text, err = r.fallback.Generate(resCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("both primary and fallback failed: %w", err)
	}
	return text, nil
}

func (r *ResilientGenerator) executeWithRetry(ctx context.Context, g repository.TextGenerator, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		text, err := g.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !r.isRetryable(err) || attempt == r.maxRetries {
			break
		}

		wait := r.calculateBackoff(attempt)
		select {
		case <-time.After(wait):
			continue
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (r *ResilientGenerator) isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	// Retry on Rate Limits (429) and Server Errors (5xx)
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "deadline")
}

func (r *ResilientGenerator) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}
