package domain

import (
	"context"
	"fmt"
)

// Embedder is the shared text vectorization contract between layers.
// Implementations must return unit-length (L2-normalized) vectors and be
// deterministic for identical input.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingHealthChecker verifies embedding provider availability.
type EmbeddingHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// ExpandingEmbedder is a decorator that rewrites text (normalization, alias
// expansion) before embedding. Outermost in the chain so the cache key sees
// the expanded text.
type ExpandingEmbedder struct {
	inner  Embedder
	expand func(string) string
}

// NewExpandingEmbedder creates a decorator applying expand before embedding.
func NewExpandingEmbedder(inner Embedder, expand func(string) string) *ExpandingEmbedder {
	return &ExpandingEmbedder{inner: inner, expand: expand}
}

// Embed expands the text and delegates to the inner embedder.
func (e *ExpandingEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, e.expand(text))
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("expanding embed: %w", err)
	}
	return result, nil
}
