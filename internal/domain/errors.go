package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank verification query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrInvalidArticle signals an ingestion item missing required fields.
	ErrInvalidArticle = errors.New("invalid article")
	// ErrDocumentNotFound signals a lookup for a URL with no stored document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrRateLimited signals a rate limit hit on an external provider.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding quota.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationFailed signals that every judgment model in the fallback
	// chain failed. Callers must surface this as a system error, never as an
	// unverified verdict.
	ErrGenerationFailed = errors.New("judgment generation failed")
)
