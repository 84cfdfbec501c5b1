package search

import (
	"context"

	"github.com/sanad-labs/sanad/internal/domain"
)

// DocumentSource provides the stored corpus for scoring.
type DocumentSource interface {
	All(ctx context.Context) ([]domain.Document, error)
}

// Embedder vectorizes the query text.
type Embedder = domain.Embedder
