package verify

import (
	"context"

	"github.com/sanad-labs/sanad/internal/domain"
)

// Searcher retrieves and scores evidence for a claim.
type Searcher interface {
	Search(ctx context.Context, query string, topK int, threshold float64) (
		evidence []domain.Evidence, isRelevant bool, bestScore float64, err error,
	)
}

// Generator produces a judgment text from a claim and its evidence. The
// relevance flag steers prompt selection: irrelevant evidence must not be
// presented to the model as confirmation material. Generate also reports
// whether the claim was treated as a question.
type Generator interface {
	Generate(ctx context.Context, query string, evidence []domain.Evidence, isRelevant bool) (
		judgment string, isQuestion bool, err error,
	)
}
