package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/arabic"
	"github.com/sanad-labs/sanad/internal/domain"
)

// Defaults applied when a caller passes zero values.
const (
	DefaultTopK      = 8
	DefaultThreshold = 0.45
)

const (
	// Combined score is a weighted blend of semantic and lexical similarity.
	weightCosine  = 0.8
	weightLexical = 0.2

	// lexicalBodyPrefix bounds how much of the body feeds the lexical token
	// set: headlines and ledes carry the claim, tails carry boilerplate.
	lexicalBodyPrefix = 400

	// snippetLen bounds the evidence body returned to the judgment prompt.
	snippetLen = 600

	// relevanceWindow is how many top results are consulted when deciding
	// whether the corpus contains anything relevant at all.
	relevanceWindow = 3
)

// Service ranks the stored corpus against a claim with a hybrid
// vector-plus-lexical score.
type Service struct {
	docs   DocumentSource
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service.
func New(docs DocumentSource, embed Embedder, logger *zap.Logger) *Service {
	return &Service{docs: docs, embed: embed, logger: logger}
}

// Search embeds the query, scores every stored document, and returns the top
// topK as evidence, whether any of the leading results clears threshold, and
// the best combined score. An empty corpus yields no evidence and no error.
func (s *Service) Search(
	ctx context.Context, query string, topK int, threshold float64,
) ([]domain.Evidence, bool, float64, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	docs, err := s.docs.All(ctx)
	if err != nil {
		return nil, false, 0, fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil, false, 0, nil
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, false, 0, fmt.Errorf("vectorize query: %w", err)
	}
	queryTokens := arabic.TokenSet(query)

	type scored struct {
		doc   domain.Document
		score float64
	}
	ranked := make([]scored, 0, len(docs))
	for _, doc := range docs {
		cos := cosine(embResult.Embedding, doc.Vector())
		lex := jaccard(queryTokens, documentTokens(doc))
		ranked = append(ranked, scored{
			doc:   doc,
			score: weightCosine*cos + weightLexical*lex,
		})
	}

	// Equal scores break toward the more recent document; beyond that the
	// stable sort preserves scan order.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].doc.PublishedAt() > ranked[j].doc.PublishedAt()
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	bestScore := ranked[0].score
	relevant := false
	for i := 0; i < len(ranked) && i < relevanceWindow; i++ {
		if ranked[i].score >= threshold {
			relevant = true
			break
		}
	}

	evidence := make([]domain.Evidence, 0, len(ranked))
	for _, r := range ranked {
		evidence = append(evidence, domain.Evidence{
			URL:         r.doc.URL(),
			Title:       r.doc.Title(),
			Body:        truncateRunes(r.doc.Body(), snippetLen),
			PublishedAt: r.doc.PublishedAt(),
			Similarity:  r.score,
		})
	}

	s.logger.Debug("corpus scored",
		zap.Int("corpus_size", len(docs)),
		zap.Float64("best_score", bestScore),
		zap.Bool("relevant", relevant),
	)

	return evidence, relevant, bestScore, nil
}

// documentTokens is the lexical token set of a document: its title plus the
// leading slice of its body.
func documentTokens(doc domain.Document) map[string]struct{} {
	return arabic.TokenSet(doc.Title() + " " + truncateRunes(doc.Body(), lexicalBodyPrefix))
}

// cosine computes the dot product of two vectors. Stored and query vectors
// are unit-length, so the dot product is the cosine similarity.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// jaccard computes set overlap: |a∩b| / |a∪b|. Two empty sets score zero.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
