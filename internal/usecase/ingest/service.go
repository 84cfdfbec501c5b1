package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/domain"
	"github.com/sanad-labs/sanad/internal/metrics"
)

// Article is one fetched news item before it becomes a stored document.
type Article struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// Upserter persists embedded documents.
type Upserter interface {
	Upsert(ctx context.Context, doc *domain.Document) (created bool, err error)
}

// Report summarizes one ingestion batch.
type Report struct {
	Total   int `json:"total"`
	Stored  int `json:"stored"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Service embeds and stores fetched articles.
type Service struct {
	docs   Upserter
	embed  domain.Embedder
	logger *zap.Logger
}

// New creates an ingestion service.
func New(docs Upserter, embed domain.Embedder, logger *zap.Logger) *Service {
	return &Service{docs: docs, embed: embed, logger: logger}
}

// Ingest deduplicates articles by URL (first occurrence wins), embeds each
// one, and upserts it. Individual failures are counted and skipped; provider
// exhaustion aborts the rest of the batch since every remaining item would
// fail the same way.
func (s *Service) Ingest(ctx context.Context, articles []Article) (Report, error) {
	report := Report{Total: len(articles)}
	seen := make(map[string]struct{}, len(articles))

	for _, a := range articles {
		if _, dup := seen[a.URL]; dup {
			report.Skipped++
			metrics.DocumentsIngestedTotal.WithLabelValues("skipped").Inc()
			continue
		}
		seen[a.URL] = struct{}{}

		created, err := s.ingestOne(ctx, a)
		if err != nil {
			if errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrEmbeddingQuotaExceeded) {
				report.Failed++
				metrics.DocumentsIngestedTotal.WithLabelValues("failed").Inc()
				return report, fmt.Errorf("embedding provider exhausted: %w", err)
			}
			s.logger.Warn("article skipped", zap.String("url", a.URL), zap.Error(err))
			report.Failed++
			metrics.DocumentsIngestedTotal.WithLabelValues("failed").Inc()
			continue
		}

		if created {
			report.Stored++
			metrics.DocumentsIngestedTotal.WithLabelValues("stored").Inc()
		} else {
			report.Updated++
			metrics.DocumentsIngestedTotal.WithLabelValues("updated").Inc()
		}
	}

	s.logger.Info("ingestion batch finished",
		zap.Int("total", report.Total),
		zap.Int("stored", report.Stored),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *Service) ingestOne(ctx context.Context, a Article) (bool, error) {
	doc, err := domain.NewDocument(a.URL, a.Title, a.Body, a.PublishedAt)
	if err != nil {
		return false, err
	}

	result, err := s.embed.Embed(ctx, doc.EmbeddingText())
	if err != nil {
		return false, fmt.Errorf("embed article: %w", err)
	}
	doc.SetVector(result.Embedding)

	created, err := s.docs.Upsert(ctx, &doc)
	if err != nil {
		return false, fmt.Errorf("store article: %w", err)
	}
	return created, nil
}
