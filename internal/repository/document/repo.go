package document

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/domain"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase document storage over redis hashes.
type Repo struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a document repository. prefix namespaces all keys.
func New(s store, prefix string, logger *zap.Logger) *Repo {
	return &Repo{store: s, prefix: prefix, logger: logger}
}

// Upsert creates or updates a document keyed by URL. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, doc *domain.Document) (bool, error) {
	key := r.docKey(doc.URL())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a document by URL.
func (r *Repo) Get(ctx context.Context, url string) (domain.Document, error) {
	key := r.docKey(url)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return parseHashFields(url, m)
}

// All returns every stored document. Rows with a malformed vector are
// skipped and logged rather than failing the whole read.
func (r *Repo) All(ctx context.Context) ([]domain.Document, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"doc:*")
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for i, m := range rows {
		if len(m) == 0 {
			continue
		}
		url := r.extractURL(keys[i])
		doc, err := parseHashFields(url, m)
		if err != nil {
			r.logger.Warn("skipping corrupt document", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"doc:*")
	if err != nil {
		return 0, fmt.Errorf("scan documents: %w", err)
	}
	return len(keys), nil
}

func (r *Repo) docKey(url string) string {
	return r.prefix + "doc:" + url
}

func (r *Repo) extractURL(key string) string {
	return strings.TrimPrefix(key, r.prefix+"doc:")
}
