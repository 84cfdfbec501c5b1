package domain

import "fmt"

// Document is a reference article in the knowledge base, keyed by its
// canonical source URL. The vector is the L2-normalized embedding of the
// alias-expanded title+body text.
type Document struct {
	url         string
	title       string
	body        string
	publishedAt string // "2006-01-02 15:04:05", may be empty
	vector      []float32
}

// NewDocument validates and creates a Document without a vector.
func NewDocument(url, title, body, publishedAt string) (Document, error) {
	if url == "" {
		return Document{}, fmt.Errorf("document URL is required: %w", ErrInvalidArticle)
	}
	if title == "" {
		return Document{}, fmt.Errorf("document title is required: %w", ErrInvalidArticle)
	}
	return Document{url: url, title: title, body: body, publishedAt: publishedAt}, nil
}

// ReconstructDocument creates a Document without validation (storage hydration).
func ReconstructDocument(url, title, body, publishedAt string, vector []float32) Document {
	return Document{url: url, title: title, body: body, publishedAt: publishedAt, vector: vector}
}

// URL returns the canonical source URL (the document identity).
func (d *Document) URL() string { return d.url }

// Title returns the article title.
func (d *Document) Title() string { return d.title }

// Body returns the article body.
func (d *Document) Body() string { return d.body }

// PublishedAt returns the publication timestamp, empty if unknown.
func (d *Document) PublishedAt() string { return d.publishedAt }

// Vector returns the embedding vector.
func (d *Document) Vector() []float32 { return d.vector }

// SetVector sets the vector in place.
func (d *Document) SetVector(v []float32) { d.vector = v }

// EmbeddingText is the text fed to the embedder on the write path.
func (d *Document) EmbeddingText() string {
	return fmt.Sprintf("Title: %s\nBody: %s", d.title, d.body)
}
