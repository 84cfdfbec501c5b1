package document

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sanad-labs/sanad/internal/domain"
)

// Hash field names for a stored document.
const (
	fieldURL         = "url"
	fieldTitle       = "title"
	fieldBody        = "body"
	fieldPublishedAt = "published_at"
	fieldVector      = "vector"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domain.Document) map[string]string {
	return map[string]string{
		fieldURL:         doc.URL(),
		fieldTitle:       doc.Title(),
		fieldBody:        doc.Body(),
		fieldPublishedAt: doc.PublishedAt(),
		fieldVector:      vectorToBytes(doc.Vector()),
	}
}

// parseHashFields converts a flat hash map back into a domain Document.
// Fails when the stored vector is missing or malformed; callers skip such rows.
func parseHashFields(url string, m map[string]string) (domain.Document, error) {
	raw, ok := m[fieldVector]
	if !ok || raw == "" {
		return domain.Document{}, fmt.Errorf("document %s: missing vector", url)
	}
	vector, err := bytesToVector(raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("document %s: %w", url, err)
	}

	return domain.ReconstructDocument(
		url, m[fieldTitle], m[fieldBody], m[fieldPublishedAt], vector,
	), nil
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) ([]float32, error) {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("malformed vector: %d bytes (not multiple of 4)", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
