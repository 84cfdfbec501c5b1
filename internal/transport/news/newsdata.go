package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/usecase/ingest"
)

const defaultNewsDataBaseURL = "https://newsdata.io"

// NewsDataClient fetches articles from the NewsData latest endpoint. The
// provider rejects some filter combinations per plan, so the client degrades
// from language+country to language-only to query-only.
type NewsDataClient struct {
	baseURL  string
	apiKey   string
	query    string
	language string
	country  string
	client   *http.Client
	logger   *zap.Logger
}

// NewsDataConfig holds NewsData settings. BaseURL is overridable for tests.
type NewsDataConfig struct {
	APIKey   string
	Query    string
	Language string
	Country  string
	BaseURL  string
	Logger   *zap.Logger
}

// NewNewsDataClient creates a NewsData fetcher.
func NewNewsDataClient(cfg *NewsDataConfig) *NewsDataClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultNewsDataBaseURL
	}
	return &NewsDataClient{
		baseURL:  base,
		apiKey:   cfg.APIKey,
		query:    cfg.Query,
		language: cfg.Language,
		country:  cfg.Country,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   cfg.Logger,
	}
}

type newsDataResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
	} `json:"results"`
}

// Fetch pulls the latest matching articles, retrying with progressively
// looser filters when the provider rejects the combination.
func (c *NewsDataClient) Fetch(ctx context.Context) ([]ingest.Article, error) {
	attempts := []url.Values{
		c.params(c.language, c.country),
		c.params(c.language, ""),
		c.params("", ""),
	}

	var lastErr error
	for i, params := range attempts {
		articles, retryable, err := c.fetchOnce(ctx, params)
		if err == nil {
			return articles, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.Warn("newsdata filter combination rejected, loosening",
			zap.Int("attempt", i+1), zap.Error(err))
	}
	return nil, lastErr
}

func (c *NewsDataClient) params(language, country string) url.Values {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("q", c.query)
	if language != "" {
		q.Set("language", language)
	}
	if country != "" {
		q.Set("country", country)
	}
	return q
}

func (c *NewsDataClient) fetchOnce(ctx context.Context, params url.Values) (
	[]ingest.Article, bool, error,
) {
	endpoint := c.baseURL + "/api/1/latest?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build newsdata request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("newsdata request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read newsdata response: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, true, fmt.Errorf("newsdata rejected filters: %s", string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("newsdata status %d: %s", resp.StatusCode, string(body))
	}

	var parsed newsDataResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("parse newsdata response: %w", err)
	}
	if parsed.Status != "success" {
		return nil, false, fmt.Errorf("newsdata status: %s", parsed.Status)
	}

	articles := make([]ingest.Article, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.Title == "" || r.Link == "" {
			continue
		}
		text := r.Content
		if text == "" {
			text = r.Description
		}
		articles = append(articles, ingest.Article{
			Title:       r.Title,
			Body:        text,
			URL:         r.Link,
			PublishedAt: normalizeTimestamp(r.PubDate),
		})
	}

	c.logger.Debug("newsdata articles fetched", zap.Int("count", len(articles)))
	return articles, false, nil
}
