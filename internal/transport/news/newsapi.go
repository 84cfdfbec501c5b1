// Package news fetches Arabic news articles from external REST providers.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/usecase/ingest"
)

const defaultNewsAPIBaseURL = "https://newsapi.org"

// NewsAPIClient fetches articles from the NewsAPI "everything" endpoint.
type NewsAPIClient struct {
	baseURL  string
	apiKey   string
	query    string
	language string
	pageSize int
	client   *http.Client
	logger   *zap.Logger
}

// NewsAPIConfig holds NewsAPI settings. BaseURL is overridable for tests.
type NewsAPIConfig struct {
	APIKey   string
	Query    string
	Language string
	PageSize int
	BaseURL  string
	Logger   *zap.Logger
}

// NewNewsAPIClient creates a NewsAPI fetcher.
func NewNewsAPIClient(cfg *NewsAPIConfig) *NewsAPIClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultNewsAPIBaseURL
	}
	return &NewsAPIClient{
		baseURL:  base,
		apiKey:   cfg.APIKey,
		query:    cfg.Query,
		language: cfg.Language,
		pageSize: cfg.PageSize,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   cfg.Logger,
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Fetch pulls the latest matching articles sorted by publication time.
func (c *NewsAPIClient) Fetch(ctx context.Context) ([]ingest.Article, error) {
	q := url.Values{}
	q.Set("q", c.query)
	q.Set("language", c.language)
	q.Set("sortBy", "publishedAt")
	if c.pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(c.pageSize))
	}
	q.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/v2/everything?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build newsapi request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read newsapi response: %w", err)
	}

	var parsed newsAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse newsapi response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("newsapi rejected: %s", parsed.Message)
	}

	articles := make([]ingest.Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		text := a.Content
		if text == "" {
			text = a.Description
		}
		articles = append(articles, ingest.Article{
			Title:       a.Title,
			Body:        text,
			URL:         a.URL,
			PublishedAt: normalizeTimestamp(a.PublishedAt),
		})
	}

	c.logger.Debug("newsapi articles fetched", zap.Int("count", len(articles)))
	return articles, nil
}

// normalizeTimestamp flattens an RFC 3339 timestamp to the storage format.
func normalizeTimestamp(ts string) string {
	ts = strings.TrimSuffix(ts, "Z")
	return strings.Replace(ts, "T", " ", 1)
}
