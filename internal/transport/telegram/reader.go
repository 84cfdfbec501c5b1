// Package telegram reads channel posts via the Bot API and turns them into
// ingestible articles.
package telegram

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

const defaultBaseURL = "https://api.telegram.org"

// Reader polls getUpdates for channel posts from a configured channel set.
type Reader struct {
	baseURL  string
	token    string
	channels map[string]struct{}
	limit    int
	offset   int64
	client   *http.Client
	logger   *zap.Logger
}

// Config holds the Bot API settings. BaseURL is overridable for tests.
type Config struct {
	BotToken string
	Channels []string
	Limit    int
	BaseURL  string
	Logger   *zap.Logger
}

// NewReader creates a channel post reader.
func NewReader(cfg *Config) *Reader {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	channels := make(map[string]struct{}, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		channels[strings.ToLower(strings.TrimPrefix(ch, "@"))] = struct{}{}
	}

	return &Reader{
		baseURL:  base,
		token:    cfg.BotToken,
		channels: channels,
		limit:    cfg.Limit,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   cfg.Logger,
	}
}

type update struct {
	UpdateID    int64 `json:"update_id"`
	ChannelPost *struct {
		MessageID int64 `json:"message_id"`
		Date      int64 `json:"date"`
		Text      string `json:"text"`
		Caption   string `json:"caption"`
		Chat      struct {
			Username string `json:"username"`
		} `json:"chat"`
	} `json:"channel_post"`
}

type updatesResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []update `json:"result"`
}

// Fetch pulls pending channel posts and converts them to articles. The
// update offset advances past everything seen, including posts from channels
// outside the configured set.
func (r *Reader) Fetch(ctx context.Context) ([]ingest.Article, error) {
	q := url.Values{}
	if r.offset > 0 {
		q.Set("offset", strconv.FormatInt(r.offset, 10))
	}
	if r.limit > 0 {
		q.Set("limit", strconv.Itoa(r.limit))
	}
	q.Set("allowed_updates", `["channel_post"]`)

	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", r.baseURL, r.token, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build getUpdates request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getUpdates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read getUpdates response: %w", err)
	}

	var parsed updatesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse getUpdates response: %w", err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("getUpdates rejected: %s", parsed.Description)
	}

	var articles []ingest.Article
	for _, u := range parsed.Result {
		if u.UpdateID >= r.offset {
			r.offset = u.UpdateID + 1
		}
		post := u.ChannelPost
		if post == nil {
			continue
		}
		username := strings.ToLower(post.Chat.Username)
		if _, ok := r.channels[username]; !ok {
			continue
		}
		text := post.Text
		if text == "" {
			text = post.Caption
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		title, bodyText := splitPost(text)
		articles = append(articles, ingest.Article{
			Title:       title,
			Body:        bodyText,
			URL:         fmt.Sprintf("https://t.me/%s/%d", post.Chat.Username, post.MessageID),
			PublishedAt: time.Unix(post.Date, 0).UTC().Format("2006-01-02 15:04:05"),
		})
	}

	r.logger.Debug("telegram updates fetched",
		zap.Int("updates", len(parsed.Result)),
		zap.Int("articles", len(articles)),
	)
	return articles, nil
}

// splitPost treats the first line of a post as the title and the rest as the
// body. Single-line posts double as their own body.
func splitPost(text string) (title, body string) {
	title, body, found := strings.Cut(text, "\n")
	title = strings.TrimSpace(title)
	if !found || strings.TrimSpace(body) == "" {
		return title, title
	}
	return title, strings.TrimSpace(body)
}
