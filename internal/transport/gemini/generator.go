package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/sanad-labs/sanad/internal/arabic"
	"github.com/sanad-labs/sanad/internal/domain"
	"github.com/sanad-labs/sanad/internal/metrics"
)

// Generator produces judgments via the Gemini API, falling through a
// configured model list until one answers.
type Generator struct {
	client          *genai.Client
	models          []string
	temperature     float32
	topP            float32
	maxOutputTokens int32
	logger          *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey          string
	Models          []string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	Logger          *zap.Logger
}

// NewGenerator creates a Gemini judgment generator.
func NewGenerator(ctx context.Context, cfg *Config) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Generator{
		client:          client,
		models:          cfg.Models,
		temperature:     cfg.Temperature,
		topP:            cfg.TopP,
		maxOutputTokens: cfg.MaxOutputTokens,
		logger:          cfg.Logger,
	}, nil
}

// Generate builds the prompt for the query and its evidence and walks the
// model fallback chain. Question intent is detected from the raw query and
// returned so the classifier can route the verdict.
func (g *Generator) Generate(ctx context.Context, query string, evidence []domain.Evidence, isRelevant bool) (string, bool, error) {
	isQuestion := arabic.IsQuestion(query)
	prompt := BuildPrompt(query, evidence, isQuestion, isRelevant)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		TopP:            genai.Ptr(g.topP),
		MaxOutputTokens: g.maxOutputTokens,
	}

	var lastErr error
	for _, model := range g.models {
		start := time.Now()
		resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
		duration := time.Since(start)

		if err != nil {
			metrics.GenerationRequestsTotal.WithLabelValues(model, "error").Inc()
			g.logger.Warn("generation model failed, trying next",
				zap.String("model", model), zap.Error(err))
			lastErr = err
			continue
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			metrics.GenerationRequestsTotal.WithLabelValues(model, "empty").Inc()
			g.logger.Warn("generation model returned empty text, trying next",
				zap.String("model", model))
			lastErr = fmt.Errorf("model %s returned empty text", model)
			continue
		}

		metrics.GenerationRequestsTotal.WithLabelValues(model, "success").Inc()
		metrics.GenerationRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
		return text, isQuestion, nil
	}

	if lastErr != nil {
		return "", isQuestion, fmt.Errorf("all models failed, last: %v: %w", lastErr, domain.ErrGenerationFailed)
	}
	return "", isQuestion, fmt.Errorf("no generation models configured: %w", domain.ErrGenerationFailed)
}
