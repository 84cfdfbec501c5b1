package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/arabic"
	"github.com/sanad-labs/sanad/internal/config"
	"github.com/sanad-labs/sanad/internal/db"
	dbRedis "github.com/sanad-labs/sanad/internal/db/redis"
	"github.com/sanad-labs/sanad/internal/domain"
	logpkg "github.com/sanad-labs/sanad/internal/logger"
	"github.com/sanad-labs/sanad/internal/metrics"
	documentrepo "github.com/sanad-labs/sanad/internal/repository/document"
	"github.com/sanad-labs/sanad/internal/repository/embcache"
	chiTransport "github.com/sanad-labs/sanad/internal/transport/chi"
	"github.com/sanad-labs/sanad/internal/transport/gemini"
	"github.com/sanad-labs/sanad/internal/transport/news"
	openaiEmb "github.com/sanad-labs/sanad/internal/transport/openai"
	"github.com/sanad-labs/sanad/internal/transport/telegram"
	healthuc "github.com/sanad-labs/sanad/internal/usecase/health"
	ingestuc "github.com/sanad-labs/sanad/internal/usecase/ingest"
	searchuc "github.com/sanad-labs/sanad/internal/usecase/search"
	verifyuc "github.com/sanad-labs/sanad/internal/usecase/verify"
	"github.com/sanad-labs/sanad/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sanad API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.Register()

	// Build embedder chain — composition root
	baseEmbedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	embedder := buildEmbedder(baseEmbedder, store, cfg, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Repositories and use case services
	docRepo := documentrepo.New(store, cfg.Storage.KeyPrefix, logger)
	searchSvc := searchuc.New(docRepo, embedder, logger)

	generator, err := gemini.NewGenerator(ctx, &gemini.Config{
		APIKey:          cfg.Generation.APIKey,
		Models:          cfg.Generation.Models,
		Temperature:     cfg.Generation.Temperature,
		TopP:            cfg.Generation.TopP,
		MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("Failed to create generator", zap.Error(err))
	}

	verifySvc := verifyuc.New(searchSvc, generator, cfg.Search.TopK, cfg.Search.Threshold, logger)
	ingestSvc := ingestuc.New(docRepo, embedder, logger)
	healthSvc := healthuc.New(store, baseEmbedder, docRepo)

	// Background news collection
	collectCtx, stopCollect := context.WithCancel(ctx)
	defer stopCollect()
	startCollector(collectCtx, cfg, ingestSvc, logger)

	// Create chi server
	server := chiTransport.NewServer(verifySvc, ingestSvc, healthSvc, docRepo, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stopCollect()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Expanding.
// Alias expansion is outermost so the cache key includes the expanded text.
func buildEmbedder(
	base *openaiEmb.Embedder,
	store db.Store,
	cfg config.Config,
	logger *zap.Logger,
) domain.Embedder {
	var embedder domain.Embedder = base
	if store != nil {
		ttl := time.Duration(cfg.Embedding.CacheTTLSec) * time.Second
		embedder = embcache.New(base, store, cfg.Storage.KeyPrefix, ttl, metrics.EmbeddingCacheTotal, logger)
	}
	return domain.NewExpandingEmbedder(embedder, arabic.ExpandAliases)
}

// articleSource is any upstream the collector can poll.
type articleSource interface {
	Fetch(ctx context.Context) ([]ingestuc.Article, error)
}

// startCollector launches the periodic news collection loop for every
// configured source. Does nothing when ingest.interval_sec is zero.
func startCollector(ctx context.Context, cfg config.Config, svc *ingestuc.Service, logger *zap.Logger) {
	if cfg.Ingest.IntervalSec <= 0 {
		return
	}

	var sources []articleSource
	if cfg.Ingest.Telegram.BotToken != "" {
		sources = append(sources, telegram.NewReader(&telegram.Config{
			BotToken: cfg.Ingest.Telegram.BotToken,
			Channels: cfg.Ingest.Telegram.Channels,
			Limit:    cfg.Ingest.Telegram.Limit,
			Logger:   logger,
		}))
	}
	if cfg.Ingest.NewsAPIKey != "" {
		sources = append(sources, news.NewNewsAPIClient(&news.NewsAPIConfig{
			APIKey:   cfg.Ingest.NewsAPIKey,
			Query:    cfg.Ingest.Query,
			Language: cfg.Ingest.Language,
			Logger:   logger,
		}))
	}
	if cfg.Ingest.NewsDataKey != "" {
		sources = append(sources, news.NewNewsDataClient(&news.NewsDataConfig{
			APIKey:   cfg.Ingest.NewsDataKey,
			Query:    cfg.Ingest.Query,
			Language: cfg.Ingest.Language,
			Country:  cfg.Ingest.Country,
			Logger:   logger,
		}))
	}
	if len(sources) == 0 {
		logger.Warn("Background collection enabled but no sources configured")
		return
	}

	interval := time.Duration(cfg.Ingest.IntervalSec) * time.Second
	logger.Info("Starting background collector",
		zap.Int("sources", len(sources)),
		zap.Duration("interval", interval),
	)

	go func() {
		collect(ctx, sources, svc, logger)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collect(ctx, sources, svc, logger)
			}
		}
	}()
}

// collect polls every source once, concurrently. A failed source does not
// block the others.
func collect(ctx context.Context, sources []articleSource, svc *ingestuc.Service, logger *zap.Logger) {
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src articleSource) {
			defer wg.Done()

			articles, err := src.Fetch(ctx)
			if err != nil {
				logger.Warn("Source fetch failed", zap.Error(err))
				return
			}
			if len(articles) == 0 {
				return
			}
			if _, err := svc.Ingest(ctx, articles); err != nil {
				logger.Warn("Background ingestion failed", zap.Error(err))
			}
		}(src)
	}
	wg.Wait()
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
