package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/domain"
	healthuc "github.com/sanad-labs/sanad/internal/usecase/health"
	"github.com/sanad-labs/sanad/internal/usecase/ingest"
)

// Error codes returned to clients.
const (
	codeBadRequest        = "bad_request"
	codeRateLimited       = "rate_limited"
	codeQuotaExceeded     = "embedding_quota_exceeded"
	codeEmbeddingProvider = "embedding_provider_error"
	codeGenerationFailed  = "generation_failed"
	codeInternalError     = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Verifier runs the verification pipeline.
type Verifier interface {
	Verify(ctx context.Context, text string) (domain.VerificationResult, error)
}

// Ingester stores a batch of articles.
type Ingester interface {
	Ingest(ctx context.Context, articles []ingest.Article) (ingest.Report, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// CorpusCounter reports the stored document count.
type CorpusCounter interface {
	Count(ctx context.Context) (int, error)
}

// Server exposes the verification API over HTTP.
type Server struct {
	verifier Verifier
	ingester Ingester
	health   HealthChecker
	corpus   CorpusCounter
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	verifier Verifier,
	ingester Ingester,
	health HealthChecker,
	corpus CorpusCounter,
	logger *zap.Logger,
) *Server {
	return &Server{
		verifier: verifier,
		ingester: ingester,
		health:   health,
		corpus:   corpus,
		logger:   logger,
	}
}

// Routes mounts all handlers on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/verify", s.handleVerify)
	r.Post("/documents", s.handleIngest)
	r.Get("/documents/count", s.handleCount)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}

type verifyRequest struct {
	QueryText string `json:"query_text"`
}

// handleVerify handles POST /verify. A blank query_text is not an error: the
// pipeline answers it with a fixed prompt-for-input verdict.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.verifier.Verify(r.Context(), req.QueryText)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type ingestRequest struct {
	Articles []ingest.Article `json:"articles"`
}

// handleIngest handles POST /documents.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Articles) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "articles are required")
		return
	}

	report, err := s.ingester.Ingest(r.Context(), req.Articles)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleCount handles GET /documents/count.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.corpus.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, codeRateLimited, domain.ErrRateLimited.Error())
	case errors.Is(err, domain.ErrEmbeddingQuotaExceeded):
		writeError(w, http.StatusPaymentRequired, codeQuotaExceeded, domain.ErrEmbeddingQuotaExceeded.Error())
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, codeEmbeddingProvider, domain.ErrEmbeddingProviderError.Error())
	case errors.Is(err, domain.ErrGenerationFailed):
		writeError(w, http.StatusBadGateway, codeGenerationFailed, domain.ErrGenerationFailed.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
