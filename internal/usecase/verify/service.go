package verify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/arabic"
	"github.com/sanad-labs/sanad/internal/domain"
	"github.com/sanad-labs/sanad/internal/metrics"
)

// Canned responses for inputs that never reach retrieval.
const (
	casualResponse = "مرحباً! هذا النظام مخصص للتحقق من الأخبار والإجابة على أسئلة حول الأحداث في العراق. الرجاء إدخال خبر أو سؤال للتحقق منه."
	emptyResponse  = "الرجاء إدخال نص للتحقق منه."
)

const (
	verifiedHeader   = "✅ الخبر موثوق"
	unverifiedHeader = "⚠️ الخبر غير مؤكد"
	unverifiedPhrase = "الخبر غير مؤكد"

	// unverifiedScanWindow bounds where an existing rejection header is
	// looked for before prepending one.
	unverifiedScanWindow = 40
)

// Service runs the full verification pipeline: casual short-circuit,
// retrieval, judgment generation, tier classification, and verdict shaping.
type Service struct {
	search    Searcher
	gen       Generator
	topK      int
	threshold float64
	logger    *zap.Logger
}

// New creates a verification service. topK and threshold of zero fall back
// to the search defaults.
func New(search Searcher, gen Generator, topK int, threshold float64, logger *zap.Logger) *Service {
	return &Service{
		search:    search,
		gen:       gen,
		topK:      topK,
		threshold: threshold,
		logger:    logger,
	}
}

// Verify checks a claim against the stored corpus and returns a shaped
// verdict. Blank and casual inputs short-circuit without touching retrieval
// or generation.
func (s *Service) Verify(ctx context.Context, text string) (domain.VerificationResult, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return s.finish(domain.VerificationResult{
			Verdict: emptyResponse,
			Status:  domain.StatusUnverified,
		}), nil
	}

	if arabic.IsCasual(query) {
		return s.finish(domain.VerificationResult{
			Verdict: casualResponse,
			Status:  domain.StatusCasual,
		}), nil
	}

	evidence, isRelevant, bestScore, err := s.search.Search(ctx, query, s.topK, s.threshold)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("search evidence: %w", err)
	}

	judgment, isQuestion, err := s.gen.Generate(ctx, query, evidence, isRelevant)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("generate judgment: %w", err)
	}

	status := Classify(bestScore, isRelevant, isQuestion, judgment)

	var source *domain.Source
	if (status == domain.StatusVerified || status == domain.StatusAnswered) && len(evidence) > 0 {
		source = &domain.Source{
			URL:   evidence[0].URL,
			Label: HumanizeSource(evidence[0].URL),
		}
	}

	s.logger.Info("verdict decided",
		zap.String("status", string(status)),
		zap.Float64("best_score", bestScore),
		zap.Bool("relevant", isRelevant),
		zap.Bool("question", isQuestion),
		zap.Int("evidence", len(evidence)),
	)

	return s.finish(domain.VerificationResult{
		Verdict: shapeVerdict(status, judgment, source),
		Source:  source,
		Status:  status,
	}), nil
}

func (s *Service) finish(res domain.VerificationResult) domain.VerificationResult {
	metrics.VerificationsTotal.WithLabelValues(string(res.Status)).Inc()
	return res
}

// shapeVerdict renders the final user-facing message for a status. Verified
// claims get a fixed three-line confirmation; unverified judgments get a
// rejection header unless the generated text already carries one; answers
// and casual replies pass through untouched.
func shapeVerdict(status domain.Status, judgment string, source *domain.Source) string {
	switch status {
	case domain.StatusVerified:
		label := "مصدر خارجي"
		if source != nil {
			label = source.Label
		}
		lines := []string{
			verifiedHeader,
			fmt.Sprintf("تم التحقق من الخبر بمقارنته مع المحتوى الموجود في قاعدة البيانات من %s، باستخدام تقنية الاسترجاع المعزز بالذكاء الاصطناعي (RAG).", label),
		}
		if source != nil && source.URL != "" {
			lines = append(lines, "المصدر: "+source.URL)
		}
		return strings.Join(lines, "\n")

	case domain.StatusUnverified:
		trimmed := strings.TrimSpace(judgment)
		if strings.HasPrefix(trimmed, "⚠️") ||
			strings.Contains(runePrefix(trimmed, unverifiedScanWindow), unverifiedPhrase) {
			return trimmed
		}
		return unverifiedHeader + "\n\n" + trimmed

	default:
		return judgment
	}
}
