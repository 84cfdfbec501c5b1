package verify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sanad-labs/sanad/internal/domain"
)

type mockSearcher struct {
	evidence   []domain.Evidence
	isRelevant bool
	bestScore  float64
	err        error
	calls      int
}

func (m *mockSearcher) Search(_ context.Context, _ string, _ int, _ float64) (
	[]domain.Evidence, bool, float64, error,
) {
	m.calls++
	return m.evidence, m.isRelevant, m.bestScore, m.err
}

type mockGenerator struct {
	judgment    string
	isQuestion  bool
	err         error
	calls       int
	gotRelevant bool
}

func (m *mockGenerator) Generate(_ context.Context, _ string, _ []domain.Evidence, isRelevant bool) (string, bool, error) {
	m.calls++
	m.gotRelevant = isRelevant
	return m.judgment, m.isQuestion, m.err
}

func newTestVerify(ms *mockSearcher, mg *mockGenerator) *Service {
	return New(ms, mg, 8, 0.45, zap.NewNop())
}

func sampleEvidence() []domain.Evidence {
	return []domain.Evidence{{
		URL:         "https://t.me/alikhbaria/100",
		Title:       "اعلان نتائج السادس",
		Body:        "اعلنت وزارة التربية نتائج السادس الاعدادي",
		PublishedAt: "2026-08-01 10:00:00",
		Similarity:  0.9,
	}}
}

func TestVerify_EmptyQuery(t *testing.T) {
	ms := &mockSearcher{}
	mg := &mockGenerator{}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusUnverified {
		t.Fatalf("expected unverified status, got %s", res.Status)
	}
	if res.Verdict != emptyResponse {
		t.Fatalf("expected empty-input prompt, got %q", res.Verdict)
	}
	if ms.calls != 0 || mg.calls != 0 {
		t.Fatal("expected blank input to short-circuit retrieval and generation")
	}
}

func TestVerify_CasualGreeting(t *testing.T) {
	ms := &mockSearcher{}
	mg := &mockGenerator{}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "مرحبا بك")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusCasual {
		t.Fatalf("expected casual status, got %s", res.Status)
	}
	if res.Verdict != casualResponse {
		t.Fatalf("unexpected casual reply: %q", res.Verdict)
	}
	if ms.calls != 0 || mg.calls != 0 {
		t.Fatal("expected greeting to short-circuit retrieval and generation")
	}
}

func TestVerify_LongGreetingIsNotCasual(t *testing.T) {
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: true, bestScore: 0.9}
	mg := &mockGenerator{judgment: "الخبر صحيح"}
	svc := newTestVerify(ms, mg)

	_, err := svc.Verify(context.Background(), "مرحبا هل صحيح ان الوزارة اعلنت النتائج اليوم")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.calls != 1 {
		t.Fatal("expected five-plus token input to go through retrieval")
	}
}

func TestVerify_VerifiedClaim(t *testing.T) {
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: true, bestScore: 0.9}
	mg := &mockGenerator{judgment: "الخبر صحيح حسب المصادر"}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "اعلنت وزارة التربية نتائج السادس")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusVerified {
		t.Fatalf("expected verified status, got %s", res.Status)
	}
	if res.Source == nil {
		t.Fatal("expected a source on a verified verdict")
	}
	if res.Source.Label != "قناة @alikhbaria" {
		t.Fatalf("unexpected source label: %q", res.Source.Label)
	}
	if !strings.HasPrefix(res.Verdict, verifiedHeader) {
		t.Fatalf("expected verdict to open with the confirmation header, got %q", res.Verdict)
	}
	if !strings.Contains(res.Verdict, "قناة @alikhbaria") {
		t.Fatalf("expected verdict to name the source, got %q", res.Verdict)
	}
	if !strings.Contains(res.Verdict, "المصدر: https://t.me/alikhbaria/100") {
		t.Fatalf("expected verdict to cite the URL, got %q", res.Verdict)
	}
}

func TestVerify_UnverifiedClaimGetsHeader(t *testing.T) {
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: false, bestScore: 0.2}
	mg := &mockGenerator{judgment: "لا توجد معلومات كافية حول هذا الخبر"}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "خبر غير موجود في قاعدة البيانات")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusUnverified {
		t.Fatalf("expected unverified status, got %s", res.Status)
	}
	if res.Source != nil {
		t.Fatal("expected no source on an unverified verdict")
	}
	if !strings.HasPrefix(res.Verdict, unverifiedHeader) {
		t.Fatalf("expected rejection header, got %q", res.Verdict)
	}
	if !strings.Contains(res.Verdict, mg.judgment) {
		t.Fatalf("expected original judgment preserved, got %q", res.Verdict)
	}
}

func TestVerify_RelevanceFlagReachesGenerator(t *testing.T) {
	// Irrelevant evidence is still non-empty (top-K below threshold). The
	// generator must see the flag so it can pick the no-context prompt
	// instead of asking the model to confirm against unrelated documents.
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: false, bestScore: 0.3}
	mg := &mockGenerator{judgment: "لا توجد معلومات كافية", gotRelevant: true}
	svc := newTestVerify(ms, mg)

	if _, err := svc.Verify(context.Background(), "ادعاء بعيد عن محتوى القاعدة"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mg.gotRelevant {
		t.Fatal("expected generator to receive isRelevant=false")
	}

	ms = &mockSearcher{evidence: sampleEvidence(), isRelevant: true, bestScore: 0.9}
	mg = &mockGenerator{judgment: "الخبر صحيح"}
	svc = newTestVerify(ms, mg)

	if _, err := svc.Verify(context.Background(), "اعلنت وزارة التربية نتائج السادس"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mg.gotRelevant {
		t.Fatal("expected generator to receive isRelevant=true")
	}
}

func TestVerify_UnverifiedHeaderNotDoubled(t *testing.T) {
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: false, bestScore: 0.2}
	mg := &mockGenerator{judgment: "⚠️ لا يمكن التأكد من صحة الخبر"}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "خبر مشكوك فيه تماما")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != mg.judgment {
		t.Fatalf("expected judgment passed through untouched, got %q", res.Verdict)
	}
}

func TestVerify_UnverifiedHeaderNotDoubledOnPaddedJudgment(t *testing.T) {
	// Generators other than the built-in transport may not trim their
	// output; leading whitespace must not hide an existing header.
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: false, bestScore: 0.2}
	mg := &mockGenerator{judgment: "\n  ⚠️ لا يمكن التأكد من صحة الخبر"}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "خبر مشكوك فيه تماما")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != "⚠️ لا يمكن التأكد من صحة الخبر" {
		t.Fatalf("expected trimmed judgment without a second header, got %q", res.Verdict)
	}
	if strings.Count(res.Verdict, "⚠️") != 1 {
		t.Fatalf("expected a single rejection marker, got %q", res.Verdict)
	}
}

func TestVerify_QuestionAnswered(t *testing.T) {
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: true, bestScore: 0.7}
	mg := &mockGenerator{judgment: "النتائج تعلن عبر الموقع الرسمي للوزارة", isQuestion: true}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "متى تعلن نتائج السادس الاعدادي")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusAnswered {
		t.Fatalf("expected answered status, got %s", res.Status)
	}
	if res.Verdict != mg.judgment {
		t.Fatalf("expected answer passed through untouched, got %q", res.Verdict)
	}
	if res.Source == nil {
		t.Fatal("expected a source on an answered question with evidence")
	}
}

func TestVerify_AnsweredWithoutEvidenceHasNoSource(t *testing.T) {
	ms := &mockSearcher{isRelevant: false, bestScore: 0}
	mg := &mockGenerator{judgment: "لا املك معلومات حول ذلك", isQuestion: true}
	svc := newTestVerify(ms, mg)

	res, err := svc.Verify(context.Background(), "هل اعلنت النتائج")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.StatusAnswered {
		t.Fatalf("expected answered status, got %s", res.Status)
	}
	if res.Source != nil {
		t.Fatal("expected no source without evidence")
	}
}

func TestVerify_SearchError(t *testing.T) {
	ms := &mockSearcher{err: errors.New("OOM")}
	svc := newTestVerify(ms, &mockGenerator{})

	_, err := svc.Verify(context.Background(), "خبر عاجل عن الوزارة")
	if err == nil {
		t.Fatal("expected search failure to surface as an error")
	}
}

func TestVerify_GenerationError(t *testing.T) {
	ms := &mockSearcher{evidence: sampleEvidence(), isRelevant: true, bestScore: 0.9}
	mg := &mockGenerator{err: domain.ErrGenerationFailed}
	svc := newTestVerify(ms, mg)

	_, err := svc.Verify(context.Background(), "خبر عاجل عن الوزارة")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}
