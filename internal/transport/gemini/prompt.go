package gemini

import (
	"fmt"
	"strings"

	"github.com/sanad-labs/sanad/internal/domain"
)

// Prompt templates. The claim prompt demands an explicit affirmation or
// rejection so the verdict classifier has markers to scan for.
const (
	claimPromptFmt = `أنت مساعد متخصص في التحقق من الأخبار المتعلقة بالأحداث في العراق.
قارن الخبر التالي مع السياقات المسترجعة من قاعدة البيانات وحدد ما إذا كان الخبر مؤكداً.

الخبر المطلوب التحقق منه:
%s

السياقات المسترجعة:
%s

إذا كانت السياقات تؤكد الخبر ابدأ إجابتك بعلامة ✅ وكلمة موثوق، وإذا لم تؤكده ابدأ بعلامة ⚠️ وعبارة غير مؤكد، ثم اشرح السبب باختصار.`

	questionPromptFmt = `أنت مساعد متخصص في الإجابة على أسئلة حول الأحداث في العراق اعتماداً على سياقات مسترجعة من قاعدة البيانات.

السؤال:
%s

السياقات المسترجعة:
%s

أجب على السؤال بإيجاز وبالاعتماد على السياقات فقط. إذا لم تكن السياقات كافية فاذكر ذلك صراحة.`

	noContextPromptFmt = `أنت مساعد متخصص في التحقق من الأخبار المتعلقة بالأحداث في العراق.

الخبر أو السؤال:
%s

لا توجد سياقات مطابقة في قاعدة البيانات. وضح أنه لا يمكن التأكد من هذا المحتوى، وابدأ إجابتك بعبارة غير مؤكد.`
)

const contextEntryFmt = "المصدر: %s\nالعنوان: %s\nالمحتوى المختصر: %s\nدرجة التشابه: %.2f"

// BuildPrompt renders the generation prompt for a claim or question and its
// evidence. Without evidence, or when retrieval marked the evidence
// irrelevant, the no-context template is used regardless of intent:
// sub-threshold contexts must never be offered to the model as confirmation
// material.
func BuildPrompt(query string, evidence []domain.Evidence, isQuestion, isRelevant bool) string {
	if len(evidence) == 0 || !isRelevant {
		return fmt.Sprintf(noContextPromptFmt, query)
	}

	block := contextBlock(evidence)
	if isQuestion {
		return fmt.Sprintf(questionPromptFmt, query, block)
	}
	return fmt.Sprintf(claimPromptFmt, query, block)
}

func contextBlock(evidence []domain.Evidence) string {
	entries := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		entries = append(entries, fmt.Sprintf(contextEntryFmt,
			ev.URL, ev.Title, ev.Body, ev.Similarity))
	}
	return strings.Join(entries, "\n\n")
}
