package verify

import "github.com/sanad-labs/sanad/internal/domain"

// Similarity tiers for the verdict. Lower bounds are inclusive.
const (
	tierAuto   = 0.85 // strong match: verified regardless of judgment tone
	tierHigh   = 0.65 // verified unless the judgment opens with a rejection
	tierMedium = 0.50 // verified only on an explicit affirmation
)

// Classify maps the retrieval outcome and the judgment text to a verdict
// status. Tiers are checked top-down; the first matching one wins.
func Classify(bestScore float64, isRelevant, isQuestion bool, judgment string) domain.Status {
	if isQuestion {
		return domain.StatusAnswered
	}
	if !isRelevant {
		return domain.StatusUnverified
	}

	sig := ScanJudgment(judgment)

	switch {
	case bestScore >= tierAuto:
		return domain.StatusVerified
	case bestScore >= tierHigh:
		if sig.Negative {
			return domain.StatusUnverified
		}
		return domain.StatusVerified
	case bestScore >= tierMedium:
		if sig.Positive {
			return domain.StatusVerified
		}
		return domain.StatusUnverified
	default:
		return domain.StatusUnverified
	}
}
