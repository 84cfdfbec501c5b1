package verify

import "strings"

// Rune windows for marker scanning. A rejection marker buried deep in an
// otherwise affirmative judgment is commentary, not a verdict; only the
// opening of the text counts.
const (
	rejectionWindow = 120
	negationWindow  = 70
)

// rejectionMarkers open a judgment that declines to confirm the claim.
var rejectionMarkers = []string{
	"⚠️",
	"غير مؤكد",
	"لا يمكن التأكد",
	"لم أجد",
	"لا يوجد",
}

// Signal carries the affirmation and rejection cues found in a judgment
// text. The two are scanned independently: a judgment can carry both, and
// the classifier tiers weigh them differently.
type Signal struct {
	Positive bool
	Negative bool
}

// ScanJudgment extracts confirmation and rejection cues from a judgment.
//
// Negative: any rejection marker within the first 120 runes.
// Positive: a check mark anywhere, or "موثوق" present without a negation
// ("غير") in the first 70 runes.
func ScanJudgment(text string) Signal {
	var sig Signal

	head := runePrefix(text, rejectionWindow)
	for _, m := range rejectionMarkers {
		if strings.Contains(head, m) {
			sig.Negative = true
			break
		}
	}

	switch {
	case strings.Contains(text, "✅"):
		sig.Positive = true
	case strings.Contains(text, "موثوق") &&
		!strings.Contains(runePrefix(text, negationWindow), "غير"):
		sig.Positive = true
	}

	return sig
}

func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
