package domain

// Status is the classification outcome of one verification call.
type Status string

// Verification statuses.
const (
	// StatusVerified means the claim matched trusted content.
	StatusVerified Status = "verified"
	// StatusUnverified means the claim could not be confirmed.
	StatusUnverified Status = "unverified"
	// StatusAnswered means the input was a question, answered from context.
	StatusAnswered Status = "answered"
	// StatusCasual means the input was a greeting, no search performed.
	StatusCasual Status = "casual"
)

// Source points at the top reference document backing a verdict.
type Source struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// VerificationResult is the final outcome returned to callers.
type VerificationResult struct {
	Verdict string  `json:"verdict"`
	Source  *Source `json:"source"`
	Status  Status  `json:"status"`
}

// Evidence is one retrieved context passed to judgment generation and cited
// in verdicts. Body is truncated to a bounded snippet at retrieval time.
type Evidence struct {
	URL         string
	Title       string
	Body        string
	PublishedAt string
	Similarity  float64
}
