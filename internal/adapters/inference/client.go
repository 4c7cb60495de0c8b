// Package inference provides the structured-text-classification capability
// the detection engine may call before falling back to the rule-based path.
// Any provider that accepts a transcript-derived prompt and answers with the
// {"issues":[...]} JSON shape satisfies the contract; running with no
// credentials at all is a supported configuration, not an error
package inference

import (
	"context"
	"time"

	"carelens/internal/core/sdoh"
)

// OutcomeKind tags the variant of a model call's result
type OutcomeKind int

const (
	// OutcomeFindings means the provider returned a well-formed, non-empty
	// issue list that can be used verbatim
	OutcomeFindings OutcomeKind = iota
	// OutcomeUnavailable means the call never produced a response
	// (no credential, network failure, timeout, non-2xx)
	OutcomeUnavailable
	// OutcomeMalformed means a response arrived but its shape was unusable
	// (bad JSON, missing issues, or an empty list)
	OutcomeMalformed
)

// Issue is one model-reported risk indicator before reshaping into a Finding
type Issue struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Severity   string  `json:"severity"`
	Urgency    string  `json:"urgency"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
	Quote      string  `json:"quote"`
	Speaker    string  `json:"speaker"`
}

// Outcome is the tagged result of a model detection call. The fallback
// controller switches exhaustively over Kind; Err carries detail for logs
// on the two failure variants
type Outcome struct {
	Kind   OutcomeKind
	Issues []Issue
	Err    error
}

// Client is the provider port. Implementations make exactly one attempt per
// call; retry policy belongs to the caller's caller
type Client interface {
	DetectIssues(ctx context.Context, lines []sdoh.TranscriptLine) Outcome
}

// Config configures the HTTP provider
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// New constructs the provider Client, or nil when no API key is configured.
// A nil Client means the rule-based path runs unconditionally
func New(cfg Config) Client {
	if cfg.APIKey == "" {
		return nil
	}
	return newHTTPClient(cfg)
}
