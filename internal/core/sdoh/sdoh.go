// Package sdoh defines the shared vocabulary for social-determinants-of-health
// risk detection: transcript lines in, coded findings with evidence out
package sdoh

import "math"

// Severity grades how serious a detected risk is
type Severity string

// Severity values, ordered low < moderate < high
const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Urgency grades how quickly a detected risk needs follow-up
type Urgency string

// Urgency values, ordered low < medium < high
const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Status tracks whether a risk is ongoing or already behind the member
type Status string

// Status values
const (
	StatusCurrent    Status = "current"
	StatusResolved   Status = "resolved"
	StatusHistorical Status = "historical"
)

// Engine identifies which detection path produced a result
type Engine string

// Engine values; the two paths are mutually exclusive per invocation
const (
	EngineModel     Engine = "model"
	EngineRuleBased Engine = "rule-based"
)

// TranscriptLine is one utterance from a call, SMS exchange, or intake form.
// Ordering matters for evidence presentation only; detection is per-line
type TranscriptLine struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Language  string `json:"language,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Evidence is a quoted transcript excerpt supporting a Finding
type Evidence struct {
	Quote     string `json:"quote"`
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp,omitempty"`
	Language  string `json:"language,omitempty"`
}

// Finding is a single detected risk category. The detector emits one per
// matching line; the merger collapses them to at most one per code
type Finding struct {
	Code           string     `json:"code"`
	Label          string     `json:"label"`
	Domain         string     `json:"domain"`
	Severity       Severity   `json:"severity"`
	Urgency        Urgency    `json:"urgency"`
	Status         Status     `json:"status"`
	Confidence     float64    `json:"confidence"`
	Evidence       []Evidence `json:"evidence"`
	Rationale      string     `json:"rationale"`
	EstimatedValue float64    `json:"estimated_value"`
}

// Rule-based confidence bounds. The classifier clamps adjusted confidence to
// [MinConfidence, MaxAdjusted]; the merger may push corroborated findings up
// to MaxConfidence via the recency bonus
const (
	MinConfidence = 0.40
	MaxAdjusted   = 0.98
	MaxConfidence = 0.99
)

// Round2 rounds to two decimal places, the precision all confidences and
// monetary sums are reported in
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampConfidence bounds v to [MinConfidence, hi] and rounds to 2 decimals
func ClampConfidence(v, hi float64) float64 {
	if v < MinConfidence {
		v = MinConfidence
	}
	if v > hi {
		v = hi
	}
	return Round2(v)
}

// EscalateSeverity merges two severities: high wins when either side carries
// it, otherwise the existing side's value is kept unchanged
func EscalateSeverity(existing, incoming Severity) Severity {
	if existing == SeverityHigh || incoming == SeverityHigh {
		return SeverityHigh
	}
	return existing
}

// EscalateUrgency merges two urgencies: high wins when either side carries
// it, otherwise the existing side's value is kept unchanged
func EscalateUrgency(existing, incoming Urgency) Urgency {
	if existing == UrgencyHigh || incoming == UrgencyHigh {
		return UrgencyHigh
	}
	return existing
}
