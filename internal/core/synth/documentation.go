package synth

import (
	"fmt"
	"strings"

	"carelens/internal/core/sdoh"
)

// NoRiskNarrative is the fixed sentence emitted when a transcript surfaces no
// findings. Downstream formatters rely on this exact text
const NoRiskNarrative = "No active social risk indicators were identified in this encounter."

// closingRecommendation ends every narrative that reports at least one finding
const closingRecommendation = "Recommend social work follow-up and capture of the above Z codes in the encounter record."

// IssueSummary is one row of the coded documentation summary
type IssueSummary struct {
	Code          string        `json:"code"`
	Label         string        `json:"label"`
	Severity      sdoh.Severity `json:"severity"`
	Urgency       sdoh.Urgency  `json:"urgency"`
	Status        sdoh.Status   `json:"status"`
	Confidence    float64       `json:"confidence"`
	EvidenceCount int           `json:"evidence_count"`
}

// RecommendedCode is a billing-ready code suggestion
type RecommendedCode struct {
	Code       string        `json:"code"`
	Label      string        `json:"label"`
	Confidence float64       `json:"confidence"`
	Severity   sdoh.Severity `json:"severity"`
	Urgency    sdoh.Urgency  `json:"urgency"`
}

// Documentation is the render-ready clinical documentation view
type Documentation struct {
	Summary          []IssueSummary    `json:"summary"`
	Narrative        string            `json:"narrative"`
	RecommendedCodes []RecommendedCode `json:"recommended_codes"`
	Evidence         []sdoh.Evidence   `json:"evidence"`
}

// BuildDocumentation derives the documentation view from merged findings
func BuildDocumentation(findings []sdoh.Finding) Documentation {
	doc := Documentation{
		Summary:          make([]IssueSummary, 0, len(findings)),
		RecommendedCodes: make([]RecommendedCode, 0, len(findings)),
	}

	for _, f := range findings {
		doc.Summary = append(doc.Summary, IssueSummary{
			Code:          f.Code,
			Label:         f.Label,
			Severity:      f.Severity,
			Urgency:       f.Urgency,
			Status:        f.Status,
			Confidence:    f.Confidence,
			EvidenceCount: len(f.Evidence),
		})
		doc.RecommendedCodes = append(doc.RecommendedCodes, RecommendedCode{
			Code:       f.Code,
			Label:      f.Label,
			Confidence: f.Confidence,
			Severity:   f.Severity,
			Urgency:    f.Urgency,
		})
		doc.Evidence = append(doc.Evidence, f.Evidence...)
	}

	doc.Narrative = narrative(findings)
	return doc
}

func narrative(findings []sdoh.Finding) string {
	if len(findings) == 0 {
		return NoRiskNarrative
	}
	var sb strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&sb, "%s (%s) was identified as %s with %s severity and %s urgency (confidence %.2f). ",
			f.Label, f.Code, f.Status, f.Severity, f.Urgency, f.Confidence)
	}
	sb.WriteString(closingRecommendation)
	return sb.String()
}
