package synth

import (
	"strings"
	"testing"

	"carelens/internal/core/sdoh"
)

func sampleFindings() []sdoh.Finding {
	return []sdoh.Finding{
		{
			Code:       "Z59.0",
			Label:      "Homelessness",
			Domain:     "housing",
			Severity:   sdoh.SeverityHigh,
			Urgency:    sdoh.UrgencyHigh,
			Status:     sdoh.StatusCurrent,
			Confidence: 0.87,
			Rationale:  "Homelessness (Z59.0) indicated by member statement",
			Evidence: []sdoh.Evidence{
				{Quote: "I'm homeless", Speaker: "member"},
				{Quote: "still sleeping in my car", Speaker: "member"},
			},
			EstimatedValue: 125,
		},
		{
			Code:           "Z59.41",
			Label:          "Food insecurity",
			Domain:         "food",
			Severity:       sdoh.SeverityModerate,
			Urgency:        sdoh.UrgencyMedium,
			Status:         sdoh.StatusCurrent,
			Confidence:     0.82,
			Evidence:       []sdoh.Evidence{{Quote: "fridge is empty", Speaker: "member"}},
			EstimatedValue: 85,
		},
	}
}

func TestBuildDocumentation_NoFindings(t *testing.T) {
	t.Parallel()

	doc := BuildDocumentation(nil)
	if doc.Narrative != NoRiskNarrative {
		t.Fatalf("narrative = %q want the fixed no-risk sentence", doc.Narrative)
	}
	if len(doc.Summary) != 0 || len(doc.RecommendedCodes) != 0 || len(doc.Evidence) != 0 {
		t.Fatalf("expected empty documentation views, got %+v", doc)
	}
}

func TestBuildDocumentation_WithFindings(t *testing.T) {
	t.Parallel()

	doc := BuildDocumentation(sampleFindings())

	if len(doc.Summary) != 2 || len(doc.RecommendedCodes) != 2 {
		t.Fatalf("summary/codes = %d/%d want 2/2", len(doc.Summary), len(doc.RecommendedCodes))
	}
	if doc.Summary[0].EvidenceCount != 2 {
		t.Fatalf("first evidence count = %d want 2", doc.Summary[0].EvidenceCount)
	}
	// evidence is flattened across findings in order
	if len(doc.Evidence) != 3 || doc.Evidence[2].Quote != "fridge is empty" {
		t.Fatalf("flattened evidence = %+v", doc.Evidence)
	}

	want := "Homelessness (Z59.0) was identified as current with high severity and high urgency (confidence 0.87). "
	if !strings.HasPrefix(doc.Narrative, want) {
		t.Fatalf("narrative prefix = %q want %q", doc.Narrative, want)
	}
	if !strings.HasSuffix(doc.Narrative, closingRecommendation) {
		t.Fatalf("narrative should end with the closing recommendation, got %q", doc.Narrative)
	}
	if strings.Contains(doc.Narrative, NoRiskNarrative) {
		t.Fatalf("narrative with findings must not contain the no-risk sentence")
	}
}
