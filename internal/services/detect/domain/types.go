// Package domain holds DTOs and contracts for the detect service
package domain

import (
	"carelens/internal/core/sdoh"
	"carelens/internal/core/synth"
)

// ContextInput carries optional encounter context. Pointer fields
// distinguish "absent, apply program defaults" from an explicit zero
type ContextInput struct {
	EncounterID         string `json:"encounterId,omitempty" validate:"omitempty,max=100" example:"enc-2024-0193"`
	RequiredScreenings  *int   `json:"requiredScreenings,omitempty" validate:"omitempty,min=0,max=100000"`
	CompletedScreenings *int   `json:"completedScreenings,omitempty" validate:"omitempty,min=0,max=100000"`
	MonthlyGoal         *int   `json:"monthlyGoal,omitempty" validate:"omitempty,min=0,max=100000"`
}

// DetectInput is one encounter transcript to analyze. An empty transcript is
// valid and yields the no-risk result
type DetectInput struct {
	MemberID   string                `json:"memberId,omitempty" validate:"omitempty,max=100" example:"M-4421"`
	Transcript []sdoh.TranscriptLine `json:"transcript" validate:"max=5000"`
	Context    *ContextInput         `json:"context,omitempty"`
}

// BatchInput analyzes several encounters in one call
type BatchInput struct {
	Encounters []DetectInput `json:"encounters" validate:"required,min=1,max=100"`
}

// Debug reports what the engine saw and how long it took
type Debug struct {
	Lines     int      `json:"lines"`
	Patterns  int      `json:"patterns"`
	ElapsedMs int64    `json:"elapsed_ms"`
	Languages []string `json:"languages"`
}

// DetectionResult is the full analysis of one encounter: the finalized
// findings plus the three derived views
type DetectionResult struct {
	Engine        sdoh.Engine         `json:"engine"`
	Findings      []sdoh.Finding      `json:"findings"`
	Documentation synth.Documentation `json:"documentation"`
	Revenue       synth.Revenue       `json:"revenue"`
	Compliance    synth.Compliance    `json:"compliance"`
	Debug         Debug               `json:"debug"`
}

// BatchItem pairs one encounter's result (or failure) with its input index
type BatchItem struct {
	Index  int              `json:"index"`
	Result *DetectionResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// BatchResult preserves input order regardless of completion order
type BatchResult struct {
	Results []BatchItem `json:"results"`
}
