// Package domain holds DTOs and contracts for the screenings service
package domain

import (
	"carelens/internal/core/sdoh"
	detectdom "carelens/internal/services/detect/domain"
)

// RunInput runs a detection and records the screening
type RunInput struct {
	MemberID   string                  `json:"memberId" validate:"required,max=100" example:"M-4421"`
	Channel    string                  `json:"channel,omitempty" validate:"omitempty,oneof=call sms intake" example:"call"`
	Transcript []sdoh.TranscriptLine   `json:"transcript" validate:"required,min=1,max=5000"`
	Context    *detectdom.ContextInput `json:"context,omitempty"`
}

// Screening is one recorded screening encounter
type Screening struct {
	ID            string         `json:"id"`
	MemberID      string         `json:"member_id"`
	Channel       string         `json:"channel"`
	Engine        string         `json:"engine"`
	FindingCount  int            `json:"finding_count"`
	TotalValue    float64        `json:"total_value"`
	NeedsFollowUp bool           `json:"needs_follow_up"`
	Findings      []sdoh.Finding `json:"findings"`
	CreatedAt     string         `json:"created_at"`
}

// RunOutput pairs the stored record with the full detection result
type RunOutput struct {
	Screening Screening                  `json:"screening"`
	Result    *detectdom.DetectionResult `json:"result"`
}

// RecentInput filters the screening history
type RecentInput struct {
	MemberID string `json:"memberId,omitempty" validate:"omitempty,max=100" example:"M-4421"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}
