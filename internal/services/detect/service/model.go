package service

import (
	"sort"
	"strings"

	"carelens/internal/adapters/inference"
	"carelens/internal/core/sdoh"
)

// reshapeModel converts provider issues into findings, enriching them from
// the pattern catalog where the model left fields blank. The one-per-code
// guarantee holds here too: duplicate codes collapse onto the stronger one
func (s *Service) reshapeModel(issues []inference.Issue) []sdoh.Finding {
	byCode := map[string]int{}
	out := make([]sdoh.Finding, 0, len(issues))

	for _, is := range issues {
		code := strings.ToUpper(strings.TrimSpace(is.Code))
		if code == "" {
			continue
		}
		f := s.issueToFinding(code, is)
		if i, ok := byCode[code]; ok {
			keep := &out[i]
			if f.Confidence > keep.Confidence {
				prior := keep.Evidence
				*keep = f
				keep.Evidence = append(prior, f.Evidence...)
			} else {
				keep.Evidence = append(keep.Evidence, f.Evidence...)
			}
			continue
		}
		byCode[code] = len(out)
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func (s *Service) issueToFinding(code string, is inference.Issue) sdoh.Finding {
	f := sdoh.Finding{
		Code:       code,
		Label:      strings.TrimSpace(is.Label),
		Severity:   normalizeSeverity(is.Severity),
		Urgency:    normalizeUrgency(is.Urgency),
		Status:     normalizeStatus(is.Status),
		Confidence: clampUnit(is.Confidence),
		Rationale:  strings.TrimSpace(is.Rationale),
	}
	if q := strings.TrimSpace(is.Quote); q != "" {
		f.Evidence = []sdoh.Evidence{{Quote: q, Speaker: speakerOr(is.Speaker)}}
	}
	if def := s.Cat.ByCode(code); def != nil {
		if f.Label == "" {
			f.Label = def.Label
		}
		f.Domain = def.Domain
		f.EstimatedValue = def.EstimatedValue
	}
	if f.Label == "" {
		f.Label = code
	}
	return f
}

func speakerOr(sp string) string {
	sp = strings.TrimSpace(sp)
	if sp == "" {
		return "participant"
	}
	return sp
}

func normalizeSeverity(v string) sdoh.Severity {
	switch sdoh.Severity(strings.ToLower(strings.TrimSpace(v))) {
	case sdoh.SeverityLow:
		return sdoh.SeverityLow
	case sdoh.SeverityHigh:
		return sdoh.SeverityHigh
	default:
		return sdoh.SeverityModerate
	}
}

func normalizeUrgency(v string) sdoh.Urgency {
	switch sdoh.Urgency(strings.ToLower(strings.TrimSpace(v))) {
	case sdoh.UrgencyLow:
		return sdoh.UrgencyLow
	case sdoh.UrgencyHigh:
		return sdoh.UrgencyHigh
	default:
		return sdoh.UrgencyMedium
	}
}

func normalizeStatus(v string) sdoh.Status {
	switch sdoh.Status(strings.ToLower(strings.TrimSpace(v))) {
	case sdoh.StatusResolved:
		return sdoh.StatusResolved
	case sdoh.StatusHistorical:
		return sdoh.StatusHistorical
	default:
		return sdoh.StatusCurrent
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return sdoh.Round2(v)
}
