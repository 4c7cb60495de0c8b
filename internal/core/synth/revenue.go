package synth

import (
	"math"
	"math/rand"

	"carelens/internal/core/sdoh"
)

// Per-finding risk adjustment estimate in dollars, from the program's
// actuarial table
const riskAdjustmentPerCode = 215

// Engine performance estimates surfaced on dashboards. Transcripts with
// findings run the full merge path, hence the higher latency figure
const (
	accuracyWithFindings = 0.87
	accuracyNoFindings   = 0.91
	latencyWithFindings  = 1800
	latencyNoFindings    = 900
)

// PrevalenceTrend is an illustrative panel-prevalence estimate for one code.
// The numbers are randomized by design and are not a reproducible contract
type PrevalenceTrend struct {
	Code    string  `json:"code"`
	Percent float64 `json:"percent"`
	Delta   float64 `json:"delta"`
}

// Revenue is the operational revenue view of a detection run
type Revenue struct {
	PotentialRevenue     float64           `json:"potential_revenue"`
	ZCodesGenerated      int               `json:"z_codes_generated"`
	PatientsScreened     int               `json:"patients_screened"`
	PatientsRequired     int               `json:"patients_required"`
	RiskAdjustmentImpact float64           `json:"risk_adjustment_impact"`
	AccuracyEstimate     float64           `json:"accuracy_estimate"`
	LatencyEstimateMs    int               `json:"latency_estimate_ms"`
	PrevalenceTrends     []PrevalenceTrend `json:"prevalence_trends"`
}

// BuildRevenue derives the revenue view. rng feeds the illustrative
// prevalence trends only; pass a seeded generator for deterministic tests
func BuildRevenue(findings []sdoh.Finding, ctx Context, rng *rand.Rand) Revenue {
	rev := Revenue{
		ZCodesGenerated:      len(findings),
		PatientsScreened:     ctx.CompletedScreenings,
		PatientsRequired:     ctx.RequiredScreenings,
		RiskAdjustmentImpact: float64(len(findings) * riskAdjustmentPerCode),
		AccuracyEstimate:     accuracyNoFindings,
		LatencyEstimateMs:    latencyNoFindings,
	}

	var total float64
	for _, f := range findings {
		total += f.EstimatedValue
	}
	rev.PotentialRevenue = sdoh.Round2(total)

	if len(findings) > 0 {
		rev.PatientsScreened++
		rev.AccuracyEstimate = accuracyWithFindings
		rev.LatencyEstimateMs = latencyWithFindings
	}

	rev.PrevalenceTrends = make([]PrevalenceTrend, 0, len(findings))
	for _, f := range findings {
		rev.PrevalenceTrends = append(rev.PrevalenceTrends, PrevalenceTrend{
			Code:    f.Code,
			Percent: round1(5 + rng.Float64()*15),
			Delta:   round1(-2 + rng.Float64()*4),
		})
	}

	return rev
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
