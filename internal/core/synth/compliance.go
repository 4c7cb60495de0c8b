package synth

import (
	"fmt"
	"math"
	"time"

	"carelens/internal/core/sdoh"
)

// Screening cadence: a member with no findings is re-screened within a week,
// one with documented findings within the standard month
const (
	dueSoonDays     = 7
	dueStandardDays = 30
)

// Alert levels used in the compliance view
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
)

// Alert is one render-ready compliance alert
type Alert struct {
	Level   string `json:"level"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ReportRow is the one-row CMS-style screening report for this call
type ReportRow struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// Compliance is the compliance view of a detection run
type Compliance struct {
	NeedsScreening bool      `json:"needs_screening"`
	CompletionRate float64   `json:"completion_rate"`
	Report         ReportRow `json:"report"`
	NextDueDate    time.Time `json:"next_due_date"`
	Alerts         []Alert   `json:"alerts"`
}

// BuildCompliance derives the compliance view. now anchors the due-date
// arithmetic so callers and tests control the clock
func BuildCompliance(findings []sdoh.Finding, ctx Context, now time.Time) Compliance {
	comp := Compliance{
		NeedsScreening: len(findings) == 0,
		CompletionRate: completionRate(ctx.CompletedScreenings, ctx.RequiredScreenings),
	}

	anyHighUrgency := false
	for _, f := range findings {
		if f.Urgency == sdoh.UrgencyHigh {
			anyHighUrgency = true
			comp.Alerts = append(comp.Alerts, Alert{
				Level:   AlertCritical,
				Code:    f.Code,
				Message: fmt.Sprintf("%s (%s) requires follow-up within 48 hours", f.Label, f.Code),
			})
		}
	}

	pending := ctx.RequiredScreenings - ctx.CompletedScreenings
	if pending < 0 {
		pending = 0
	}
	overdue := 1
	if anyHighUrgency {
		overdue = 3
	}
	comp.Report = ReportRow{
		Completed: ctx.CompletedScreenings,
		Pending:   pending,
		Overdue:   overdue,
	}

	if comp.NeedsScreening {
		comp.NextDueDate = now.AddDate(0, 0, dueSoonDays)
		if len(comp.Alerts) == 0 {
			comp.Alerts = append(comp.Alerts, Alert{
				Level:   AlertWarning,
				Message: "Member is due for annual SDOH screening",
			})
		}
	} else {
		comp.NextDueDate = now.AddDate(0, 0, dueStandardDays)
	}

	return comp
}

// completionRate is min(1, completed/required) as a percentage, 1 decimal
func completionRate(completed, required int) float64 {
	if required <= 0 {
		return 100.0
	}
	ratio := float64(completed) / float64(required)
	if ratio > 1 {
		ratio = 1
	}
	return math.Round(ratio*1000) / 10
}
