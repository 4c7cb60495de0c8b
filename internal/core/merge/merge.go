// Package merge folds per-line findings into one finding per risk code,
// resolving conflicts in severity, urgency, status, and confidence and
// accumulating evidence across the transcript. Merged confidence is
// monotone: re-merging a finding already present never lowers it
package merge

import (
	"sort"

	"carelens/internal/core/sdoh"
)

// Recency bonus: each corroborating evidence line adds a small confidence
// increment, capped so repetition cannot run confidence away
const (
	bonusPerEvidence = 0.02
	bonusCap         = 0.10
)

// StatusTieBreak picks the merged status when neither side is current
type StatusTieBreak int

const (
	// TieBreakIncoming keeps the most recent mention's status (default)
	TieBreakIncoming StatusTieBreak = iota
	// TieBreakResolved prefers resolved over historical regardless of order
	TieBreakResolved
)

// Policy tunes merge behavior that is not fixed by the detection contract
type Policy struct {
	StatusTieBreak StatusTieBreak
}

type entry struct {
	f sdoh.Finding
	// base is the best per-line confidence seen so far; the recency bonus is
	// recomputed on top of it after every fold so it never compounds
	base  float64
	order int
}

// Accumulator collects findings across transcript lines, keyed by code
type Accumulator struct {
	policy  Policy
	entries map[string]*entry
	next    int
}

// NewAccumulator creates an empty accumulator with the given policy
func NewAccumulator(policy Policy) *Accumulator {
	return &Accumulator{
		policy:  policy,
		entries: make(map[string]*entry),
	}
}

// Fold merges one line's findings into the accumulator, then recomputes the
// recency bonus for every accumulated code
func (a *Accumulator) Fold(incoming []sdoh.Finding) {
	for _, in := range incoming {
		e, ok := a.entries[in.Code]
		if !ok {
			cp := in
			cp.Evidence = append([]sdoh.Evidence(nil), in.Evidence...)
			a.entries[in.Code] = &entry{f: cp, base: in.Confidence, order: a.next}
			a.next++
			continue
		}
		a.combine(e, in)
	}
	for _, e := range a.entries {
		e.f.Confidence = withBonus(e.base, len(e.f.Evidence))
	}
}

func (a *Accumulator) combine(e *entry, in sdoh.Finding) {
	if in.Confidence > e.base {
		e.base = in.Confidence
	}
	e.f.Severity = sdoh.EscalateSeverity(e.f.Severity, in.Severity)
	e.f.Urgency = sdoh.EscalateUrgency(e.f.Urgency, in.Urgency)
	e.f.Status = a.mergeStatus(e.f.Status, in.Status)
	// evidence is never deduplicated; encounter order is preserved
	e.f.Evidence = append(e.f.Evidence, in.Evidence...)
	// most recent textual justification wins
	e.f.Rationale = in.Rationale
	if in.EstimatedValue > e.f.EstimatedValue {
		e.f.EstimatedValue = in.EstimatedValue
	}
}

func (a *Accumulator) mergeStatus(existing, incoming sdoh.Status) sdoh.Status {
	if existing == sdoh.StatusCurrent || incoming == sdoh.StatusCurrent {
		return sdoh.StatusCurrent
	}
	if a.policy.StatusTieBreak == TieBreakResolved {
		if existing == sdoh.StatusResolved || incoming == sdoh.StatusResolved {
			return sdoh.StatusResolved
		}
	}
	return incoming
}

// Result returns the merged findings sorted by confidence descending.
// Ties retain insertion order
func (a *Accumulator) Result() []sdoh.Finding {
	es := make([]*entry, 0, len(a.entries))
	for _, e := range a.entries {
		es = append(es, e)
	}
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].f.Confidence != es[j].f.Confidence {
			return es[i].f.Confidence > es[j].f.Confidence
		}
		return es[i].order < es[j].order
	})
	out := make([]sdoh.Finding, 0, len(es))
	for _, e := range es {
		out = append(out, e.f)
	}
	return out
}

// Len returns the number of distinct codes accumulated so far
func (a *Accumulator) Len() int { return len(a.entries) }

func withBonus(base float64, evidenceCount int) float64 {
	bonus := float64(evidenceCount) * bonusPerEvidence
	if bonus > bonusCap {
		bonus = bonusCap
	}
	return sdoh.ClampConfidence(base+bonus, sdoh.MaxConfidence)
}
