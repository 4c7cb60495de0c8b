// Package synth derives the three downstream views of a finalized finding
// set: clinical documentation, revenue metrics, and a compliance summary.
// Every derivation is a pure function of the findings plus encounter context;
// the one non-deterministic piece (prevalence trends) takes an injected
// generator so callers and tests control it
package synth

// Context carries the encounter-level inputs the derivations need. The
// service layer resolves defaults before calling in here
type Context struct {
	EncounterID         string
	RequiredScreenings  int
	CompletedScreenings int
	MonthlyGoal         int
}

// Screening program defaults applied when the caller supplies no context
const (
	DefaultRequiredScreenings  = 20
	DefaultCompletedScreenings = 15
)

// Resolve fills zero-valued context fields with program defaults
func (c Context) Resolve() Context {
	if c.RequiredScreenings <= 0 {
		c.RequiredScreenings = DefaultRequiredScreenings
	}
	if c.CompletedScreenings <= 0 {
		c.CompletedScreenings = DefaultCompletedScreenings
	}
	return c
}
