// Package detector implements rule-based SDOH risk detection over single
// transcript lines. A Detector holds a compiled catalog and is safe for
// concurrent use
package detector

import (
	"fmt"
	"strings"

	"carelens/internal/core/catalog"
	"carelens/internal/core/cues"
	"carelens/internal/core/langhint"
	"carelens/internal/core/sdoh"
)

// Detector scans transcript lines against the pattern catalog
type Detector struct {
	cat *catalog.Catalog
}

// New creates a Detector over a compiled catalog
func New(cat *catalog.Catalog) *Detector {
	return &Detector{cat: cat}
}

// PatternCount returns the number of catalog definitions evaluated per line
func (d *Detector) PatternCount() int { return d.cat.Len() }

// Scan evaluates one line against every catalog definition in the line's
// language and emits one unmerged Finding per matching definition, each
// carrying the line itself as its single evidence entry. Whitespace-only
// lines yield nothing. Evaluation order does not affect the output set
func (d *Detector) Scan(line sdoh.TranscriptLine) []sdoh.Finding {
	raw := line.Text
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lowered := strings.ToLower(raw)
	lang := langhint.ForLine(line)

	var out []sdoh.Finding
	for _, def := range d.cat.Definitions() {
		if !matchesAny(def.Pool(lang), raw, lowered) {
			continue
		}
		status, conf := cues.Classify(raw, def.BaseConfidence)
		out = append(out, sdoh.Finding{
			Code:           def.Code,
			Label:          def.Label,
			Domain:         def.Domain,
			Severity:       def.Severity,
			Urgency:        def.Urgency,
			Status:         status,
			Confidence:     conf,
			Rationale:      rationale(def, line.Speaker),
			EstimatedValue: def.EstimatedValue,
			Evidence: []sdoh.Evidence{{
				Quote:     raw,
				Speaker:   line.Speaker,
				Timestamp: line.Timestamp,
				Language:  lang,
			}},
		})
	}
	return out
}

func matchesAny(pool []catalog.Matcher, raw, lowered string) bool {
	for _, m := range pool {
		if m.Matches(raw, lowered) {
			return true
		}
	}
	return false
}

func rationale(def catalog.Definition, speaker string) string {
	who := speaker
	if who == "" {
		who = "participant"
	}
	return fmt.Sprintf("%s (%s) indicated by %s statement", def.Label, def.Code, who)
}
